package geobind

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
)

// NewGeometryFromOrb creates a Geometry from an orb geometry. sr may be nil.
func NewGeometryFromOrb(og orb.Geometry, sr *SpatialRef, opts ...GeometryOption) (*Geometry, error) {
	if og == nil {
		return nil, fmt.Errorf("nil orb geometry: %w", ErrIllegalArg)
	}
	b, err := wkb.Marshal(og)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", og.GeoJSONType(), err)
	}
	return NewGeometryFromWKB(b, sr, opts...)
}

// Orb converts the geometry to its orb equivalent. Z coordinates are dropped,
// and curved geometry types are not supported.
func (g *Geometry) Orb(opts ...GeometryOption) (orb.Geometry, error) {
	src := g
	if g.Type().Is3D() {
		src = g.Clone()
		defer src.Close()
		src.FlattenTo2D()
	}
	b, err := src.WKB(LittleEndian, opts...)
	if err != nil {
		return nil, err
	}
	og, err := wkb.Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", g.Name(), err)
	}
	return og, nil
}
