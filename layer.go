// Copyright 2021 Airbus Defence and Space
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package geobind

//#include "geobind.h"
import "C"
import (
	"fmt"
	"unsafe"
)

// Layer wraps an OGRLayerH. Layers are owned by their dataset.
type Layer struct {
	majorObject
}

// handle returns a pointer to the underlying OGRLayerH
func (layer Layer) handle() C.OGRLayerH {
	return C.OGRLayerH(layer.majorObject.cHandle)
}

// LayerCapability is a capability that can be queried with Layer.TestCapability
type LayerCapability string

const (
	// CapRandomRead is set if Feature(fid) is efficient
	CapRandomRead LayerCapability = "RandomRead"
	// CapSequentialWrite is set if CreateFeature is supported
	CapSequentialWrite LayerCapability = "SequentialWrite"
	// CapRandomWrite is set if SetFeature is supported
	CapRandomWrite LayerCapability = "RandomWrite"
	// CapFastFeatureCount is set if FeatureCount(false) does not scan the layer
	CapFastFeatureCount LayerCapability = "FastFeatureCount"
	// CapFastGetExtent is set if Extent(false) does not scan the layer
	CapFastGetExtent LayerCapability = "FastGetExtent"
	// CapFastSetNextByIndex is set if SetNextByIndex is efficient
	CapFastSetNextByIndex LayerCapability = "FastSetNextByIndex"
	// CapCreateField is set if CreateField is supported
	CapCreateField LayerCapability = "CreateField"
	// CapDeleteFeature is set if DeleteFeature is supported
	CapDeleteFeature LayerCapability = "DeleteFeature"
)

// TestCapability returns whether the layer supports cap
func (layer Layer) TestCapability(cap LayerCapability) bool {
	ccap := C.CString(string(cap))
	defer C.free(unsafe.Pointer(ccap))
	return C.OGR_L_TestCapability(layer.handle(), ccap) != 0
}

// Name returns the layer name
func (layer Layer) Name() string {
	return C.GoString(C.OGR_L_GetName(layer.handle()))
}

// GeometryType returns the layer geometry type.
func (layer Layer) GeometryType() GeometryType {
	return GeometryType(C.OGR_L_GetGeomType(layer.handle()))
}

// SpatialRef returns the layer's SpatialRef, or nil. The returned SpatialRef
// is borrowed from the layer.
func (layer Layer) SpatialRef() *SpatialRef {
	hndl := C.OGR_L_GetSpatialRef(layer.handle())
	if hndl == nil {
		return nil
	}
	return &SpatialRef{handle: hndl, isOwned: false}
}

// FeatureDefinition returns the layer's schema, borrowed from the layer
func (layer Layer) FeatureDefinition() *FeatureDefinition {
	return &FeatureDefinition{handle: C.OGR_L_GetLayerDefn(layer.handle())}
}

// CreateField adds a field to the layer. The driver may alter the definition
// (e.g. truncate its name) if it cannot store it as is.
func (layer Layer) CreateField(fd *FieldDefinition, opts ...LayerOption) error {
	lo := layerOpts{}
	for _, o := range opts {
		o.setLayerOpt(&lo)
	}
	cgc := createCGOContext(nil, lo.errorHandler)
	C.geobindLayerCreateField(cgc.cPointer(), layer.handle(), fd.handle, 1)
	return cgc.close()
}

// Extent returns the layer's envelope. If force is false and the driver cannot
// compute it cheaply, an error is returned.
func (layer Layer) Extent(force bool) (Envelope, error) {
	var env C.OGREnvelope
	if err := ogrError(int(C.OGR_L_GetExtent(layer.handle(), &env, cBool(force)))); err != nil {
		return Envelope{}, err
	}
	return Envelope{
		MinX: float64(env.MinX), MaxX: float64(env.MaxX),
		MinY: float64(env.MinY), MaxY: float64(env.MaxY),
	}, nil
}

// FeatureCount returns the number of features in the layer. If force is false and
// the count cannot be computed cheaply, -1 may be returned.
func (layer Layer) FeatureCount(force bool, opts ...LayerOption) (int, error) {
	lo := layerOpts{}
	for _, o := range opts {
		o.setLayerOpt(&lo)
	}
	cgc := createCGOContext(nil, lo.errorHandler)
	count := C.geobindLayerFeatureCount(cgc.cPointer(), layer.handle(), cBool(force))
	if err := cgc.close(); err != nil {
		return 0, err
	}
	return int(count), nil
}

// ResetReading makes NextFeature() restart from the first feature
func (layer Layer) ResetReading() {
	C.OGR_L_ResetReading(layer.handle())
}

// NextFeature returns the layer's next feature, or nil if there are no more
// features. The returned feature must be closed by the caller.
func (layer Layer) NextFeature() *Feature {
	hndl := C.OGR_L_GetNextFeature(layer.handle())
	if hndl == nil {
		return nil
	}
	return &Feature{handle: hndl}
}

// SetNextByIndex moves the read cursor so that the next call to NextFeature
// returns the i'th feature
func (layer Layer) SetNextByIndex(i int64, opts ...LayerOption) error {
	if i < 0 {
		return fmt.Errorf("negative feature index %d: %w", i, ErrIllegalArg)
	}
	lo := layerOpts{}
	for _, o := range opts {
		o.setLayerOpt(&lo)
	}
	cgc := createCGOContext(nil, lo.errorHandler)
	C.geobindLayerSetNextByIndex(cgc.cPointer(), layer.handle(), C.GIntBig(i))
	return cgc.close()
}

// FeaturesRead returns the number of features read since the last ResetReading
func (layer Layer) FeaturesRead() int64 {
	return int64(C.OGR_L_GetFeaturesRead(layer.handle()))
}

// Feature returns the feature identified by fid, or nil if there is none. The
// returned feature must be closed by the caller.
func (layer Layer) Feature(fid int64) *Feature {
	hndl := C.OGR_L_GetFeature(layer.handle(), C.GIntBig(fid))
	if hndl == nil {
		return nil
	}
	return &Feature{handle: hndl}
}

// CreateFeature writes a new feature to the layer. On success the feature's FID
// is set to the one assigned by the driver.
func (layer Layer) CreateFeature(feat *Feature, opts ...LayerOption) error {
	lo := layerOpts{}
	for _, o := range opts {
		o.setLayerOpt(&lo)
	}
	cgc := createCGOContext(nil, lo.errorHandler)
	C.geobindLayerCreateFeature(cgc.cPointer(), layer.handle(), feat.handle)
	return cgc.close()
}

// NewFeature creates a feature with a copy of geom (which may be nil) and writes it
// to the layer. The returned feature must be closed by the caller.
func (layer Layer) NewFeature(geom *Geometry, opts ...LayerOption) (*Feature, error) {
	feat := NewFeature(layer.FeatureDefinition())
	if geom != nil {
		if err := feat.SetGeometry(geom); err != nil {
			feat.Close()
			return nil, err
		}
	}
	if err := layer.CreateFeature(feat, opts...); err != nil {
		feat.Close()
		return nil, err
	}
	return feat, nil
}

// SetFeature rewrites an existing feature, identified by its FID
func (layer Layer) SetFeature(feat *Feature, opts ...LayerOption) error {
	if !layer.TestCapability(CapRandomWrite) {
		return fmt.Errorf("layer %s does not support random writes: %w", layer.Name(), ErrNotSupported)
	}
	lo := layerOpts{}
	for _, o := range opts {
		o.setLayerOpt(&lo)
	}
	cgc := createCGOContext(nil, lo.errorHandler)
	C.geobindLayerSetFeature(cgc.cPointer(), layer.handle(), feat.handle)
	return cgc.close()
}

// DeleteFeature deletes the feature identified by fid
func (layer Layer) DeleteFeature(fid int64, opts ...LayerOption) error {
	if !layer.TestCapability(CapDeleteFeature) {
		return fmt.Errorf("layer %s does not support deletion: %w", layer.Name(), ErrNotSupported)
	}
	lo := layerOpts{}
	for _, o := range opts {
		o.setLayerOpt(&lo)
	}
	cgc := createCGOContext(nil, lo.errorHandler)
	C.geobindLayerDeleteFeature(cgc.cPointer(), layer.handle(), C.GIntBig(fid))
	return cgc.close()
}

// SetSpatialFilter restricts NextFeature to features intersecting geom. A nil geom
// clears the filter.
func (layer Layer) SetSpatialFilter(geom *Geometry) {
	var hndl C.OGRGeometryH
	if geom != nil {
		hndl = geom.handle
	}
	C.OGR_L_SetSpatialFilter(layer.handle(), hndl)
}

// SetAttributeFilter restricts NextFeature to features matching the OGR SQL where
// clause. An empty query clears the filter.
func (layer Layer) SetAttributeFilter(query string) error {
	var cq *C.char
	if query != "" {
		cq = C.CString(query)
		defer C.free(unsafe.Pointer(cq))
	}
	return ogrError(int(C.OGR_L_SetAttributeFilter(layer.handle(), cq)))
}
