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
import "math"

// GeometryType is a geometry type
type GeometryType uint32

const (
	//GTUnknown is a GeometryType
	GTUnknown = GeometryType(C.wkbUnknown)
	//GTPoint is a GeometryType
	GTPoint = GeometryType(C.wkbPoint)
	//GTPoint25D is a GeometryType
	GTPoint25D = GeometryType(C.wkbPoint25D)
	//GTLinearRing is a GeometryType
	GTLinearRing = GeometryType(C.wkbLinearRing)
	//GTLineString is a GeometryType
	GTLineString = GeometryType(C.wkbLineString)
	//GTLineString25D is a GeometryType
	GTLineString25D = GeometryType(C.wkbLineString25D)
	//GTPolygon is a GeometryType
	GTPolygon = GeometryType(C.wkbPolygon)
	//GTPolygon25D is a GeometryType
	GTPolygon25D = GeometryType(C.wkbPolygon25D)
	//GTMultiPoint is a GeometryType
	GTMultiPoint = GeometryType(C.wkbMultiPoint)
	//GTMultiPoint25D is a GeometryType
	GTMultiPoint25D = GeometryType(C.wkbMultiPoint25D)
	//GTMultiLineString is a GeometryType
	GTMultiLineString = GeometryType(C.wkbMultiLineString)
	//GTMultiLineString25D is a GeometryType
	GTMultiLineString25D = GeometryType(C.wkbMultiLineString25D)
	//GTMultiPolygon is a GeometryType
	GTMultiPolygon = GeometryType(C.wkbMultiPolygon)
	//GTMultiPolygon25D is a GeometryType
	GTMultiPolygon25D = GeometryType(C.wkbMultiPolygon25D)
	//GTGeometryCollection is a GeometryType
	GTGeometryCollection = GeometryType(C.wkbGeometryCollection)
	//GTGeometryCollection25D is a GeometryType
	GTGeometryCollection25D = GeometryType(C.wkbGeometryCollection25D)
	//GTNone is a GeometryType
	GTNone = GeometryType(C.wkbNone)
)

// Name returns a human readable name of the geometry type, e.g. "3D Polygon"
func (gt GeometryType) Name() string {
	return C.GoString(C.OGRGeometryTypeToName(C.OGRwkbGeometryType(gt)))
}

// String implements fmt.Stringer
func (gt GeometryType) String() string {
	return gt.Name()
}

// Flatten returns the 2D variant of the type
func (gt GeometryType) Flatten() GeometryType {
	return GeometryType(C.OGR_GT_Flatten(C.OGRwkbGeometryType(gt)))
}

// Is3D returns true if the type has a Z component
func (gt GeometryType) Is3D() bool {
	return C.OGR_GT_HasZ(C.OGRwkbGeometryType(gt)) != 0
}

// MergeGeometryTypes returns the most specific type that can hold geometries of
// both types, e.g. GTUnknown for a point and a polygon, or GTMultiPolygon for a
// polygon and a multipolygon.
func MergeGeometryTypes(a, b GeometryType) GeometryType {
	return GeometryType(C.OGRMergeGeometryTypesEx(C.OGRwkbGeometryType(a), C.OGRwkbGeometryType(b), 1))
}

// Envelope is the bounding box of a geometry. MinZ and MaxZ are only
// meaningful when Is3D is true.
type Envelope struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
	Is3D       bool
}

// Bounds returns the envelope in the order minx,miny,maxx,maxy
func (e Envelope) Bounds() [4]float64 {
	return [4]float64{e.MinX, e.MinY, e.MaxX, e.MaxY}
}

// Width returns MaxX-MinX
func (e Envelope) Width() float64 {
	return e.MaxX - e.MinX
}

// Height returns MaxY-MinY
func (e Envelope) Height() float64 {
	return e.MaxY - e.MinY
}

// Contains returns true if x,y is inside the envelope, borders included
func (e Envelope) Contains(x, y float64) bool {
	return x >= e.MinX && x <= e.MaxX && y >= e.MinY && y <= e.MaxY
}

// Union returns the smallest envelope containing both e and other. Z bounds are
// merged only when both envelopes are 3D.
func (e Envelope) Union(other Envelope) Envelope {
	u := Envelope{
		MinX: math.Min(e.MinX, other.MinX),
		MaxX: math.Max(e.MaxX, other.MaxX),
		MinY: math.Min(e.MinY, other.MinY),
		MaxY: math.Max(e.MaxY, other.MaxY),
	}
	if e.Is3D && other.Is3D {
		u.MinZ = math.Min(e.MinZ, other.MinZ)
		u.MaxZ = math.Max(e.MaxZ, other.MaxZ)
		u.Is3D = true
	}
	return u
}
