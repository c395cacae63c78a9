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
	"unsafe"

	"github.com/goccy/go-json"
)

// GeometryFieldDefinition defines a geometry column of a layer
type GeometryFieldDefinition struct {
	handle  C.OGRGeomFieldDefnH
	isOwned bool
}

// NewGeometryFieldDefinition creates a geometry field definition. The zero
// GeometryType (GTUnknown) accepts any geometry.
func NewGeometryFieldDefinition(name string, gtype GeometryType) *GeometryFieldDefinition {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return &GeometryFieldDefinition{handle: C.OGR_GFld_Create(cname, C.OGRwkbGeometryType(gtype)), isOwned: true}
}

// Close releases an owned definition, and detaches a borrowed one
func (gfd *GeometryFieldDefinition) Close() {
	if gfd.handle == nil {
		return
	}
	if gfd.isOwned {
		C.OGR_GFld_Destroy(gfd.handle)
	}
	gfd.handle = nil
}

// Name returns the geometry field's name
func (gfd *GeometryFieldDefinition) Name() string {
	return C.GoString(C.OGR_GFld_GetNameRef(gfd.handle))
}

// SetName renames the geometry field
func (gfd *GeometryFieldDefinition) SetName(name string) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	C.OGR_GFld_SetName(gfd.handle, cname)
}

// Type returns the geometry type accepted by the field
func (gfd *GeometryFieldDefinition) Type() GeometryType {
	return GeometryType(C.OGR_GFld_GetType(gfd.handle))
}

// SetType sets the geometry type accepted by the field
func (gfd *GeometryFieldDefinition) SetType(gtype GeometryType) {
	C.OGR_GFld_SetType(gfd.handle, C.OGRwkbGeometryType(gtype))
}

// SpatialRef returns the field's SpatialRef, or nil. The returned SpatialRef is
// borrowed from the definition.
func (gfd *GeometryFieldDefinition) SpatialRef() *SpatialRef {
	hndl := C.OGR_GFld_GetSpatialRef(gfd.handle)
	if hndl == nil {
		return nil
	}
	return &SpatialRef{handle: hndl, isOwned: false}
}

// SetSpatialRef sets the field's SpatialRef. The definition keeps its own reference
// to sr, which may be closed afterwards.
func (gfd *GeometryFieldDefinition) SetSpatialRef(sr *SpatialRef) {
	C.OGR_GFld_SetSpatialRef(gfd.handle, srHandle(sr))
}

// IsIgnored returns whether the field is skipped when reading features
func (gfd *GeometryFieldDefinition) IsIgnored() bool {
	return C.OGR_GFld_IsIgnored(gfd.handle) != 0
}

// SetIgnored sets whether the field is skipped when reading features
func (gfd *GeometryFieldDefinition) SetIgnored(ignored bool) {
	C.OGR_GFld_SetIgnored(gfd.handle, cBool(ignored))
}

type geometryFieldDefinitionJSON struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	SRS     string `json:"srs,omitempty"`
	Ignored bool   `json:"ignored,omitempty"`
}

// MarshalJSON implements json.Marshaler. The spatial reference is written as
// AUTHORITY:CODE when it has one.
func (gfd *GeometryFieldDefinition) MarshalJSON() ([]byte, error) {
	js := geometryFieldDefinitionJSON{
		Name:    gfd.Name(),
		Type:    gfd.Type().Name(),
		Ignored: gfd.IsIgnored(),
	}
	if sr := gfd.SpatialRef(); sr != nil {
		if auth, code := sr.AuthorityName(""), sr.AuthorityCode(""); auth != "" && code != "" {
			js.SRS = auth + ":" + code
		}
	}
	return json.Marshal(js)
}

// FeatureDefinition is the schema of a layer's features. It is reference counted
// by gdal: definitions created with NewFeatureDefinition are released by Close,
// those returned by Layer.FeatureDefinition and Feature.Definition are borrowed.
type FeatureDefinition struct {
	handle  C.OGRFeatureDefnH
	isOwned bool
}

// NewFeatureDefinition creates an empty feature definition with a single
// geometry field of type GTUnknown
func NewFeatureDefinition(name string) *FeatureDefinition {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	hndl := C.OGR_FD_Create(cname)
	C.OGR_FD_Reference(hndl)
	return &FeatureDefinition{handle: hndl, isOwned: true}
}

// Close releases the definition's reference
func (fd *FeatureDefinition) Close() {
	if fd.handle == nil {
		return
	}
	if fd.isOwned {
		C.OGR_FD_Release(fd.handle)
	}
	fd.handle = nil
}

// Name returns the definition's (i.e. layer's) name
func (fd *FeatureDefinition) Name() string {
	return C.GoString(C.OGR_FD_GetName(fd.handle))
}

// FieldCount returns the number of attribute fields
func (fd *FeatureDefinition) FieldCount() int {
	return int(C.OGR_FD_GetFieldCount(fd.handle))
}

// FieldDefinition returns the i'th field definition, borrowed from fd
func (fd *FeatureDefinition) FieldDefinition(i int) (*FieldDefinition, bool) {
	if i < 0 || i >= fd.FieldCount() {
		return nil, false
	}
	return &FieldDefinition{handle: C.OGR_FD_GetFieldDefn(fd.handle, C.int(i))}, true
}

// FieldIndex returns the index of the field named name
func (fd *FeatureDefinition) FieldIndex(name string) (int, bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	idx := int(C.OGR_FD_GetFieldIndex(fd.handle, cname))
	return idx, idx >= 0
}

// FieldDefinitions returns all the field definitions, borrowed from fd
func (fd *FeatureDefinition) FieldDefinitions() []*FieldDefinition {
	n := fd.FieldCount()
	ret := make([]*FieldDefinition, n)
	for i := range ret {
		ret[i], _ = fd.FieldDefinition(i)
	}
	return ret
}

// AddFieldDefinition appends a copy of fld to the definition. It must not be called
// on a definition already used by features or layers.
func (fd *FeatureDefinition) AddFieldDefinition(fld *FieldDefinition) {
	C.OGR_FD_AddFieldDefn(fd.handle, fld.handle)
}

// GeometryType returns the type of the first geometry field
func (fd *FeatureDefinition) GeometryType() GeometryType {
	return GeometryType(C.OGR_FD_GetGeomType(fd.handle))
}

// SetGeometryType sets the type of the first geometry field
func (fd *FeatureDefinition) SetGeometryType(gtype GeometryType) {
	C.OGR_FD_SetGeomType(fd.handle, C.OGRwkbGeometryType(gtype))
}

// GeometryFieldCount returns the number of geometry fields
func (fd *FeatureDefinition) GeometryFieldCount() int {
	return int(C.OGR_FD_GetGeomFieldCount(fd.handle))
}

// GeometryFieldDefinition returns the i'th geometry field definition, borrowed from fd
func (fd *FeatureDefinition) GeometryFieldDefinition(i int) (*GeometryFieldDefinition, bool) {
	if i < 0 || i >= fd.GeometryFieldCount() {
		return nil, false
	}
	return &GeometryFieldDefinition{handle: C.OGR_FD_GetGeomFieldDefn(fd.handle, C.int(i))}, true
}

// GeometryFieldIndex returns the index of the geometry field named name
func (fd *FeatureDefinition) GeometryFieldIndex(name string) (int, bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	idx := int(C.OGR_FD_GetGeomFieldIndex(fd.handle, cname))
	return idx, idx >= 0
}

// AddGeometryFieldDefinition appends a copy of gfld to the definition
func (fd *FeatureDefinition) AddGeometryFieldDefinition(gfld *GeometryFieldDefinition) {
	C.OGR_FD_AddGeomFieldDefn(fd.handle, gfld.handle)
}
