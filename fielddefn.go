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

// FieldType is a vector field (attribute/column) type
type FieldType C.OGRFieldType

const (
	//FTInt is a Simple 32bit integer.
	FTInt = FieldType(C.OFTInteger)
	//FTReal is a Double Precision floating point.
	FTReal = FieldType(C.OFTReal)
	//FTString is a String of ASCII chars.
	FTString = FieldType(C.OFTString)
	//FTInt64 is a Single 64bit integer.
	FTInt64 = FieldType(C.OFTInteger64)
	//FTIntList is a List of 32bit integers.
	FTIntList = FieldType(C.OFTIntegerList)
	//FTRealList is a List of doubles.
	FTRealList = FieldType(C.OFTRealList)
	//FTStringList is a Array of strings.
	FTStringList = FieldType(C.OFTStringList)
	//FTBinary is a Raw Binary data.
	FTBinary = FieldType(C.OFTBinary)
	//FTDate is a Date.
	FTDate = FieldType(C.OFTDate)
	//FTTime is a Time.
	FTTime = FieldType(C.OFTTime)
	//FTDateTime is a Date and Time.
	FTDateTime = FieldType(C.OFTDateTime)
	//FTInt64List is a List of 64bit integers.
	FTInt64List = FieldType(C.OFTInteger64List)
	//FTUnknown allow to handle deprecated types like WideString or WideStringList
	FTUnknown = FieldType(C.OFTMaxType + 1)
)

// Name returns gdal's name for the field type, e.g. "Integer64"
func (ft FieldType) Name() string {
	if ft == FTUnknown {
		return "Unknown"
	}
	return C.GoString(C.OGR_GetFieldTypeName(C.OGRFieldType(ft)))
}

// String implements fmt.Stringer
func (ft FieldType) String() string {
	return ft.Name()
}

// Justification is the alignment of a field's values when formatted
type Justification C.OGRJustification

const (
	// JustifyUndefined is the default justification
	JustifyUndefined = Justification(C.OJUndefined)
	// JustifyLeft aligns values to the left
	JustifyLeft = Justification(C.OJLeft)
	// JustifyRight aligns values to the right
	JustifyRight = Justification(C.OJRight)
)

func (j Justification) String() string {
	switch j {
	case JustifyLeft:
		return "left"
	case JustifyRight:
		return "right"
	default:
		return "undefined"
	}
}

// FieldDefinition defines a single attribute. Definitions created with
// NewFieldDefinition must be released with Close. Those returned by
// FeatureDefinition.FieldDefinition or Feature.FieldDefinition are borrowed.
type FieldDefinition struct {
	handle  C.OGRFieldDefnH
	isOwned bool
}

// NewFieldDefinition creates a FieldDefinition. A *FieldDefinition can be passed
// as an option to Dataset.CreateLayer to add the field to the created layer.
func NewFieldDefinition(name string, fdtype FieldType) *FieldDefinition {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return &FieldDefinition{handle: C.OGR_Fld_Create(cname, C.OGRFieldType(fdtype)), isOwned: true}
}

func (fd *FieldDefinition) setCreateLayerOpt(o *createLayerOpts) {
	o.fields = append(o.fields, fd)
}

// Close releases an owned definition, and detaches a borrowed one
func (fd *FieldDefinition) Close() {
	if fd.handle == nil {
		return
	}
	if fd.isOwned {
		C.OGR_Fld_Destroy(fd.handle)
	}
	fd.handle = nil
}

// Set updates all the definition's properties at once
func (fd *FieldDefinition) Set(name string, ftype FieldType, width, precision int, justify Justification) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	C.OGR_Fld_Set(fd.handle, cname, C.OGRFieldType(ftype), C.int(width), C.int(precision), C.OGRJustification(justify))
}

// Name returns the field's name
func (fd *FieldDefinition) Name() string {
	return C.GoString(C.OGR_Fld_GetNameRef(fd.handle))
}

// SetName renames the field
func (fd *FieldDefinition) SetName(name string) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	C.OGR_Fld_SetName(fd.handle, cname)
}

// Type returns the field's type
func (fd *FieldDefinition) Type() FieldType {
	return FieldType(C.OGR_Fld_GetType(fd.handle))
}

// SetType changes the field's type
func (fd *FieldDefinition) SetType(ftype FieldType) {
	C.OGR_Fld_SetType(fd.handle, C.OGRFieldType(ftype))
}

// Justification returns the field's justification
func (fd *FieldDefinition) Justification() Justification {
	return Justification(C.OGR_Fld_GetJustify(fd.handle))
}

// SetJustification sets the field's justification
func (fd *FieldDefinition) SetJustification(j Justification) {
	C.OGR_Fld_SetJustify(fd.handle, C.OGRJustification(j))
}

// Width returns the field's formatting width, 0 if unset
func (fd *FieldDefinition) Width() int {
	return int(C.OGR_Fld_GetWidth(fd.handle))
}

// SetWidth sets the field's formatting width
func (fd *FieldDefinition) SetWidth(width int) {
	C.OGR_Fld_SetWidth(fd.handle, C.int(width))
}

// Precision returns the number of decimals of a real field, 0 if unset
func (fd *FieldDefinition) Precision() int {
	return int(C.OGR_Fld_GetPrecision(fd.handle))
}

// SetPrecision sets the number of decimals of a real field
func (fd *FieldDefinition) SetPrecision(precision int) {
	C.OGR_Fld_SetPrecision(fd.handle, C.int(precision))
}

// IsIgnored returns whether the field is skipped when reading features
func (fd *FieldDefinition) IsIgnored() bool {
	return C.OGR_Fld_IsIgnored(fd.handle) != 0
}

// SetIgnored sets whether the field is skipped when reading features
func (fd *FieldDefinition) SetIgnored(ignored bool) {
	C.OGR_Fld_SetIgnored(fd.handle, cBool(ignored))
}

// IsNullable returns whether the field accepts null values
func (fd *FieldDefinition) IsNullable() bool {
	return C.OGR_Fld_IsNullable(fd.handle) != 0
}

// SetNullable sets whether the field accepts null values
func (fd *FieldDefinition) SetNullable(nullable bool) {
	C.OGR_Fld_SetNullable(fd.handle, cBool(nullable))
}

// Default returns the field's default value expression (e.g. "'foo'", "CURRENT_TIMESTAMP"),
// or an empty string
func (fd *FieldDefinition) Default() string {
	return C.GoString(C.OGR_Fld_GetDefault(fd.handle))
}

// SetDefault sets the field's default value expression. String literals must be
// quoted. An empty def clears the default.
func (fd *FieldDefinition) SetDefault(def string) {
	if def == "" {
		C.OGR_Fld_SetDefault(fd.handle, nil)
		return
	}
	cdef := C.CString(def)
	defer C.free(unsafe.Pointer(cdef))
	C.OGR_Fld_SetDefault(fd.handle, cdef)
}

type fieldDefinitionJSON struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Width         int    `json:"width,omitempty"`
	Precision     int    `json:"precision,omitempty"`
	Justification string `json:"justification"`
	Nullable      bool   `json:"nullable"`
	Ignored       bool   `json:"ignored,omitempty"`
	Default       string `json:"default,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (fd *FieldDefinition) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldDefinitionJSON{
		Name:          fd.Name(),
		Type:          fd.Type().Name(),
		Width:         fd.Width(),
		Precision:     fd.Precision(),
		Justification: fd.Justification().String(),
		Nullable:      fd.IsNullable(),
		Ignored:       fd.IsIgnored(),
		Default:       fd.Default(),
	})
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
