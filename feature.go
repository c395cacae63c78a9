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
	"io"
	"time"
	"unsafe"
)

// Feature is a Layer feature. Features returned by NewFeature, Clone,
// Layer.Feature and Layer.NextFeature are owned by the caller and must be
// released with Close.
type Feature struct {
	handle C.OGRFeatureH
}

// NewFeature creates an empty feature following the given definition
func NewFeature(defn *FeatureDefinition) *Feature {
	return &Feature{handle: C.OGR_F_Create(defn.handle)}
}

// Close releases the feature. Must be called exactly once.
func (f *Feature) Close() {
	if f.handle == nil {
		return
	}
	C.OGR_F_Destroy(f.handle)
	f.handle = nil
}

// Clone returns a deep copy of the feature
func (f *Feature) Clone() *Feature {
	return &Feature{handle: C.OGR_F_Clone(f.handle)}
}

// Definition returns the feature's definition, borrowed from the feature
func (f *Feature) Definition() *FeatureDefinition {
	return &FeatureDefinition{handle: C.OGR_F_GetDefnRef(f.handle)}
}

// SetFrom copies the fields and geometry of other into f, matching fields by name.
// If forgiving is false, the copy fails as soon as a field of other has no match in f.
func (f *Feature) SetFrom(other *Feature, forgiving bool, opts ...FeatureOption) error {
	fo := featureOpts{}
	for _, o := range opts {
		o.setFeatureOpt(&fo)
	}
	cgc := createCGOContext(nil, fo.errorHandler)
	C.geobindFeatureSetFrom(cgc.cPointer(), f.handle, other.handle, cBool(forgiving), nil)
	return cgc.close()
}

// SetFromWithMap copies the fields and geometry of other into f. fieldMap must contain
// one entry per field of other, holding the index of the destination field in f, or -1
// to skip it.
func (f *Feature) SetFromWithMap(other *Feature, forgiving bool, fieldMap []int, opts ...FeatureOption) error {
	if len(fieldMap) != other.FieldCount() {
		return fmt.Errorf("field map has %d entries, expected %d: %w", len(fieldMap), other.FieldCount(), ErrIllegalArg)
	}
	fo := featureOpts{}
	for _, o := range opts {
		o.setFeatureOpt(&fo)
	}
	var cmap *C.int
	if len(fieldMap) > 0 {
		cmap = cIntArray(fieldMap)
		defer C.free(unsafe.Pointer(cmap))
	} else {
		var empty C.int
		cmap = &empty
	}
	cgc := createCGOContext(nil, fo.errorHandler)
	C.geobindFeatureSetFrom(cgc.cPointer(), f.handle, other.handle, cBool(forgiving), cmap)
	return cgc.close()
}

// FieldCount returns the number of attribute fields
func (f *Feature) FieldCount() int {
	return int(C.OGR_F_GetFieldCount(f.handle))
}

// FieldDefinition returns the definition of the i'th field, borrowed from the feature
func (f *Feature) FieldDefinition(i int) (*FieldDefinition, bool) {
	if !f.validField(i) {
		return nil, false
	}
	return &FieldDefinition{handle: C.OGR_F_GetFieldDefnRef(f.handle, C.int(i))}, true
}

// FieldIndex returns the index of the field named name
func (f *Feature) FieldIndex(name string) (int, bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	idx := int(C.OGR_F_GetFieldIndex(f.handle, cname))
	return idx, idx >= 0
}

func (f *Feature) validField(i int) bool {
	return i >= 0 && i < f.FieldCount()
}

func (f *Feature) checkField(i int) error {
	if !f.validField(i) {
		return fmt.Errorf("field index %d out of range [0,%d): %w", i, f.FieldCount(), ErrIllegalArg)
	}
	return nil
}

// IsFieldSet returns whether the i'th field has been assigned a value, possibly null
func (f *Feature) IsFieldSet(i int) bool {
	return f.validField(i) && C.OGR_F_IsFieldSet(f.handle, C.int(i)) != 0
}

// UnsetField clears the i'th field
func (f *Feature) UnsetField(i int) error {
	if err := f.checkField(i); err != nil {
		return err
	}
	C.OGR_F_UnsetField(f.handle, C.int(i))
	return nil
}

// IsFieldNull returns whether the i'th field is set to null
func (f *Feature) IsFieldNull(i int) bool {
	return f.validField(i) && C.OGR_F_IsFieldNull(f.handle, C.int(i)) != 0
}

// SetFieldNull sets the i'th field to null
func (f *Feature) SetFieldNull(i int) error {
	if err := f.checkField(i); err != nil {
		return err
	}
	C.OGR_F_SetFieldNull(f.handle, C.int(i))
	return nil
}

// SetFieldString sets the i'th field. Non string fields are converted.
func (f *Feature) SetFieldString(i int, value string) error {
	if err := f.checkField(i); err != nil {
		return err
	}
	cval := C.CString(value)
	defer C.free(unsafe.Pointer(cval))
	C.OGR_F_SetFieldString(f.handle, C.int(i), cval)
	return nil
}

// SetFieldInteger sets the i'th field
func (f *Feature) SetFieldInteger(i int, value int) error {
	if err := f.checkField(i); err != nil {
		return err
	}
	C.OGR_F_SetFieldInteger(f.handle, C.int(i), C.int(value))
	return nil
}

// SetFieldInteger64 sets the i'th field
func (f *Feature) SetFieldInteger64(i int, value int64) error {
	if err := f.checkField(i); err != nil {
		return err
	}
	C.OGR_F_SetFieldInteger64(f.handle, C.int(i), C.GIntBig(value))
	return nil
}

// SetFieldDouble sets the i'th field
func (f *Feature) SetFieldDouble(i int, value float64) error {
	if err := f.checkField(i); err != nil {
		return err
	}
	C.OGR_F_SetFieldDouble(f.handle, C.int(i), C.double(value))
	return nil
}

// SetFieldStringList sets the i'th field
func (f *Feature) SetFieldStringList(i int, values []string) error {
	if err := f.checkField(i); err != nil {
		return err
	}
	cvals := sliceToCStringArray(values)
	defer cvals.free()
	C.OGR_F_SetFieldStringList(f.handle, C.int(i), cvals.cPointer())
	return nil
}

// SetFieldIntegerList sets the i'th field
func (f *Feature) SetFieldIntegerList(i int, values []int) error {
	if err := f.checkField(i); err != nil {
		return err
	}
	cvals := make([]C.int, len(values)+1)
	for j, v := range values {
		cvals[j] = C.int(v)
	}
	C.OGR_F_SetFieldIntegerList(f.handle, C.int(i), C.int(len(values)), &cvals[0])
	return nil
}

// SetFieldInteger64List sets the i'th field
func (f *Feature) SetFieldInteger64List(i int, values []int64) error {
	if err := f.checkField(i); err != nil {
		return err
	}
	cvals := make([]C.GIntBig, len(values)+1)
	for j, v := range values {
		cvals[j] = C.GIntBig(v)
	}
	C.OGR_F_SetFieldInteger64List(f.handle, C.int(i), C.int(len(values)), &cvals[0])
	return nil
}

// SetFieldDoubleList sets the i'th field
func (f *Feature) SetFieldDoubleList(i int, values []float64) error {
	if err := f.checkField(i); err != nil {
		return err
	}
	cvals := make([]C.double, len(values)+1)
	for j, v := range values {
		cvals[j] = C.double(v)
	}
	C.OGR_F_SetFieldDoubleList(f.handle, C.int(i), C.int(len(values)), &cvals[0])
	return nil
}

// SetFieldBinary sets the i'th field
func (f *Feature) SetFieldBinary(i int, value []byte) error {
	if err := f.checkField(i); err != nil {
		return err
	}
	cval := C.CBytes(value)
	defer C.free(cval)
	C.OGR_F_SetFieldBinary(f.handle, C.int(i), C.int(len(value)), cval)
	return nil
}

// gdal time zone flag: 0=unknown, 1=localtime, 100=GMT, 101=GMT+15minute, 99=GMT-15minute...
func tzFlag(t time.Time) int {
	if t.Location() == time.Local {
		return 1
	}
	_, offset := t.Zone()
	return offset/60/15 + 100
}

func tzLocation(flag int) *time.Location {
	switch {
	case flag == 0 || flag == 1:
		return time.Local
	case flag == 100:
		return time.UTC
	default:
		offset := (flag - 100) * 15 * 60
		return time.FixedZone(fmt.Sprintf("GMT%+03d%02d", offset/3600, (abs(offset)%3600)/60), offset)
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// SetFieldDateTime sets the i'th field. Sub-second precision is kept up to the
// millisecond.
func (f *Feature) SetFieldDateTime(i int, value time.Time) error {
	if err := f.checkField(i); err != nil {
		return err
	}
	sec := float64(value.Second()) + float64(value.Nanosecond()/int(time.Millisecond))/1000
	C.OGR_F_SetFieldDateTimeEx(f.handle, C.int(i),
		C.int(value.Year()), C.int(value.Month()), C.int(value.Day()),
		C.int(value.Hour()), C.int(value.Minute()), C.float(sec),
		C.int(tzFlag(value)))
	return nil
}

// FieldAsInteger returns the i'th field converted to an integer
func (f *Feature) FieldAsInteger(i int) int {
	if !f.validField(i) {
		return 0
	}
	return int(C.OGR_F_GetFieldAsInteger(f.handle, C.int(i)))
}

// FieldAsInteger64 returns the i'th field converted to a 64 bit integer
func (f *Feature) FieldAsInteger64(i int) int64 {
	if !f.validField(i) {
		return 0
	}
	return int64(C.OGR_F_GetFieldAsInteger64(f.handle, C.int(i)))
}

// FieldAsDouble returns the i'th field converted to a float
func (f *Feature) FieldAsDouble(i int) float64 {
	if !f.validField(i) {
		return 0
	}
	return float64(C.OGR_F_GetFieldAsDouble(f.handle, C.int(i)))
}

// FieldAsString returns the i'th field formatted as a string
func (f *Feature) FieldAsString(i int) string {
	if !f.validField(i) {
		return ""
	}
	return C.GoString(C.OGR_F_GetFieldAsString(f.handle, C.int(i)))
}

// FieldAsIntegerList returns the i'th list field
func (f *Feature) FieldAsIntegerList(i int) []int {
	if !f.validField(i) {
		return nil
	}
	var n C.int
	cvals := C.OGR_F_GetFieldAsIntegerList(f.handle, C.int(i), &n)
	if n == 0 || cvals == nil {
		return nil
	}
	return cIntArrayToSlice((*C.int)(unsafe.Pointer(cvals)), n)
}

// FieldAsInteger64List returns the i'th list field
func (f *Feature) FieldAsInteger64List(i int) []int64 {
	if !f.validField(i) {
		return nil
	}
	var n C.int
	cvals := C.OGR_F_GetFieldAsInteger64List(f.handle, C.int(i), &n)
	if n == 0 || cvals == nil {
		return nil
	}
	return cInt64ArrayToSlice((*C.GIntBig)(unsafe.Pointer(cvals)), n)
}

// FieldAsDoubleList returns the i'th list field
func (f *Feature) FieldAsDoubleList(i int) []float64 {
	if !f.validField(i) {
		return nil
	}
	var n C.int
	cvals := C.OGR_F_GetFieldAsDoubleList(f.handle, C.int(i), &n)
	if n == 0 || cvals == nil {
		return nil
	}
	return cDoubleArrayToSlice((*C.double)(unsafe.Pointer(cvals)), n)
}

// FieldAsStringList returns the i'th list field
func (f *Feature) FieldAsStringList(i int) []string {
	if !f.validField(i) {
		return nil
	}
	return cStringArrayToSlice(C.OGR_F_GetFieldAsStringList(f.handle, C.int(i)))
}

// FieldAsBinary returns a copy of the i'th binary field
func (f *Feature) FieldAsBinary(i int) []byte {
	if !f.validField(i) {
		return nil
	}
	var n C.int
	cval := C.OGR_F_GetFieldAsBinary(f.handle, C.int(i), &n)
	if n == 0 || cval == nil {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(cval), n)
}

// FieldAsDateTime returns the i'th date, time or datetime field. ok is false if the
// field is not set or cannot be converted.
func (f *Feature) FieldAsDateTime(i int) (time.Time, bool) {
	if !f.validField(i) {
		return time.Time{}, false
	}
	var year, month, day, hour, minute, tz C.int
	var sec C.float
	ret := C.OGR_F_GetFieldAsDateTimeEx(f.handle, C.int(i), &year, &month, &day, &hour, &minute, &sec, &tz)
	if ret == 0 {
		return time.Time{}, false
	}
	s := float64(sec)
	whole := int(s)
	nsec := int((s-float64(whole))*1000+0.5) * int(time.Millisecond)
	return time.Date(int(year), time.Month(month), int(day), int(hour), int(minute), whole, nsec, tzLocation(int(tz))), true
}

// Geometry returns a handle to the feature's geometry, or nil. The returned
// geometry is borrowed from the feature.
func (f *Feature) Geometry() *Geometry {
	hndl := C.OGR_F_GetGeometryRef(f.handle)
	if hndl == nil {
		return nil
	}
	return &Geometry{isOwned: false, handle: hndl}
}

// SetGeometry overwrites the feature's geometry with a copy of geom
func (f *Feature) SetGeometry(geom *Geometry, opts ...FeatureOption) error {
	fo := featureOpts{}
	for _, o := range opts {
		o.setFeatureOpt(&fo)
	}
	cgc := createCGOContext(nil, fo.errorHandler)
	C.geobindFeatureSetGeometry(cgc.cPointer(), f.handle, geom.handle, 0)
	return cgc.close()
}

// SetGeometryDirectly overwrites the feature's geometry with geom, which becomes
// owned by the feature.
func (f *Feature) SetGeometryDirectly(geom *Geometry, opts ...FeatureOption) error {
	if !geom.isOwned {
		return fmt.Errorf("cannot transfer a borrowed geometry: %w", ErrIllegalArg)
	}
	fo := featureOpts{}
	for _, o := range opts {
		o.setFeatureOpt(&fo)
	}
	cgc := createCGOContext(nil, fo.errorHandler)
	C.geobindFeatureSetGeometry(cgc.cPointer(), f.handle, geom.handle, 1)
	if err := cgc.close(); err != nil {
		return err
	}
	geom.isOwned = false
	return nil
}

// StealGeometry removes the geometry from the feature and returns it. The caller
// becomes its owner. Returns nil if the feature has no geometry.
func (f *Feature) StealGeometry() *Geometry {
	hndl := C.OGR_F_StealGeometry(f.handle)
	if hndl == nil {
		return nil
	}
	return newGeometry(hndl)
}

// FID returns the feature identifier
func (f *Feature) FID() int64 {
	return int64(C.OGR_F_GetFID(f.handle))
}

// SetFID sets the feature identifier
func (f *Feature) SetFID(fid int64, opts ...FeatureOption) error {
	fo := featureOpts{}
	for _, o := range opts {
		o.setFeatureOpt(&fo)
	}
	cgc := createCGOContext(nil, fo.errorHandler)
	C.geobindFeatureSetFID(cgc.cPointer(), f.handle, C.GIntBig(fid))
	return cgc.close()
}

// GeometryFieldCount returns the number of geometry fields
func (f *Feature) GeometryFieldCount() int {
	return int(C.OGR_F_GetGeomFieldCount(f.handle))
}

// GeometryFieldDefinition returns the definition of the i'th geometry field, borrowed from the feature
func (f *Feature) GeometryFieldDefinition(i int) (*GeometryFieldDefinition, bool) {
	if i < 0 || i >= f.GeometryFieldCount() {
		return nil, false
	}
	return &GeometryFieldDefinition{handle: C.OGR_F_GetGeomFieldDefnRef(f.handle, C.int(i))}, true
}

// GeometryFieldIndex returns the index of the geometry field named name
func (f *Feature) GeometryFieldIndex(name string) (int, bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	idx := int(C.OGR_F_GetGeomFieldIndex(f.handle, cname))
	return idx, idx >= 0
}

// GeometryField returns the geometry of the i'th geometry field, or nil. The
// returned geometry is borrowed from the feature.
func (f *Feature) GeometryField(i int) *Geometry {
	if i < 0 || i >= f.GeometryFieldCount() {
		return nil
	}
	hndl := C.OGR_F_GetGeomFieldRef(f.handle, C.int(i))
	if hndl == nil {
		return nil
	}
	return &Geometry{isOwned: false, handle: hndl}
}

// SetGeometryField sets the geometry of the i'th geometry field to a copy of geom
func (f *Feature) SetGeometryField(i int, geom *Geometry, opts ...FeatureOption) error {
	if i < 0 || i >= f.GeometryFieldCount() {
		return fmt.Errorf("geometry field index %d out of range: %w", i, ErrIllegalArg)
	}
	fo := featureOpts{}
	for _, o := range opts {
		o.setFeatureOpt(&fo)
	}
	cgc := createCGOContext(nil, fo.errorHandler)
	C.geobindFeatureSetGeomField(cgc.cPointer(), f.handle, C.int(i), geom.handle, 0)
	return cgc.close()
}

// Equal returns true if both features have the same definition, fid, fields and geometries
func (f *Feature) Equal(other *Feature) bool {
	return C.OGR_F_Equal(f.handle, other.handle) != 0
}

// StyleString returns the feature's OGR style string, or an empty string
func (f *Feature) StyleString() string {
	return C.GoString(C.OGR_F_GetStyleString(f.handle))
}

// SetStyleString sets the feature's OGR style string
func (f *Feature) SetStyleString(style string) {
	cstyle := C.CString(style)
	defer C.free(unsafe.Pointer(cstyle))
	C.OGR_F_SetStyleString(f.handle, cstyle)
}

// DumpReadable writes a human readable dump of the feature to w
func (f *Feature) DumpReadable(w io.Writer) error {
	cdump := C.geobindDumpFeature(f.handle)
	if cdump == nil {
		return fmt.Errorf("dump feature: %w", ErrFileIO)
	}
	defer C.CPLFree(unsafe.Pointer(cdump))
	_, err := io.WriteString(w, C.GoString(cdump))
	return err
}
