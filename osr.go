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

	"github.com/airbusgeo/geobind/internal/srscache"
)

const epsgCacheEntries = 256

var epsgCache *srscache.Cache

func init() {
	var err error
	if epsgCache, err = srscache.NewCache(epsgCacheEntries); err != nil {
		panic(err)
	}
}

// SpatialRef is a wrapper around OGRSpatialReferenceH
type SpatialRef struct {
	handle  C.OGRSpatialReferenceH
	isOwned bool
}

// WKT returns spatialrefernece as WKT
func (sr *SpatialRef) WKT(opts ...SpatialRefOption) (string, error) {
	so := spatialRefOpts{}
	for _, o := range opts {
		o.setSpatialRefOpt(&so)
	}
	cgc := createCGOContext(nil, so.errorHandler)
	cwkt := C.geobindExportToWKT(cgc.cPointer(), sr.handle)
	if err := cgc.close(); err != nil {
		return "", err
	}
	defer C.CPLFree(unsafe.Pointer(cwkt))
	return C.GoString(cwkt), nil
}

// Close releases memory. Borrowed SpatialRefs are only detached.
func (sr *SpatialRef) Close() {
	if sr.handle == nil {
		return
	}
	if sr.isOwned {
		C.OSRRelease(sr.handle)
	}
	sr.handle = nil
}

// NewSpatialRefFromWKT creates a SpatialRef from an opengis WKT description, or any
// other definition accepted by OSRSetFromUserInput (e.g. "EPSG:4326")
func NewSpatialRefFromWKT(wkt string, opts ...SpatialRefOption) (*SpatialRef, error) {
	so := spatialRefOpts{}
	for _, o := range opts {
		o.setSpatialRefOpt(&so)
	}
	cstr := C.CString(wkt)
	defer C.free(unsafe.Pointer(cstr))
	cgc := createCGOContext(nil, so.errorHandler)
	hndl := C.geobindCreateSpatialRefFromWKT(cgc.cPointer(), cstr)
	if err := cgc.close(); err != nil {
		return nil, err
	}
	return &SpatialRef{handle: hndl, isOwned: true}, nil
}

// NewSpatialRefFromEPSG creates a SpatialRef from an epsg code. The WKT of the
// most recently used codes is kept in memory.
func NewSpatialRefFromEPSG(code int, opts ...SpatialRefOption) (*SpatialRef, error) {
	if wkt, ok := epsgCache.Get("EPSG", code); ok {
		return NewSpatialRefFromWKT(wkt, opts...)
	}
	so := spatialRefOpts{}
	for _, o := range opts {
		o.setSpatialRefOpt(&so)
	}
	cgc := createCGOContext(nil, so.errorHandler)
	hndl := C.geobindCreateSpatialRefFromEPSG(cgc.cPointer(), C.int(code))
	if err := cgc.close(); err != nil {
		return nil, fmt.Errorf("epsg:%d: %w", code, err)
	}
	sr := &SpatialRef{handle: hndl, isOwned: true}
	if wkt, err := sr.WKT(opts...); err == nil {
		epsgCache.Add("EPSG", code, wkt)
	}
	return sr, nil
}

// IsSame returns whether two SpatiaRefs describe the same projection.
func (sr *SpatialRef) IsSame(other *SpatialRef) bool {
	ret := C.OSRIsSame(sr.handle, other.handle)
	return ret != 0
}

// Geographic returns wether the SpatialRef is geographic
func (sr *SpatialRef) Geographic() bool {
	ret := C.OSRIsGeographic(sr.handle)
	return ret != 0
}

// SemiMajor returns the SpatialRef's Semi Major Axis
func (sr *SpatialRef) SemiMajor() (float64, error) {
	var err C.OGRErr
	sm := C.OSRGetSemiMajor(sr.handle, &err)
	return float64(sm), ogrError(int(err))
}

// SemiMinor returns the SpatialRef's Semi Minor Axis
func (sr *SpatialRef) SemiMinor() (float64, error) {
	var err C.OGRErr
	sm := C.OSRGetSemiMinor(sr.handle, &err)
	return float64(sm), ogrError(int(err))
}

// AuthorityName is used to query an AUTHORITY[] node from within the WKT tree, and fetch the authority name value.
//
// target is the partial or complete path to the node to get an authority from. i.e. "PROJCS", "GEOGCS", "GEOGCS|UNIT"
// or "" to search for an authority node on the root element.
func (sr *SpatialRef) AuthorityName(target string) string {
	cstr := (*C.char)(nil)
	if len(target) > 0 {
		cstr = C.CString(target)
		defer C.free(unsafe.Pointer(cstr))
	}
	return C.GoString(C.OSRGetAuthorityName(sr.handle, cstr))
}

// AuthorityCode is used to query an AUTHORITY[] node from within the WKT tree, and fetch the code value.
//
// While in theory values may be non-numeric, for the EPSG authority all code values should be integral.
func (sr *SpatialRef) AuthorityCode(target string) string {
	cstr := (*C.char)(nil)
	if len(target) > 0 {
		cstr = C.CString(target)
		defer C.free(unsafe.Pointer(cstr))
	}
	return C.GoString(C.OSRGetAuthorityCode(sr.handle, cstr))
}

// AutoIdentifyEPSG sets EPSG authority info if possible.
func (sr *SpatialRef) AutoIdentifyEPSG() error {
	return ogrError(int(C.OSRAutoIdentifyEPSG(sr.handle)))
}

// Transform transforms coordinates from one SpatialRef to another
type Transform struct {
	handle C.OGRCoordinateTransformationH
}

// NewTransform creates a transformation object from src to dst
func NewTransform(src, dst *SpatialRef, opts ...SpatialRefOption) (*Transform, error) {
	so := spatialRefOpts{}
	for _, o := range opts {
		o.setSpatialRefOpt(&so)
	}
	cgc := createCGOContext(nil, so.errorHandler)
	hndl := C.geobindNewCoordinateTransformation(cgc.cPointer(), src.handle, dst.handle)
	if err := cgc.close(); err != nil {
		return nil, err
	}
	return &Transform{handle: hndl}, nil
}

// Close releases the Transform object
func (trn *Transform) Close() {
	if trn.handle == nil {
		return
	}
	C.OCTDestroyCoordinateTransformation(trn.handle)
	trn.handle = nil
}

// TransformEx reprojects points in place
//
// x and y may not be nil and must be of the same length
//
// z may be nil, or of the same length as x and y
//
// successful may be nil or of the same length as x and y. If non nil, it will contain
// true or false depending on wether the corresponding point succeeded transformation or not.
func (trn *Transform) TransformEx(x []float64, y []float64, z []float64, successful []bool, opts ...SpatialRefOption) error {
	if len(x) != len(y) || (z != nil && len(z) != len(x)) || (successful != nil && len(successful) != len(x)) {
		return fmt.Errorf("coordinate slices must have the same length: %w", ErrIllegalArg)
	}
	if len(x) == 0 {
		return nil
	}
	so := spatialRefOpts{}
	for _, o := range opts {
		o.setSpatialRefOpt(&so)
	}
	cx, cy := cDoubleArray(x), cDoubleArray(y)
	defer C.free(unsafe.Pointer(cx))
	defer C.free(unsafe.Pointer(cy))
	var cz *C.double
	if z != nil {
		cz = cDoubleArray(z)
		defer C.free(unsafe.Pointer(cz))
	}
	cs := cIntArray(make([]int, len(x)))
	defer C.free(unsafe.Pointer(cs))

	cgc := createCGOContext(nil, so.errorHandler)
	C.geobindTransformPoints(cgc.cPointer(), trn.handle, C.int(len(x)), cx, cy, cz, cs)
	err := cgc.close()

	n := C.int(len(x))
	copy(x, cDoubleArrayToSlice(cx, n))
	copy(y, cDoubleArrayToSlice(cy, n))
	if z != nil {
		copy(z, cDoubleArrayToSlice(cz, n))
	}
	if successful != nil {
		for i, s := range cIntArrayToSlice(cs, n) {
			successful[i] = s != 0
		}
	}
	if err != nil {
		return fmt.Errorf("some or all points failed to transform: %w", err)
	}
	return nil
}
