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

// Package geobind binds the GDAL/OGR/OSR native library. Raster bands, color tables,
// geometries, features and their definitions are thin wrappers around native handles.
//
// Native memory is never garbage collected: objects created by a New... function
// (or returned as "owned") must be released with Close(). Objects obtained from
// another object (e.g. Feature.Geometry(), Band.ColorTable()) are borrowed and are
// only valid as long as their parent is.
package geobind

/*
#include "geobind.h"
#include <stdlib.h>

#cgo pkg-config: gdal
#cgo linux LDFLAGS: -ldl
*/
import "C"
import (
	"fmt"
	"strconv"
	"unsafe"
)

// LibVersion is the GDAL lib versioning scheme
type LibVersion int

// Major returns the GDAL major version (e.g. "3" in 3.2.1)
func (lv LibVersion) Major() int {
	return int(lv) / 1000000
}

// Minor return the GDAL minor version (e.g. "2" in 3.2.1)
func (lv LibVersion) Minor() int {
	return (int(lv) - lv.Major()*1000000) / 10000
}

// Revision returns the GDAL revision number (e.g. "1" in 3.2.1)
func (lv LibVersion) Revision() int {
	return (int(lv) - lv.Major()*1000000 - lv.Minor()*10000) / 100
}

func (lv LibVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", lv.Major(), lv.Minor(), lv.Revision())
}

// AssertMinVersion will panic if the runtime version is not at least major.minor.revision
func AssertMinVersion(major, minor, revision int) {
	if !CheckMinVersion(major, minor, revision) {
		panic(fmt.Errorf("runtime version %s < %d.%d.%d", Version(), major, minor, revision))
	}
}

// CheckMinVersion will return true if the runtime version is at least major.minor.revision
func CheckMinVersion(major, minor, revision int) bool {
	runtimeVersion := Version()
	if runtimeVersion.Major() < major ||
		(runtimeVersion.Major() == major && runtimeVersion.Minor() < minor) ||
		(runtimeVersion.Major() == major && runtimeVersion.Minor() == minor && runtimeVersion.Revision() < revision) {
		return false
	}
	return true
}

// Version returns the runtime version of the gdal library
func Version() LibVersion {
	cstr := C.CString("VERSION_NUM")
	defer C.free(unsafe.Pointer(cstr))
	version := C.GoString(C.GDALVersionInfo(cstr))
	iversion, _ := strconv.Atoi(version)
	return LibVersion(iversion)
}

func init() {
	compiledVersion := LibVersion(C.GDAL_VERSION_NUM)
	AssertMinVersion(compiledVersion.Major(), compiledVersion.Minor(), 0)
	C.geobindInstallGlobalHandler()
}

// IOOperation determines wether Band.IO will read pixels into the
// provided buffer, or write pixels from the provided buffer
type IOOperation C.GDALRWFlag

const (
	//IORead makes IO copy pixels from the band into the provided buffer
	IORead IOOperation = C.GF_Read
	//IOWrite makes IO copy pixels from the provided buffer into the band
	IOWrite IOOperation = C.GF_Write
)

// bufferType returns the DataType matching the element type of a slice, or
// Unknown if the slice type is not supported
func bufferType(buffer interface{}) DataType {
	switch buffer.(type) {
	case []byte:
		return Byte
	case []int8:
		return Int8
	case []int16:
		return Int16
	case []uint16:
		return UInt16
	case []int32:
		return Int32
	case []uint32:
		return UInt32
	case []float32:
		return Float32
	case []float64:
		return Float64
	case []complex64:
		return CFloat32
	case []complex128:
		return CFloat64
	default:
		return Unknown
	}
}

// checkBuffer returns the buffer's DataType after checking it holds at least
// minsize elements
func checkBuffer(buffer interface{}, minsize int) (DataType, error) {
	dtype := bufferType(buffer)
	if dtype == Unknown {
		return Unknown, fmt.Errorf("unsupported buffer type %T: %w", buffer, ErrIllegalArg)
	}
	if l := bufferLen(buffer); l < minsize || l == 0 {
		return dtype, fmt.Errorf("buffer len=%d less than min=%d: %w", l, minsize, ErrIllegalArg)
	}
	return dtype, nil
}

func bufferLen(buffer interface{}) int {
	switch buf := buffer.(type) {
	case []byte:
		return len(buf)
	case []int8:
		return len(buf)
	case []int16:
		return len(buf)
	case []uint16:
		return len(buf)
	case []int32:
		return len(buf)
	case []uint32:
		return len(buf)
	case []float32:
		return len(buf)
	case []float64:
		return len(buf)
	case []complex64:
		return len(buf)
	case []complex128:
		return len(buf)
	default:
		return 0
	}
}

// cBuffer returns a pointer to the underlying memory array of buffer. It panics
// if the buffer is smaller than minsize, callers are expected to have used
// checkBuffer beforehand.
func cBuffer(buffer interface{}, minsize int) unsafe.Pointer {
	if l := bufferLen(buffer); l < minsize || l == 0 {
		panic(fmt.Sprintf("buffer len=%d less than min=%d", l, minsize))
	}
	switch buf := buffer.(type) {
	case []byte:
		return unsafe.Pointer(&buf[0])
	case []int8:
		return unsafe.Pointer(&buf[0])
	case []int16:
		return unsafe.Pointer(&buf[0])
	case []uint16:
		return unsafe.Pointer(&buf[0])
	case []int32:
		return unsafe.Pointer(&buf[0])
	case []uint32:
		return unsafe.Pointer(&buf[0])
	case []float32:
		return unsafe.Pointer(&buf[0])
	case []float64:
		return unsafe.Pointer(&buf[0])
	case []complex64:
		return unsafe.Pointer(&buf[0])
	default:
		buf := buffer.([]complex128)
		return unsafe.Pointer(&buf[0])
	}
}
