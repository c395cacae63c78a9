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
import "unsafe"

// the returned arrays are allocated in C memory and must be released with C.free

func cIntArray(in []int) *C.int {
	if len(in) == 0 {
		return nil
	}
	ret := (*C.int)(C.malloc(C.size_t(len(in)) * C.size_t(unsafe.Sizeof(C.int(0)))))
	arr := unsafe.Slice(ret, len(in))
	for i := range in {
		arr[i] = C.int(in[i])
	}
	return ret
}

func cInt64Array(in []int64) *C.GIntBig {
	if len(in) == 0 {
		return nil
	}
	ret := (*C.GIntBig)(C.malloc(C.size_t(len(in)) * C.size_t(unsafe.Sizeof(C.GIntBig(0)))))
	arr := unsafe.Slice(ret, len(in))
	for i := range in {
		arr[i] = C.GIntBig(in[i])
	}
	return ret
}

func cDoubleArray(in []float64) *C.double {
	if len(in) == 0 {
		return nil
	}
	ret := (*C.double)(C.malloc(C.size_t(len(in)) * C.size_t(unsafe.Sizeof(C.double(0)))))
	arr := unsafe.Slice(ret, len(in))
	for i := range in {
		arr[i] = C.double(in[i])
	}
	return ret
}

func cIntArrayToSlice(in *C.int, length C.int) []int {
	if in == nil || length <= 0 {
		return nil
	}
	src := unsafe.Slice(in, int(length))
	ret := make([]int, len(src))
	for i := range src {
		ret[i] = int(src[i])
	}
	return ret
}

func cInt64ArrayToSlice(in *C.GIntBig, length C.int) []int64 {
	if in == nil || length <= 0 {
		return nil
	}
	src := unsafe.Slice(in, int(length))
	ret := make([]int64, len(src))
	for i := range src {
		ret[i] = int64(src[i])
	}
	return ret
}

func cDoubleArrayToSlice(in *C.double, length C.int) []float64 {
	if in == nil || length <= 0 {
		return nil
	}
	src := unsafe.Slice(in, int(length))
	ret := make([]float64, len(src))
	for i := range src {
		ret[i] = float64(src[i])
	}
	return ret
}

// cStringArray is a NULL terminated array of C strings, itself allocated in C memory
type cStringArray struct {
	arr  **C.char
	size int
}

func (ca cStringArray) free() {
	if ca.arr == nil {
		return
	}
	for _, str := range unsafe.Slice(ca.arr, ca.size) {
		C.free(unsafe.Pointer(str))
	}
	C.free(unsafe.Pointer(ca.arr))
}

func (ca cStringArray) cPointer() **C.char {
	return ca.arr
}

func sliceToCStringArray(in []string) cStringArray {
	if len(in) == 0 {
		return cStringArray{}
	}
	ptrSize := C.size_t(unsafe.Sizeof((*C.char)(nil)))
	arr := (**C.char)(C.malloc(C.size_t(len(in)+1) * ptrSize))
	strs := unsafe.Slice(arr, len(in)+1)
	for i := range in {
		strs[i] = C.CString(in[i])
	}
	strs[len(in)] = nil
	return cStringArray{arr: arr, size: len(in)}
}

func cStringArrayToSlice(in **C.char) []string {
	if in == nil {
		return nil
	}
	ret := []string{}
	for i := 0; ; i++ {
		str := *(**C.char)(unsafe.Add(unsafe.Pointer(in), uintptr(i)*unsafe.Sizeof(*in)))
		if str == nil {
			return ret
		}
		ret = append(ret, C.GoString(str))
	}
}
