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
	"sort"
	"unsafe"
)

// StringSet is a set of strings stored in a gdal CPLHashSet. It must be
// released with Close()
type StringSet struct {
	handle *C.CPLHashSet
}

// NewStringSet creates an empty set, optionally populated with values
func NewStringSet(values ...string) *StringSet {
	set := &StringSet{handle: C.geobindNewStringSet()}
	for _, v := range values {
		set.Insert(v)
	}
	return set
}

// Close releases the set and the strings it holds
func (s *StringSet) Close() {
	if s.handle == nil {
		return
	}
	C.CPLHashSetDestroy(s.handle)
	s.handle = nil
}

// Insert adds val to the set. It returns false if val was already present.
func (s *StringSet) Insert(val string) bool {
	cval := C.CString(val)
	defer C.free(unsafe.Pointer(cval))
	return C.geobindStringSetInsert(s.handle, cval) != 0
}

// Contains returns true if val is in the set
func (s *StringSet) Contains(val string) bool {
	cval := C.CString(val)
	defer C.free(unsafe.Pointer(cval))
	return C.geobindStringSetContains(s.handle, cval) != 0
}

// Remove removes val from the set. It returns false if val was not present.
func (s *StringSet) Remove(val string) bool {
	cval := C.CString(val)
	defer C.free(unsafe.Pointer(cval))
	return C.geobindStringSetRemove(s.handle, cval) != 0
}

// Len returns the number of strings in the set
func (s *StringSet) Len() int {
	return int(C.CPLHashSetSize(s.handle))
}

// Values returns the content of the set, sorted
func (s *StringSet) Values() []string {
	cvals := C.geobindStringSetValues(s.handle)
	defer C.CSLDestroy(cvals)
	ret := cStringArrayToSlice(cvals)
	sort.Strings(ret)
	return ret
}
