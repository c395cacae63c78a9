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
	"strings"
	"unsafe"
)

// majorObject is embedded by the handles that support gdal metadata
// (datasets, bands and drivers)
type majorObject struct {
	cHandle C.GDALMajorObjectH
}

// Metadata returns the metadata item named key, or an empty string
func (mo majorObject) Metadata(key string, opts ...MetadataOption) string {
	mopts := metadataOpts{}
	for _, opt := range opts {
		opt.setMetadataOpt(&mopts)
	}
	ckey := C.CString(key)
	cdom := C.CString(mopts.domain)
	defer C.free(unsafe.Pointer(ckey))
	defer C.free(unsafe.Pointer(cdom))
	str := C.GDALGetMetadataItem(mo.cHandle, ckey, cdom)
	return C.GoString(str)
}

// Metadatas returns all the metadata items of a domain
func (mo majorObject) Metadatas(opts ...MetadataOption) map[string]string {
	mopts := metadataOpts{}
	for _, opt := range opts {
		opt.setMetadataOpt(&mopts)
	}
	cdom := C.CString(mopts.domain)
	defer C.free(unsafe.Pointer(cdom))
	strs := C.GDALGetMetadata(mo.cHandle, cdom)
	return parseKeyValues(cStringArrayToSlice(strs))
}

func parseKeyValues(strslice []string) map[string]string {
	if len(strslice) == 0 {
		return nil
	}
	ret := make(map[string]string)
	for _, str := range strslice {
		idx := strings.Index(str, "=")
		if idx == -1 {
			ret[str] = ""
		} else {
			ret[str[0:idx]] = str[idx+1:]
		}
	}
	return ret
}

// SetMetadata sets a metadata item
func (mo majorObject) SetMetadata(key, value string, opts ...MetadataOption) error {
	mopts := metadataOpts{}
	for _, opt := range opts {
		opt.setMetadataOpt(&mopts)
	}
	ckey := C.CString(key)
	cval := C.CString(value)
	cdom := C.CString(mopts.domain)
	defer C.free(unsafe.Pointer(ckey))
	defer C.free(unsafe.Pointer(cdom))
	defer C.free(unsafe.Pointer(cval))
	cgc := createCGOContext(nil, mopts.errorHandler)
	C.geobindSetMetadataItem(cgc.cPointer(), mo.cHandle, ckey, cval, cdom)
	return cgc.close()
}

// ClearMetadata removes all the metadata items of a domain
func (mo majorObject) ClearMetadata(opts ...MetadataOption) error {
	mopts := metadataOpts{}
	for _, opt := range opts {
		opt.setMetadataOpt(&mopts)
	}
	cdom := C.CString(mopts.domain)
	defer C.free(unsafe.Pointer(cdom))
	cgc := createCGOContext(nil, mopts.errorHandler)
	C.geobindClearMetadata(cgc.cPointer(), mo.cHandle, cdom)
	return cgc.close()
}

// MetadataDomains returns the list of metadata domains. The default domain
// is returned as an empty string.
func (mo majorObject) MetadataDomains() []string {
	strs := C.GDALGetMetadataDomainList(mo.cHandle)
	defer C.CSLDestroy(strs)
	return cStringArrayToSlice(strs)
}

// AllMetadata returns the metadata items of every domain, keyed by domain name
func (mo majorObject) AllMetadata() map[string]map[string]string {
	ret := make(map[string]map[string]string)
	for _, dom := range mo.MetadataDomains() {
		if md := mo.Metadatas(Domain(dom)); md != nil {
			ret[dom] = md
		}
	}
	return ret
}

// Description returns the description/name
func (mo majorObject) Description() string {
	return C.GoString(C.GDALGetDescription(mo.cHandle))
}

// SetDescription sets the description
func (mo majorObject) SetDescription(description string) {
	cname := C.CString(description)
	defer C.free(unsafe.Pointer(cname))
	C.GDALSetDescription(mo.cHandle, cname)
}
