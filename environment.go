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
	"os"
	"unsafe"
)

// CacheMax returns the maximum amount of memory, in bytes, gdal may use to cache raster blocks
func CacheMax() int64 {
	return int64(C.GDALGetCacheMax64())
}

// SetCacheMax sets the maximum amount of memory, in bytes, gdal may use to cache raster blocks
func SetCacheMax(bytes int64) {
	C.GDALSetCacheMax64(C.GIntBig(bytes))
}

// CacheUsed returns the amount of memory currently used by the raster block cache
func CacheUsed() int64 {
	return int64(C.GDALGetCacheUsed64())
}

// FlushCacheBlock evicts the least recently used block from the raster block cache.
// It returns false if the cache was empty.
func FlushCacheBlock() bool {
	return C.GDALFlushCacheBlock() != 0
}

// SetConfigOption sets a process wide gdal configuration option. An empty
// value unsets the option.
func SetConfigOption(key, value string) {
	ckey := C.CString(key)
	defer C.free(unsafe.Pointer(ckey))
	if value == "" {
		C.CPLSetConfigOption(ckey, nil)
		return
	}
	cval := C.CString(value)
	defer C.free(unsafe.Pointer(cval))
	C.CPLSetConfigOption(ckey, cval)
}

// GetConfigOption returns the value of a gdal configuration option, or an
// empty string if it is not set.
func GetConfigOption(key string) string {
	ckey := C.CString(key)
	defer C.free(unsafe.Pointer(ckey))
	return C.GoString(C.CPLGetConfigOption(ckey, nil))
}

// DumpOpenDatasets writes the list of datasets currently opened by gdal to w, and
// returns the number of datasets.
func DumpOpenDatasets(w io.Writer) (int, error) {
	tmp, err := os.CreateTemp("", "geobind-datasets-*.txt")
	if err != nil {
		return 0, err
	}
	name := tmp.Name()
	defer os.Remove(name)
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	n := int(C.geobindDumpOpenDatasets(cname))
	if n < 0 {
		return 0, fmt.Errorf("open %s: %w", name, ErrFileIO)
	}
	f, err := os.Open(name)
	if err != nil {
		return n, err
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return n, err
	}
	return n, nil
}
