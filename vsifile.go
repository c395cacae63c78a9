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
	"unsafe"
)

type vsiOpts struct {
	errorHandler ErrorHandler
}

// VSIOption is an option that can be passed to VSIOpen and VSIUnlink
//
// Available VSIOptions are:
//
// • ErrLogger
type VSIOption interface {
	setVSIOpt(o *vsiOpts)
}

func vsiErrorHandler(opts []VSIOption) ErrorHandler {
	vo := vsiOpts{}
	for _, o := range opts {
		o.setVSIOpt(&vo)
	}
	return vo.errorHandler
}

// VSIFile is a read-only handle on a file reachable through gdal's virtual
// file systems, e.g. a /vsimem/ dataset created with TempMemName
type VSIFile struct {
	handle *C.VSILFILE
}

var _ io.ReadCloser = &VSIFile{}

// VSIOpen opens path for reading
func VSIOpen(path string, opts ...VSIOption) (*VSIFile, error) {
	cname := C.CString(path)
	defer C.free(unsafe.Pointer(cname))
	cgc := createCGOContext(nil, vsiErrorHandler(opts))
	hndl := C.geobindVSIOpen(cgc.cPointer(), cname)
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.VSIFCloseL(hndl)
		}
		return nil, err
	}
	return &VSIFile{handle: hndl}, nil
}

// Read implements io.Reader
func (vf *VSIFile) Read(buf []byte) (int, error) {
	if vf.handle == nil {
		return 0, fmt.Errorf("read on closed file: %w", ErrInvalidHandle)
	}
	if len(buf) == 0 {
		return 0, nil
	}
	cgc := createCGOContext(nil, nil)
	n := int(C.geobindVSIRead(cgc.cPointer(), vf.handle, unsafe.Pointer(&buf[0]), C.size_t(len(buf))))
	if err := cgc.close(); err != nil {
		return n, err
	}
	if n < len(buf) {
		return n, io.EOF
	}
	return n, nil
}

// Close releases the file. Closing an already closed file returns an error.
func (vf *VSIFile) Close() error {
	if vf.handle == nil {
		return fmt.Errorf("already closed: %w", ErrInvalidHandle)
	}
	cgc := createCGOContext(nil, nil)
	C.geobindVSIClose(cgc.cPointer(), vf.handle)
	vf.handle = nil
	return cgc.close()
}

// VSIUnlink deletes path
func VSIUnlink(path string, opts ...VSIOption) error {
	cname := C.CString(path)
	defer C.free(unsafe.Pointer(cname))
	cgc := createCGOContext(nil, vsiErrorHandler(opts))
	C.geobindVSIUnlink(cgc.cPointer(), cname)
	return cgc.close()
}
