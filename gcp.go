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
	"errors"
	"fmt"
	"unsafe"
)

// GCP is a ground control point, mapping a pixel/line position to a
// georeferenced X/Y/Z position
type GCP struct {
	ID     string
	Info   string
	PixelX float64
	LineY  float64
	X      float64
	Y      float64
	Z      float64
}

// cGCPs holds the C memory used to pass a list of GCPs to the shim
type cGCPs struct {
	ids, infos                cStringArray
	pixels, lines, xs, ys, zs *C.double
}

func newCGCPs(gcps []GCP) cGCPs {
	var (
		ids    = make([]string, len(gcps))
		infos  = make([]string, len(gcps))
		pixels = make([]float64, len(gcps))
		lines  = make([]float64, len(gcps))
		xs     = make([]float64, len(gcps))
		ys     = make([]float64, len(gcps))
		zs     = make([]float64, len(gcps))
	)
	for i, g := range gcps {
		ids[i] = g.ID
		infos[i] = g.Info
		pixels[i] = g.PixelX
		lines[i] = g.LineY
		xs[i] = g.X
		ys[i] = g.Y
		zs[i] = g.Z
	}
	return cGCPs{
		ids:    sliceToCStringArray(ids),
		infos:  sliceToCStringArray(infos),
		pixels: cDoubleArray(pixels),
		lines:  cDoubleArray(lines),
		xs:     cDoubleArray(xs),
		ys:     cDoubleArray(ys),
		zs:     cDoubleArray(zs),
	}
}

func (cg cGCPs) free() {
	cg.ids.free()
	cg.infos.free()
	for _, arr := range []*C.double{cg.pixels, cg.lines, cg.xs, cg.ys, cg.zs} {
		if arr != nil {
			C.free(unsafe.Pointer(arr))
		}
	}
}

// GCPsToGeoTransform computes the affine transformation best fitting the given GCPs.
// If approxOK is false, an error is returned when the fit is not exact.
func GCPsToGeoTransform(gcps []GCP, approxOK bool) ([6]float64, error) {
	ret := [6]float64{}
	if len(gcps) == 0 {
		return ret, fmt.Errorf("no gcps: %w", ErrIllegalArg)
	}
	cg := newCGCPs(gcps)
	defer cg.free()
	var gt [6]C.double
	capprox := C.int(0)
	if approxOK {
		capprox = 1
	}
	if C.geobindGCPsToGeoTransform(C.int(len(gcps)), cg.pixels, cg.lines, cg.xs, cg.ys, cg.zs, &gt[0], capprox) == 0 {
		return ret, errors.New("failed to compute geotransform from gcps")
	}
	for i := range ret {
		ret[i] = float64(gt[i])
	}
	return ret, nil
}

type gcpTransformerOpts struct {
	reversed     bool
	refine       bool
	tolerance    float64
	minGCPs      int
	errorHandler ErrorHandler
}

// GCPTransformerOption is an option that can be passed to NewGCPTransformer()
//
// Available GCPTransformerOptions are:
//
// • Reversed
//
// • Refine
//
// • ErrLogger
type GCPTransformerOption interface {
	setGCPTransformerOpt(o *gcpTransformerOpts)
}

type reversedOpt struct{}

func (reversedOpt) setGCPTransformerOpt(o *gcpTransformerOpts) {
	o.reversed = true
}

// Reversed swaps the roles of the source and destination coordinates of the GCPs
func Reversed() interface {
	GCPTransformerOption
} {
	return reversedOpt{}
}

type refineOpt struct {
	tolerance float64
	minGCPs   int
}

func (ro refineOpt) setGCPTransformerOpt(o *gcpTransformerOpts) {
	o.refine = true
	o.tolerance = ro.tolerance
	o.minGCPs = ro.minGCPs
}

// Refine iteratively removes the GCPs whose residual is above tolerance, as long
// as at least minGCPs remain.
func Refine(tolerance float64, minGCPs int) interface {
	GCPTransformerOption
} {
	return refineOpt{tolerance, minGCPs}
}

// GCPTransformer is a polynomial transformer fitted on a list of GCPs.
// It must be released with Close()
type GCPTransformer struct {
	handle unsafe.Pointer
}

// NewGCPTransformer fits a polynomial of the given order (1 to 3) on gcps
func NewGCPTransformer(gcps []GCP, order int, opts ...GCPTransformerOption) (*GCPTransformer, error) {
	if order < 1 || order > 3 {
		return nil, fmt.Errorf("polynomial order %d not in [1,3]: %w", order, ErrIllegalArg)
	}
	to := gcpTransformerOpts{}
	for _, o := range opts {
		o.setGCPTransformerOpt(&to)
	}
	cg := newCGCPs(gcps)
	defer cg.free()
	creversed, crefine := C.int(0), C.int(0)
	if to.reversed {
		creversed = 1
	}
	if to.refine {
		crefine = 1
	}
	cgc := createCGOContext(nil, to.errorHandler)
	hndl := C.geobindCreateGCPTransformer(cgc.cPointer(), C.int(len(gcps)), cg.ids.cPointer(), cg.infos.cPointer(),
		cg.pixels, cg.lines, cg.xs, cg.ys, cg.zs, C.int(order), creversed, crefine,
		C.double(to.tolerance), C.int(to.minGCPs))
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.GDALDestroyGCPTransformer(hndl)
		}
		return nil, err
	}
	return &GCPTransformer{handle: hndl}, nil
}

// Close releases the transformer
func (t *GCPTransformer) Close() {
	if t.handle == nil {
		return
	}
	C.GDALDestroyGCPTransformer(t.handle)
	t.handle = nil
}

// Transform transforms the points in place. By default pixel/line coordinates are
// transformed to georeferenced coordinates, dstToSrc performs the inverse
// transformation. z may be nil. The returned slice flags which points could be
// transformed.
func (t *GCPTransformer) Transform(dstToSrc bool, x, y, z []float64) ([]bool, error) {
	if len(x) != len(y) || (z != nil && len(z) != len(x)) {
		return nil, fmt.Errorf("coordinate slices must have the same length: %w", ErrIllegalArg)
	}
	if len(x) == 0 {
		return nil, nil
	}
	if z == nil {
		z = make([]float64, len(x))
	}
	cx, cy, cz := cDoubleArray(x), cDoubleArray(y), cDoubleArray(z)
	csuccess := cIntArray(make([]int, len(x)))
	defer C.free(unsafe.Pointer(cx))
	defer C.free(unsafe.Pointer(cy))
	defer C.free(unsafe.Pointer(cz))
	defer C.free(unsafe.Pointer(csuccess))
	cdir := C.int(0)
	if dstToSrc {
		cdir = 1
	}
	C.geobindGCPTransform(t.handle, cdir, C.int(len(x)), cx, cy, cz, csuccess)
	copy(x, cDoubleArrayToSlice(cx, C.int(len(x))))
	copy(y, cDoubleArrayToSlice(cy, C.int(len(y))))
	copy(z, cDoubleArrayToSlice(cz, C.int(len(z))))
	ok := make([]bool, len(x))
	for i, s := range cIntArrayToSlice(csuccess, C.int(len(x))) {
		ok[i] = s != 0
	}
	return ok, nil
}
