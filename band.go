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
)

// Band is a wrapper around a GDALRasterBandH. Bands are owned by their dataset
// and must not be used once it has been closed.
type Band struct {
	majorObject
}

// handle() returns a pointer to the underlying GDALRasterBandH
func (band Band) handle() C.GDALRasterBandH {
	return C.GDALRasterBandH(band.majorObject.cHandle)
}

// Access is the access mode of a band
type Access int

const (
	// AccessReadOnly is read-only access
	AccessReadOnly = Access(C.GA_ReadOnly)
	// AccessUpdate is read/write access
	AccessUpdate = Access(C.GA_Update)
)

// Mask flags as returned by Band.MaskFlags(). See https://gdal.org/development/rfc/rfc15_nodatabitmask.html
const (
	// MaskAllValid: all pixels are valid, the mask is a band of 255 values
	MaskAllValid = int(C.GMF_ALL_VALID)
	// MaskPerDataset: the mask is shared between all bands of the dataset
	MaskPerDataset = int(C.GMF_PER_DATASET)
	// MaskAlpha: the mask is an alpha band
	MaskAlpha = int(C.GMF_ALPHA)
	// MaskNoData: the mask is derived from the band's nodata value
	MaskNoData = int(C.GMF_NODATA)
)

// FlushCache flushes the band's cached blocks to disk
func (band Band) FlushCache(opts ...BandOption) error {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindFlushRasterCache(cgc.cPointer(), band.handle())
	return cgc.close()
}

// Structure returns the dataset's Structure
func (band Band) Structure() BandStructure {
	var bx, by C.int
	C.GDALGetBlockSize(band.handle(), &bx, &by)
	return BandStructure{
		SizeX:      int(C.GDALGetRasterBandXSize(band.handle())),
		SizeY:      int(C.GDALGetRasterBandYSize(band.handle())),
		BlockSizeX: int(bx),
		BlockSizeY: int(by),
		DataType:   DataType(C.GDALGetRasterDataType(band.handle())),
	}
}

// XSize returns the band's width in pixels
func (band Band) XSize() int {
	return int(C.GDALGetRasterBandXSize(band.handle()))
}

// YSize returns the band's height in pixels
func (band Band) YSize() int {
	return int(C.GDALGetRasterBandYSize(band.handle()))
}

// BlockSize returns the band's natural block size
func (band Band) BlockSize() (int, int) {
	var bx, by C.int
	C.GDALGetBlockSize(band.handle(), &bx, &by)
	return int(bx), int(by)
}

// DataType returns the band's pixel type
func (band Band) DataType() DataType {
	return DataType(C.GDALGetRasterDataType(band.handle()))
}

// Access returns the band's access mode
func (band Band) Access() Access {
	return Access(C.GDALGetRasterAccess(band.handle()))
}

// Number returns the 1-based index of the band in its dataset, or 0 for bands
// that are not part of a dataset (e.g. overviews and masks)
func (band Band) Number() int {
	return int(C.GDALGetBandNumber(band.handle()))
}

// Dataset returns the band's dataset, or nil. The returned Dataset must not be closed.
func (band Band) Dataset() *Dataset {
	hndl := C.GDALGetBandDataset(band.handle())
	if hndl == nil {
		return nil
	}
	return &Dataset{majorObject{C.GDALMajorObjectH(hndl)}}
}

// ColorInterp returns the band's color interpretation (defaults to Gray)
func (band Band) ColorInterp() ColorInterp {
	return ColorInterp(C.GDALGetRasterColorInterpretation(band.handle()))
}

// SetColorInterp sets the band's color interpretation
func (band Band) SetColorInterp(colorInterp ColorInterp, opts ...BandOption) error {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindSetColorInterp(cgc.cPointer(), band.handle(), C.GDALColorInterp(colorInterp))
	return cgc.close()
}

// CategoryNames returns the names of the band's raster classes, or nil
func (band Band) CategoryNames() []string {
	return cStringArrayToSlice(C.GDALGetRasterCategoryNames(band.handle()))
}

// SetCategoryNames sets the names of the band's raster classes. A nil names
// clears them.
func (band Band) SetCategoryNames(names []string, opts ...BandOption) error {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	cnames := sliceToCStringArray(names)
	defer cnames.free()
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindSetCategoryNames(cgc.cPointer(), band.handle(), cnames.cPointer())
	return cgc.close()
}

// NoData returns the band's nodata value. if ok is false, the band does not
// have a nodata value set
func (band Band) NoData() (nodata float64, ok bool) {
	cok := C.int(0)
	cn := C.GDALGetRasterNoDataValue(band.handle(), &cok)
	if cok != 0 {
		return float64(cn), true
	}
	return 0, false
}

// SetNoData sets the band's nodata value
func (band Band) SetNoData(nd float64, opts ...BandOption) error {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindSetNoData(cgc.cPointer(), band.handle(), C.double(nd))
	return cgc.close()
}

// ClearNoData clears the band's nodata value
func (band Band) ClearNoData(opts ...BandOption) error {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindDeleteNoData(cgc.cPointer(), band.handle())
	return cgc.close()
}

// Scale returns the band's scale and whether it was explicitly set
func (band Band) Scale() (float64, bool) {
	cok := C.int(0)
	s := C.GDALGetRasterScale(band.handle(), &cok)
	return float64(s), cok != 0
}

// SetScale sets the band's scale
func (band Band) SetScale(scale float64, opts ...BandOption) error {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindSetScale(cgc.cPointer(), band.handle(), C.double(scale))
	return cgc.close()
}

// Offset returns the band's offset and whether it was explicitly set
func (band Band) Offset() (float64, bool) {
	cok := C.int(0)
	o := C.GDALGetRasterOffset(band.handle(), &cok)
	return float64(o), cok != 0
}

// SetOffset sets the band's offset
func (band Band) SetOffset(offset float64, opts ...BandOption) error {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindSetOffset(cgc.cPointer(), band.handle(), C.double(offset))
	return cgc.close()
}

// UnitType returns the band's unit (e.g. "m"), or an empty string
func (band Band) UnitType() string {
	return C.GoString(C.GDALGetRasterUnitType(band.handle()))
}

// SetUnitType sets the band's unit
func (band Band) SetUnitType(unit string, opts ...BandOption) error {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	cunit := C.CString(unit)
	defer C.free(unsafe.Pointer(cunit))
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindSetUnitType(cgc.cPointer(), band.handle(), cunit)
	return cgc.close()
}

// OverviewCount returns the number of overviews of the band
func (band Band) OverviewCount() int {
	return int(C.GDALGetOverviewCount(band.handle()))
}

// HasArbitraryOverviews returns true if the band can be efficiently read at
// any resolution
func (band Band) HasArbitraryOverviews() bool {
	return C.GDALHasArbitraryOverviews(band.handle()) != 0
}

// Overview returns the i'th overview of the band, or false if i is out of range
func (band Band) Overview(i int) (Band, bool) {
	if i < 0 || i >= band.OverviewCount() {
		return Band{}, false
	}
	hndl := C.GDALGetOverview(band.handle(), C.int(i))
	if hndl == nil {
		return Band{}, false
	}
	return Band{majorObject{C.GDALMajorObjectH(hndl)}}, true
}

// Overviews returns all overviews of band
func (band Band) Overviews() []Band {
	n := band.OverviewCount()
	ret := make([]Band, 0, n)
	for i := 0; i < n; i++ {
		if ovr, ok := band.Overview(i); ok {
			ret = append(ret, ovr)
		}
	}
	return ret
}

// SampleOverview returns the lowest resolution overview that still has at least
// desiredSamples pixels, or the band itself
func (band Band) SampleOverview(desiredSamples int) Band {
	hndl := C.GDALGetRasterSampleOverviewEx(band.handle(), C.GUIntBig(desiredSamples))
	if hndl == nil {
		return band
	}
	return Band{majorObject{C.GDALMajorObjectH(hndl)}}
}

// MaskFlags returns the mask flags associated with this band.
// See https://gdal.org/development/rfc/rfc15_nodatabitmask.html for how this flag
// should be interpreted
func (band Band) MaskFlags() int {
	return int(C.GDALGetMaskFlags(band.handle()))
}

// MaskBand returns the mask (nodata) band for this band. May be generated from nodata values.
func (band Band) MaskBand() Band {
	hndl := C.GDALGetMaskBand(band.handle())
	return Band{majorObject{C.GDALMajorObjectH(hndl)}}
}

// CreateMask creates a mask (nodata) band for this band.
//
// Any handle returned by a previous call to MaskBand() should not be used after a call to CreateMask
// See https://gdal.org/development/rfc/rfc15_nodatabitmask.html for how flag should be used
func (band Band) CreateMask(flags int, opts ...BandCreateMaskOption) (Band, error) {
	gopts := bandCreateMaskOpts{}
	for _, opt := range opts {
		opt.setBandCreateMaskOpt(&gopts)
	}
	cgc := createCGOContext(gopts.config, gopts.errorHandler)
	C.geobindCreateMaskBand(cgc.cPointer(), band.handle(), C.int(flags))
	if err := cgc.close(); err != nil {
		return Band{}, err
	}
	return band.MaskBand(), nil
}

// Fill sets the whole band to the given value. imag is only used by complex bands.
func (band Band) Fill(real, imag float64, opts ...BandOption) error {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindFill(cgc.cPointer(), band.handle(), C.double(real), C.double(imag))
	return cgc.close()
}

// CopyWholeRaster copies all the pixels of band into dst, which must have the same size
func (band Band) CopyWholeRaster(dst Band, opts ...CopyRasterOption) error {
	co := copyRasterOpts{}
	for _, o := range opts {
		o.setCopyRasterOpt(&co)
	}
	sx, sy := band.XSize(), band.YSize()
	if dx, dy := dst.XSize(), dst.YSize(); sx != dx || sy != dy {
		return fmt.Errorf("size mismatch %dx%d != %dx%d: %w", sx, sy, dx, dy, ErrIllegalArg)
	}
	copts := sliceToCStringArray(co.options)
	defer copts.free()
	cgc := createCGOContext(co.config, co.errorHandler)
	C.geobindCopyWholeRaster(cgc.cPointer(), band.handle(), dst.handle(), copts.cPointer())
	return cgc.close()
}

// Read populates the supplied buffer with the pixels contained in the supplied window
func (band Band) Read(srcX, srcY int, buffer interface{}, bufWidth, bufHeight int, opts ...BandIOOption) error {
	return band.IO(IORead, srcX, srcY, buffer, bufWidth, bufHeight, opts...)
}

// Write sets the dataset's pixels contained in the supplied window to the content of the supplied buffer
func (band Band) Write(srcX, srcY int, buffer interface{}, bufWidth, bufHeight int, opts ...BandIOOption) error {
	return band.IO(IOWrite, srcX, srcY, buffer, bufWidth, bufHeight, opts...)
}

// IO reads or writes the pixels contained in the supplied window. The pixel type is
// deduced from the buffer, which must be a []byte, []int16, []float32, etc... slice,
// large enough to hold bufWidth*bufHeight pixels with the requested spacings.
func (band Band) IO(rw IOOperation, srcX, srcY int, buffer interface{}, bufWidth, bufHeight int, opts ...BandIOOption) error {
	ro := bandIOOpts{}
	for _, opt := range opts {
		opt.setBandIOOpt(&ro)
	}
	if bufWidth <= 0 || bufHeight <= 0 {
		return fmt.Errorf("invalid buffer size %dx%d: %w", bufWidth, bufHeight, ErrIllegalArg)
	}
	if ro.dsHeight == 0 {
		ro.dsHeight = bufHeight
	}
	if ro.dsWidth == 0 {
		ro.dsWidth = bufWidth
	}
	dtype := bufferType(buffer)
	if dtype == Unknown {
		return fmt.Errorf("unsupported buffer type %T: %w", buffer, ErrIllegalArg)
	}
	dsize := dtype.Size()

	pixelSpacing := dsize
	if ro.pixelSpacing > 0 {
		pixelSpacing = ro.pixelSpacing
	}
	lineSpacing := bufWidth * pixelSpacing
	if ro.lineSpacing > 0 {
		lineSpacing = ro.lineSpacing
	}

	minsize := (lineSpacing*(bufHeight-1) + (bufWidth-1)*pixelSpacing + dsize) / dsize
	if _, err := checkBuffer(buffer, minsize); err != nil {
		return err
	}
	cBuf := cBuffer(buffer, minsize)
	cgc := createCGOContext(ro.config, ro.errorHandler)
	C.geobindBandIO(cgc.cPointer(), band.handle(), C.GDALRWFlag(rw),
		C.int(srcX), C.int(srcY), C.int(ro.dsWidth), C.int(ro.dsHeight),
		cBuf,
		C.int(bufWidth), C.int(bufHeight), C.GDALDataType(dtype),
		C.int(pixelSpacing), C.int(lineSpacing))
	return cgc.close()
}

func (band Band) checkBlockBuffer(blockX, blockY int, buffer interface{}) error {
	st := band.Structure()
	if w, _ := st.ActualBlockSize(blockX, blockY); w == 0 {
		return fmt.Errorf("block %d,%d out of range: %w", blockX, blockY, ErrIllegalArg)
	}
	dtype, err := checkBuffer(buffer, st.BlockLen())
	if err != nil {
		return err
	}
	if dtype != st.DataType {
		return fmt.Errorf("buffer type %s does not match band type %s: %w", dtype, st.DataType, ErrIllegalArg)
	}
	return nil
}

// ReadBlock reads the natural block at blockX,blockY into buffer, which must be of
// the band's data type and hold at least BlockSizeX*BlockSizeY pixels.
func (band Band) ReadBlock(blockX, blockY int, buffer interface{}, opts ...BandOption) error {
	if err := band.checkBlockBuffer(blockX, blockY, buffer); err != nil {
		return err
	}
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindReadBlock(cgc.cPointer(), band.handle(), C.int(blockX), C.int(blockY), cBuffer(buffer, 1))
	return cgc.close()
}

// WriteBlock writes buffer to the natural block at blockX,blockY. buffer must be of
// the band's data type and hold at least BlockSizeX*BlockSizeY pixels.
func (band Band) WriteBlock(blockX, blockY int, buffer interface{}, opts ...BandOption) error {
	if err := band.checkBlockBuffer(blockX, blockY, buffer); err != nil {
		return err
	}
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindWriteBlock(cgc.cPointer(), band.handle(), C.int(blockX), C.int(blockY), cBuffer(buffer, 1))
	return cgc.close()
}

// ComputeMinMax scans the band (or an overview if approx is true) and returns its
// minimum and maximum values
func (band Band) ComputeMinMax(approx bool, opts ...BandOption) ([2]float64, error) {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	var minmax [2]C.double
	capprox := C.int(0)
	if approx {
		capprox = 1
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindComputeMinMax(cgc.cPointer(), band.handle(), capprox, &minmax[0])
	if err := cgc.close(); err != nil {
		return [2]float64{}, err
	}
	return [2]float64{float64(minmax[0]), float64(minmax[1])}, nil
}

// Minimum returns the band's minimum value. tight is false if the value is only a
// bound derived from the data type.
func (band Band) Minimum() (value float64, tight bool) {
	cok := C.int(0)
	v := C.GDALGetRasterMinimum(band.handle(), &cok)
	return float64(v), cok != 0
}

// Maximum returns the band's maximum value. tight is false if the value is only a
// bound derived from the data type.
func (band Band) Maximum() (value float64, tight bool) {
	cok := C.int(0)
	v := C.GDALGetRasterMaximum(band.handle(), &cok)
	return float64(v), cok != 0
}
