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
	"path/filepath"
	"unsafe"

	"github.com/google/uuid"
)

// Dataset is a wrapper around a GDALDatasetH
type Dataset struct {
	majorObject
}

// handle returns a pointer to the underlying GDALDatasetH
func (ds *Dataset) handle() C.GDALDatasetH {
	return C.GDALDatasetH(ds.majorObject.cHandle)
}

// TempMemName returns a unique /vsimem/ filename ending with the given suffix (e.g. ".tif")
func TempMemName(suffix string) string {
	return "/vsimem/" + uuid.NewString() + suffix
}

// Create wraps GDALCreate and uses driver to create a new raster dataset with the given name
// (usually filename), size, type and bands.
func Create(driver DriverName, name string, nBands int, dtype DataType, width, height int, opts ...DatasetCreateOption) (*Dataset, error) {
	drvname, ok := driver.rasterName()
	if !ok {
		return nil, fmt.Errorf("%s does not support raster creation", driver)
	}
	gopts := dsCreateOpts{}
	for _, opt := range opts {
		opt.setDatasetCreateOpt(&gopts)
	}
	createOpts := sliceToCStringArray(gopts.creation)
	cdrv := C.CString(drvname)
	cname := C.CString(name)
	defer createOpts.free()
	defer C.free(unsafe.Pointer(cdrv))
	defer C.free(unsafe.Pointer(cname))

	cgc := createCGOContext(gopts.config, gopts.errorHandler)
	hndl := C.geobindCreate(cgc.cPointer(), cdrv, cname, C.int(nBands), C.GDALDataType(dtype),
		C.int(width), C.int(height), createOpts.cPointer())
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.GDALClose(hndl)
		}
		return nil, err
	}
	return &Dataset{majorObject{C.GDALMajorObjectH(hndl)}}, nil
}

// CreateVector wraps GDALCreate and uses driver to create a new vector dataset with the given name
// (usually filename) and options
func CreateVector(driver DriverName, name string, opts ...DatasetCreateOption) (*Dataset, error) {
	drvname, ok := driver.vectorName()
	if !ok {
		return nil, fmt.Errorf("%s does not support vector creation", driver)
	}
	gopts := dsCreateOpts{}
	for _, opt := range opts {
		opt.setDatasetCreateOpt(&gopts)
	}
	createOpts := sliceToCStringArray(gopts.creation)
	cdrv := C.CString(drvname)
	cname := C.CString(name)
	defer createOpts.free()
	defer C.free(unsafe.Pointer(cdrv))
	defer C.free(unsafe.Pointer(cname))

	cgc := createCGOContext(gopts.config, gopts.errorHandler)
	hndl := C.geobindCreateVector(cgc.cPointer(), cdrv, cname, createOpts.cPointer())
	if err := cgc.close(); err != nil {
		if hndl != nil {
			C.GDALClose(hndl)
		}
		return nil, err
	}
	return &Dataset{majorObject{C.GDALMajorObjectH(hndl)}}, nil
}

// Open calls GDALOpenEx() with the provided options. It returns nil and an error
// in case there was an error opening the provided dataset name.
//
// name may be a filename or any supported string supported by gdal (e.g. a /vsixxx path,
// the xml string representing a vrt dataset, etc...)
func Open(name string, options ...OpenOption) (*Dataset, error) {
	oopts := openOpts{
		flags:        C.GDAL_OF_READONLY | C.GDAL_OF_VERBOSE_ERROR,
		siblingFiles: []string{filepath.Base(name)},
	}
	for _, opt := range options {
		opt.setOpenOpt(&oopts)
	}
	csiblings := sliceToCStringArray(oopts.siblingFiles)
	coopts := sliceToCStringArray(oopts.options)
	cdrivers := sliceToCStringArray(oopts.drivers)
	defer csiblings.free()
	defer coopts.free()
	defer cdrivers.free()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	cgc := createCGOContext(oopts.config, oopts.errorHandler)
	retds := C.geobindOpen(cgc.cPointer(), cname, C.uint(oopts.flags),
		cdrivers.cPointer(), coopts.cPointer(), csiblings.cPointer())
	if err := cgc.close(); err != nil {
		if retds != nil {
			C.GDALClose(retds)
		}
		return nil, err
	}
	return &Dataset{majorObject{C.GDALMajorObjectH(retds)}}, nil
}

// Close releases the dataset
func (ds *Dataset) Close(opts ...DatasetOption) error {
	co := datasetOpts{}
	for _, o := range opts {
		o.setDatasetOpt(&co)
	}
	if ds.cHandle == nil {
		return errors.New("close called more than once")
	}
	cgc := createCGOContext(nil, co.errorHandler)
	C.geobindClose(cgc.cPointer(), ds.handle())
	ds.cHandle = nil
	return cgc.close()
}

// Driver returns dataset driver.
func (ds *Dataset) Driver() Driver {
	return Driver{majorObject{C.GDALMajorObjectH(C.GDALGetDatasetDriver(ds.handle()))}}
}

// Bands returns all dataset bands.
func (ds *Dataset) Bands() []Band {
	n := int(C.GDALGetRasterCount(ds.handle()))
	bands := make([]Band, 0, n)
	for i := 1; i <= n; i++ {
		hndl := C.GDALGetRasterBand(ds.handle(), C.int(i))
		bands = append(bands, Band{majorObject{C.GDALMajorObjectH(hndl)}})
	}
	return bands
}

// Structure returns the dataset's size and band count, along with the block size
// and data type of its first band. The band fields are zero for vector datasets.
func (ds *Dataset) Structure() DatasetStructure {
	st := DatasetStructure{
		BandStructure: BandStructure{
			SizeX: int(C.GDALGetRasterXSize(ds.handle())),
			SizeY: int(C.GDALGetRasterYSize(ds.handle())),
		},
		NBands: int(C.GDALGetRasterCount(ds.handle())),
	}
	if st.NBands > 0 {
		bst := ds.Bands()[0].Structure()
		st.BlockSizeX, st.BlockSizeY, st.DataType = bst.BlockSizeX, bst.BlockSizeY, bst.DataType
	}
	return st
}

// Projection returns the WKT projection of the dataset. May be empty.
func (ds *Dataset) Projection() string {
	str := C.GDALGetProjectionRef(ds.handle())
	return C.GoString(str)
}

// SetProjection sets the WKT projection of the dataset. An empty string clears the projection.
func (ds *Dataset) SetProjection(wkt string, opts ...DatasetOption) error {
	po := datasetOpts{}
	for _, o := range opts {
		o.setDatasetOpt(&po)
	}
	cwkt := C.CString(wkt)
	defer C.free(unsafe.Pointer(cwkt))
	cgc := createCGOContext(nil, po.errorHandler)
	C.geobindSetProjection(cgc.cPointer(), ds.handle(), cwkt)
	return cgc.close()
}

// SpatialRef returns dataset projection. The returned SpatialRef is borrowed
// from the dataset, and is nil if the dataset has no projection.
func (ds *Dataset) SpatialRef() *SpatialRef {
	hndl := C.GDALGetSpatialRef(ds.handle())
	if hndl == nil {
		return nil
	}
	return &SpatialRef{handle: hndl, isOwned: false}
}

// GeoTransform returns the affine transformation coefficients
func (ds *Dataset) GeoTransform(opts ...DatasetOption) ([6]float64, error) {
	gto := datasetOpts{}
	for _, o := range opts {
		o.setDatasetOpt(&gto)
	}
	ret := [6]float64{}
	var gt [6]C.double
	cgc := createCGOContext(nil, gto.errorHandler)
	C.geobindGetGeoTransform(cgc.cPointer(), ds.handle(), &gt[0])
	if err := cgc.close(); err != nil {
		return ret, err
	}
	for i := range ret {
		ret[i] = float64(gt[i])
	}
	return ret, nil
}

// SetGeoTransform sets the affine transformation coefficients
func (ds *Dataset) SetGeoTransform(transform [6]float64, opts ...DatasetOption) error {
	gto := datasetOpts{}
	for _, o := range opts {
		o.setDatasetOpt(&gto)
	}
	gt := cDoubleArray(transform[:])
	defer C.free(unsafe.Pointer(gt))
	cgc := createCGOContext(nil, gto.errorHandler)
	C.geobindSetGeoTransform(cgc.cPointer(), ds.handle(), gt)
	return cgc.close()
}

// ClearStatistics clears the statistics of every band of the dataset
func (ds *Dataset) ClearStatistics(opts ...DatasetOption) error {
	cls := datasetOpts{}
	for _, o := range opts {
		o.setDatasetOpt(&cls)
	}
	cgc := createCGOContext(nil, cls.errorHandler)
	C.geobindClearStatistics(cgc.cPointer(), ds.handle())
	return cgc.close()
}

// GCPs returns the dataset's ground control points
func (ds *Dataset) GCPs() []GCP {
	n := int(C.GDALGetGCPCount(ds.handle()))
	if n == 0 {
		return nil
	}
	cgcps := unsafe.Slice(C.GDALGetGCPs(ds.handle()), n)
	ret := make([]GCP, n)
	for i, g := range cgcps {
		ret[i] = GCP{
			ID:     C.GoString(g.pszId),
			Info:   C.GoString(g.pszInfo),
			PixelX: float64(g.dfGCPPixel),
			LineY:  float64(g.dfGCPLine),
			X:      float64(g.dfGCPX),
			Y:      float64(g.dfGCPY),
			Z:      float64(g.dfGCPZ),
		}
	}
	return ret
}

// GCPProjection returns the WKT projection of the dataset's GCPs
func (ds *Dataset) GCPProjection() string {
	return C.GoString(C.GDALGetGCPProjection(ds.handle()))
}

// SetGCPs replaces the dataset's ground control points. projection is the WKT
// of the GCPs' X/Y/Z coordinates.
func (ds *Dataset) SetGCPs(gcps []GCP, projection string, opts ...DatasetOption) error {
	so := datasetOpts{}
	for _, o := range opts {
		o.setDatasetOpt(&so)
	}
	cg := newCGCPs(gcps)
	defer cg.free()
	cproj := C.CString(projection)
	defer C.free(unsafe.Pointer(cproj))
	cgc := createCGOContext(nil, so.errorHandler)
	C.geobindSetGCPs(cgc.cPointer(), ds.handle(), C.int(len(gcps)), cg.ids.cPointer(), cg.infos.cPointer(),
		cg.pixels, cg.lines, cg.xs, cg.ys, cg.zs, cproj)
	return cgc.close()
}

// Layers returns all dataset layers
func (ds *Dataset) Layers() []Layer {
	n := int(C.GDALDatasetGetLayerCount(ds.handle()))
	layers := make([]Layer, 0, n)
	for i := 0; i < n; i++ {
		hndl := C.GDALDatasetGetLayer(ds.handle(), C.int(i))
		layers = append(layers, Layer{majorObject{C.GDALMajorObjectH(hndl)}})
	}
	return layers
}

// LayerByName fetch a layer by name. Returns nil if not found.
func (ds *Dataset) LayerByName(name string) *Layer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	hndl := C.GDALDatasetGetLayerByName(ds.handle(), cname)
	if hndl == nil {
		return nil
	}
	return &Layer{majorObject{C.GDALMajorObjectH(hndl)}}
}

// CreateLayer creates a new vector layer
//
// Available CreateLayerOptions are
//   - *FieldDefinition (may be used multiple times) to add attribute fields to the layer
//   - LayerCreationOption
//   - ErrLogger
func (ds *Dataset) CreateLayer(name string, sr *SpatialRef, gtype GeometryType, opts ...CreateLayerOption) (Layer, error) {
	co := createLayerOpts{}
	for _, opt := range opts {
		opt.setCreateLayerOpt(&co)
	}
	srHandle := C.OGRSpatialReferenceH(nil)
	if sr != nil {
		srHandle = sr.handle
	}
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	copts := sliceToCStringArray(co.options)
	defer copts.free()
	cgc := createCGOContext(nil, co.errorHandler)
	hndl := C.geobindCreateLayer(cgc.cPointer(), ds.handle(), cname, srHandle, C.OGRwkbGeometryType(gtype), copts.cPointer())
	if err := cgc.close(); err != nil {
		return Layer{}, err
	}
	layer := Layer{majorObject{C.GDALMajorObjectH(hndl)}}
	for _, fld := range co.fields {
		if err := layer.CreateField(fld, ErrLogger(co.errorHandler)); err != nil {
			return layer, fmt.Errorf("create field %s: %w", fld.Name(), err)
		}
	}
	return layer, nil
}
