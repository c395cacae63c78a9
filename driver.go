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

//DriverName is GDAL driver
type DriverName string

const (
	//GTiff GeoTIFF
	GTiff DriverName = "GTiff"
	//GeoJSON RFC7946 geojson
	GeoJSON DriverName = "GeoJSON"
	//Memory in memory driver
	Memory DriverName = "Memory"
	//VRT is a VRT
	VRT DriverName = "VRT"
	//Shapefile is an ESRI Shapefile
	Shapefile DriverName = "ESRI Shapefile"
	//GeoPackage is a geo-package
	GeoPackage DriverName = "GPKG"
	//CSV comma separated values
	CSV DriverName = "CSV"
)

type driverMapping struct {
	rasterName     string
	vectorName     string
	rasterRegister string
	vectorRegister string
}

var driverMappings = map[DriverName]driverMapping{
	GTiff: {
		rasterName:     "GTiff",
		rasterRegister: "GDALRegister_GTiff",
	},
	Memory: {
		rasterName:     "MEM",
		vectorName:     "Memory",
		rasterRegister: "GDALRegister_MEM",
		vectorRegister: "RegisterOGRMEM",
	},
	GeoJSON: {
		vectorName:     "GeoJSON",
		vectorRegister: "RegisterOGRGeoJSON",
	},
	VRT: {
		rasterName:     "VRT",
		vectorName:     "OGR_VRT",
		rasterRegister: "GDALRegister_VRT",
		vectorRegister: "RegisterOGRVRT",
	},
	Shapefile: {
		vectorName:     "ESRI Shapefile",
		vectorRegister: "RegisterOGRShape",
	},
	GeoPackage: {
		rasterName:     "GPKG",
		vectorName:     "GPKG",
		rasterRegister: "RegisterOGRGeoPackage",
		vectorRegister: "RegisterOGRGeoPackage",
	},
	CSV: {
		vectorName:     "CSV",
		vectorRegister: "RegisterOGRCSV",
	},
}

func (dn DriverName) rasterName() (string, bool) {
	if m, ok := driverMappings[dn]; ok {
		return m.rasterName, m.rasterName != ""
	}
	return string(dn), true
}

func (dn DriverName) vectorName() (string, bool) {
	if m, ok := driverMappings[dn]; ok {
		return m.vectorName, m.vectorName != ""
	}
	return string(dn), true
}

// RegisterAll calls GDALAllRegister which registers all available raster and vector
// drivers.
func RegisterAll() {
	C.GDALAllRegister()
}

// RegisterRaster registers a raster driver by name.
//
// Calling RegisterRaster(DriverName("XXX")) with a name that is not one of the predefined
// DriverNames results in calling the function GDALRegister_XXX() if it can be found in the
// gdal shared library.
func RegisterRaster(drivers ...DriverName) error {
	for _, driver := range drivers {
		switch driver {
		case Memory:
			C.GDALRegister_MEM()
		case VRT:
			C.GDALRegister_VRT()
		case GTiff:
			C.GDALRegister_GTiff()
		default:
			fnname := fmt.Sprintf("GDALRegister_%s", driver)
			if drv, ok := driverMappings[driver]; ok {
				fnname = drv.rasterRegister
			}
			if fnname == "" {
				return fmt.Errorf("%s driver does not handle rasters", driver)
			}
			if err := registerDriver(fnname); err != nil {
				return err
			}
		}
	}
	return nil
}

// RegisterVector registers a vector driver by name.
//
// Calling RegisterVector(DriverName("XXX")) with a name that is not one of the predefined
// DriverNames results in calling the function RegisterOGRXXX() if it can be found in the
// gdal shared library.
func RegisterVector(drivers ...DriverName) error {
	for _, driver := range drivers {
		fnname := fmt.Sprintf("RegisterOGR%s", driver)
		if drv, ok := driverMappings[driver]; ok {
			fnname = drv.vectorRegister
		}
		if fnname == "" {
			return fmt.Errorf("%s driver does not handle vectors", driver)
		}
		if err := registerDriver(fnname); err != nil {
			return err
		}
	}
	return nil
}

func registerDriver(fnname string) error {
	cfnname := C.CString(fnname)
	defer C.free(unsafe.Pointer(cfnname))
	if C.geobindRegisterDriver(cfnname) != 0 {
		return fmt.Errorf("failed to call function %s", fnname)
	}
	return nil
}

// Driver is a gdal format driver
type Driver struct {
	majorObject
}

// handle() returns a pointer to the underlying GDALDriverH
func (drv Driver) handle() C.GDALDriverH {
	return C.GDALDriverH(drv.majorObject.cHandle)
}

// LongName returns the driver long name.
func (drv Driver) LongName() string {
	return C.GoString(C.GDALGetDriverLongName(drv.handle()))
}

// ShortName returns the driver short name.
func (drv Driver) ShortName() string {
	return C.GoString(C.GDALGetDriverShortName(drv.handle()))
}

// VectorDriver returns a Driver by name. It returns false if the named driver does
// not exist
func VectorDriver(name DriverName) (Driver, bool) {
	dn, ok := name.vectorName()
	if !ok {
		return Driver{}, false
	}
	return getDriver(dn)
}

// RasterDriver returns a Driver by name. It returns false if the named driver does
// not exist
func RasterDriver(name DriverName) (Driver, bool) {
	dn, ok := name.rasterName()
	if !ok {
		return Driver{}, false
	}
	return getDriver(dn)
}

func getDriver(name string) (Driver, bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	hndl := C.GDALGetDriverByName(cname)
	if hndl != nil {
		return Driver{majorObject{C.GDALMajorObjectH(hndl)}}, true
	}
	return Driver{}, false
}

type driversOpt struct {
	drivers []string
}

//Drivers specifies the list of drivers that are allowed to try opening the dataset
func Drivers(drivers ...string) interface {
	OpenOption
} {
	return driversOpt{drivers}
}
func (do driversOpt) setOpenOpt(oo *openOpts) {
	oo.drivers = append(oo.drivers, do.drivers...)
}

type driverOpenOption struct {
	oo []string
}

//DriverOpenOption adds a list of Open Options (-oo switch) to the open command. Each keyval must
//be provided in a "KEY=value" format
func DriverOpenOption(keyval ...string) interface {
	OpenOption
} {
	return driverOpenOption{keyval}
}
func (doo driverOpenOption) setOpenOpt(oo *openOpts) {
	oo.options = append(oo.options, doo.oo...)
}

type siblingFilesOpt struct {
	files []string
}

//SiblingFiles specifies the list of files that may be opened alongside the prinicpal dataset name.
//
// • By default, i.e. by not using the option, geobind will consider that there are no sibling files
// at all and will prevent any scanning or probing of specific sibling files
//
// • By passing a list of files, only those files will be probed
//
// • By passing SiblingFiles() (i.e. with an empty list of files), the default gdal behavior of
// reading the directory content and/or probing for well-known sidecar filenames will be used.
func SiblingFiles(files ...string) interface {
	OpenOption
} {
	return siblingFilesOpt{files}
}
func (sf siblingFilesOpt) setOpenOpt(oo *openOpts) {
	if len(sf.files) > 0 {
		oo.siblingFiles = append(oo.siblingFiles, sf.files...)
	} else {
		oo.siblingFiles = nil
	}
}

type openFlagOpt uint

func (f openFlagOpt) setOpenOpt(oo *openOpts) {
	switch f {
	case C.GDAL_OF_RASTER:
		oo.flags &^= C.GDAL_OF_VECTOR
		oo.flags |= C.GDAL_OF_RASTER
	case C.GDAL_OF_VECTOR:
		oo.flags &^= C.GDAL_OF_RASTER
		oo.flags |= C.GDAL_OF_VECTOR
	default:
		oo.flags |= uint(f)
	}
}

// Update is an OpenOption that instructs gdal to open the dataset for writing/updating
func Update() interface {
	OpenOption
} {
	return openFlagOpt(C.GDAL_OF_UPDATE)
}

// RasterOnly limits which drivers may be used by Open to those supporting rasters
func RasterOnly() interface {
	OpenOption
} {
	return openFlagOpt(C.GDAL_OF_RASTER)
}

// VectorOnly limits which drivers may be used by Open to those supporting vectors
func VectorOnly() interface {
	OpenOption
} {
	return openFlagOpt(C.GDAL_OF_VECTOR)
}
