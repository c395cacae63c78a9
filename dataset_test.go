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

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOpen(t *testing.T) {
	fname := tempfile(t, ".tif")
	ds, err := Create(GTiff, fname, 3, Int16, 64, 32, CreationOption("TILED=YES", "BLOCKXSIZE=16", "BLOCKYSIZE=16"))
	require.NoError(t, err)
	st := ds.Structure()
	assert.Equal(t, DatasetStructure{
		BandStructure: BandStructure{SizeX: 64, SizeY: 32, BlockSizeX: 16, BlockSizeY: 16, DataType: Int16},
		NBands:        3,
	}, st)
	assert.Equal(t, "GTiff", ds.Driver().ShortName())
	assert.Equal(t, "GeoTIFF", ds.Driver().LongName())
	require.NoError(t, ds.Bands()[2].Fill(12, 0))
	require.NoError(t, ds.Close())
	assert.Error(t, ds.Close())

	ds, err = Open(fname, RasterOnly())
	require.NoError(t, err)
	defer ds.Close()
	assert.Equal(t, AccessReadOnly, ds.Bands()[0].Access())
	buf := make([]int16, 4)
	require.NoError(t, ds.Bands()[2].Read(0, 0, buf, 2, 2))
	assert.Equal(t, []int16{12, 12, 12, 12}, buf)

	ehc := eh()
	err = ds.Bands()[0].Fill(1, 0, ErrLogger(ehc.ErrorHandler))
	assert.Error(t, err)
}

func TestCreateErrors(t *testing.T) {
	_, err := Create(GeoJSON, "", 1, Byte, 10, 10)
	assert.Error(t, err)

	ehc := eh()
	_, err = Create(Memory, "", 1, Byte, -1, 10, ErrLogger(ehc.ErrorHandler))
	assert.Error(t, err)

	_, err = Create(DriverName("nonexistent"), "", 1, Byte, 10, 10)
	assert.Error(t, err)
}

func TestOpenErrors(t *testing.T) {
	ehc := eh()
	_, err := Open("/nonexistent/file.tif", ErrLogger(ehc.ErrorHandler))
	assert.Error(t, err)
	assert.GreaterOrEqual(t, ehc.errs, 1)

	_, err = Open("/nonexistent/file.tif")
	assert.ErrorIs(t, err, ErrOpenFailed)

	fname := tempfile(t, ".tif")
	ds, _ := Create(GTiff, fname, 1, Byte, 4, 4)
	_ = ds.Close()
	_, err = Open(fname, VectorOnly())
	assert.Error(t, err)
	_, err = Open(fname, Drivers("PNG"))
	assert.Error(t, err)
	ds, err = Open(fname, Drivers("GTiff"), SiblingFiles(), DriverOpenOption("NUM_THREADS=1"), Update())
	require.NoError(t, err)
	assert.Equal(t, AccessUpdate, ds.Bands()[0].Access())
	assert.NoError(t, ds.Close())
}

func TestTempMemName(t *testing.T) {
	n1, n2 := TempMemName(".tif"), TempMemName(".tif")
	assert.NotEqual(t, n1, n2)
	assert.True(t, strings.HasPrefix(n1, "/vsimem/"))
	assert.True(t, strings.HasSuffix(n1, ".tif"))

	ds, err := Create(GTiff, n1, 1, Byte, 4, 4)
	require.NoError(t, err)
	assert.NoError(t, ds.Close())
	ds, err = Open(n1)
	require.NoError(t, err)
	assert.NoError(t, ds.Close())
}

func TestGeoreferencing(t *testing.T) {
	ds := memRaster(t, 1, Byte, 10, 10)
	ehc := eh()
	_, err := ds.GeoTransform(ErrLogger(ehc.ErrorHandler))
	assert.Error(t, err)
	assert.Nil(t, ds.SpatialRef())

	gt := [6]float64{100, 1, 0, 200, 0, -1}
	require.NoError(t, ds.SetGeoTransform(gt))
	gt2, err := ds.GeoTransform()
	require.NoError(t, err)
	assert.Equal(t, gt, gt2)

	sr, _ := NewSpatialRefFromEPSG(32631)
	defer sr.Close()
	wkt, _ := sr.WKT()
	require.NoError(t, ds.SetProjection(wkt))
	assert.Contains(t, ds.Projection(), "UTM zone 31N")
	dsr := ds.SpatialRef()
	require.NotNil(t, dsr)
	assert.True(t, dsr.IsSame(sr))
	dsr.Close()

	require.NoError(t, ds.SetProjection(""))
	assert.Empty(t, ds.Projection())
}

func TestDatasetGCPs(t *testing.T) {
	ds := memRaster(t, 1, Byte, 100, 100)
	assert.Nil(t, ds.GCPs())

	gcps := []GCP{
		{ID: "1", PixelX: 0, LineY: 0, X: 10, Y: 20},
		{ID: "2", Info: "corner", PixelX: 100, LineY: 0, X: 110, Y: 20},
		{ID: "3", PixelX: 0, LineY: 100, X: 10, Y: -80},
	}
	sr, _ := NewSpatialRefFromEPSG(4326)
	defer sr.Close()
	wkt, _ := sr.WKT()
	require.NoError(t, ds.SetGCPs(gcps, wkt))
	assert.Equal(t, gcps, ds.GCPs())
	assert.Contains(t, ds.GCPProjection(), "WGS 84")

	gt, err := GCPsToGeoTransform(gcps, false)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{10, 1, 0, 20, 0, -1}, gt[:], 1e-9)
	_, err = GCPsToGeoTransform(nil, true)
	assert.ErrorIs(t, err, ErrIllegalArg)
}

func TestGCPTransformer(t *testing.T) {
	gcps := []GCP{
		{PixelX: 0, LineY: 0, X: 10, Y: 20},
		{PixelX: 100, LineY: 0, X: 110, Y: 20},
		{PixelX: 0, LineY: 100, X: 10, Y: -80},
		{PixelX: 100, LineY: 100, X: 110, Y: -80},
	}
	trn, err := NewGCPTransformer(gcps, 1)
	require.NoError(t, err)
	defer trn.Close()

	x, y := []float64{50}, []float64{50}
	ok, err := trn.Transform(false, x, y, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, ok)
	assert.InDelta(t, 60, x[0], 1e-6)
	assert.InDelta(t, -30, y[0], 1e-6)

	_, err = trn.Transform(true, x, y, nil)
	require.NoError(t, err)
	assert.InDelta(t, 50, x[0], 1e-6)
	assert.InDelta(t, 50, y[0], 1e-6)

	rev, err := NewGCPTransformer(gcps, 1, Reversed())
	require.NoError(t, err)
	x, y = []float64{60}, []float64{-30}
	_, err = rev.Transform(false, x, y, nil)
	require.NoError(t, err)
	assert.InDelta(t, 50, x[0], 1e-6)
	rev.Close()
	rev.Close()

	_, err = trn.Transform(false, []float64{1}, nil, nil)
	assert.ErrorIs(t, err, ErrIllegalArg)
	_, err = NewGCPTransformer(gcps, 4)
	assert.ErrorIs(t, err, ErrIllegalArg)
	ehc := eh()
	_, err = NewGCPTransformer(gcps[:2], 2, Refine(0.1, 2), ErrLogger(ehc.ErrorHandler))
	assert.Error(t, err)
}

func TestDrivers(t *testing.T) {
	for _, dn := range []DriverName{GTiff, Memory, VRT} {
		drv, ok := RasterDriver(dn)
		assert.True(t, ok, dn)
		assert.NotEmpty(t, drv.ShortName())
	}
	for _, dn := range []DriverName{GeoJSON, Memory, Shapefile, CSV} {
		_, ok := VectorDriver(dn)
		assert.True(t, ok, dn)
	}
	_, ok := RasterDriver(GeoJSON)
	assert.False(t, ok)
	_, ok = VectorDriver(GTiff)
	assert.False(t, ok)
	_, ok = RasterDriver("bogus")
	assert.False(t, ok)

	assert.NoError(t, RegisterRaster(GTiff, Memory, VRT))
	assert.NoError(t, RegisterVector(GeoJSON))
	assert.Error(t, RegisterRaster(GeoJSON))
	assert.Error(t, RegisterRaster("bogus"))
	assert.Error(t, RegisterVector("bogus"))
}

func TestMetadata(t *testing.T) {
	ds := memRaster(t, 1, Byte, 10, 10)
	assert.Equal(t, "", ds.Metadata("foo"))
	assert.Equal(t, "", ds.Metadata("foo", Domain("bar")))

	require.NoError(t, ds.SetMetadata("foo", "bar"))
	require.NoError(t, ds.SetMetadata("foo2", "bar2", Domain("baz")))
	assert.Equal(t, "bar", ds.Metadata("foo"))
	assert.Equal(t, "bar2", ds.Metadata("foo2", Domain("baz")))
	assert.Equal(t, map[string]string{"foo": "bar"}, ds.Metadatas())
	assert.Equal(t, map[string]string{"foo2": "bar2"}, ds.Metadatas(Domain("baz")))
	assert.Empty(t, ds.Metadatas(Domain("bogus")))

	domains := ds.MetadataDomains()
	assert.Contains(t, domains, "")
	assert.Contains(t, domains, "baz")
	all := ds.AllMetadata()
	assert.Equal(t, "bar2", all["baz"]["foo2"])

	require.NoError(t, ds.ClearMetadata(Domain("baz")))
	assert.Empty(t, ds.Metadatas(Domain("baz")))

	bnd := ds.Bands()[0]
	require.NoError(t, bnd.SetMetadata("band", "1"))
	assert.Equal(t, "1", bnd.Metadata("band"))
	bnd.SetDescription("first band")
	assert.Equal(t, "first band", bnd.Description())
}
