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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPoint struct {
	name string
	x, y float64
}

var testPoints = []testPoint{
	{"a", 0, 0},
	{"b", 2, 3},
	{"c", 1, 1},
}

func pointLayer(t *testing.T, drv DriverName, name string) (*Dataset, Layer) {
	t.Helper()
	ds, err := CreateVector(drv, name)
	require.NoError(t, err)
	sr, _ := NewSpatialRefFromEPSG(4326)
	defer sr.Close()
	fname := NewFieldDefinition("name", FTString)
	defer fname.Close()
	fidx := NewFieldDefinition("idx", FTInt)
	defer fidx.Close()
	layer, err := ds.CreateLayer("points", sr, GTPoint, fname, fidx)
	require.NoError(t, err)
	for i, p := range testPoints {
		g, _ := NewGeometry(GTPoint)
		g.SetPoint(p.x, p.y)
		feat := NewFeature(layer.FeatureDefinition())
		require.NoError(t, feat.SetGeometryDirectly(g))
		require.NoError(t, feat.SetFieldString(0, p.name))
		require.NoError(t, feat.SetFieldInteger(1, i))
		require.NoError(t, layer.CreateFeature(feat))
		feat.Close()
		g.Close()
	}
	return ds, layer
}

func TestLayerCreate(t *testing.T) {
	ds, layer := pointLayer(t, Memory, "")
	defer ds.Close()

	assert.Equal(t, "points", layer.Name())
	assert.Equal(t, GTPoint, layer.GeometryType())
	require.NotNil(t, layer.SpatialRef())
	assert.Equal(t, "4326", layer.SpatialRef().AuthorityCode(""))
	defn := layer.FeatureDefinition()
	assert.Equal(t, 2, defn.FieldCount())
	i, ok := defn.FieldIndex("idx")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	require.Len(t, ds.Layers(), 1)
	assert.Equal(t, "points", ds.Layers()[0].Name())
	assert.NotNil(t, ds.LayerByName("points"))
	assert.Nil(t, ds.LayerByName("bogus"))

	fd := NewFieldDefinition("extra", FTReal)
	defer fd.Close()
	assert.True(t, layer.TestCapability(CapCreateField))
	require.NoError(t, layer.CreateField(fd))
	assert.Equal(t, 3, layer.FeatureDefinition().FieldCount())

	other, err := ds.CreateLayer("other", nil, GTNone, LayerCreationOption("ADVERTIZE_UTF8=YES"))
	require.NoError(t, err)
	assert.Equal(t, GTNone, other.GeometryType())
	assert.Nil(t, other.SpatialRef())
	require.Len(t, ds.Layers(), 2)

	_, err = CreateVector(GTiff, "")
	assert.Error(t, err)
	ehc := eh()
	_, err = CreateVector(DriverName("bogus"), "", ErrLogger(ehc.ErrorHandler))
	assert.Error(t, err)
}

func TestLayerRead(t *testing.T) {
	ds, layer := pointLayer(t, Memory, "")
	defer ds.Close()

	n, err := layer.FeatureCount(true)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	env, err := layer.Extent(true)
	require.NoError(t, err)
	assert.Equal(t, [4]float64{0, 0, 2, 3}, env.Bounds())

	var names []string
	layer.ResetReading()
	for feat := layer.NextFeature(); feat != nil; feat = layer.NextFeature() {
		names = append(names, feat.FieldAsString(0))
		feat.Close()
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Equal(t, int64(3), layer.FeaturesRead())

	require.NoError(t, layer.SetNextByIndex(1))
	feat := layer.NextFeature()
	require.NotNil(t, feat)
	assert.Equal(t, "b", feat.FieldAsString(0))
	fid := feat.FID()
	feat.Close()
	assert.ErrorIs(t, layer.SetNextByIndex(-1), ErrIllegalArg)

	feat = layer.Feature(fid)
	require.NotNil(t, feat)
	assert.Equal(t, int64(1), feat.FieldAsInteger64(1))
	feat.Close()
	assert.Nil(t, layer.Feature(1000))
}

func TestLayerFilters(t *testing.T) {
	ds, layer := pointLayer(t, Memory, "")
	defer ds.Close()

	count := func() int {
		t.Helper()
		n := 0
		layer.ResetReading()
		for feat := layer.NextFeature(); feat != nil; feat = layer.NextFeature() {
			n++
			feat.Close()
		}
		return n
	}
	require.NoError(t, layer.SetAttributeFilter("name = 'b'"))
	assert.Equal(t, 1, count())
	require.NoError(t, layer.SetAttributeFilter("idx >= 1"))
	assert.Equal(t, 2, count())
	require.NoError(t, layer.SetAttributeFilter(""))
	assert.Equal(t, 3, count())
	assert.Error(t, layer.SetAttributeFilter("bogus syntax ((("))

	box := mustWKT(t, "POLYGON ((0.5 0.5,0.5 5,5 5,5 0.5,0.5 0.5))")
	layer.SetSpatialFilter(box)
	assert.Equal(t, 2, count())
	n, err := layer.FeatureCount(true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	layer.SetSpatialFilter(nil)
	assert.Equal(t, 3, count())
}

func TestLayerUpdate(t *testing.T) {
	ds, layer := pointLayer(t, Memory, "")
	defer ds.Close()

	assert.True(t, layer.TestCapability(CapRandomRead))
	assert.True(t, layer.TestCapability(CapSequentialWrite))
	assert.True(t, layer.TestCapability(CapDeleteFeature))

	layer.ResetReading()
	feat := layer.NextFeature()
	require.NotNil(t, feat)
	fid := feat.FID()
	require.NoError(t, feat.SetFieldString(0, "z"))
	require.NoError(t, layer.SetFeature(feat))
	feat.Close()

	feat = layer.Feature(fid)
	require.NotNil(t, feat)
	assert.Equal(t, "z", feat.FieldAsString(0))
	feat.Close()

	require.NoError(t, layer.DeleteFeature(fid))
	n, _ := layer.FeatureCount(true)
	assert.Equal(t, 2, n)
	ehc := eh()
	assert.Error(t, layer.DeleteFeature(fid, ErrLogger(ehc.ErrorHandler)))

	defn := layer.FeatureDefinition()
	nf := NewFeature(defn)
	require.NoError(t, nf.SetFieldString(0, "d"))
	require.NoError(t, layer.CreateFeature(nf))
	assert.GreaterOrEqual(t, nf.FID(), int64(0))
	nf.Close()
	n, _ = layer.FeatureCount(true)
	assert.Equal(t, 3, n)

	nogeom, err := layer.NewFeature(nil)
	require.NoError(t, err)
	assert.Nil(t, nogeom.Geometry())
	nogeom.Close()
}

func TestLayerReadOnly(t *testing.T) {
	fname := tempfile(t, ".geojson")
	ds, _ := pointLayer(t, GeoJSON, fname)
	require.NoError(t, ds.Close())

	ds, err := Open(fname, VectorOnly())
	require.NoError(t, err)
	defer ds.Close()
	layers := ds.Layers()
	require.Len(t, layers, 1)
	layer := layers[0]
	n, err := layer.FeatureCount(true)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	feat := layer.NextFeature()
	require.NotNil(t, feat)
	defer feat.Close()
	assert.Equal(t, "a", feat.FieldAsString(0))
	assert.ErrorIs(t, layer.SetFeature(feat), ErrNotSupported)
	assert.ErrorIs(t, layer.DeleteFeature(feat.FID()), ErrNotSupported)

	ehc := eh()
	assert.Error(t, layer.CreateFeature(feat, ErrLogger(ehc.ErrorHandler)))
}
