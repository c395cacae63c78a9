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
	"bytes"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allFieldTypes = []struct {
	name  string
	ftype FieldType
}{
	{"int", FTInt},
	{"int64", FTInt64},
	{"real", FTReal},
	{"str", FTString},
	{"date", FTDate},
	{"time", FTTime},
	{"datetime", FTDateTime},
	{"intlist", FTIntList},
	{"int64list", FTInt64List},
	{"reallist", FTRealList},
	{"strlist", FTStringList},
	{"bin", FTBinary},
}

func allFieldsDefinition(t *testing.T) *FeatureDefinition {
	t.Helper()
	defn := NewFeatureDefinition("all")
	for _, ft := range allFieldTypes {
		fd := NewFieldDefinition(ft.name, ft.ftype)
		defn.AddFieldDefinition(fd)
		fd.Close()
	}
	t.Cleanup(defn.Close)
	return defn
}

func TestFieldDefinition(t *testing.T) {
	fd := NewFieldDefinition("val", FTReal)
	defer fd.Close()
	assert.Equal(t, "val", fd.Name())
	assert.Equal(t, FTReal, fd.Type())
	assert.Equal(t, 0, fd.Width())
	assert.True(t, fd.IsNullable())
	assert.False(t, fd.IsIgnored())
	assert.Equal(t, JustifyUndefined, fd.Justification())
	assert.Equal(t, "", fd.Default())
	assert.Equal(t, 3, fd.Precision())

	js, err := json.Marshal(fd)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"val","type":"Real","justification":"undefined","nullable":true}`, string(js))

	fd.Set("renamed", FTString, 12, 0, JustifyLeft)
	assert.Equal(t, "renamed", fd.Name())
	assert.Equal(t, FTString, fd.Type())
	assert.Equal(t, 12, fd.Width())
	assert.Equal(t, JustifyLeft, fd.Justification())

	fd.SetName("n")
	fd.SetType(FTReal)
	fd.SetWidth(10)
	fd.SetPrecision(3)
	fd.SetJustification(JustifyRight)
	fd.SetNullable(false)
	fd.SetIgnored(true)
	fd.SetDefault("1.5")
	js, err = json.Marshal(fd)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"n","type":"Real","width":10,"precision":3,"justification":"right","nullable":false,"ignored":true,"default":"1.5"}`, string(js))
	fd.SetDefault("")
	assert.Equal(t, "", fd.Default())

	fd.Close()
	fd.Close()

	assert.Equal(t, "Integer64", FTInt64.Name())
	assert.Equal(t, "StringList", FTStringList.String())
	assert.Equal(t, "Unknown", FTUnknown.Name())
	assert.Equal(t, "left", JustifyLeft.String())
}

func TestFeatureDefinition(t *testing.T) {
	defn := allFieldsDefinition(t)
	assert.Equal(t, "all", defn.Name())
	assert.Equal(t, len(allFieldTypes), defn.FieldCount())
	idx, ok := defn.FieldIndex("real")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
	_, ok = defn.FieldIndex("bogus")
	assert.False(t, ok)
	fd, ok := defn.FieldDefinition(3)
	require.True(t, ok)
	assert.Equal(t, FTString, fd.Type())
	_, ok = defn.FieldDefinition(len(allFieldTypes))
	assert.False(t, ok)
	fds := defn.FieldDefinitions()
	require.Len(t, fds, len(allFieldTypes))
	assert.Equal(t, "bin", fds[len(fds)-1].Name())

	assert.Equal(t, 1, defn.GeometryFieldCount())
	assert.Equal(t, GTUnknown, defn.GeometryType())
	defn.SetGeometryType(GTPoint)
	assert.Equal(t, GTPoint, defn.GeometryType())

	sr, _ := NewSpatialRefFromEPSG(4326)
	defer sr.Close()
	gfd := NewGeometryFieldDefinition("second", GTPolygon)
	assert.Nil(t, gfd.SpatialRef())
	gfd.SetSpatialRef(sr)
	defn.AddGeometryFieldDefinition(gfd)
	gfd.Close()
	assert.Equal(t, 2, defn.GeometryFieldCount())
	idx, ok = defn.GeometryFieldIndex("second")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	g2, ok := defn.GeometryFieldDefinition(1)
	require.True(t, ok)
	assert.Equal(t, GTPolygon, g2.Type())
	assert.True(t, g2.SpatialRef().IsSame(sr))
	js, err := json.Marshal(g2)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"second","type":"Polygon","srs":"EPSG:4326"}`, string(js))
	_, ok = defn.GeometryFieldDefinition(2)
	assert.False(t, ok)

	g2.SetName("renamed")
	g2.SetType(GTLineString)
	g2.SetIgnored(true)
	assert.Equal(t, "renamed", g2.Name())
	assert.Equal(t, GTLineString, g2.Type())
	assert.True(t, g2.IsIgnored())
	// borrowed definitions are only detached
	g2.Close()
	assert.Equal(t, 2, defn.GeometryFieldCount())
}

func TestFeatureFields(t *testing.T) {
	defn := allFieldsDefinition(t)
	feat := NewFeature(defn)
	defer feat.Close()
	assert.Equal(t, len(allFieldTypes), feat.FieldCount())
	assert.Equal(t, "all", feat.Definition().Name())

	idx := func(name string) int {
		i, ok := feat.FieldIndex(name)
		require.True(t, ok, name)
		return i
	}
	for _, fld := range feat.Fields() {
		assert.False(t, fld.IsSet())
		assert.True(t, fld.IsNull())
	}

	dt := time.Date(2021, 3, 4, 5, 6, 7, 250*int(time.Millisecond), time.UTC)
	require.NoError(t, feat.SetFieldInteger(idx("int"), 42))
	require.NoError(t, feat.SetFieldInteger64(idx("int64"), 1<<40))
	require.NoError(t, feat.SetFieldDouble(idx("real"), 1.5))
	require.NoError(t, feat.SetFieldString(idx("str"), "hello"))
	require.NoError(t, feat.SetFieldDateTime(idx("datetime"), dt))
	require.NoError(t, feat.SetFieldDateTime(idx("date"), dt))
	require.NoError(t, feat.SetFieldIntegerList(idx("intlist"), []int{1, 2, 3}))
	require.NoError(t, feat.SetFieldInteger64List(idx("int64list"), []int64{1 << 40, -1}))
	require.NoError(t, feat.SetFieldDoubleList(idx("reallist"), []float64{0.5, 2}))
	require.NoError(t, feat.SetFieldStringList(idx("strlist"), []string{"a", "b"}))
	require.NoError(t, feat.SetFieldBinary(idx("bin"), []byte{0xde, 0xad}))

	assert.Equal(t, 42, feat.FieldAsInteger(idx("int")))
	assert.Equal(t, "42", feat.FieldAsString(idx("int")))
	assert.Equal(t, int64(1<<40), feat.FieldAsInteger64(idx("int64")))
	assert.Equal(t, 1.5, feat.FieldAsDouble(idx("real")))
	assert.Equal(t, "hello", feat.FieldAsString(idx("str")))
	assert.Equal(t, []int{1, 2, 3}, feat.FieldAsIntegerList(idx("intlist")))
	assert.Equal(t, []int64{1 << 40, -1}, feat.FieldAsInteger64List(idx("int64list")))
	assert.Equal(t, []float64{0.5, 2}, feat.FieldAsDoubleList(idx("reallist")))
	assert.Equal(t, []string{"a", "b"}, feat.FieldAsStringList(idx("strlist")))
	assert.Equal(t, []byte{0xde, 0xad}, feat.FieldAsBinary(idx("bin")))

	got, ok := feat.FieldAsDateTime(idx("datetime"))
	require.True(t, ok)
	assert.True(t, dt.Equal(got), got)
	d, ok := feat.FieldAsDateTime(idx("date"))
	require.True(t, ok)
	assert.Equal(t, 2021, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 4, d.Day())
	_, ok = feat.FieldAsDateTime(idx("time"))
	assert.False(t, ok)

	fields := feat.Fields()
	require.Len(t, fields, len(allFieldTypes))
	assert.Equal(t, int64(42), fields["int"].Int())
	assert.Equal(t, 42.0, fields["int"].Float())
	assert.Equal(t, FTInt, fields["int"].Type())
	assert.Equal(t, idx("int"), fields["int"].Index())
	assert.Equal(t, 1.5, fields["real"].Float())
	assert.Equal(t, int64(1), fields["real"].Int())
	assert.Equal(t, "1.5", fields["real"].String())
	assert.Equal(t, "hello", fields["str"].String())
	assert.Equal(t, []int64{1, 2, 3}, fields["intlist"].IntList())
	assert.Equal(t, "1,2,3", fields["intlist"].String())
	assert.Equal(t, []float64{0.5, 2}, fields["reallist"].FloatList())
	assert.Equal(t, "a,b", fields["strlist"].String())
	assert.Equal(t, []string{"a", "b"}, fields["strlist"].StringList())
	assert.Equal(t, []byte{0xde, 0xad}, fields["bin"].Bytes())
	require.NotNil(t, fields["datetime"].DateTime())
	assert.True(t, dt.Equal(*fields["datetime"].DateTime()))
	assert.Nil(t, fields["str"].DateTime())
	assert.True(t, fields["time"].IsNull())
	assert.False(t, fields["time"].IsSet())
	assert.Nil(t, fields["time"].Value())
	assert.Equal(t, "", fields["time"].String())

	require.NoError(t, feat.SetFieldNull(idx("str")))
	assert.True(t, feat.IsFieldSet(idx("str")))
	assert.True(t, feat.IsFieldNull(idx("str")))
	fld := feat.Fields()["str"]
	assert.True(t, fld.IsSet())
	assert.True(t, fld.IsNull())
	require.NoError(t, feat.UnsetField(idx("str")))
	assert.False(t, feat.IsFieldSet(idx("str")))

	assert.ErrorIs(t, feat.SetFieldString(-1, "x"), ErrIllegalArg)
	assert.ErrorIs(t, feat.SetFieldInteger(100, 1), ErrIllegalArg)
	assert.ErrorIs(t, feat.UnsetField(100), ErrIllegalArg)
	assert.ErrorIs(t, feat.SetFieldNull(100), ErrIllegalArg)
	assert.Equal(t, 0, feat.FieldAsInteger(100))
	assert.Equal(t, "", feat.FieldAsString(-1))
	assert.Nil(t, feat.FieldAsBinary(100))
	assert.False(t, feat.IsFieldSet(100))
	_, ok = feat.FieldDefinition(100)
	assert.False(t, ok)
	_, ok = feat.FieldIndex("bogus")
	assert.False(t, ok)
}

func TestFeatureDateTimeZones(t *testing.T) {
	defn := NewFeatureDefinition("tz")
	defer defn.Close()
	fd := NewFieldDefinition("dt", FTDateTime)
	defn.AddFieldDefinition(fd)
	fd.Close()
	feat := NewFeature(defn)
	defer feat.Close()

	paris := time.FixedZone("CET", 3600)
	dt := time.Date(2020, 12, 31, 23, 59, 59, 0, paris)
	require.NoError(t, feat.SetFieldDateTime(0, dt))
	got, ok := feat.FieldAsDateTime(0)
	require.True(t, ok)
	assert.True(t, dt.Equal(got))
	_, offset := got.Zone()
	assert.Equal(t, 3600, offset)

	west := time.FixedZone("", -(3*3600 + 30*60))
	dt = time.Date(2020, 1, 1, 0, 0, 0, 0, west)
	require.NoError(t, feat.SetFieldDateTime(0, dt))
	got, _ = feat.FieldAsDateTime(0)
	assert.True(t, dt.Equal(got))
	assert.Equal(t, "GMT-0330", got.Location().String())

	assert.Equal(t, 100, tzFlag(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, tzFlag(time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, time.Local, tzLocation(0))
	assert.Equal(t, time.UTC, tzLocation(100))
}

func TestFeatureGeometry(t *testing.T) {
	defn := NewFeatureDefinition("geoms")
	defer defn.Close()
	gfd := NewGeometryFieldDefinition("extra", GTUnknown)
	defn.AddGeometryFieldDefinition(gfd)
	gfd.Close()

	feat := NewFeature(defn)
	defer feat.Close()
	assert.Nil(t, feat.Geometry())
	assert.Equal(t, 2, feat.GeometryFieldCount())

	pt := mustWKT(t, "POINT (1 2)")
	require.NoError(t, feat.SetGeometry(pt))
	pt.SetPoint(5, 5)
	assert.Equal(t, 1.0, feat.Geometry().X())

	line, _ := NewGeometryFromWKT("LINESTRING (0 0,1 1)", nil)
	require.NoError(t, feat.SetGeometryDirectly(line))
	assert.Equal(t, GTLineString, feat.Geometry().Type())
	assert.ErrorIs(t, feat.SetGeometryDirectly(line), ErrIllegalArg)
	line.Close()

	require.NoError(t, feat.SetGeometryField(1, pt))
	assert.Equal(t, 5.0, feat.GeometryField(1).X())
	assert.Nil(t, feat.GeometryField(2))
	assert.ErrorIs(t, feat.SetGeometryField(2, pt), ErrIllegalArg)
	idx, ok := feat.GeometryFieldIndex("extra")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	gd, ok := feat.GeometryFieldDefinition(1)
	require.True(t, ok)
	assert.Equal(t, "extra", gd.Name())
	_, ok = feat.GeometryFieldDefinition(5)
	assert.False(t, ok)

	stolen := feat.StealGeometry()
	require.NotNil(t, stolen)
	assert.Equal(t, GTLineString, stolen.Type())
	stolen.Close()
	assert.Nil(t, feat.Geometry())
	assert.Nil(t, feat.StealGeometry())

	require.NoError(t, feat.SetFID(12))
	assert.Equal(t, int64(12), feat.FID())
	feat.SetStyleString("PEN(c:#FF0000)")
	assert.Equal(t, "PEN(c:#FF0000)", feat.StyleString())

	clone := feat.Clone()
	defer clone.Close()
	assert.True(t, feat.Equal(clone))
	require.NoError(t, clone.SetFID(13))
	assert.False(t, feat.Equal(clone))

	var buf bytes.Buffer
	require.NoError(t, feat.DumpReadable(&buf))
	assert.Contains(t, buf.String(), "OGRFeature(geoms):12")
}

func TestFeatureSetFrom(t *testing.T) {
	src := NewFeatureDefinition("src")
	defer src.Close()
	dst := NewFeatureDefinition("dst")
	defer dst.Close()
	for _, n := range []string{"a", "b"} {
		fd := NewFieldDefinition(n, FTString)
		src.AddFieldDefinition(fd)
		fd.Close()
	}
	for _, n := range []string{"b", "c"} {
		fd := NewFieldDefinition(n, FTString)
		dst.AddFieldDefinition(fd)
		fd.Close()
	}
	sf := NewFeature(src)
	defer sf.Close()
	_ = sf.SetFieldString(0, "va")
	_ = sf.SetFieldString(1, "vb")
	pt := mustWKT(t, "POINT (1 1)")
	_ = sf.SetGeometry(pt)

	df := NewFeature(dst)
	defer df.Close()
	require.NoError(t, df.SetFrom(sf, true))
	assert.Equal(t, "vb", df.FieldAsString(0))
	assert.False(t, df.IsFieldSet(1))
	require.NotNil(t, df.Geometry())
	assert.Equal(t, 1.0, df.Geometry().X())

	mf := NewFeature(dst)
	defer mf.Close()
	require.NoError(t, mf.SetFromWithMap(sf, true, []int{1, -1}))
	assert.Equal(t, "va", mf.FieldAsString(1))
	assert.False(t, mf.IsFieldSet(0))
	assert.ErrorIs(t, mf.SetFromWithMap(sf, true, []int{0}), ErrIllegalArg)
}
