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

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampBand(t *testing.T) Band {
	ds := memRaster(t, 1, Byte, 16, 16)
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = byte(i)
	}
	bnd := ds.Bands()[0]
	require.NoError(t, bnd.Write(0, 0, buf, 16, 16))
	return bnd
}

func TestHistogram(t *testing.T) {
	bnd := rampBand(t)

	hist, err := bnd.Histogram()
	assert.NoError(t, err)
	ll := hist.Len()
	assert.Equal(t, 256, ll)
	for i := 0; i < ll; i++ {
		b := hist.Bucket(i)
		assert.Equal(t, float64(i)-0.5, b.Min)
		assert.Equal(t, float64(i+1)-0.5, b.Max)
		assert.Equal(t, uint64(1), b.Count)
	}
	assert.Equal(t, uint64(256), hist.Total())

	hist, err = bnd.Histogram(IncludeOutOfRange(), Intervals(64, 63.5, 191.5))
	assert.NoError(t, err)
	ll = hist.Len()
	assert.Equal(t, 64, ll)
	for i := 0; i < ll; i++ {
		b := hist.Bucket(i)
		assert.Equal(t, 63.5+float64(i*2), b.Min)
		assert.Equal(t, 63.5+float64(i*2+2), b.Max)
		if i == 0 || i == ll-1 {
			assert.Equal(t, uint64(66), b.Count) //66 is the 64 preceding + the 2 of the actual bucket
		} else {
			assert.Equal(t, uint64(2), b.Count)
		}
	}
	_, err = bnd.Histogram(Approximate(), Intervals(64, 64, 192))
	assert.NoError(t, err)
	_, err = bnd.Histogram(Intervals(-1, 0, 1))
	assert.ErrorIs(t, err, ErrIllegalArg)

	//to make histogram choke for coverage
	ebnd := Band{}
	ehc := eh()
	_, err = ebnd.Histogram(Intervals(4, 0, 1), ErrLogger(ehc.ErrorHandler))
	assert.Error(t, err)
}

func TestDefaultHistogram(t *testing.T) {
	bnd := rampBand(t)
	require.NoError(t, bnd.SetDefaultHistogram(NewHistogram(0, 256, []uint64{100, 156})))
	h, ok, err := bnd.DefaultHistogram(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []uint64{100, 156}, h.Counts())
	assert.Equal(t, 0.0, h.Min())
	assert.Equal(t, 256.0, h.Max())
	assert.Equal(t, Bucket{Min: 128, Max: 256, Count: 156}, h.Bucket(1))

	assert.ErrorIs(t, bnd.SetDefaultHistogram(Histogram{}), ErrIllegalArg)
}

func TestHistogramJSON(t *testing.T) {
	h := NewHistogram(-1, 1, []uint64{3, 4})
	b, err := json.Marshal(h)
	require.NoError(t, err)
	assert.JSONEq(t, `{"min":-1,"max":1,"counts":[3,4]}`, string(b))

	h2 := Histogram{}
	require.NoError(t, json.Unmarshal(b, &h2))
	assert.Equal(t, h, h2)
	assert.Error(t, json.Unmarshal([]byte(`{"min":"a"}`), &h2))
}

func TestStatistics(t *testing.T) {
	bnd := rampBand(t)

	_, ok, err := bnd.GetStatistics()
	assert.NoError(t, err)
	assert.False(t, ok)

	st, ok, err := bnd.GetStatistics(Force())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.0, st.Min)
	assert.Equal(t, 255.0, st.Max)
	assert.Equal(t, 127.5, st.Mean)

	st, err = bnd.ComputeStatistics()
	require.NoError(t, err)
	assert.Equal(t, 255.0, st.Max)
	assert.InDelta(t, 73.9, st.Std, 0.1)

	require.NoError(t, bnd.SetStatistics(Statistics{Min: 1, Max: 2, Mean: 1.5, Std: 0.5}))
	st, ok, err = bnd.GetStatistics()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Statistics{Min: 1, Max: 2, Mean: 1.5, Std: 0.5}, st)

	assert.NoError(t, bnd.ClearStatistics())

	ehc := eh()
	_, err = Band{}.ComputeStatistics(StatisticsApproximate(), ErrLogger(ehc.ErrorHandler))
	assert.Error(t, err)
}

func TestStatisticsGTiff(t *testing.T) {
	fname := tempfile(t, ".tif")
	ds, err := Create(GTiff, fname, 1, Byte, 4, 4)
	require.NoError(t, err)
	defer ds.Close()
	bnd := ds.Bands()[0]
	require.NoError(t, bnd.Fill(7, 0))
	_, err = bnd.ComputeStatistics()
	require.NoError(t, err)
	_, ok, _ := bnd.GetStatistics()
	assert.True(t, ok)
	assert.NoError(t, ds.ClearStatistics())
}
