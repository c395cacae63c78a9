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

func TestBandProperties(t *testing.T) {
	ds := memRaster(t, 2, UInt16, 20, 10)
	bands := ds.Bands()
	require.Len(t, bands, 2)
	bnd := bands[1]

	assert.Equal(t, 2, bnd.Number())
	assert.Equal(t, 20, bnd.XSize())
	assert.Equal(t, 10, bnd.YSize())
	assert.Equal(t, UInt16, bnd.DataType())
	assert.Equal(t, AccessUpdate, bnd.Access())
	bx, by := bnd.BlockSize()
	st := bnd.Structure()
	assert.Equal(t, BandStructure{SizeX: 20, SizeY: 10, BlockSizeX: bx, BlockSizeY: by, DataType: UInt16}, st)
	require.NotNil(t, bnd.Dataset())
	assert.Equal(t, 2, bnd.Dataset().Structure().NBands)

	assert.NoError(t, bnd.SetColorInterp(CIGreen))
	assert.Equal(t, CIGreen, bnd.ColorInterp())
	assert.Equal(t, "Green", bnd.ColorInterp().Name())

	assert.Empty(t, bnd.CategoryNames())
	assert.NoError(t, bnd.SetCategoryNames([]string{"water", "land"}))
	assert.Equal(t, []string{"water", "land"}, bnd.CategoryNames())
	assert.NoError(t, bnd.SetCategoryNames(nil))
	assert.Empty(t, bnd.CategoryNames())

	assert.NoError(t, bnd.SetScale(0.5))
	assert.NoError(t, bnd.SetOffset(-10))
	s, ok := bnd.Scale()
	assert.True(t, ok)
	assert.Equal(t, 0.5, s)
	o, ok := bnd.Offset()
	assert.True(t, ok)
	assert.Equal(t, -10.0, o)

	assert.NoError(t, bnd.SetUnitType("m"))
	assert.Equal(t, "m", bnd.UnitType())

	assert.NoError(t, bnd.FlushCache())
}

func TestBandNoData(t *testing.T) {
	ds := memRaster(t, 1, Float32, 4, 4)
	bnd := ds.Bands()[0]
	_, ok := bnd.NoData()
	assert.False(t, ok)
	assert.Equal(t, MaskAllValid, bnd.MaskFlags())

	assert.NoError(t, bnd.SetNoData(-9999))
	nd, ok := bnd.NoData()
	assert.True(t, ok)
	assert.Equal(t, -9999.0, nd)
	assert.Equal(t, MaskNoData, bnd.MaskFlags())

	assert.NoError(t, bnd.Fill(-9999, 0))
	assert.NoError(t, bnd.Write(0, 0, []float32{1, 2}, 2, 1))
	mask := make([]byte, 16)
	assert.NoError(t, bnd.MaskBand().Read(0, 0, mask, 4, 4))
	assert.Equal(t, byte(255), mask[0])
	assert.Equal(t, byte(255), mask[1])
	assert.Equal(t, byte(0), mask[2])

	assert.NoError(t, bnd.ClearNoData())
	_, ok = bnd.NoData()
	assert.False(t, ok)
}

func TestBandMask(t *testing.T) {
	ds := memRaster(t, 2, Byte, 8, 8)
	bnd := ds.Bands()[0]
	mbnd, err := bnd.CreateMask(MaskPerDataset)
	require.NoError(t, err)
	assert.Equal(t, MaskPerDataset, bnd.MaskFlags())
	assert.Equal(t, MaskPerDataset, ds.Bands()[1].MaskFlags())
	assert.NoError(t, mbnd.Fill(255, 0))

	ehc := eh()
	_, err = Band{}.CreateMask(MaskPerDataset, ErrLogger(ehc.ErrorHandler))
	assert.Error(t, err)
}

func TestBandIO(t *testing.T) {
	ds := memRaster(t, 1, Byte, 10, 10)
	bnd := ds.Bands()[0]

	buf := make([]byte, 100)
	for i := range buf {
		buf[i] = byte(i)
	}
	require.NoError(t, bnd.Write(0, 0, buf, 10, 10))

	sub := make([]byte, 4)
	require.NoError(t, bnd.Read(2, 3, sub, 2, 2))
	assert.Equal(t, []byte{32, 33, 42, 43}, sub)

	// type conversion
	f64 := make([]float64, 4)
	require.NoError(t, bnd.Read(2, 3, f64, 2, 2))
	assert.Equal(t, []float64{32, 33, 42, 43}, f64)

	// decimation of the whole band into a 5x5 buffer
	small := make([]byte, 25)
	require.NoError(t, bnd.Read(0, 0, small, 5, 5, Window(10, 10)))
	assert.Equal(t, byte(0), small[0])

	// interleaved buffer
	il := make([]byte, 8)
	require.NoError(t, bnd.Read(0, 0, il, 2, 2, PixelSpacing(2), LineSpacing(4)))
	assert.Equal(t, []byte{0, 0, 1, 0, 10, 0, 11, 0}, il)

	assert.ErrorIs(t, bnd.Read(0, 0, make([]byte, 3), 2, 2), ErrIllegalArg)
	assert.ErrorIs(t, bnd.Read(0, 0, []string{"a"}, 1, 1), ErrIllegalArg)
	assert.ErrorIs(t, bnd.Read(0, 0, sub, 0, 2), ErrIllegalArg)

	require.NoError(t, bnd.IO(IOWrite, 0, 0, []byte{7}, 1, 1, ConfigOption("GDAL_CACHEMAX=16")))
	one := make([]byte, 1)
	require.NoError(t, bnd.IO(IORead, 0, 0, one, 1, 1))
	assert.Equal(t, byte(7), one[0])

	ehc := eh()
	err := bnd.Read(8, 8, make([]byte, 16), 4, 4, ErrLogger(ehc.ErrorHandler))
	assert.Error(t, err)
	assert.Equal(t, 1, ehc.errs)
}

func TestBandBlocks(t *testing.T) {
	ds := memRaster(t, 1, Int16, 7, 3)
	bnd := ds.Bands()[0]
	st := bnd.Structure()
	bufLen := st.BlockLen()
	nbx, nby := st.BlockCount()

	n := 0
	for blk := range st.Blocks() {
		buf := make([]int16, bufLen)
		for i := range buf {
			buf[i] = int16(blk.BY*100 + blk.BX)
		}
		require.NoError(t, bnd.WriteBlock(blk.BX, blk.BY, buf))
		n++
	}
	assert.Equal(t, nbx*nby, n)

	buf := make([]int16, bufLen)
	require.NoError(t, bnd.ReadBlock(nbx-1, nby-1, buf))
	assert.Equal(t, int16((nby-1)*100+nbx-1), buf[0])

	assert.ErrorIs(t, bnd.ReadBlock(nbx, 0, buf), ErrIllegalArg)
	assert.ErrorIs(t, bnd.ReadBlock(0, 0, make([]byte, bufLen)), ErrIllegalArg)
	assert.ErrorIs(t, bnd.WriteBlock(0, 0, make([]int16, bufLen-1)), ErrIllegalArg)
}

func TestBandCopyWholeRaster(t *testing.T) {
	src := memRaster(t, 1, Byte, 5, 5)
	dst := memRaster(t, 1, Byte, 5, 5)
	bad := memRaster(t, 1, Byte, 6, 5)
	require.NoError(t, src.Bands()[0].Fill(42, 0))

	require.NoError(t, src.Bands()[0].CopyWholeRaster(dst.Bands()[0]))
	buf := make([]byte, 25)
	require.NoError(t, dst.Bands()[0].Read(0, 0, buf, 5, 5))
	for _, v := range buf {
		assert.Equal(t, byte(42), v)
	}
	assert.ErrorIs(t, src.Bands()[0].CopyWholeRaster(bad.Bands()[0]), ErrIllegalArg)

	other := memRaster(t, 1, Byte, 5, 5)
	require.NoError(t, src.Bands()[0].CopyWholeRaster(other.Bands()[0], SkipHoles(), Compressed()))
	require.NoError(t, other.Bands()[0].Read(0, 0, buf, 5, 5))
	assert.Equal(t, byte(42), buf[24])
}

func TestBandMinMax(t *testing.T) {
	ds := memRaster(t, 1, Float32, 3, 1)
	bnd := ds.Bands()[0]
	require.NoError(t, bnd.Write(0, 0, []float32{-3, 7, 2}, 3, 1))
	mm, err := bnd.ComputeMinMax(false)
	require.NoError(t, err)
	assert.Equal(t, [2]float64{-3, 7}, mm)

	_, tight := bnd.Minimum()
	assert.False(t, tight)
	_, tight = bnd.Maximum()
	assert.False(t, tight)
}

func TestBandOverviews(t *testing.T) {
	ds := memRaster(t, 1, Byte, 16, 16)
	bnd := ds.Bands()[0]
	assert.Equal(t, 0, bnd.OverviewCount())
	assert.Empty(t, bnd.Overviews())
	_, ok := bnd.Overview(0)
	assert.False(t, ok)
	assert.False(t, bnd.HasArbitraryOverviews())
	assert.Equal(t, bnd.Number(), bnd.SampleOverview(10).Number())
}
