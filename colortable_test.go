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
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorTable(t *testing.T) {
	ds := memRaster(t, 1, Byte, 10, 10)
	bnd := ds.Bands()[0]
	assert.Nil(t, bnd.ColorTable())

	ct := NewColorTable(CMYKPalette)
	defer ct.Close()
	assert.Equal(t, CMYKPalette, ct.PaletteInterp())
	assert.Equal(t, "CMYK", ct.PaletteInterp().String())
	assert.Equal(t, 0, ct.AddEntry(ColorEntry{1, 1, 1, 1}))
	assert.Equal(t, 1, ct.AddEntry(ColorEntry{2, 2, 2, 2}))
	assert.Equal(t, 2, ct.EntryCount())

	require.NoError(t, bnd.SetColorTable(ct))
	assert.NoError(t, bnd.SetColorInterp(CIPalette))
	ct2 := bnd.ColorTable()
	require.NotNil(t, ct2)
	assert.Equal(t, CMYKPalette, ct2.PaletteInterp())
	assert.Equal(t, ct.Entries(), ct2.Entries())

	// the band holds a copy
	require.NoError(t, ct.SetEntry(0, ColorEntry{9, 9, 9, 9}))
	e, ok := bnd.ColorTable().Entry(0)
	assert.True(t, ok)
	assert.Equal(t, ColorEntry{1, 1, 1, 1}, e)

	_, ok = ct.Entry(2)
	assert.False(t, ok)
	_, ok = ct.Entry(-1)
	assert.False(t, ok)
	assert.ErrorIs(t, ct.SetEntry(-1, ColorEntry{}), ErrIllegalArg)

	// clear
	require.NoError(t, bnd.SetColorTable(nil))
	assert.Nil(t, bnd.ColorTable())
}

func TestColorTableRamp(t *testing.T) {
	ct := NewColorTable(RGBPalette)
	defer ct.Close()
	require.NoError(t, ct.CreateRamp(0, ColorEntry{0, 0, 0, 255}, 10, ColorEntry{100, 200, 250, 255}))
	assert.Equal(t, 11, ct.EntryCount())
	e, _ := ct.Entry(5)
	assert.Equal(t, ColorEntry{50, 100, 125, 255}, e)
	e, _ = ct.Entry(10)
	assert.Equal(t, ColorEntry{100, 200, 250, 255}, e)

	assert.ErrorIs(t, ct.CreateRamp(10, ColorEntry{}, 5, ColorEntry{}), ErrIllegalArg)
	assert.ErrorIs(t, ct.CreateRamp(0, ColorEntry{}, 256, ColorEntry{}), ErrIllegalArg)

	cl := ct.Clone()
	cl.Close()
	cl.Close()
	assert.Equal(t, 11, ct.EntryCount())
}

func TestColorEntryConversions(t *testing.T) {
	red := colorful.Color{R: 1}
	assert.Equal(t, ColorEntry{255, 0, 0, 255}, ColorEntryFromColor(red, RGBPalette))
	assert.Equal(t, ColorEntry{0, 255, 255, 0}, ColorEntryFromColor(red, CMYKPalette))
	assert.Equal(t, ColorEntry{C1: 76}, ColorEntryFromColor(red, GrayscalePalette))
	assert.Equal(t, ColorEntry{C1: 0, C2: 128, C3: 255}, ColorEntryFromColor(red, HLSPalette))
	assert.Equal(t, ColorEntry{C4: 255}, ColorEntryFromColor(colorful.Color{}, CMYKPalette))

	for _, pi := range []PaletteInterp{RGBPalette, CMYKPalette, HLSPalette} {
		c := ColorEntryFromColor(red, pi).Color(pi)
		assert.InDelta(t, 1, c.R, 0.01, pi.String())
		assert.InDelta(t, 0, c.G, 0.01, pi.String())
		assert.InDelta(t, 0, c.B, 0.01, pi.String())
	}
	g := ColorEntry{C1: 255}.Color(GrayscalePalette)
	assert.Equal(t, colorful.Color{R: 1, G: 1, B: 1}, g)
}

func TestColorTableEntryAsRGB(t *testing.T) {
	ct := NewColorTable(GrayscalePalette)
	defer ct.Close()
	ct.AddEntry(ColorEntry{C1: 128})
	e, ok := ct.EntryAsRGB(0)
	require.True(t, ok)
	assert.Equal(t, [3]int16{128, 128, 128}, [3]int16{e.C1, e.C2, e.C3})
	_, ok = ct.EntryAsRGB(1)
	assert.False(t, ok)
}

func TestColorTableJSON(t *testing.T) {
	ct := NewColorTable(RGBPalette)
	defer ct.Close()
	ct.AddEntry(ColorEntry{1, 2, 3, 4})
	b, err := json.Marshal(ct)
	require.NoError(t, err)
	assert.JSONEq(t, `{"palette_interpretation":"RGB","entries":[[1,2,3,4]]}`, string(b))
}
