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
	"math"

	"github.com/goccy/go-json"
	"github.com/lucasb-eyer/go-colorful"
)

//PaletteInterp defines the color interpretation of a ColorTable
type PaletteInterp C.GDALPaletteInterp

const (
	//GrayscalePalette is a grayscale palette with a single component per entry
	GrayscalePalette PaletteInterp = C.GPI_Gray
	//RGBPalette is a RGBA palette with 4 components per entry
	RGBPalette PaletteInterp = C.GPI_RGB
	//CMYKPalette is a CMYK palette with 4 components per entry
	CMYKPalette PaletteInterp = C.GPI_CMYK
	//HLSPalette is a HLS palette with 3 components per entry
	HLSPalette PaletteInterp = C.GPI_HLS
)

// String returns gdal's name of the palette interpretation ("Gray", "RGB", ...)
func (pi PaletteInterp) String() string {
	return C.GoString(C.GDALGetPaletteInterpretationName(C.GDALPaletteInterp(pi)))
}

// ColorEntry is a single color table entry. The meaning of the components depends
// on the table's PaletteInterp:
//
//	Gray: C1 gray level
//	RGB:  C1 red, C2 green, C3 blue, C4 alpha
//	CMYK: C1 cyan, C2 magenta, C3 yellow, C4 black
//	HLS:  C1 hue (degrees), C2 lightness, C3 saturation
//
// Components other than hue range from 0 to 255.
type ColorEntry struct {
	C1, C2, C3, C4 int16
}

func (ce ColorEntry) cEntry() C.GDALColorEntry {
	return C.GDALColorEntry{c1: C.short(ce.C1), c2: C.short(ce.C2), c3: C.short(ce.C3), c4: C.short(ce.C4)}
}

func colorEntryFromC(ce *C.GDALColorEntry) ColorEntry {
	return ColorEntry{C1: int16(ce.c1), C2: int16(ce.c2), C3: int16(ce.c3), C4: int16(ce.c4)}
}

func unit(c int16) float64 {
	return math.Max(0, math.Min(1, float64(c)/255))
}

func byteComponent(f float64) int16 {
	return int16(math.Round(math.Max(0, math.Min(1, f)) * 255))
}

// Color converts the entry to an RGB color, interpreting its components as pi
func (ce ColorEntry) Color(pi PaletteInterp) colorful.Color {
	switch pi {
	case GrayscalePalette:
		g := unit(ce.C1)
		return colorful.Color{R: g, G: g, B: g}
	case CMYKPalette:
		k := unit(ce.C4)
		return colorful.Color{
			R: (1 - unit(ce.C1)) * (1 - k),
			G: (1 - unit(ce.C2)) * (1 - k),
			B: (1 - unit(ce.C3)) * (1 - k),
		}
	case HLSPalette:
		return colorful.Hsl(float64(ce.C1), unit(ce.C3), unit(ce.C2)).Clamped()
	default:
		return colorful.Color{R: unit(ce.C1), G: unit(ce.C2), B: unit(ce.C3)}
	}
}

// ColorEntryFromColor converts c to an entry of a pi palette. RGB entries are opaque.
func ColorEntryFromColor(c colorful.Color, pi PaletteInterp) ColorEntry {
	c = c.Clamped()
	switch pi {
	case GrayscalePalette:
		return ColorEntry{C1: byteComponent(0.299*c.R + 0.587*c.G + 0.114*c.B)}
	case CMYKPalette:
		k := 1 - math.Max(c.R, math.Max(c.G, c.B))
		if k >= 1 {
			return ColorEntry{C4: 255}
		}
		return ColorEntry{
			C1: byteComponent((1 - c.R - k) / (1 - k)),
			C2: byteComponent((1 - c.G - k) / (1 - k)),
			C3: byteComponent((1 - c.B - k) / (1 - k)),
			C4: byteComponent(k),
		}
	case HLSPalette:
		h, s, l := c.Hsl()
		return ColorEntry{C1: int16(math.Round(h)) % 360, C2: byteComponent(l), C3: byteComponent(s)}
	default:
		return ColorEntry{C1: byteComponent(c.R), C2: byteComponent(c.G), C3: byteComponent(c.B), C4: 255}
	}
}

// ColorTable is a wrapper around a GDALColorTableH. Tables created with NewColorTable
// or Clone must be released with Close, tables returned by Band.ColorTable are owned
// by the band.
type ColorTable struct {
	handle  C.GDALColorTableH
	isOwned bool
}

// NewColorTable creates an empty color table
func NewColorTable(pi PaletteInterp) *ColorTable {
	return &ColorTable{handle: C.GDALCreateColorTable(C.GDALPaletteInterp(pi)), isOwned: true}
}

// Close releases the color table if it is owned, and detaches it otherwise
func (ct *ColorTable) Close() {
	if ct.handle == nil {
		return
	}
	if ct.isOwned {
		C.GDALDestroyColorTable(ct.handle)
	}
	ct.handle = nil
}

// Clone returns an owned copy of the color table
func (ct *ColorTable) Clone() *ColorTable {
	return &ColorTable{handle: C.GDALCloneColorTable(ct.handle), isOwned: true}
}

// PaletteInterp returns the interpretation of the table's entries
func (ct *ColorTable) PaletteInterp() PaletteInterp {
	return PaletteInterp(C.GDALGetPaletteInterpretation(ct.handle))
}

// EntryCount returns the number of entries in the table
func (ct *ColorTable) EntryCount() int {
	return int(C.GDALGetColorEntryCount(ct.handle))
}

// Entry returns the i'th entry, or false if i is out of range
func (ct *ColorTable) Entry(i int) (ColorEntry, bool) {
	if i < 0 || i >= ct.EntryCount() {
		return ColorEntry{}, false
	}
	ce := C.GDALGetColorEntry(ct.handle, C.int(i))
	if ce == nil {
		return ColorEntry{}, false
	}
	return colorEntryFromC(ce), true
}

// EntryAsRGB returns the i'th entry translated to RGB, or false if i is out of
// range or the table cannot be translated
func (ct *ColorTable) EntryAsRGB(i int) (ColorEntry, bool) {
	if i < 0 || i >= ct.EntryCount() {
		return ColorEntry{}, false
	}
	var ce C.GDALColorEntry
	if C.GDALGetColorEntryAsRGB(ct.handle, C.int(i), &ce) == 0 {
		return ColorEntry{}, false
	}
	return colorEntryFromC(&ce), true
}

// SetEntry sets the i'th entry. The table is grown with zero entries if i is past its end.
func (ct *ColorTable) SetEntry(i int, ce ColorEntry) error {
	if i < 0 {
		return fmt.Errorf("color entry index %d: %w", i, ErrIllegalArg)
	}
	cce := ce.cEntry()
	C.GDALSetColorEntry(ct.handle, C.int(i), &cce)
	return nil
}

// AddEntry appends ce to the table and returns its index
func (ct *ColorTable) AddEntry(ce ColorEntry) int {
	i := ct.EntryCount()
	cce := ce.cEntry()
	C.GDALSetColorEntry(ct.handle, C.int(i), &cce)
	return i
}

// CreateRamp fills the entries from startIndex to endIndex with a linear
// interpolation of startColor and endColor
func (ct *ColorTable) CreateRamp(startIndex int, startColor ColorEntry, endIndex int, endColor ColorEntry) error {
	if startIndex < 0 || endIndex < startIndex || endIndex > 255 {
		return fmt.Errorf("invalid ramp [%d,%d]: %w", startIndex, endIndex, ErrIllegalArg)
	}
	cstart, cend := startColor.cEntry(), endColor.cEntry()
	C.GDALCreateColorRamp(ct.handle, C.int(startIndex), &cstart, C.int(endIndex), &cend)
	return nil
}

// Entries returns a copy of all the table's entries
func (ct *ColorTable) Entries() []ColorEntry {
	n := ct.EntryCount()
	ret := make([]ColorEntry, n)
	for i := range ret {
		ret[i], _ = ct.Entry(i)
	}
	return ret
}

type colorTableJSON struct {
	PaletteInterp string     `json:"palette_interpretation"`
	Entries       [][4]int16 `json:"entries"`
}

// MarshalJSON implements json.Marshaler
func (ct *ColorTable) MarshalJSON() ([]byte, error) {
	entries := ct.Entries()
	js := colorTableJSON{PaletteInterp: ct.PaletteInterp().String(), Entries: make([][4]int16, len(entries))}
	for i, e := range entries {
		js.Entries[i] = [4]int16{e.C1, e.C2, e.C3, e.C4}
	}
	return json.Marshal(js)
}

// ColorTable returns the band's color table, or nil if the band has none. The
// returned table is owned by the band and must not be used after the band's dataset
// has been closed.
func (band Band) ColorTable() *ColorTable {
	hndl := C.GDALGetRasterColorTable(band.handle())
	if hndl == nil {
		return nil
	}
	return &ColorTable{handle: hndl, isOwned: false}
}

// SetColorTable sets a copy of ct as the band's color table. Passing a nil
// ct clears the band's color table.
func (band Band) SetColorTable(ct *ColorTable, opts ...BandOption) error {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	var hndl C.GDALColorTableH
	if ct != nil {
		hndl = ct.handle
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindSetColorTable(cgc.cPointer(), band.handle(), hndl)
	return cgc.close()
}
