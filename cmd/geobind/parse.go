package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/airbusgeo/geobind"
	"github.com/lucasb-eyer/go-colorful"
)

type rampStop struct {
	index int
	color geobind.ColorEntry
}

// parseRampStop parses "index:r,g,b[,a]" or "index:#rrggbb"
func parseRampStop(s string) (rampStop, error) {
	idx, col, ok := strings.Cut(s, ":")
	if !ok {
		return rampStop{}, fmt.Errorf("invalid ramp stop %q: expecting index:color", s)
	}
	index, err := strconv.Atoi(idx)
	if err != nil || index < 0 || index > 65535 {
		return rampStop{}, fmt.Errorf("invalid ramp stop index %q", idx)
	}
	if strings.HasPrefix(col, "#") {
		c, err := colorful.Hex(col)
		if err != nil {
			return rampStop{}, fmt.Errorf("invalid ramp stop color %q: %w", col, err)
		}
		return rampStop{index: index, color: geobind.ColorEntryFromColor(c, geobind.RGBPalette)}, nil
	}
	comps := strings.Split(col, ",")
	if len(comps) != 3 && len(comps) != 4 {
		return rampStop{}, fmt.Errorf("invalid ramp stop color %q: expecting 3 or 4 components", col)
	}
	vals := [4]int16{0, 0, 0, 255}
	for i, c := range comps {
		v, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil || v < 0 || v > 255 {
			return rampStop{}, fmt.Errorf("invalid color component %q", c)
		}
		vals[i] = int16(v)
	}
	return rampStop{index: index, color: geobind.ColorEntry{C1: vals[0], C2: vals[1], C3: vals[2], C4: vals[3]}}, nil
}

// parseSize parses "WxH"
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: expecting WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid width %q", ws)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid height %q", hs)
	}
	return w, h, nil
}

// points holds scattered x,y,z samples
type points struct {
	x, y, z []float64
}

// bounds returns [MinX, MinY, MaxX, MaxY]
func (p points) bounds() [4]float64 {
	b := [4]float64{p.x[0], p.y[0], p.x[0], p.y[0]}
	for i := range p.x {
		b[0] = min(b[0], p.x[i])
		b[1] = min(b[1], p.y[i])
		b[2] = max(b[2], p.x[i])
		b[3] = max(b[3], p.y[i])
	}
	return b
}

// readPoints reads x,y,z records. A first line that does not parse as numbers is
// treated as a header. Lines starting with # are ignored.
func readPoints(r io.Reader) (points, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	p := points{}
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return p, err
		}
		line++
		var vals [3]float64
		var perr error
		for i, f := range rec {
			if vals[i], perr = strconv.ParseFloat(f, 64); perr != nil {
				break
			}
		}
		if perr != nil {
			if line == 1 {
				continue
			}
			l, _ := cr.FieldPos(0)
			return p, fmt.Errorf("line %d: %w", l, perr)
		}
		p.x = append(p.x, vals[0])
		p.y = append(p.y, vals[1])
		p.z = append(p.z, vals[2])
	}
	if len(p.x) == 0 {
		return p, fmt.Errorf("no points")
	}
	return p, nil
}
