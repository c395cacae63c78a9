package main

import (
	"fmt"

	"github.com/airbusgeo/geobind"
	"github.com/spf13/cobra"
)

var bandNumber int
var buckets int
var histMin, histMax float64
var approximate bool
var rampStops []string

func init() {
	infoCommand.Flags().BoolVarP(&approximate, "approx", "a", false, "compute approximate statistics")

	histogramCommand.Flags().IntVarP(&bandNumber, "band", "b", 1, "1-based band number")
	histogramCommand.Flags().IntVarP(&buckets, "buckets", "n", 0, "number of buckets (0 for the default histogram)")
	histogramCommand.Flags().Float64Var(&histMin, "min", -0.5, "lower bound of the first bucket")
	histogramCommand.Flags().Float64Var(&histMax, "max", 255.5, "upper bound of the last bucket")
	histogramCommand.Flags().BoolVarP(&approximate, "approx", "a", false, "compute an approximate histogram")

	colortableCommand.Flags().IntVarP(&bandNumber, "band", "b", 1, "1-based band number")
	colortableCommand.Flags().StringSliceVar(&rampStops, "ramp", nil, "index:r,g,b[,a] stops of a color ramp to write to the band")
}

func openBand(name string, number int, opts ...geobind.OpenOption) (*geobind.Dataset, geobind.Band, error) {
	ds, err := geobind.Open(name, append(opts, geobind.RasterOnly())...)
	if err != nil {
		return nil, geobind.Band{}, err
	}
	bands := ds.Bands()
	if number < 1 || number > len(bands) {
		_ = ds.Close()
		return nil, geobind.Band{}, fmt.Errorf("band %d out of range [1,%d]", number, len(bands))
	}
	return ds, bands[number-1], nil
}

type bandInfo struct {
	Number      int                 `json:"number"`
	DataType    string              `json:"data_type"`
	BlockSize   [2]int              `json:"block_size"`
	ColorInterp string              `json:"color_interpretation"`
	NoData      *float64            `json:"nodata,omitempty"`
	Scale       *float64            `json:"scale,omitempty"`
	Offset      *float64            `json:"offset,omitempty"`
	Unit        string              `json:"unit,omitempty"`
	Overviews   int                 `json:"overviews"`
	Statistics  *geobind.Statistics `json:"statistics,omitempty"`
	ColorTable  *geobind.ColorTable `json:"color_table,omitempty"`
	Metadata    map[string]string   `json:"metadata,omitempty"`
}

type datasetInfo struct {
	Driver       string      `json:"driver"`
	Size         [2]int      `json:"size"`
	GeoTransform *[6]float64 `json:"geotransform,omitempty"`
	Projection   string      `json:"projection,omitempty"`
	Bands        []bandInfo  `json:"bands"`
}

func describeBand(band geobind.Band, approx bool) (bandInfo, error) {
	st := band.Structure()
	bi := bandInfo{
		Number:      band.Number(),
		DataType:    st.DataType.String(),
		BlockSize:   [2]int{st.BlockSizeX, st.BlockSizeY},
		ColorInterp: band.ColorInterp().Name(),
		Unit:        band.UnitType(),
		Overviews:   band.OverviewCount(),
		ColorTable:  band.ColorTable(),
		Metadata:    band.Metadatas(),
	}
	if nd, ok := band.NoData(); ok {
		bi.NoData = &nd
	}
	if s, ok := band.Scale(); ok {
		bi.Scale = &s
	}
	if o, ok := band.Offset(); ok {
		bi.Offset = &o
	}
	var sopts []geobind.StatisticsOption
	if approx {
		sopts = append(sopts, geobind.StatisticsApproximate())
	}
	stats, err := band.ComputeStatistics(sopts...)
	if err != nil {
		return bi, fmt.Errorf("band %d statistics: %w", bi.Number, err)
	}
	bi.Statistics = &stats
	return bi, nil
}

var infoCommand = &cobra.Command{
	Use:   "info raster",
	Short: "print band information, statistics and color tables as json",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := geobind.Open(args[0], geobind.RasterOnly())
		if err != nil {
			return err
		}
		defer ds.Close()
		st := ds.Structure()
		info := datasetInfo{
			Driver:     ds.Driver().ShortName(),
			Size:       [2]int{st.SizeX, st.SizeY},
			Projection: ds.Projection(),
		}
		if gt, err := ds.GeoTransform(geobind.ErrLogger(quiet)); err == nil {
			info.GeoTransform = &gt
		}
		for _, band := range ds.Bands() {
			bi, err := describeBand(band, approximate)
			if err != nil {
				return err
			}
			info.Bands = append(info.Bands, bi)
		}
		return writeJSON(cmd.OutOrStdout(), info)
	},
}

// quiet drops gdal warnings and turns failures into errors without logging them
func quiet(ec geobind.ErrorCategory, code int, msg string) error {
	if ec >= geobind.CE_Failure {
		return fmt.Errorf("%s", msg)
	}
	return nil
}

var histogramCommand = &cobra.Command{
	Use:   "histogram raster",
	Short: "print a band's histogram as json",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, band, err := openBand(args[0], bandNumber)
		if err != nil {
			return err
		}
		defer ds.Close()
		var hopts []geobind.HistogramOption
		if buckets > 0 {
			hopts = append(hopts, geobind.Intervals(buckets, histMin, histMax))
		}
		if approximate {
			hopts = append(hopts, geobind.Approximate())
		}
		h, err := band.Histogram(hopts...)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), h)
	},
}

var colortableCommand = &cobra.Command{
	Use:   "colortable raster",
	Short: "print a band's color table as json, optionally replacing it with a ramp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var oopts []geobind.OpenOption
		if len(rampStops) > 0 {
			oopts = append(oopts, geobind.Update())
		}
		ds, band, err := openBand(args[0], bandNumber, oopts...)
		if err != nil {
			return err
		}
		defer ds.Close()
		if len(rampStops) > 0 {
			ct, err := buildRamp(rampStops)
			if err != nil {
				return err
			}
			defer ct.Close()
			if err := band.SetColorTable(ct); err != nil {
				return err
			}
			if err := band.SetColorInterp(geobind.CIPalette); err != nil {
				return err
			}
		}
		ct := band.ColorTable()
		if ct == nil {
			return fmt.Errorf("band %d has no color table", bandNumber)
		}
		return writeJSON(cmd.OutOrStdout(), ct)
	},
}

// buildRamp creates an RGB color table interpolating between consecutive stops
func buildRamp(stops []string) (*geobind.ColorTable, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("a ramp needs at least 2 stops, got %d", len(stops))
	}
	parsed := make([]rampStop, len(stops))
	for i, s := range stops {
		st, err := parseRampStop(s)
		if err != nil {
			return nil, err
		}
		if i > 0 && st.index <= parsed[i-1].index {
			return nil, fmt.Errorf("ramp stop %q is not after index %d", s, parsed[i-1].index)
		}
		parsed[i] = st
	}
	ct := geobind.NewColorTable(geobind.RGBPalette)
	for i := 1; i < len(parsed); i++ {
		if err := ct.CreateRamp(parsed[i-1].index, parsed[i-1].color, parsed[i].index, parsed[i].color); err != nil {
			ct.Close()
			return nil, err
		}
	}
	return ct, nil
}
