package main

import (
	"fmt"
	"io"
	"os"

	"github.com/airbusgeo/geobind"
	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
)

var gridAlgorithm string
var gridSize string
var gridOutput string
var layerName string
var attributeFilter string

func init() {
	gridCommand.Flags().StringVar(&gridAlgorithm, "algorithm", "invdist", "gdal grid algorithm description, e.g. invdist:power=2")
	gridCommand.Flags().StringVar(&gridSize, "size", "256x256", "output size as WxH")
	gridCommand.Flags().StringVarP(&gridOutput, "out", "o", "", "output geotiff (defaults to a generated name, - for stdout)")

	featuresCommand.Flags().StringVarP(&layerName, "layer", "l", "", "layer name (defaults to the first layer)")
	featuresCommand.Flags().StringVarP(&attributeFilter, "where", "w", "", "OGR SQL attribute filter")
}

var gridCommand = &cobra.Command{
	Use:   "grid points.csv",
	Short: "interpolate x,y,z points onto a float64 geotiff",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, err := geobind.ParseGridAlgorithm(gridAlgorithm)
		if err != nil {
			return err
		}
		nx, ny, err := parseSize(gridSize)
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		pts, err := readPoints(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		out := gridOutput
		switch out {
		case "":
			out = "grid-" + uuid.NewString() + ".tif"
		case "-":
			out = geobind.TempMemName(".tif")
			defer geobind.VSIUnlink(out)
		}
		bounds := pts.bounds()
		buf := make([]float64, nx*ny)
		if err := geobind.GridCreate(alg, pts.x, pts.y, pts.z, bounds, nx, ny, buf); err != nil {
			return err
		}
		ds, err := geobind.Create(geobind.GTiff, out, 1, geobind.Float64, nx, ny)
		if err != nil {
			return err
		}
		// rows are produced from MinY upwards
		gt := [6]float64{bounds[0], (bounds[2] - bounds[0]) / float64(nx), 0,
			bounds[1], 0, (bounds[3] - bounds[1]) / float64(ny)}
		if err := ds.SetGeoTransform(gt); err != nil {
			ds.Close()
			return err
		}
		if err := ds.Bands()[0].Write(0, 0, buf, nx, ny); err != nil {
			ds.Close()
			return err
		}
		if err := ds.Close(); err != nil {
			return err
		}
		geobind.Logger().Info("grid written", "file", out, "points", len(pts.x), "algorithm", alg.String())
		if gridOutput == "-" {
			return copyVSIFile(cmd.OutOrStdout(), out)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func copyVSIFile(w io.Writer, name string) error {
	vf, err := geobind.VSIOpen(name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, vf); err != nil {
		vf.Close()
		return fmt.Errorf("copy %s: %w", name, err)
	}
	return vf.Close()
}

var featuresCommand = &cobra.Command{
	Use:   "features dataset",
	Short: "print the features of a vector layer as a geojson feature collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := geobind.Open(args[0], geobind.VectorOnly())
		if err != nil {
			return err
		}
		defer ds.Close()
		layer, err := selectLayer(ds, layerName)
		if err != nil {
			return err
		}
		if err := layer.SetAttributeFilter(attributeFilter); err != nil {
			return fmt.Errorf("filter %q: %w", attributeFilter, err)
		}
		fc, err := featureCollection(layer)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), fc)
	},
}

func selectLayer(ds *geobind.Dataset, name string) (geobind.Layer, error) {
	if name != "" {
		l := ds.LayerByName(name)
		if l == nil {
			return geobind.Layer{}, fmt.Errorf("no layer named %q", name)
		}
		return *l, nil
	}
	layers := ds.Layers()
	if len(layers) == 0 {
		return geobind.Layer{}, fmt.Errorf("dataset has no layers")
	}
	return layers[0], nil
}

func featureCollection(layer geobind.Layer) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	var extent geobind.Envelope
	hasExtent := false
	layer.ResetReading()
	for {
		feat := layer.NextFeature()
		if feat == nil {
			break
		}
		if g := feat.Geometry(); g != nil && !g.IsEmpty() {
			env := g.Envelope()
			if hasExtent {
				env = extent.Union(env)
			}
			extent, hasExtent = env, true
		}
		gf, err := toGeoJSON(feat)
		feat.Close()
		if err != nil {
			return nil, err
		}
		fc.Append(gf)
	}
	if hasExtent {
		b := extent.Bounds()
		fc.BBox = geojson.BBox(b[:])
	}
	return fc, nil
}

func toGeoJSON(feat *geobind.Feature) (*geojson.Feature, error) {
	var gf *geojson.Feature
	if g := feat.Geometry(); g != nil && !g.IsEmpty() {
		og, err := g.Orb()
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", feat.FID(), err)
		}
		gf = geojson.NewFeature(og)
	} else {
		gf = &geojson.Feature{Type: "Feature", Properties: geojson.Properties{}}
	}
	gf.ID = feat.FID()
	for name, fld := range feat.Fields() {
		switch v := fld.Value().(type) {
		case []byte:
			gf.Properties[name] = fmt.Sprintf("%x", v)
		case nil:
			gf.Properties[name] = nil
		default:
			gf.Properties[name] = v
		}
	}
	return gf, nil
}
