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
	"strconv"
	"strings"
	"unsafe"
)

// GridAlgorithm is an interpolation algorithm used by GridCreate. Its String()
// method returns the algorithm in gdal's "name:key=value:..." syntax.
//
// For all algorithms, fields left to their zero value are not passed to gdal,
// which then uses its own defaults.
type GridAlgorithm interface {
	fmt.Stringer
	gridAlgorithm()
}

type gridOptionWriter struct {
	sb strings.Builder
}

func newGridOptionWriter(name string) *gridOptionWriter {
	w := &gridOptionWriter{}
	w.sb.WriteString(name)
	return w
}

func (w *gridOptionWriter) float(key string, v float64) {
	if v != 0 {
		w.sb.WriteString(":" + key + "=" + strconv.FormatFloat(v, 'g', -1, 64))
	}
}

func (w *gridOptionWriter) integer(key string, v int) {
	if v != 0 {
		w.sb.WriteString(":" + key + "=" + strconv.Itoa(v))
	}
}

func (w *gridOptionWriter) String() string {
	return w.sb.String()
}

// InverseDistanceToAPower is the "invdist" algorithm
type InverseDistanceToAPower struct {
	Power     float64
	Smoothing float64
	Radius1   float64
	Radius2   float64
	Angle     float64
	MaxPoints int
	MinPoints int
	NoData    float64
}

func (InverseDistanceToAPower) gridAlgorithm() {}

func (a InverseDistanceToAPower) String() string {
	w := newGridOptionWriter("invdist")
	w.float("power", a.Power)
	w.float("smoothing", a.Smoothing)
	w.float("radius1", a.Radius1)
	w.float("radius2", a.Radius2)
	w.float("angle", a.Angle)
	w.integer("max_points", a.MaxPoints)
	w.integer("min_points", a.MinPoints)
	w.float("nodata", a.NoData)
	return w.String()
}

// InverseDistanceToAPowerNearestNeighbor is the "invdistnn" algorithm, which only
// considers the points within Radius
type InverseDistanceToAPowerNearestNeighbor struct {
	Power     float64
	Smoothing float64
	Radius    float64
	MaxPoints int
	MinPoints int
	NoData    float64
}

func (InverseDistanceToAPowerNearestNeighbor) gridAlgorithm() {}

func (a InverseDistanceToAPowerNearestNeighbor) String() string {
	w := newGridOptionWriter("invdistnn")
	w.float("power", a.Power)
	w.float("smoothing", a.Smoothing)
	w.float("radius", a.Radius)
	w.integer("max_points", a.MaxPoints)
	w.integer("min_points", a.MinPoints)
	w.float("nodata", a.NoData)
	return w.String()
}

// MovingAverage is the "average" algorithm
type MovingAverage struct {
	Radius1   float64
	Radius2   float64
	Angle     float64
	MinPoints int
	NoData    float64
}

func (MovingAverage) gridAlgorithm() {}

func (a MovingAverage) String() string {
	w := newGridOptionWriter("average")
	w.float("radius1", a.Radius1)
	w.float("radius2", a.Radius2)
	w.float("angle", a.Angle)
	w.integer("min_points", a.MinPoints)
	w.float("nodata", a.NoData)
	return w.String()
}

// NearestNeighbor is the "nearest" algorithm
type NearestNeighbor struct {
	Radius1 float64
	Radius2 float64
	Angle   float64
	NoData  float64
}

func (NearestNeighbor) gridAlgorithm() {}

func (a NearestNeighbor) String() string {
	w := newGridOptionWriter("nearest")
	w.float("radius1", a.Radius1)
	w.float("radius2", a.Radius2)
	w.float("angle", a.Angle)
	w.float("nodata", a.NoData)
	return w.String()
}

// DataMetric is the statistic computed by the DataMetrics algorithm
type DataMetric string

const (
	MetricMinimum               DataMetric = "minimum"
	MetricMaximum               DataMetric = "maximum"
	MetricRange                 DataMetric = "range"
	MetricCount                 DataMetric = "count"
	MetricAverageDistance       DataMetric = "average_distance"
	MetricAverageDistancePoints DataMetric = "average_distance_pts"
)

// DataMetrics computes a statistic of the points found in the search ellipse
type DataMetrics struct {
	Metric    DataMetric
	Radius1   float64
	Radius2   float64
	Angle     float64
	MinPoints int
	NoData    float64
}

func (DataMetrics) gridAlgorithm() {}

func (a DataMetrics) String() string {
	w := newGridOptionWriter(string(a.Metric))
	w.float("radius1", a.Radius1)
	w.float("radius2", a.Radius2)
	w.float("angle", a.Angle)
	w.integer("min_points", a.MinPoints)
	w.float("nodata", a.NoData)
	return w.String()
}

// Linear is the "linear" algorithm, interpolating on a Delaunay triangulation
// of the points. Points outside of the triangulation are interpolated with the
// nearest neighbor if closer than Radius.
type Linear struct {
	Radius float64
	NoData float64
}

func (Linear) gridAlgorithm() {}

func (a Linear) String() string {
	w := newGridOptionWriter("linear")
	w.float("radius", a.Radius)
	w.float("nodata", a.NoData)
	return w.String()
}

// ParseGridAlgorithm parses an algorithm description in gdal's syntax, e.g.
// "invdist:power=3:radius1=10". The description is validated by gdal before
// being converted to its typed representation.
func ParseGridAlgorithm(desc string, opts ...GridCreateOption) (GridAlgorithm, error) {
	gopts := gridCreateOpts{}
	for _, o := range opts {
		o.setGridCreateOpt(&gopts)
	}
	cdesc := C.CString(desc)
	defer C.free(unsafe.Pointer(cdesc))
	cgc := createCGOContext(gopts.config, gopts.errorHandler)
	C.geobindGridAlgorithm(cgc.cPointer(), cdesc)
	if err := cgc.close(); err != nil {
		return nil, err
	}

	parts := strings.Split(desc, ":")
	kv := make(map[string]string, len(parts)-1)
	for _, p := range parts[1:] {
		k, v, _ := strings.Cut(p, "=")
		kv[strings.ToLower(k)] = v
	}
	var perr error
	f := func(key string) float64 {
		v, ok := kv[key]
		if !ok || perr != nil {
			return 0
		}
		ret, err := strconv.ParseFloat(v, 64)
		if err != nil {
			perr = fmt.Errorf("invalid %s value %q: %w", key, v, ErrIllegalArg)
		}
		return ret
	}
	i := func(key string) int {
		return int(f(key))
	}

	var alg GridAlgorithm
	switch name := strings.ToLower(parts[0]); name {
	case "invdist":
		alg = InverseDistanceToAPower{Power: f("power"), Smoothing: f("smoothing"), Radius1: f("radius1"),
			Radius2: f("radius2"), Angle: f("angle"), MaxPoints: i("max_points"), MinPoints: i("min_points"), NoData: f("nodata")}
	case "invdistnn":
		alg = InverseDistanceToAPowerNearestNeighbor{Power: f("power"), Smoothing: f("smoothing"), Radius: f("radius"),
			MaxPoints: i("max_points"), MinPoints: i("min_points"), NoData: f("nodata")}
	case "average":
		alg = MovingAverage{Radius1: f("radius1"), Radius2: f("radius2"), Angle: f("angle"),
			MinPoints: i("min_points"), NoData: f("nodata")}
	case "nearest":
		alg = NearestNeighbor{Radius1: f("radius1"), Radius2: f("radius2"), Angle: f("angle"), NoData: f("nodata")}
	case "linear":
		alg = Linear{Radius: f("radius"), NoData: f("nodata")}
	case string(MetricMinimum), string(MetricMaximum), string(MetricRange), string(MetricCount),
		string(MetricAverageDistance), string(MetricAverageDistancePoints):
		alg = DataMetrics{Metric: DataMetric(name), Radius1: f("radius1"), Radius2: f("radius2"),
			Angle: f("angle"), MinPoints: i("min_points"), NoData: f("nodata")}
	default:
		return nil, fmt.Errorf("unsupported grid algorithm %q: %w", parts[0], ErrNotSupported)
	}
	if perr != nil {
		return nil, perr
	}
	return alg, nil
}

// GridCreate interpolates the scattered points x/y/z onto a regular grid of nx*ny
// pixels covering bounds ([MinX, MinY, MaxX, MaxY]), and stores the result in buffer,
// whose type determines the output data type.
func GridCreate(alg GridAlgorithm, x, y, z []float64, bounds [4]float64, nx, ny int, buffer interface{}, opts ...GridCreateOption) error {
	if len(x) != len(y) || len(x) != len(z) {
		return fmt.Errorf("x, y and z must have the same length: %w", ErrIllegalArg)
	}
	if len(x) == 0 {
		return fmt.Errorf("no points: %w", ErrIllegalArg)
	}
	if nx <= 0 || ny <= 0 {
		return fmt.Errorf("invalid grid size %dx%d: %w", nx, ny, ErrIllegalArg)
	}
	dtype, err := checkBuffer(buffer, nx*ny)
	if err != nil {
		return err
	}
	if l := bufferLen(buffer); l != nx*ny {
		return fmt.Errorf("buffer length %d does not match grid size %dx%d: %w", l, nx, ny, ErrIllegalArg)
	}
	gopts := gridCreateOpts{}
	for _, o := range opts {
		o.setGridCreateOpt(&gopts)
	}
	calg := C.CString(alg.String())
	defer C.free(unsafe.Pointer(calg))
	cx, cy, cz := cDoubleArray(x), cDoubleArray(y), cDoubleArray(z)
	defer C.free(unsafe.Pointer(cx))
	defer C.free(unsafe.Pointer(cy))
	defer C.free(unsafe.Pointer(cz))
	cbuf := cBuffer(buffer, nx*ny)

	cgc := createCGOContext(gopts.config, gopts.errorHandler)
	C.geobindGridCreate(cgc.cPointer(), calg, C.GUInt32(len(x)), cx, cy, cz,
		C.double(bounds[0]), C.double(bounds[2]), C.double(bounds[1]), C.double(bounds[3]),
		C.GUInt32(nx), C.GUInt32(ny), C.GDALDataType(dtype), cbuf)
	return cgc.close()
}
