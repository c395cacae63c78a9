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

// Statistics on a given band.
type Statistics struct {
	Min, Max, Mean, Std float64
}

type statisticsOpts struct {
	approx       int
	force        int
	errorHandler ErrorHandler
}

// StatisticsOption is an option that can be passed to Band.GetStatistics() and
// Band.ComputeStatistics()
//
// Available StatisticsOptions are:
//
// • StatisticsApproximate
//
// • Force
//
// • ErrLogger
type StatisticsOption interface {
	setStatisticsOpt(so *statisticsOpts)
}

type approxOkOption struct{}

func (aoo approxOkOption) setStatisticsOpt(so *statisticsOpts) {
	so.approx = 1
}

// StatisticsApproximate allows the statistics to be computed on overviews or a subset of all tiles.
func StatisticsApproximate() interface {
	StatisticsOption
} {
	return approxOkOption{}
}

type forceOption struct{}

func (fo forceOption) setStatisticsOpt(so *statisticsOpts) {
	so.force = 1
}

// Force makes GetStatistics compute the statistics when none are cached on the band.
func Force() interface {
	StatisticsOption
} {
	return forceOption{}
}

// GetStatistics returns the band's statistics.
//
// Only cached statistics are returned unless Force() is used, in which case they are
// computed if needed. It returns false and no error if no statistics are available.
func (band Band) GetStatistics(opts ...StatisticsOption) (Statistics, bool, error) {
	sopt := statisticsOpts{}
	for _, s := range opts {
		s.setStatisticsOpt(&sopt)
	}
	var min, max, mean, std C.double
	cgc := createCGOContext(nil, sopt.errorHandler)
	ret := C.geobindGetStatistics(cgc.cPointer(), band.handle(), C.int(sopt.approx), C.int(sopt.force),
		&min, &max, &mean, &std)
	if err := cgc.close(); err != nil {
		return Statistics{}, false, err
	}
	if ret == 0 {
		return Statistics{}, false, nil
	}
	return Statistics{Min: float64(min), Max: float64(max), Mean: float64(mean), Std: float64(std)}, true, nil
}

// ComputeStatistics scans the band to compute its statistics, and caches them
// on the band. Force() has no effect.
func (band Band) ComputeStatistics(opts ...StatisticsOption) (Statistics, error) {
	sopt := statisticsOpts{}
	for _, s := range opts {
		s.setStatisticsOpt(&sopt)
	}
	var min, max, mean, std C.double
	cgc := createCGOContext(nil, sopt.errorHandler)
	C.geobindComputeStatistics(cgc.cPointer(), band.handle(), C.int(sopt.approx), &min, &max, &mean, &std)
	if err := cgc.close(); err != nil {
		return Statistics{}, err
	}
	return Statistics{Min: float64(min), Max: float64(max), Mean: float64(mean), Std: float64(std)}, nil
}

// SetStatistics stores statistics on the band
func (band Band) SetStatistics(stats Statistics, opts ...BandOption) error {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindSetStatistics(cgc.cPointer(), band.handle(), C.double(stats.Min), C.double(stats.Max),
		C.double(stats.Mean), C.double(stats.Std))
	return cgc.close()
}

// ClearStatistics removes the statistics stored on the band's dataset. gdal only
// supports clearing the statistics of all bands of a dataset at once.
func (band Band) ClearStatistics(opts ...BandOption) error {
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	ds := band.Dataset()
	if ds == nil {
		return nil
	}
	return ds.ClearStatistics(ErrLogger(bo.errorHandler))
}
