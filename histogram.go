package geobind

//#include "geobind.h"
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/goccy/go-json"
)

// Histogram is a band's histogram.
type Histogram struct {
	min, max float64
	counts   []uint64
}

// NewHistogram creates a histogram of len(counts) buckets evenly spanning [min,max]
func NewHistogram(min, max float64, counts []uint64) Histogram {
	return Histogram{min: min, max: max, counts: append([]uint64(nil), counts...)}
}

// Bucket is a histogram entry. It spans [Min,Max] and contains Count entries.
type Bucket struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count uint64  `json:"count"`
}

//Len returns the number of buckets contained in the histogram
func (h Histogram) Len() int {
	return len(h.counts)
}

//Bucket returns the i'th bucket in the histogram. i must be between 0 and Len()-1.
func (h Histogram) Bucket(i int) Bucket {
	width := (h.max - h.min) / float64(len(h.counts))
	return Bucket{
		Min:   h.min + width*float64(i),
		Max:   h.min + width*float64(i+1),
		Count: h.counts[i],
	}
}

// Min returns the lower bound of the first bucket
func (h Histogram) Min() float64 {
	return h.min
}

// Max returns the upper bound of the last bucket
func (h Histogram) Max() float64 {
	return h.max
}

// Counts returns a copy of the bucket counts
func (h Histogram) Counts() []uint64 {
	return append([]uint64(nil), h.counts...)
}

// Total returns the sum of all bucket counts
func (h Histogram) Total() uint64 {
	var t uint64
	for _, c := range h.counts {
		t += c
	}
	return t
}

type histogramJSON struct {
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Counts []uint64 `json:"counts"`
}

// MarshalJSON implements json.Marshaler
func (h Histogram) MarshalJSON() ([]byte, error) {
	return json.Marshal(histogramJSON{Min: h.min, Max: h.max, Counts: h.counts})
}

// UnmarshalJSON implements json.Unmarshaler
func (h *Histogram) UnmarshalJSON(b []byte) error {
	js := histogramJSON{}
	if err := json.Unmarshal(b, &js); err != nil {
		return err
	}
	h.min, h.max, h.counts = js.Min, js.Max, js.Counts
	return nil
}

type histogramOpts struct {
	approx         int
	includeOutside int
	min, max       float64
	buckets        int32
	errorHandler   ErrorHandler
}

// HistogramOption is an option that can be passed to Band.Histogram()
//
// Available HistogramOptions are:
//
// • Approximate() to allow the algorithm to operate on a subset of the full resolution data
//
// • Intervals(count int, min,max float64) to compute a histogram with count buckets, spanning [min,max].
// Each bucket will be (max-min)/count wide. If not provided, the default histogram will be returned.
//
// • IncludeOutOfRange() to populate the first and last bucket with values under/over the specified min/max
// when used in conjuntion with Intervals()
//
// • ErrLogger
type HistogramOption interface {
	setHistogramOpt(ho *histogramOpts)
}

type includeOutsideOpt struct{}

func (ioo includeOutsideOpt) setHistogramOpt(ho *histogramOpts) {
	ho.includeOutside = 1
}

// IncludeOutOfRange populates the first and last bucket with values under/over the specified min/max
// when used in conjuntion with Intervals()
func IncludeOutOfRange() interface {
	HistogramOption
} {
	return includeOutsideOpt{}
}

type approximateOkOption struct{}

func (aoo approximateOkOption) setHistogramOpt(ho *histogramOpts) {
	ho.approx = 1
}

// Approximate allows the histogram algorithm to operate on a subset of the full resolution data
func Approximate() interface {
	HistogramOption
} {
	return approximateOkOption{}
}

type intervalsOption struct {
	min, max float64
	buckets  int32
}

func (io intervalsOption) setHistogramOpt(ho *histogramOpts) {
	ho.min = io.min
	ho.max = io.max
	ho.buckets = io.buckets
}

// Intervals computes a histogram with count buckets, spanning [min,max].
// Each bucket will be (max-min)/count wide. If not provided, the default histogram will be returned.
func Intervals(count int, min, max float64) interface {
	HistogramOption
} {
	return intervalsOption{min: min, max: max, buckets: int32(count)}
}

// Histogram computes the band's histogram. Without the Intervals option, the default
// histogram is returned, and computed if the band does not hold one.
func (band Band) Histogram(opts ...HistogramOption) (Histogram, error) {
	hopt := histogramOpts{}
	for _, o := range opts {
		o.setHistogramOpt(&hopt)
	}
	if hopt.buckets == 0 {
		h, _, err := band.DefaultHistogram(true, ErrLogger(hopt.errorHandler))
		return h, err
	}
	if hopt.buckets < 0 {
		return Histogram{}, fmt.Errorf("invalid bucket count %d: %w", hopt.buckets, ErrIllegalArg)
	}
	values := make([]C.GUIntBig, hopt.buckets)
	cgc := createCGOContext(nil, hopt.errorHandler)
	C.geobindHistogram(cgc.cPointer(), band.handle(), C.double(hopt.min), C.double(hopt.max), C.int(hopt.buckets),
		&values[0], C.int(hopt.includeOutside), C.int(hopt.approx))
	if err := cgc.close(); err != nil {
		return Histogram{}, err
	}
	h := Histogram{min: hopt.min, max: hopt.max, counts: make([]uint64, len(values))}
	for i, v := range values {
		h.counts[i] = uint64(v)
	}
	return h, nil
}

// DefaultHistogram returns the histogram stored on the band. If none is stored and force
// is true, a histogram is computed, otherwise false is returned.
func (band Band) DefaultHistogram(force bool, opts ...HistogramOption) (Histogram, bool, error) {
	hopt := histogramOpts{}
	for _, o := range opts {
		o.setHistogramOpt(&hopt)
	}
	var cmin, cmax C.double
	var cbuckets C.int
	var values *C.GUIntBig
	cforce := C.int(0)
	if force {
		cforce = 1
	}
	cgc := createCGOContext(nil, hopt.errorHandler)
	ok := C.geobindDefaultHistogram(cgc.cPointer(), band.handle(), &cmin, &cmax, &cbuckets, &values, cforce)
	if values != nil {
		defer C.VSIFree(unsafe.Pointer(values))
	}
	if err := cgc.close(); err != nil {
		return Histogram{}, false, err
	}
	if ok == 0 || values == nil {
		return Histogram{}, false, nil
	}
	h := Histogram{min: float64(cmin), max: float64(cmax), counts: make([]uint64, int(cbuckets))}
	for i, v := range unsafe.Slice(values, int(cbuckets)) {
		h.counts[i] = uint64(v)
	}
	return h, true, nil
}

// SetDefaultHistogram stores h as the band's default histogram
func (band Band) SetDefaultHistogram(h Histogram, opts ...BandOption) error {
	if h.Len() == 0 {
		return fmt.Errorf("empty histogram: %w", ErrIllegalArg)
	}
	bo := bandOpts{}
	for _, o := range opts {
		o.setBandOpt(&bo)
	}
	values := make([]C.GUIntBig, h.Len())
	for i, c := range h.counts {
		values[i] = C.GUIntBig(c)
	}
	cgc := createCGOContext(nil, bo.errorHandler)
	C.geobindSetDefaultHistogram(cgc.cPointer(), band.handle(), C.double(h.min), C.double(h.max),
		C.int(len(values)), &values[0])
	return cgc.close()
}
