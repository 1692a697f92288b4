package processor

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bin 直方图的一个区间 [Lo, Hi)，最后一个区间包含 Hi
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Histogram 等宽直方图
type Histogram struct {
	Bins []Bin
}

// Total 所有区间的计数之和
func (h Histogram) Total() int {
	n := 0
	for _, b := range h.Bins {
		n += b.Count
	}
	return n
}

// MaxCount 最大区间计数
func (h Histogram) MaxCount() int {
	m := 0
	for _, b := range h.Bins {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}

// NewHistogram 在 values 自身的 [min, max] 上划分 bins 个等宽区间
// values 为空时使用 fallbackLo/fallbackHi 作为范围，得到全零直方图
func NewHistogram(values []float64, bins int, fallbackLo, fallbackHi float64) Histogram {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}

	lo, hi := fallbackLo, fallbackHi
	if len(present) > 0 {
		lo, hi = floats.Min(present), floats.Max(present)
	}
	return HistogramRange(present, bins, lo, hi)
}

// HistogramRange 在给定范围 [lo, hi] 上统计，范围外的值忽略
func HistogramRange(values []float64, bins int, lo, hi float64) Histogram {
	if bins <= 0 {
		bins = 1
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		lo, hi = 0, 1
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	// 范围退化为一个点时向两侧各扩展 0.5
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	edges := append([]float64(nil), dividers...)
	// stat.Histogram 的区间右开，最后一个分隔点后移使 hi 落入最后一个区间
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	x := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && v >= lo && v <= hi {
			x = append(x, v)
		}
	}
	sort.Float64s(x)

	counts := stat.Histogram(nil, dividers, x, nil)

	h := Histogram{Bins: make([]Bin, bins)}
	for i := 0; i < bins; i++ {
		h.Bins[i] = Bin{Lo: edges[i], Hi: edges[i+1], Count: int(counts[i])}
	}
	return h
}
