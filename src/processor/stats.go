package processor

import (
	"math"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// 列的统计类型
const (
	KindNumeric     = "numeric"
	KindCategorical = "categorical"
)

// ColumnSummary 单列的描述统计
// 数值列填充 Mean..Max，分类列填充 Unique/Top/Freq
type ColumnSummary struct {
	Name  string
	Kind  string
	Count int

	Mean float64
	Std  float64
	Min  float64
	Q25  float64
	Q50  float64
	Q75  float64
	Max  float64

	Unique int
	Top    string
	Freq   int
}

// IsNumeric 判断列是否为数值类型(Float/Int)
func IsNumeric(s series.Series) bool {
	t := s.Type()
	return t == series.Float || t == series.Int
}

// NumericColumns 按表中顺序返回全部数值列名
func NumericColumns(df dataframe.DataFrame) []string {
	var cols []string
	for _, name := range df.Names() {
		if IsNumeric(df.Col(name)) {
			cols = append(cols, name)
		}
	}
	return cols
}

// Describe 对每一列计算描述统计，顺序与表一致
func Describe(df dataframe.DataFrame) []ColumnSummary {
	out := make([]ColumnSummary, 0, df.Ncol())
	for _, name := range df.Names() {
		s := df.Col(name)
		if IsNumeric(s) {
			out = append(out, describeNumeric(name, presentFloats(df, name)))
		} else {
			out = append(out, describeCategorical(name, s))
		}
	}
	return out
}

func describeNumeric(name string, values []float64) ColumnSummary {
	cs := ColumnSummary{Name: name, Kind: KindNumeric, Count: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		cs.Mean, cs.Std, cs.Min, cs.Q25, cs.Q50, cs.Q75, cs.Max = nan, nan, nan, nan, nan, nan, nan
		return cs
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	cs.Mean = stat.Mean(sorted, nil)
	cs.Std = math.NaN()
	if len(sorted) > 1 {
		cs.Std = stat.StdDev(sorted, nil)
	}
	cs.Min = floats.Min(sorted)
	cs.Max = floats.Max(sorted)
	cs.Q25 = Quantile(sorted, 0.25)
	cs.Q50 = Quantile(sorted, 0.50)
	cs.Q75 = Quantile(sorted, 0.75)
	return cs
}

func describeCategorical(name string, s series.Series) ColumnSummary {
	cs := ColumnSummary{Name: name, Kind: KindCategorical}
	counts := make(map[string]int)
	var order []string
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			continue
		}
		v := el.String()
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
		cs.Count++
	}

	cs.Unique = len(counts)
	// 频次相同时取最先出现的值
	for _, v := range order {
		if counts[v] > cs.Freq {
			cs.Top, cs.Freq = v, counts[v]
		}
	}
	return cs
}

// Quantile 线性插值分位数，sorted 必须升序，为空时返回 NaN
// 位置 h = (n-1)p，在相邻两个观测值之间插值
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// SummaryFrame 把描述统计整理成一张表，每行对应一列数据，不适用的统计量为缺失值
func SummaryFrame(summary []ColumnSummary) dataframe.DataFrame {
	const na = "NaN"
	n := len(summary)
	names := make([]string, n)
	kinds := make([]string, n)
	counts := make([]int, n)
	numeric := make([][]float64, 7) // mean std min 25% 50% 75% max
	for k := range numeric {
		numeric[k] = make([]float64, n)
	}
	uniques, tops, freqs := make([]string, n), make([]string, n), make([]string, n)

	for i, cs := range summary {
		names[i], kinds[i], counts[i] = cs.Name, cs.Kind, cs.Count
		values := []float64{cs.Mean, cs.Std, cs.Min, cs.Q25, cs.Q50, cs.Q75, cs.Max}
		if cs.Kind == KindCategorical {
			for k := range values {
				values[k] = math.NaN()
			}
			uniques[i], tops[i], freqs[i] = strconv.Itoa(cs.Unique), cs.Top, strconv.Itoa(cs.Freq)
		} else {
			uniques[i], tops[i], freqs[i] = na, na, na
		}
		for k, v := range values {
			numeric[k][i] = v
		}
	}

	cols := []series.Series{
		series.New(names, series.String, "column"),
		series.New(kinds, series.String, "kind"),
		series.New(counts, series.Int, "count"),
	}
	for k, name := range []string{"mean", "std", "min", "25%", "50%", "75%", "max"} {
		cols = append(cols, series.New(numeric[k], series.Float, name))
	}
	cols = append(cols,
		series.New(uniques, series.Int, "unique"),
		series.New(tops, series.String, "top"),
		series.New(freqs, series.Int, "freq"),
	)
	return dataframe.New(cols...)
}
