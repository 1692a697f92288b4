package processor

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// FilterRange 返回 col 落在 [lo, hi] 闭区间内的行
func FilterRange(df dataframe.DataFrame, col string, lo, hi float64) dataframe.DataFrame {
	return df.FilterAggregation(
		dataframe.And,
		dataframe.F{Colname: col, Comparator: series.GreaterEq, Comparando: lo},
		dataframe.F{Colname: col, Comparator: series.LessEq, Comparando: hi},
	)
}

// FilterEqualInt 返回 col == v 的行
func FilterEqualInt(df dataframe.DataFrame, col string, v int) dataframe.DataFrame {
	return df.Filter(
		dataframe.F{
			Colname:    col,
			Comparator: series.CompFunc,
			Comparando: func(el series.Element) bool {
				if el.IsNA() {
					return false
				}
				return el.Float() == float64(v)
			},
		},
	)
}

// FilterEqualString 返回 col == v 的行
func FilterEqualString(df dataframe.DataFrame, col, v string) dataframe.DataFrame {
	return df.Filter(
		dataframe.F{Colname: col, Comparator: series.Eq, Comparando: v},
	)
}

// DistinctInts 列中出现过的整数值，升序
func DistinctInts(df dataframe.DataFrame, col string) []int {
	seen := make(map[int]bool)
	var out []int
	for _, v := range df.Col(col).Float() {
		if math.IsNaN(v) {
			continue
		}
		n := int(v)
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// DistinctStrings 列中出现过的非缺失字符串，升序
func DistinctStrings(df dataframe.DataFrame, col string) []string {
	s := df.Col(col)
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			continue
		}
		v := el.String()
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// Bounds 列的最小值和最大值，忽略缺失值；没有数据时返回 NaN
func Bounds(df dataframe.DataFrame, col string) (float64, float64) {
	lo, hi := math.NaN(), math.NaN()
	for _, v := range df.Col(col).Float() {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(lo) || v < lo {
			lo = v
		}
		if math.IsNaN(hi) || v > hi {
			hi = v
		}
	}
	return lo, hi
}

// presentFloats 列中的非缺失值
func presentFloats(df dataframe.DataFrame, col string) []float64 {
	values := df.Col(col).Float()
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
