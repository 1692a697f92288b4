package processor

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
)

// BoxStats 箱线图的五数概括，须线取 1.5 倍四分位距内最远的观测值
type BoxStats struct {
	Group        string
	N            int
	Q1           float64
	Median       float64
	Q3           float64
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
}

// IQR 四分位距
func (b BoxStats) IQR() float64 { return b.Q3 - b.Q1 }

// NewBoxStats 计算一组观测值的箱线图统计，values 可以无序
func NewBoxStats(group string, values []float64) BoxStats {
	b := BoxStats{Group: group, N: len(values)}
	if len(values) == 0 {
		return b
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	b.Q1 = Quantile(sorted, 0.25)
	b.Median = Quantile(sorted, 0.5)
	b.Q3 = Quantile(sorted, 0.75)

	iqr := b.Q3 - b.Q1
	lowFence, highFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr

	b.LowerWhisker, b.UpperWhisker = b.Q1, b.Q3
	for _, v := range sorted {
		if v >= lowFence {
			b.LowerWhisker = v
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highFence {
			b.UpperWhisker = sorted[i]
			break
		}
	}
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			b.Outliers = append(b.Outliers, v)
		}
	}
	return b
}

// BoxByGroup 按分类列分组计算 valueCol 的箱线图统计，分组按名称排序
func BoxByGroup(df dataframe.DataFrame, valueCol, groupCol string) []BoxStats {
	groups := DistinctStrings(df, groupCol)
	out := make([]BoxStats, 0, len(groups))
	for _, g := range groups {
		sub := FilterEqualString(df, groupCol, g)
		out = append(out, NewBoxStats(g, presentFloats(sub, valueCol)))
	}
	return out
}
