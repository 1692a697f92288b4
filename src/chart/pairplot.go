package chart

import (
	"AutomobileDashboard/src/processor"
	"math"

	"github.com/go-gota/gota/dataframe"
)

const pairBins = 10

// PairPlot 散点矩阵，Cells[i][j] 的 x 为 Features[j]，y 为 Features[i]
type PairPlot struct {
	Features []string
	Cells    [][][]byte
	Legend   []LegendEntry
}

// Pairs 为选中的特征绘制散点矩阵：对角线为单变量直方图，其余为按 hueCol 着色的散点图
// features 为空时返回 nil
func Pairs(df dataframe.DataFrame, features []string, hueCol string, opts Options) (*PairPlot, error) {
	if len(features) == 0 {
		return nil, nil
	}
	opts.Compact = true
	opts.Title = ""

	groups := processor.DistinctStrings(df, hueCol)
	subsets := make([]dataframe.DataFrame, len(groups))
	for i, g := range groups {
		subsets[i] = processor.FilterEqualString(df, hueCol, g)
	}

	pp := &PairPlot{
		Features: append([]string(nil), features...),
		Cells:    make([][][]byte, len(features)),
	}
	for i, fy := range features {
		pp.Cells[i] = make([][]byte, len(features))
		for j, fx := range features {
			var (
				png []byte
				err error
			)
			if i == j {
				png, err = Histogram(processor.NewHistogram(df.Col(fx).Float(), pairBins, 0, 1), fx, opts)
			} else {
				sg := make([]ScatterGroup, len(groups))
				for k, g := range groups {
					sg[k] = NewScatterGroup(g, subsets[k].Col(fx).Float(), subsets[k].Col(fy).Float())
				}
				var legend []LegendEntry
				png, legend, err = Scatter(sg, fx, fy, opts)
				if pp.Legend == nil {
					pp.Legend = legend
				}
			}
			if err != nil {
				return nil, err
			}
			pp.Cells[i][j] = png
		}
	}
	if pp.Legend == nil {
		for k, g := range groups {
			pp.Legend = append(pp.Legend, LegendEntry{Name: g, Color: Hex(PaletteColor(opts.Palette, k))})
		}
	}
	return pp, nil
}

// NewScatterGroup 由两列坐标组成散点分组，丢弃任一坐标缺失的点
func NewScatterGroup(name string, xs, ys []float64) ScatterGroup {
	g := ScatterGroup{Name: name}
	for i := range xs {
		if i >= len(ys) || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		g.X = append(g.X, xs[i])
		g.Y = append(g.Y, ys[i])
	}
	return g
}
