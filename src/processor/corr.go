package processor

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
)

// CorrMatrix 数值列两两之间的皮尔逊相关系数
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// At 返回列 a 与列 b 的相关系数，列不存在时返回 NaN
func (m CorrMatrix) At(a, b string) float64 {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return math.NaN()
	}
	return m.Values[i][j]
}

func (m CorrMatrix) index(name string) int {
	for i, c := range m.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Correlation 计算全部数值列的相关矩阵
// 每一对列只使用两者都不缺失的行；对角线固定为 1
func Correlation(df dataframe.DataFrame) CorrMatrix {
	cols := NumericColumns(df)
	data := make([][]float64, len(cols))
	for i, c := range cols {
		data[i] = df.Col(c).Float()
	}

	values := make([][]float64, len(cols))
	for i := range values {
		values[i] = make([]float64, len(cols))
		values[i][i] = 1
	}

	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			r := pairwisePearson(data[i], data[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return CorrMatrix{Columns: cols, Values: values}
}

func pairwisePearson(a, b []float64) float64 {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for k := range a {
		if math.IsNaN(a[k]) || math.IsNaN(b[k]) {
			continue
		}
		x = append(x, a[k])
		y = append(y, b[k])
	}
	if len(x) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(x, y, nil)
	// 浮点误差可能略微超出 [-1, 1]
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}
