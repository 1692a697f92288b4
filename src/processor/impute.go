package processor

import (
	"AutomobileDashboard/src/utils"
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"
)

// ImputeResult 记录一次均值填充的结果
type ImputeResult struct {
	Column string  // 被填充的列
	Value  float64 // 填充值(非缺失值的均值)
	Filled int     // 被填充的单元格数
}

// ImputeMean 用列中非缺失值的均值替换所有缺失值
// 没有缺失值时原样返回；整列缺失时均值无定义，返回错误
func ImputeMean(df dataframe.DataFrame, col string) (dataframe.DataFrame, ImputeResult, error) {
	res := ImputeResult{Column: col}
	if !utils.HasColumn(df, col) {
		return df, res, fmt.Errorf("填充失败: 列 %s 不存在", col)
	}

	values := df.Col(col).Float()
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}

	missing := len(values) - len(present)
	if len(present) == 0 {
		if missing == 0 {
			return df, res, nil
		}
		return df, res, fmt.Errorf("填充失败: 列 %s 全部为缺失值", col)
	}

	res.Value = stat.Mean(present, nil)
	if missing == 0 {
		return df, res, nil
	}

	filled := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			filled[i] = res.Value
			res.Filled++
			continue
		}
		filled[i] = v
	}

	out := df.Mutate(series.New(filled, series.Float, col))
	if out.Err != nil {
		return df, res, fmt.Errorf("填充失败: %w", out.Err)
	}
	return out, res, nil
}
