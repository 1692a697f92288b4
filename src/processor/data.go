// data.go
package processor

import (
	"AutomobileDashboard/src/utils"
	"fmt"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
)

// 数据集列名
const (
	ColMPG          = "mpg"
	ColCylinders    = "cylinders"
	ColDisplacement = "displacement"
	ColHorsepower   = "horsepower"
	ColWeight       = "weight"
	ColAcceleration = "acceleration"
	ColOrigin       = "origin"
)

// Dataset 加载并完成填充的数据集，创建后只读
type Dataset struct {
	df       dataframe.DataFrame
	imputed  ImputeResult
	source   string
	loadedAt time.Time
}

// Prepare 对刚加载的表执行一次马力列的均值填充，得到只读数据集
func Prepare(df dataframe.DataFrame, source string) (*Dataset, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	required := []string{ColMPG, ColCylinders, ColHorsepower, ColOrigin}
	if missing := utils.MissingColumns(df, required); len(missing) > 0 {
		return nil, fmt.Errorf("数据集缺少列: %s", strings.Join(missing, ", "))
	}

	filled, res, err := ImputeMean(df, ColHorsepower)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		df:       filled,
		imputed:  res,
		source:   source,
		loadedAt: time.Now(),
	}, nil
}

// Frame 返回数据表的副本
func (d *Dataset) Frame() dataframe.DataFrame { return d.df.Copy() }

// Nrow 行数
func (d *Dataset) Nrow() int { return d.df.Nrow() }

// Names 列名
func (d *Dataset) Names() []string { return d.df.Names() }

// Imputation 加载时的填充结果
func (d *Dataset) Imputation() ImputeResult { return d.imputed }

// Source 数据来源文件
func (d *Dataset) Source() string { return d.source }

// LoadedAt 加载时间
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Head 前 n 行
func (d *Dataset) Head(n int) dataframe.DataFrame {
	if n > d.df.Nrow() {
		n = d.df.Nrow()
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return d.df.Subset(idx)
}

// MPGBounds 观测到的 mpg 最小值和最大值
func (d *Dataset) MPGBounds() (float64, float64) { return Bounds(d.df, ColMPG) }

// Cylinders 出现过的气缸数，升序
func (d *Dataset) Cylinders() []int { return DistinctInts(d.df, ColCylinders) }

// Origins 出现过的产地，升序
func (d *Dataset) Origins() []string { return DistinctStrings(d.df, ColOrigin) }

// FilterMPG mpg 在 [lo, hi] 内的行
func (d *Dataset) FilterMPG(lo, hi float64) dataframe.DataFrame {
	return FilterRange(d.df, ColMPG, lo, hi)
}

// FilterCylinders 气缸数等于 c 的行
func (d *Dataset) FilterCylinders(c int) dataframe.DataFrame {
	return FilterEqualInt(d.df, ColCylinders, c)
}

// Describe 每一列的描述统计
func (d *Dataset) Describe() []ColumnSummary { return Describe(d.df) }

// Correlation 数值列相关矩阵
func (d *Dataset) Correlation() CorrMatrix { return Correlation(d.df) }

// MPGByOrigin 各产地 mpg 的箱线图统计
func (d *Dataset) MPGByOrigin() []BoxStats { return BoxByGroup(d.df, ColMPG, ColOrigin) }

// Select 只保留指定列(用于散点矩阵)
func (d *Dataset) Select(cols []string) dataframe.DataFrame { return d.df.Select(cols) }
