package dashboard

import (
	"AutomobileDashboard/src/config"
	"AutomobileDashboard/src/processor"
	"AutomobileDashboard/src/utils"
	"math"
	"net/url"
	"strconv"
)

// 查询参数名
const (
	ParamMPGLo    = "mpg_lo"
	ParamMPGHi    = "mpg_hi"
	ParamCyl      = "cyl"
	ParamFeature  = "feature"
	ParamFeatures = "features" // 标记多选框已提交，用于区分"未提交"与"全部取消"
)

// Controls 一次渲染所用的全部控件取值
type Controls struct {
	MPGLo     float64
	MPGHi     float64
	Cylinders int
	Features  []string
}

// DefaultControls 控件初始值：mpg 全范围、最小的气缸数、默认的散点矩阵特征
func DefaultControls(ds *processor.Dataset, cc *config.ChartConfig) Controls {
	lo, hi := ds.MPGBounds()
	c := Controls{MPGLo: lo, MPGHi: hi}
	if cyl := ds.Cylinders(); len(cyl) > 0 {
		c.Cylinders = cyl[0]
	}
	c.Features = filterFeatures(cc.PairDefaults, cc.PairFeatures)
	return c
}

// ParseControls 从查询参数解析控件取值，缺失或非法的参数使用默认值
func ParseControls(q url.Values, ds *processor.Dataset, cc *config.ChartConfig) Controls {
	c := DefaultControls(ds, cc)

	if v, ok := parseFloat(q.Get(ParamMPGLo)); ok {
		c.MPGLo = v
	}
	if v, ok := parseFloat(q.Get(ParamMPGHi)); ok {
		c.MPGHi = v
	}
	if v, err := strconv.Atoi(q.Get(ParamCyl)); err == nil {
		c.Cylinders = v
	}
	if _, submitted := q[ParamFeatures]; submitted {
		c.Features = q[ParamFeature]
	} else if picked, ok := q[ParamFeature]; ok {
		c.Features = picked
	}

	return c.Normalize(ds, cc)
}

// Normalize 把取值限制在数据集允许的范围内
//   - mpg 区间截断到观测范围，lo > hi 时交换
//   - 气缸数不在可选值中时取最小值
//   - 去掉不可选和重复的特征
func (c Controls) Normalize(ds *processor.Dataset, cc *config.ChartConfig) Controls {
	lo, hi := ds.MPGBounds()
	if c.MPGLo > c.MPGHi {
		c.MPGLo, c.MPGHi = c.MPGHi, c.MPGLo
	}
	if !math.IsNaN(lo) {
		c.MPGLo = clamp(c.MPGLo, lo, hi)
		c.MPGHi = clamp(c.MPGHi, lo, hi)
	}

	cyl := ds.Cylinders()
	if !utils.Contains(cyl, c.Cylinders) {
		c.Cylinders = 0
		if len(cyl) > 0 {
			c.Cylinders = cyl[0]
		}
	}

	c.Features = filterFeatures(c.Features, cc.PairFeatures)
	return c
}

// Query 控件取值编码为查询参数
func (c Controls) Query() url.Values {
	q := url.Values{}
	q.Set(ParamMPGLo, formatNumber(c.MPGLo))
	q.Set(ParamMPGHi, formatNumber(c.MPGHi))
	q.Set(ParamCyl, strconv.Itoa(c.Cylinders))
	q.Set(ParamFeatures, "1")
	for _, f := range c.Features {
		q.Add(ParamFeature, f)
	}
	return q
}

// HasFeature 特征是否被选中
func (c Controls) HasFeature(name string) bool {
	return utils.Contains(c.Features, name)
}

func filterFeatures(picked, allowed []string) []string {
	out := make([]string, 0, len(picked))
	for _, f := range picked {
		if utils.Contains(allowed, f) && !utils.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
