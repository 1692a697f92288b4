package chart

import (
	"AutomobileDashboard/src/processor"
	"bytes"
	"fmt"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// Options 单张图的尺寸、标题和调色板
type Options struct {
	Width   int
	Height  int
	Title   string
	Palette []string
	Compact bool // 散点矩阵中的小图：不显示坐标轴名称，内边距更小
}

// LegendEntry 图例项，由页面绘制
type LegendEntry struct {
	Name  string
	Color string
}

// ScatterGroup 一个着色分组的散点
type ScatterGroup struct {
	Name string
	X    []float64
	Y    []float64
}

func (o Options) background() gochart.Style {
	if o.Compact {
		return gochart.Style{Padding: gochart.Box{Top: 8, Left: 8, Right: 8, Bottom: 8}}
	}
	return gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

func (o Options) axisName(name string) string {
	if o.Compact {
		return ""
	}
	return name
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%v", v)
}

// Histogram 绘制直方图，区间为天蓝色填充、黑色边框
func Histogram(h processor.Histogram, xLabel string, opts Options) ([]byte, error) {
	lo, hi := 0.0, 1.0
	if len(h.Bins) > 0 {
		lo, hi = h.Bins[0].Lo, h.Bins[len(h.Bins)-1].Hi
	}
	ymax := math.Max(1, float64(h.MaxCount())*1.1)

	c := gochart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: opts.background(),
		XAxis: gochart.XAxis{
			Name:  opts.axisName(xLabel),
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		YAxis: gochart.YAxis{
			Name:           opts.axisName("Frequency"),
			Range:          &gochart.ContinuousRange{Min: 0, Max: ymax},
			ValueFormatter: countFormatter,
		},
		Series: []gochart.Series{
			binSeries{
				name: xLabel,
				bins: h.Bins,
				style: gochart.Style{
					FillColor:   SkyBlue,
					StrokeColor: EdgeBlack,
					StrokeWidth: 1,
				},
			},
		},
	}
	return render(c)
}

// Scatter 绘制分组散点图，每组一个颜色；空分组跳过
func Scatter(groups []ScatterGroup, xLabel, yLabel string, opts Options) ([]byte, []LegendEntry, error) {
	var (
		series []gochart.Series
		legend []LegendEntry
		xs, ys []float64
	)
	for i, g := range groups {
		color := PaletteColor(opts.Palette, i)
		legend = append(legend, LegendEntry{Name: g.Name, Color: Hex(color)})
		if len(g.X) == 0 {
			continue
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    g.Name,
			XValues: g.X,
			YValues: g.Y,
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    4,
				DotColor:    color,
			},
		})
		xs = append(xs, g.X...)
		ys = append(ys, g.Y...)
	}
	if len(series) == 0 {
		series = append(series, emptySeries{})
	}

	xmin, xmax := paddedRange(xs)
	ymin, ymax := paddedRange(ys)
	c := gochart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: opts.background(),
		XAxis: gochart.XAxis{
			Name:  opts.axisName(xLabel),
			Range: &gochart.ContinuousRange{Min: xmin, Max: xmax},
		},
		YAxis: gochart.YAxis{
			Name:  opts.axisName(yLabel),
			Range: &gochart.ContinuousRange{Min: ymin, Max: ymax},
		},
		Series: series,
	}
	png, err := render(c)
	return png, legend, err
}

// BoxPlot 绘制分组箱线图，组名作为 x 轴刻度
func BoxPlot(boxes []processor.BoxStats, yLabel string, opts Options) ([]byte, error) {
	var (
		ticks []gochart.Tick
		ys    []float64
	)
	for i, b := range boxes {
		ticks = append(ticks, gochart.Tick{Value: float64(i + 1), Label: b.Group})
		if b.N == 0 {
			continue
		}
		ys = append(ys, b.LowerWhisker, b.UpperWhisker)
		ys = append(ys, b.Outliers...)
	}

	var series gochart.Series = emptySeries{}
	if len(boxes) > 0 {
		series = boxSeries{boxes: boxes, palette: opts.Palette, width: 0.6}
	}

	ymin, ymax := paddedRange(ys)
	c := gochart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: opts.background(),
		XAxis: gochart.XAxis{
			Name:  opts.axisName("origin"),
			Range: &gochart.ContinuousRange{Min: 0.5, Max: float64(len(boxes)) + 0.5},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  opts.axisName(yLabel),
			Range: &gochart.ContinuousRange{Min: ymin, Max: ymax},
		},
		Series: []gochart.Series{series},
	}
	return render(c)
}

func render(c gochart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("渲染图表失败: %w", err)
	}
	return buf.Bytes(), nil
}

// paddedRange 数据范围两侧各留 5%，退化时扩展为 ±1
func paddedRange(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if lo == hi {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}
