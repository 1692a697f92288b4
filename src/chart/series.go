package chart

import (
	"AutomobileDashboard/src/processor"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// binSeries 以填充矩形绘制直方图区间
type binSeries struct {
	name  string
	bins  []processor.Bin
	style gochart.Style
}

func (s binSeries) GetName() string             { return s.name }
func (s binSeries) GetYAxis() gochart.YAxisType { return gochart.YAxisPrimary }
func (s binSeries) GetStyle() gochart.Style     { return s.style }
func (s binSeries) Validate() error             { return nil }

func (s binSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xrange, yrange gochart.Range, _ gochart.Style) {
	for _, b := range s.bins {
		if b.Count == 0 {
			continue
		}
		box := gochart.Box{
			Left:   canvasBox.Left + xrange.Translate(b.Lo),
			Right:  canvasBox.Left + xrange.Translate(b.Hi),
			Top:    canvasBox.Bottom - yrange.Translate(float64(b.Count)),
			Bottom: canvasBox.Bottom - yrange.Translate(0),
		}
		gochart.Draw.Box(r, box, s.style)
	}
}

// boxSeries 绘制分组箱线图，第 i 组位于 x = i+1
type boxSeries struct {
	boxes   []processor.BoxStats
	palette []string
	width   float64 // 箱体宽度，单位为 x 轴刻度
}

func (s boxSeries) GetName() string             { return "boxes" }
func (s boxSeries) GetYAxis() gochart.YAxisType { return gochart.YAxisPrimary }
func (s boxSeries) GetStyle() gochart.Style     { return gochart.Style{} }
func (s boxSeries) Validate() error             { return nil }

func (s boxSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xrange, yrange gochart.Range, _ gochart.Style) {
	px := func(x float64) int { return canvasBox.Left + xrange.Translate(x) }
	py := func(y float64) int { return canvasBox.Bottom - yrange.Translate(y) }
	line := func(x1, y1, x2, y2 int, width float64) {
		r.SetStrokeColor(BoxEdge)
		r.SetStrokeWidth(width)
		r.MoveTo(x1, y1)
		r.LineTo(x2, y2)
		r.Stroke()
	}

	half := s.width / 2
	for i, b := range s.boxes {
		if b.N == 0 {
			continue
		}
		x := float64(i + 1)
		left, right, mid := px(x-half), px(x+half), px(x)

		// 须线与端点
		line(mid, py(b.LowerWhisker), mid, py(b.Q1), 1)
		line(mid, py(b.Q3), mid, py(b.UpperWhisker), 1)
		capL, capR := px(x-half/2), px(x+half/2)
		line(capL, py(b.LowerWhisker), capR, py(b.LowerWhisker), 1)
		line(capL, py(b.UpperWhisker), capR, py(b.UpperWhisker), 1)

		gochart.Draw.Box(r, gochart.Box{Left: left, Right: right, Top: py(b.Q3), Bottom: py(b.Q1)}, gochart.Style{
			FillColor:   PaletteColor(s.palette, i),
			StrokeColor: BoxEdge,
			StrokeWidth: 1.5,
		})
		line(left, py(b.Median), right, py(b.Median), 2)

		// 离群点
		for _, o := range b.Outliers {
			r.SetStrokeColor(BoxEdge)
			r.SetFillColor(drawing.Color{})
			r.SetStrokeWidth(1)
			r.Circle(3, mid, py(o))
			r.Stroke()
		}
	}
}

// emptySeries 没有数据点时保留坐标轴
type emptySeries struct{}

func (emptySeries) GetName() string             { return "" }
func (emptySeries) GetYAxis() gochart.YAxisType { return gochart.YAxisPrimary }
func (emptySeries) GetStyle() gochart.Style     { return gochart.Style{} }
func (emptySeries) Validate() error             { return nil }
func (emptySeries) Render(gochart.Renderer, gochart.Box, gochart.Range, gochart.Range, gochart.Style) {
}
