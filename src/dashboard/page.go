package dashboard

import (
	"AutomobileDashboard/src/chart"
	"AutomobileDashboard/src/config"
	"AutomobileDashboard/src/processor"
	"encoding/base64"
	"fmt"
	"html/template"
	"time"
)

// 页面文字
const (
	IntroText      = "This app provides an analysis of the Automobile dataset with various charts and interactive features."
	ConclusionText = "This analysis provides insights into the relationship between various attributes of automobiles, such as horsepower, weight, and MPG. You can explore further by selecting different cylinders, adjusting MPG ranges, and analyzing different feature combinations."

	HeatmapTitle = "Correlation between Numerical Features"
	BoxPlotTitle = "MPG Distribution by Origin"
)

// 视图名称，按页面顺序
const (
	ViewIntro      = "intro"
	ViewPreview    = "preview"
	ViewSummary    = "summary"
	ViewMPGRange   = "mpg_range"
	ViewScatter    = "scatter"
	ViewHeatmap    = "heatmap"
	ViewBoxPlot    = "boxplot"
	ViewPairPlot   = "pairplot"
	ViewConclusion = "conclusion"
)

// Image 内嵌在页面中的 PNG 图片
type Image struct {
	Alt string
	Src template.URL
}

// FeatureChoice 散点矩阵多选框的一项
type FeatureChoice struct {
	Name     string
	Selected bool
}

// PairView 散点矩阵视图
type PairView struct {
	Features []string
	Rows     [][]Image
	Legend   []chart.LegendEntry
}

// Page 一次渲染的完整结果
type Page struct {
	Title      string
	Intro      string
	Source     string
	LoadedAt   time.Time
	Controls   Controls
	ExportPath string

	Preview    Table
	Summary    Table
	Imputation processor.ImputeResult

	MPGMin, MPGMax float64
	RangeCaption   string
	RangeTable     Table
	Histogram      Image

	CylinderChoices []int
	ScatterTitle    string
	Scatter         Image
	ScatterLegend   []chart.LegendEntry

	HeatmapTitle string
	Heatmap      chart.Heatmap
	HeatmapScale []chart.HeatCell

	BoxTitle string
	BoxPlot  Image

	FeatureChoices []FeatureChoice
	Pair           *PairView

	Conclusion string
	Views      []string
}

// Render 由只读数据集和控件取值生成整页内容，不修改数据集
func Render(ds *processor.Dataset, cc *config.ChartConfig, c Controls) (*Page, error) {
	c = c.Normalize(ds, cc)
	lo, hi := ds.MPGBounds()

	p := &Page{
		Title:      cc.Title,
		Intro:      IntroText,
		Source:     ds.Source(),
		LoadedAt:   ds.LoadedAt(),
		Controls:   c,
		ExportPath: "/export.xlsx?" + c.Query().Encode(),
		Imputation: ds.Imputation(),
		MPGMin:     lo,
		MPGMax:     hi,
		Conclusion: ConclusionText,
	}
	p.Views = append(p.Views, ViewIntro)

	// 概览
	p.Preview = frameTable(ds.Head(cc.PreviewRows))
	p.Summary = summaryTable(ds.Describe())
	p.Views = append(p.Views, ViewPreview, ViewSummary)

	opts := chart.Options{Width: cc.Width, Height: cc.Height}

	// mpg 区间
	sub := ds.FilterMPG(c.MPGLo, c.MPGHi)
	if sub.Err != nil {
		return nil, fmt.Errorf("按mpg筛选失败: %w", sub.Err)
	}
	p.RangeCaption = fmt.Sprintf("Cars with MPG between %s and %s", formatNumber(c.MPGLo), formatNumber(c.MPGHi))
	p.RangeTable = frameTable(sub)
	hist := processor.NewHistogram(sub.Col(processor.ColMPG).Float(), cc.HistogramBins, c.MPGLo, c.MPGHi)
	png, err := chart.Histogram(hist, "MPG", opts)
	if err != nil {
		return nil, err
	}
	p.Histogram = pngImage("MPG Histogram", png)
	p.Views = append(p.Views, ViewMPGRange)

	// 马力与 mpg
	p.CylinderChoices = ds.Cylinders()
	p.ScatterTitle = fmt.Sprintf("Horsepower vs. MPG (Cylinders: %d)", c.Cylinders)
	cyl := ds.FilterCylinders(c.Cylinders)
	if cyl.Err != nil {
		return nil, fmt.Errorf("按气缸数筛选失败: %w", cyl.Err)
	}
	var groups []chart.ScatterGroup
	for _, origin := range processor.DistinctStrings(cyl, processor.ColOrigin) {
		g := processor.FilterEqualString(cyl, processor.ColOrigin, origin)
		groups = append(groups, chart.NewScatterGroup(origin,
			g.Col(processor.ColHorsepower).Float(),
			g.Col(processor.ColMPG).Float()))
	}
	scatterOpts := opts
	scatterOpts.Title = p.ScatterTitle
	scatterOpts.Palette = palette(cc, "scatter", chart.Set2)
	png, p.ScatterLegend, err = chart.Scatter(groups, "Horsepower", "MPG", scatterOpts)
	if err != nil {
		return nil, err
	}
	p.Scatter = pngImage(p.ScatterTitle, png)
	p.Views = append(p.Views, ViewScatter)

	// 相关系数热力图
	p.HeatmapTitle = HeatmapTitle
	p.Heatmap = chart.NewHeatmap(ds.Correlation())
	p.HeatmapScale = chart.ScaleStops(9)
	p.Views = append(p.Views, ViewHeatmap)

	// 各产地 mpg 箱线图
	p.BoxTitle = BoxPlotTitle
	boxOpts := opts
	boxOpts.Title = BoxPlotTitle
	boxOpts.Palette = palette(cc, "box", chart.Set3)
	png, err = chart.BoxPlot(ds.MPGByOrigin(), "mpg", boxOpts)
	if err != nil {
		return nil, err
	}
	p.BoxPlot = pngImage(BoxPlotTitle, png)
	p.Views = append(p.Views, ViewBoxPlot)

	// 散点矩阵，未选择特征时跳过
	for _, f := range cc.PairFeatures {
		p.FeatureChoices = append(p.FeatureChoices, FeatureChoice{Name: f, Selected: c.HasFeature(f)})
	}
	if len(c.Features) > 0 {
		cols := append(append([]string(nil), c.Features...), processor.ColOrigin)
		pairOpts := chart.Options{
			Width:   cc.PairCellSize,
			Height:  cc.PairCellSize,
			Palette: palette(cc, "pair", chart.Set2),
		}
		pp, err := chart.Pairs(ds.Select(cols), c.Features, processor.ColOrigin, pairOpts)
		if err != nil {
			return nil, err
		}
		p.Pair = pairView(pp)
		p.Views = append(p.Views, ViewPairPlot)
	}

	p.Views = append(p.Views, ViewConclusion)
	return p, nil
}

// Has 页面是否包含某个视图
func (p *Page) Has(view string) bool {
	for _, v := range p.Views {
		if v == view {
			return true
		}
	}
	return false
}

func pairView(pp *chart.PairPlot) *PairView {
	if pp == nil {
		return nil
	}
	v := &PairView{Features: pp.Features, Legend: pp.Legend}
	for i, row := range pp.Cells {
		images := make([]Image, len(row))
		for j, cell := range row {
			images[j] = pngImage(pp.Features[j]+" / "+pp.Features[i], cell)
		}
		v.Rows = append(v.Rows, images)
	}
	return v
}

// palette 配置中的调色板优先，未配置时使用内置调色板
func palette(cc *config.ChartConfig, name string, fallback []string) []string {
	if colors := cc.GetPalette(name); len(colors) > 0 {
		return colors
	}
	return fallback
}

func pngImage(alt string, png []byte) Image {
	return Image{
		Alt: alt,
		Src: template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
	}
}
