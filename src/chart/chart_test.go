package chart

import (
	"AutomobileDashboard/src/processor"
	"bytes"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func testOptions() Options {
	return Options{Width: 320, Height: 240, Title: "test", Palette: Set2}
}

func isPNG(t *testing.T, b []byte) {
	t.Helper()
	require.NotEmpty(t, b)
	assert.True(t, bytes.HasPrefix(b, pngMagic), "not a png")
}

func TestHistogramPNG(t *testing.T) {
	h := processor.NewHistogram([]float64{18, 20, 22, 22, 31}, 15, 0, 0)
	b, err := Histogram(h, "MPG", testOptions())
	require.NoError(t, err)
	isPNG(t, b)

	// 空子集得到平直的直方图
	empty := processor.NewHistogram(nil, 15, 40, 45)
	b, err = Histogram(empty, "MPG", testOptions())
	require.NoError(t, err)
	isPNG(t, b)
}

func TestScatterPNG(t *testing.T) {
	groups := []ScatterGroup{
		{Name: "europe", X: []float64{70, 80}, Y: []float64{30, 28}},
		{Name: "japan"},
		{Name: "usa", X: []float64{150, 165}, Y: []float64{15, 14}},
	}
	b, legend, err := Scatter(groups, "Horsepower", "MPG", testOptions())
	require.NoError(t, err)
	isPNG(t, b)
	require.Len(t, legend, 3)
	assert.Equal(t, "japan", legend[1].Name)
	assert.Equal(t, Set2[1], legend[1].Color)

	b, _, err = Scatter(nil, "Horsepower", "MPG", testOptions())
	require.NoError(t, err)
	isPNG(t, b)
}

func TestBoxPlotPNG(t *testing.T) {
	boxes := []processor.BoxStats{
		processor.NewBoxStats("europe", []float64{24, 25, 26, 30, 44}),
		processor.NewBoxStats("usa", []float64{15, 18, 21, 22}),
	}
	opts := testOptions()
	opts.Palette = Set3
	b, err := BoxPlot(boxes, "mpg", opts)
	require.NoError(t, err)
	isPNG(t, b)

	b, err = BoxPlot(nil, "mpg", opts)
	require.NoError(t, err)
	isPNG(t, b)
}

func TestPairs(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"mpg", "horsepower", "origin"},
		{"18", "130", "usa"},
		{"24", "95", "japan"},
		{"26", "NA", "europe"},
		{"15", "165", "usa"},
	}, dataframe.WithTypes(map[string]series.Type{
		"mpg":        series.Float,
		"horsepower": series.Float,
		"origin":     series.String,
	}))

	pp, err := Pairs(df, nil, "origin", testOptions())
	require.NoError(t, err)
	assert.Nil(t, pp)

	pp, err = Pairs(df, []string{"mpg", "horsepower"}, "origin", testOptions())
	require.NoError(t, err)
	require.Len(t, pp.Cells, 2)
	for _, row := range pp.Cells {
		require.Len(t, row, 2)
		for _, cell := range row {
			isPNG(t, cell)
		}
	}
	require.Len(t, pp.Legend, 3)
	assert.Equal(t, "europe", pp.Legend[0].Name)
}

func TestNewScatterGroupDropsMissing(t *testing.T) {
	g := NewScatterGroup("usa", []float64{1, math.NaN(), 3}, []float64{4, 5, math.NaN()})
	assert.Equal(t, []float64{1}, g.X)
	assert.Equal(t, []float64{4}, g.Y)
}

func TestHeatmap(t *testing.T) {
	m := processor.CorrMatrix{
		Columns: []string{"mpg", "weight"},
		Values:  [][]float64{{1, -0.83}, {-0.83, 1}},
	}
	h := NewHeatmap(m)
	require.Len(t, h.Rows, 2)
	assert.Equal(t, "1.00", h.Rows[0][0].Text)
	assert.Equal(t, "-0.83", h.Rows[1][0].Text)
	assert.Equal(t, h.Rows[0][1].Background, h.Rows[1][0].Background)
	assert.Equal(t, "#b40426", h.Rows[0][0].Background)
	assert.Equal(t, "#ffffff", h.Rows[0][0].Foreground)

	nan := NewHeatmap(processor.CorrMatrix{Columns: []string{"a"}, Values: [][]float64{{math.NaN()}}})
	assert.Equal(t, "", nan.Rows[0][0].Text)
	assert.Equal(t, "#ffffff", nan.Rows[0][0].Background)
}

func TestCoolWarm(t *testing.T) {
	assert.Equal(t, "#3b4cc0", Hex(CoolWarm(-1)))
	assert.Equal(t, "#dddddd", Hex(CoolWarm(0)))
	assert.Equal(t, "#b40426", Hex(CoolWarm(2)))
	assert.Len(t, ScaleStops(5), 5)
	assert.Equal(t, "-1.0", ScaleStops(5)[0].Text)
	assert.Equal(t, "1.0", ScaleStops(5)[4].Text)
}

func TestPaletteColorCycles(t *testing.T) {
	assert.Equal(t, Hex(PaletteColor(Set2, 0)), Hex(PaletteColor(Set2, len(Set2))))
	assert.Equal(t, Set2[0], Hex(PaletteColor(nil, 0)))
}
