package processor

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCars(records [][]string) dataframe.DataFrame {
	return dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			"mpg":          series.Float,
			"horsepower":   series.Float,
			"weight":       series.Float,
			"displacement": series.Float,
			"acceleration": series.Float,
			"cylinders":    series.Int,
			"origin":       series.String,
			"name":         series.String,
		}),
		dataframe.NaNValues([]string{"", "NA", "NaN"}),
	)
}

func sampleCars() dataframe.DataFrame {
	return loadCars([][]string{
		{"name", "mpg", "cylinders", "displacement", "horsepower", "weight", "acceleration", "origin"},
		{"chevelle", "18", "8", "307", "130", "3504", "12", "usa"},
		{"skylark", "15", "8", "350", "165", "3693", "11.5", "usa"},
		{"corona", "24", "4", "113", "95", "2372", "15", "japan"},
		{"pinto", "25", "4", "98", "", "2046", "19", "usa"},
		{"datsun", "27", "4", "97", "88", "2130", "14.5", "japan"},
		{"peugeot", "25", "4", "110", "87", "2672", "17.5", "europe"},
		{"audi", "24", "4", "107", "90", "2430", "14.5", "europe"},
		{"maverick", "21", "6", "200", "", "2875", "17", "usa"},
	})
}

func TestImputeMeanFillsMissing(t *testing.T) {
	df := loadCars([][]string{
		{"horsepower"},
		{"100"},
		{"NA"},
		{"200"},
	})

	out, res, err := ImputeMean(df, "horsepower")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 150, 200}, out.Col("horsepower").Float())
	assert.Equal(t, 150.0, res.Value)
	assert.Equal(t, 1, res.Filled)

	// 原表不变
	assert.True(t, math.IsNaN(df.Col("horsepower").Float()[1]))
}

func TestImputeMeanNoMissing(t *testing.T) {
	df := loadCars([][]string{{"horsepower"}, {"100"}, {"110"}})
	out, res, err := ImputeMean(df, "horsepower")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Filled)
	assert.Equal(t, []float64{100, 110}, out.Col("horsepower").Float())
}

func TestImputeMeanErrors(t *testing.T) {
	df := loadCars([][]string{{"horsepower"}, {"NA"}, {"NA"}})
	_, _, err := ImputeMean(df, "horsepower")
	assert.Error(t, err)

	_, _, err = ImputeMean(df, "weight")
	assert.Error(t, err)
}

func TestPrepareFillsHorsepower(t *testing.T) {
	ds, err := Prepare(sampleCars(), "test")
	require.NoError(t, err)

	hp := ds.Frame().Col(ColHorsepower).Float()
	for i, v := range hp {
		assert.False(t, math.IsNaN(v), "row %d still missing", i)
	}

	want := (130.0 + 165 + 95 + 88 + 87 + 90) / 6
	res := ds.Imputation()
	assert.InDelta(t, want, res.Value, 1e-9)
	assert.Equal(t, 2, res.Filled)
	assert.InDelta(t, want, hp[3], 1e-9)
	assert.InDelta(t, want, hp[7], 1e-9)

	_, err = Prepare(loadCars([][]string{{"mpg"}, {"18"}}), "bad")
	assert.Error(t, err)
}

func TestFilterMPGInclusive(t *testing.T) {
	ds, err := Prepare(sampleCars(), "test")
	require.NoError(t, err)

	lo, hi := ds.MPGBounds()
	assert.Equal(t, 15.0, lo)
	assert.Equal(t, 27.0, hi)

	sub := ds.FilterMPG(21, 25)
	mpg := sub.Col(ColMPG).Float()
	assert.ElementsMatch(t, []float64{24, 25, 25, 24, 21}, mpg)
	for _, v := range mpg {
		assert.True(t, v >= 21 && v <= 25)
	}

	// 全范围等于原表
	assert.Equal(t, ds.Nrow(), ds.FilterMPG(lo, hi).Nrow())

	// 空结果不报错
	empty := ds.FilterMPG(40, 50)
	require.NoError(t, empty.Err)
	assert.Equal(t, 0, empty.Nrow())
}

func TestFilterCylinders(t *testing.T) {
	ds, err := Prepare(sampleCars(), "test")
	require.NoError(t, err)

	assert.Equal(t, []int{4, 6, 8}, ds.Cylinders())
	for _, c := range ds.Cylinders() {
		sub := ds.FilterCylinders(c)
		for _, v := range sub.Col(ColCylinders).Float() {
			assert.Equal(t, float64(c), v)
		}
	}
	assert.Equal(t, 5, ds.FilterCylinders(4).Nrow())
	assert.Equal(t, 2, ds.FilterCylinders(8).Nrow())
	assert.Equal(t, []string{"europe", "japan", "usa"}, ds.Origins())
}

func TestHead(t *testing.T) {
	ds, err := Prepare(sampleCars(), "test")
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Head(5).Nrow())
	assert.Equal(t, 8, ds.Head(100).Nrow())
	assert.Equal(t, "chevelle", ds.Head(1).Col("name").Records()[0])
}

func TestDescribe(t *testing.T) {
	df := loadCars([][]string{
		{"mpg", "origin"},
		{"1", "usa"},
		{"2", "japan"},
		{"3", "usa"},
		{"4", "NA"},
		{"NA", "europe"},
	})
	summary := Describe(df)
	require.Len(t, summary, 2)

	mpg := summary[0]
	assert.Equal(t, KindNumeric, mpg.Kind)
	assert.Equal(t, 4, mpg.Count)
	assert.Equal(t, 2.5, mpg.Mean)
	assert.InDelta(t, 1.2909944, mpg.Std, 1e-6)
	assert.Equal(t, 1.0, mpg.Min)
	assert.Equal(t, 1.75, mpg.Q25)
	assert.Equal(t, 2.5, mpg.Q50)
	assert.Equal(t, 3.25, mpg.Q75)
	assert.Equal(t, 4.0, mpg.Max)

	origin := summary[1]
	assert.Equal(t, KindCategorical, origin.Kind)
	assert.Equal(t, 4, origin.Count)
	assert.Equal(t, 3, origin.Unique)
	assert.Equal(t, "usa", origin.Top)
	assert.Equal(t, 2, origin.Freq)
}

func TestQuantile(t *testing.T) {
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	assert.Equal(t, 7.0, Quantile([]float64{7}, 0.25))
	assert.Equal(t, 2.0, Quantile([]float64{1, 2, 3}, 0.5))
	assert.Equal(t, 1.5, Quantile([]float64{1, 2, 3}, 0.25))
	assert.Equal(t, 3.0, Quantile([]float64{1, 2, 3}, 1))
}

func TestCorrelation(t *testing.T) {
	ds, err := Prepare(sampleCars(), "test")
	require.NoError(t, err)

	m := ds.Correlation()
	assert.Equal(t, []string{"mpg", "cylinders", "displacement", "horsepower", "weight", "acceleration"}, m.Columns)
	assert.NotContains(t, m.Columns, "origin")
	assert.NotContains(t, m.Columns, "name")

	for i := range m.Columns {
		assert.Equal(t, 1.0, m.Values[i][i])
		for j := range m.Columns {
			assert.Equal(t, m.Values[i][j], m.Values[j][i])
			assert.True(t, m.Values[i][j] >= -1 && m.Values[i][j] <= 1)
		}
	}

	// mpg 与重量强负相关
	assert.Less(t, m.At("mpg", "weight"), -0.8)
	assert.True(t, math.IsNaN(m.At("mpg", "origin")))
}

func TestCorrelationPerfect(t *testing.T) {
	df := loadCars([][]string{
		{"mpg", "weight", "horsepower"},
		{"1", "10", "NA"},
		{"2", "20", "3"},
		{"3", "30", "2"},
		{"4", "40", "1"},
	})
	m := Correlation(df)
	assert.InDelta(t, 1.0, m.At("mpg", "weight"), 1e-12)
	// 只使用两列都不缺失的行
	assert.InDelta(t, -1.0, m.At("mpg", "horsepower"), 1e-12)
}

func TestHistogram(t *testing.T) {
	h := NewHistogram([]float64{10, 11, 12, 20, 30, math.NaN()}, 15, 0, 0)
	require.Len(t, h.Bins, 15)
	assert.Equal(t, 5, h.Total())
	assert.Equal(t, 10.0, h.Bins[0].Lo)
	assert.Equal(t, 30.0, h.Bins[14].Hi)
	// 最大值落在最后一个区间
	assert.Equal(t, 1, h.Bins[14].Count)

	empty := NewHistogram(nil, 15, 18, 30)
	require.Len(t, empty.Bins, 15)
	assert.Equal(t, 0, empty.Total())
	assert.Equal(t, 18.0, empty.Bins[0].Lo)
	assert.Equal(t, 30.0, empty.Bins[14].Hi)

	single := NewHistogram([]float64{20, 20}, 15, 0, 0)
	assert.Equal(t, 2, single.Total())
	assert.Equal(t, 19.5, single.Bins[0].Lo)
}

func TestBoxStats(t *testing.T) {
	b := NewBoxStats("usa", []float64{1, 2, 3, 4, 5, 6, 7, 8, 100})
	assert.Equal(t, 9, b.N)
	assert.Equal(t, 3.0, b.Q1)
	assert.Equal(t, 5.0, b.Median)
	assert.Equal(t, 7.0, b.Q3)
	assert.Equal(t, 1.0, b.LowerWhisker)
	assert.Equal(t, 8.0, b.UpperWhisker)
	assert.Equal(t, []float64{100}, b.Outliers)

	ds, err := Prepare(sampleCars(), "test")
	require.NoError(t, err)
	boxes := ds.MPGByOrigin()
	require.Len(t, boxes, 3)
	assert.Equal(t, "europe", boxes[0].Group)
	assert.Equal(t, 2, boxes[0].N)
	assert.Equal(t, 24.5, boxes[0].Median)
	assert.Equal(t, 4, boxes[2].N)
}

func TestSummaryFrame(t *testing.T) {
	ds, err := Prepare(sampleCars(), "test")
	require.NoError(t, err)

	df := SummaryFrame(ds.Describe())
	require.NoError(t, df.Err)
	assert.Equal(t, len(ds.Names()), df.Nrow())
	assert.Equal(t, "column", df.Names()[0])

	columns := df.Col("column").Records()
	kinds := df.Col("kind").Records()
	for i, name := range columns {
		switch name {
		case "mpg":
			assert.Equal(t, KindNumeric, kinds[i])
			assert.Equal(t, 15.0, df.Col("min").Elem(i).Float())
			assert.True(t, df.Col("top").Elem(i).IsNA())
		case "origin":
			assert.Equal(t, KindCategorical, kinds[i])
			assert.Equal(t, "usa", df.Col("top").Elem(i).String())
			assert.Equal(t, 3, df.Col("unique").Elem(i).Val())
		}
	}
}
