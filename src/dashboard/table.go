package dashboard

import (
	"AutomobileDashboard/src/processor"
	"math"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table 页面上的表格，单元格已格式化
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty 没有数据行
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// frameTable 数据表转为页面表格，首列为行号
func frameTable(df dataframe.DataFrame) Table {
	t := Table{Columns: append([]string{""}, df.Names()...)}
	if df.Err != nil {
		return t
	}
	cols := make([]series.Series, df.Ncol())
	for j := range cols {
		cols[j] = df.Col(df.Names()[j])
	}
	for i := 0; i < df.Nrow(); i++ {
		row := make([]string, 0, len(t.Columns))
		row = append(row, strconv.Itoa(i))
		for _, s := range cols {
			row = append(row, formatElem(s.Elem(i)))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// summaryTable 描述统计转为表格：每行一个统计量，每列一个数据列
// 不适用的统计量留空
func summaryTable(summary []processor.ColumnSummary) Table {
	stats := []string{"count", "unique", "top", "freq", "mean", "std", "min", "25%", "50%", "75%", "max"}
	t := Table{Columns: []string{""}}
	for _, cs := range summary {
		t.Columns = append(t.Columns, cs.Name)
	}

	hasCategorical, hasNumeric := false, false
	for _, cs := range summary {
		if cs.Kind == processor.KindCategorical {
			hasCategorical = true
		} else {
			hasNumeric = true
		}
	}

	for _, stat := range stats {
		switch stat {
		case "unique", "top", "freq":
			if !hasCategorical {
				continue
			}
		case "count":
		default:
			if !hasNumeric {
				continue
			}
		}
		row := []string{stat}
		for _, cs := range summary {
			row = append(row, summaryCell(cs, stat))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func summaryCell(cs processor.ColumnSummary, stat string) string {
	if stat == "count" {
		return strconv.Itoa(cs.Count)
	}
	if cs.Kind == processor.KindCategorical {
		switch stat {
		case "unique":
			return strconv.Itoa(cs.Unique)
		case "top":
			return cs.Top
		case "freq":
			return strconv.Itoa(cs.Freq)
		}
		return ""
	}
	switch stat {
	case "mean":
		return formatStat(cs.Mean)
	case "std":
		return formatStat(cs.Std)
	case "min":
		return formatStat(cs.Min)
	case "25%":
		return formatStat(cs.Q25)
	case "50%":
		return formatStat(cs.Q50)
	case "75%":
		return formatStat(cs.Q75)
	case "max":
		return formatStat(cs.Max)
	}
	return ""
}

func formatElem(el series.Element) string {
	if el.IsNA() {
		return "NaN"
	}
	if el.Type() == series.Float {
		return formatNumber(el.Float())
	}
	return el.String()
}

// formatNumber 最多保留三位小数，整数显示为 x.0
func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	r := math.Round(v*1000) / 1000
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if r == math.Trunc(r) && !math.IsInf(r, 0) {
		s += ".0"
	}
	return s
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
