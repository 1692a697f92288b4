package chart

import (
	"AutomobileDashboard/src/processor"
	"fmt"
	"math"
)

// HeatCell 热力图的一个格子
type HeatCell struct {
	Value      float64
	Text       string
	Background string
	Foreground string
}

// Heatmap 带数值标注的相关系数热力图，由页面以表格绘制
type Heatmap struct {
	Columns []string
	Rows    [][]HeatCell
}

// NewHeatmap 按固定的 [-1, 1] coolwarm 色阶为相关矩阵着色，数值保留两位小数
func NewHeatmap(m processor.CorrMatrix) Heatmap {
	h := Heatmap{
		Columns: append([]string(nil), m.Columns...),
		Rows:    make([][]HeatCell, len(m.Values)),
	}
	for i, row := range m.Values {
		h.Rows[i] = make([]HeatCell, len(row))
		for j, v := range row {
			bg := CoolWarm(v)
			cell := HeatCell{
				Value:      v,
				Background: Hex(bg),
				Foreground: TextColorFor(bg),
			}
			if !math.IsNaN(v) {
				cell.Text = fmt.Sprintf("%.2f", v)
			}
			h.Rows[i][j] = cell
		}
	}
	return h
}

// ScaleStops 色标上的刻度，从 -1 到 1
func ScaleStops(n int) []HeatCell {
	if n < 2 {
		n = 2
	}
	stops := make([]HeatCell, n)
	for i := range stops {
		v := -1 + 2*float64(i)/float64(n-1)
		bg := CoolWarm(v)
		stops[i] = HeatCell{
			Value:      v,
			Text:       fmt.Sprintf("%.1f", v),
			Background: Hex(bg),
			Foreground: TextColorFor(bg),
		}
	}
	return stops
}
