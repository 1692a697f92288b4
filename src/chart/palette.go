package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// 调色板，与常见的 ColorBrewer 定义一致
var (
	Set2 = []string{"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854", "#ffd92f", "#e5c494", "#b3b3b3"}
	Set3 = []string{"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462", "#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f"}
)

// 直方图样式
var (
	SkyBlue   = drawing.Color{R: 135, G: 206, B: 235, A: 255}
	EdgeBlack = drawing.Color{R: 0, G: 0, B: 0, A: 255}
	BoxEdge   = drawing.Color{R: 63, G: 63, B: 63, A: 255}
)

// coolwarm 色阶的三个锚点
var (
	coolEnd  = drawing.Color{R: 59, G: 76, B: 192, A: 255}
	coolMid  = drawing.Color{R: 221, G: 221, B: 221, A: 255}
	coolWarm = drawing.Color{R: 180, G: 4, B: 38, A: 255}
	nanColor = drawing.Color{R: 255, G: 255, B: 255, A: 255}
)

// PaletteColor 取调色板第 i 个颜色，超出长度时循环
func PaletteColor(palette []string, i int) drawing.Color {
	if len(palette) == 0 {
		palette = Set2
	}
	return drawing.ColorFromHex(strings.TrimPrefix(palette[i%len(palette)], "#"))
}

// CoolWarm 将 [-1, 1] 上的值映射到蓝-灰-红发散色阶，超出范围时截断
func CoolWarm(v float64) drawing.Color {
	if math.IsNaN(v) {
		return nanColor
	}
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	if v < 0 {
		return lerpColor(coolMid, coolEnd, -v)
	}
	return lerpColor(coolMid, coolWarm, v)
}

func lerpColor(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// Hex 颜色的 #rrggbb 表示，用于页面样式
func Hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// TextColorFor 在给定背景色上可读的文字颜色
func TextColorFor(bg drawing.Color) string {
	lum := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if lum < 140 {
		return "#ffffff"
	}
	return "#000000"
}
