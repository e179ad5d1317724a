package graphics

// 该文件定义盒子共享的样式记录、对齐/基线枚举、锚点与文本高度分类。

import (
	"image/color"

	"github.com/ByLCY/quill/measure"
)

// Align 是水平对齐方式。AlignAuto 表示由盒子的水平锚点推断。
type Align int

const (
	AlignAuto Align = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

// Baseline 对应样式中的 baseline 取值，映射为盒子的默认垂直锚点。
type Baseline int

const (
	BaselineAlphabetic Baseline = iota // 其余取值 → baseline 锚点
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

// FontSpec 描述样式中的字体三元组，Size 为 CSS 长度（px/em/pt）。
type FontSpec struct {
	Style string
	Size  string
	Face  string
}

// Visuals 是外部样式记录：颜色、透明度、字体、行高与对齐。
// 容器会把同一份 Visuals 级联给所有子盒子。
type Visuals struct {
	Color      color.RGBA
	Alpha      float64 // 0 视作 1
	Font       FontSpec
	LineHeight float64 // 行高倍数，0 视作保持现值
	Align      Align
	Baseline   Baseline
}

// applyAlpha 把透明度折算进颜色本身（canvas 的填充色自带 alpha 通道）。
func applyAlpha(c color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 || alpha >= 1 {
		if c.A == 0 {
			c.A = 255
		}
		return c
	}
	c.A = uint8(alpha * 255)
	return c
}

// XAnchor 是水平锚点：命名锚点或自身宽度的任意分数。零值表示未指定。
type XAnchor struct {
	name string
	frac float64
}

var (
	XLeft   = XAnchor{name: "left", frac: 0}
	XCenter = XAnchor{name: "center", frac: 0.5}
	XRight  = XAnchor{name: "right", frac: 1}
)

// XFrac 构造分数锚点：从锚点扣除自身宽度的 f 倍。
func XFrac(f float64) XAnchor { return XAnchor{name: "frac", frac: f} }

func (a XAnchor) IsZero() bool  { return a.name == "" }
func (a XAnchor) Frac() float64 { return a.frac }

// YAnchor 是垂直锚点。baseline 锚点的解析依赖字体度量，由具体盒子处理。
type YAnchor struct {
	name string
	frac float64
}

var (
	YTop      = YAnchor{name: "top", frac: 0}
	YCenter   = YAnchor{name: "center", frac: 0.5}
	YBottom   = YAnchor{name: "bottom", frac: 1}
	YBaseline = YAnchor{name: "baseline", frac: 0.5}
)

// YFrac 构造分数锚点：从锚点扣除自身高度的 f 倍。
func YFrac(f float64) YAnchor { return YAnchor{name: "frac", frac: f} }

func (a YAnchor) IsZero() bool     { return a.name == "" }
func (a YAnchor) Frac() float64    { return a.frac }
func (a YAnchor) IsBaseline() bool { return a.name == "baseline" }
func (a YAnchor) IsTop() bool      { return a.name == "top" }
func (a YAnchor) IsBottom() bool   { return a.name == "bottom" }

// Position 是锚定位置：屏幕锚点 (SX, SY) 加可选锚点说明。
// 未指定的锚点回退到盒子自身的默认锚点（普通盒子为 left/center）。
type Position struct {
	SX float64
	SY float64
	X  XAnchor
	Y  YAnchor
}

// TextHeightMetric 是文本高度分类：一行文字需要占用多少纵向空间。
// 数值顺序即“严格程度”排序，容器取子盒子中的最大值作为共享分类。
type TextHeightMetric int

const (
	MetricX TextHeightMetric = iota
	MetricCap
	MetricAscent
	MetricXDescent
	MetricCapDescent
	MetricAscentDescent
)

// Ascent 返回该分类下基线以上的高度。
func (m TextHeightMetric) Ascent(fm measure.FontMetrics) float64 {
	switch m {
	case MetricX, MetricXDescent:
		return fm.XHeight
	case MetricCap, MetricCapDescent:
		return fm.CapHeight
	default:
		return fm.Ascent
	}
}

// Descent 返回该分类下基线以下的高度（不含 descent 的分类为 0）。
func (m TextHeightMetric) Descent(fm measure.FontMetrics) float64 {
	switch m {
	case MetricXDescent, MetricCapDescent, MetricAscentDescent:
		return fm.Descent
	default:
		return 0
	}
}

func (m TextHeightMetric) String() string {
	switch m {
	case MetricX:
		return "x"
	case MetricCap:
		return "cap"
	case MetricAscent:
		return "ascent"
	case MetricXDescent:
		return "x_descent"
	case MetricCapDescent:
		return "cap_descent"
	case MetricAscentDescent:
		return "ascent_descent"
	default:
		return "unknown"
	}
}
