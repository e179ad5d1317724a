package graphics

import (
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/quill/geom"
	"github.com/ByLCY/quill/measure"
)

// TextBox 是一段（单行或多行）纯文本的盒子。
// 宽度逐行测量取最大值，高度由生效的文本高度分类与行高倍数决定。
type TextBox struct {
	box
	ms *measure.Service

	text       string
	font       string // 已解析的字体串 "{style} {size}px {face}"
	color      color.RGBA
	lineHeight float64 // 行高倍数
	align      Align
}

// NewTextBox 创建一个使用缺省字体与黑色的文本盒。
func NewTextBox(ms *measure.Service, text string) *TextBox {
	tb := &TextBox{
		ms:         ms,
		text:       text,
		font:       measure.DefaultFont,
		color:      color.RGBA{A: 255},
		lineHeight: 1.2,
	}
	tb.init(tb)
	return tb
}

// Text 返回原始文本。
func (tb *TextBox) Text() string { return tb.text }

// Font 返回当前解析出的字体串。
func (tb *TextBox) Font() string { return tb.font }

// Color 返回折算了透明度的绘制颜色。
func (tb *TextBox) Color() color.RGBA { return tb.color }

// SetVisuals 解析样式记录：
// 字号支持 em（相对级联基准字号）并乘以 font_size_scale；
// baseline 取值映射为默认垂直锚点 top|middle|bottom|其它 → top|center|bottom|baseline。
func (tb *TextBox) SetVisuals(v Visuals) {
	sizePx := tb.baseFontSize
	if v.Font.Size != "" {
		if px, ok := measure.ParseFontSize(v.Font.Size, tb.baseFontSize); ok && px > 0 {
			sizePx = px
		}
	}
	sizePx *= tb.fontSizeScale
	tb.font = measure.ComposeFontString(v.Font.Style, sizePx, v.Font.Face)

	tb.color = applyAlpha(v.Color, v.Alpha)
	if v.LineHeight > 0 {
		tb.lineHeight = v.LineHeight
	}
	tb.align = v.Align

	switch v.Baseline {
	case BaselineTop:
		tb.defaultY = YTop
	case BaselineMiddle:
		tb.defaultY = YCenter
	case BaselineBottom:
		tb.defaultY = YBottom
	default:
		tb.defaultY = YBaseline
	}
}

// InferTextHeight 推断高度分类：多行 → ascent_descent；
// 仅由数字与 “, . + - − e” 组成的单行（数值类字符串）→ cap；其余 → ascent_descent。
func (tb *TextBox) InferTextHeight() TextHeightMetric {
	if strings.Contains(tb.text, "\n") {
		return MetricAscentDescent
	}
	if isNumericLike(tb.text) {
		return MetricCap
	}
	return MetricAscentDescent
}

func isNumericLike(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == ',' || r == '.' || r == '+' || r == '-' || r == '−' || r == 'e':
		default:
			return false
		}
	}
	return true
}

func (tb *TextBox) rawSize() Size {
	if tb.text == "" {
		return Size{}
	}
	lines := strings.Split(tb.text, "\n")
	fm := tb.ms.Metrics(tb.font)
	m := tb.heightMetric(tb.InferTextHeight)
	lineH := m.Ascent(fm) + m.Descent(fm)

	w := 0.0
	for _, ln := range lines {
		if lw := tb.ms.TextWidth(ln, tb.font); lw > w {
			w = lw
		}
	}
	n := float64(len(lines))
	h := lineH*n + (tb.lineHeight-1)*fm.Height*(n-1)

	if tb.widthScale != nil {
		w *= *tb.widthScale
	}
	if tb.heightScale != nil {
		h *= *tb.heightScale
	}
	return Size{Width: w, Height: h}
}

// computedPosition 由锚点导出未旋转矩形的左上角。
// 单行文本的 baseline 锚点解析为分类后的 ascent；多行取总高的一半。
func (tb *TextBox) computedPosition() (float64, float64) {
	sz := tb.rawSize()
	x := tb.pos.SX - tb.xanchor().Frac()*sz.Width

	ya := tb.yanchor()
	var y float64
	if ya.IsBaseline() {
		if strings.Contains(tb.text, "\n") {
			y = tb.pos.SY - sz.Height/2
		} else {
			fm := tb.ms.Metrics(tb.font)
			y = tb.pos.SY - tb.heightMetric(tb.InferTextHeight).Ascent(fm)
		}
	} else {
		y = tb.pos.SY - ya.Frac()*sz.Height
	}
	return x, y
}

func (tb *TextBox) rawRect() geom.Quad {
	x, y := tb.computedPosition()
	sz := tb.rawSize()
	return geom.QuadFromBBox(geom.BBox{Left: x, Right: x + sz.Width, Top: y, Bottom: y + sz.Height})
}

// resolvedAlign 返回生效的水平对齐：AlignAuto 时按水平锚点推断。
func (tb *TextBox) resolvedAlign() Align {
	if tb.align != AlignAuto {
		return tb.align
	}
	switch tb.xanchor() {
	case XCenter:
		return AlignCenter
	case XRight:
		return AlignRight
	default:
		return AlignLeft
	}
}

// Paint 逐行绘制文本。基线位置 = 行顶部 + 分类后的 ascent（坐标系为左上原点）。
func (tb *TextBox) Paint(ctx *canvas.Context) error {
	if tb.text == "" {
		return nil
	}
	face, err := tb.ms.Face(tb.font, tb.color)
	if err != nil {
		return err
	}

	sz := tb.rawSize()
	x0, y0 := tb.computedPosition()
	fm := tb.ms.Metrics(tb.font)
	m := tb.heightMetric(tb.InferTextHeight)
	asc := m.Ascent(fm)
	lineH := asc + m.Descent(fm)
	leading := (tb.lineHeight - 1) * fm.Height
	lines := strings.Split(tb.text, "\n")

	tb.paintRotated(ctx, func() {
		for i, ln := range lines {
			baseline := y0 + float64(i)*(lineH+leading) + asc
			switch tb.resolvedAlign() {
			case AlignCenter:
				ctx.DrawText(x0+sz.Width/2, baseline, canvas.NewTextLine(face, ln, canvas.Center))
			case AlignRight:
				ctx.DrawText(x0+sz.Width, baseline, canvas.NewTextLine(face, ln, canvas.Right))
			case AlignJustify:
				tb.paintJustified(ctx, face, ln, x0, baseline, sz.Width)
			default:
				ctx.DrawText(x0, baseline, canvas.NewTextLine(face, ln, canvas.Left))
			}
		}
	})
	return nil
}

// paintJustified 把该行的剩余宽度平均分配到词间空隙。
func (tb *TextBox) paintJustified(ctx *canvas.Context, face *canvas.FontFace, line string, x0, baseline, width float64) {
	words, offsets := tb.justifyLine(line, width)
	if len(words) <= 1 {
		ctx.DrawText(x0, baseline, canvas.NewTextLine(face, line, canvas.Left))
		return
	}
	for i, w := range words {
		ctx.DrawText(x0+offsets[i], baseline, canvas.NewTextLine(face, w, canvas.Left))
	}
}

// justifyLine 拆词并计算每个词相对行首的横向偏移：
// 词间空隙 = (行宽 − Σ词宽) / (词数 − 1)，末词右缘贴齐行宽。
func (tb *TextBox) justifyLine(line string, width float64) ([]string, []float64) {
	words := strings.Fields(line)
	offsets := make([]float64, len(words))
	if len(words) <= 1 {
		return words, offsets
	}
	total := 0.0
	widths := make([]float64, len(words))
	for i, w := range words {
		widths[i] = tb.ms.TextWidth(w, tb.font)
		total += widths[i]
	}
	gap := (width - total) / float64(len(words)-1)
	x := 0.0
	for i := range words {
		offsets[i] = x
		x += widths[i] + gap
	}
	return words, offsets
}
