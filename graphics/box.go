package graphics

// 盒子层级的公共契约与共享状态。具体盒子提供未旋转的 rawSize/rawRect，
// 共享基座负责锚点、角度与旋转感知的 Size/BBox/Rect。

import (
	"math"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/quill/geom"
)

// DefaultBaseFontSize 是级联字号的缺省值（px），与宿主 UI 的基准字号一致。
const DefaultBaseFontSize = 13.0

// Size 是盒子的外包尺寸。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Box 是布局/绘制单元的公共能力集：文本行、栅格化数学片段或复合体。
type Box interface {
	// Size 返回旋转感知的外包尺寸。
	Size() Size
	// BBox 返回 Rect 四角的轴对齐外包络。
	BBox() geom.BBox
	// Rect 返回（绕锚点旋转后的）四角。
	Rect() geom.Quad
	// Paint 在给定绘制上下文上绘制自身。
	Paint(ctx *canvas.Context) error
	// InferTextHeight 推断文本高度分类，缺省为最宽的 ascent_descent。
	InferTextHeight() TextHeightMetric

	SetVisuals(v Visuals)
	SetPosition(p Position)
	Position() Position
	SetAngle(rad float64)
	SetBaseFontSize(px float64)
	SetFontSizeScale(s float64)
	SetTextHeightMetric(m TextHeightMetric)
}

// boxImpl 是具体盒子必须实现的未旋转原语。
type boxImpl interface {
	rawSize() Size
	rawRect() geom.Quad
}

// box 是所有盒子共享的基座状态。
type box struct {
	impl boxImpl

	pos           Position
	angle         float64 // 弧度
	fontSizeScale float64
	baseFontSize  float64
	padding       float64
	metric        *TextHeightMetric // 显式指定时覆盖推断结果
	widthScale    *float64          // 可选的宽度百分比缩放（1 = 100%）
	heightScale   *float64

	defaultX XAnchor
	defaultY YAnchor
}

// init 由具体盒子在构造时调用，回填 impl 指针与缺省值。
func (b *box) init(impl boxImpl) {
	b.impl = impl
	b.fontSizeScale = 1
	b.baseFontSize = DefaultBaseFontSize
	b.defaultX = XLeft
	b.defaultY = YCenter
}

func (b *box) SetPosition(p Position)     { b.pos = p }
func (b *box) Position() Position         { return b.pos }
func (b *box) SetAngle(rad float64)       { b.angle = rad }
func (b *box) SetBaseFontSize(px float64) { b.baseFontSize = px }
func (b *box) SetFontSizeScale(s float64) { b.fontSizeScale = s }
func (b *box) SetPadding(p float64)       { b.padding = p }

func (b *box) SetTextHeightMetric(m TextHeightMetric) { b.metric = &m }

// SetWidthScale 设置可选的宽度百分比缩放（1 = 100%）。
func (b *box) SetWidthScale(s float64)  { b.widthScale = &s }
func (b *box) SetHeightScale(s float64) { b.heightScale = &s }

// InferTextHeight 的基座实现：取最宽分类。具体盒子可覆盖。
func (b *box) InferTextHeight() TextHeightMetric { return MetricAscentDescent }

// heightMetric 返回生效的高度分类：显式指定优先，否则用传入的推断函数。
func (b *box) heightMetric(infer func() TextHeightMetric) TextHeightMetric {
	if b.metric != nil {
		return *b.metric
	}
	return infer()
}

// Size 返回旋转感知的外包尺寸：
// 有角度时由未旋转尺寸导出 {|w·cosθ|+|h·sinθ|, |w·sinθ|+|h·cosθ|}。
func (b *box) Size() Size {
	s := b.impl.rawSize()
	s.Width += 2 * b.padding
	s.Height += 2 * b.padding
	if b.angle == 0 {
		return s
	}
	c := math.Abs(math.Cos(b.angle))
	sn := math.Abs(math.Sin(b.angle))
	return Size{
		Width:  s.Width*c + s.Height*sn,
		Height: s.Width*sn + s.Height*c,
	}
}

// Rect 返回未旋转矩形绕锚点 (SX, SY) 旋转后的四角；零角度时与 rawRect 严格相等。
func (b *box) Rect() geom.Quad {
	q := b.impl.rawRect()
	if b.angle == 0 {
		return q
	}
	return geom.RotateAbout(b.angle, b.pos.SX, b.pos.SY).ApplyQuad(q)
}

// BBox 返回 Rect 的轴对齐外包络。
func (b *box) BBox() geom.BBox { return b.Rect().BBox() }

// xanchor/yanchor 返回生效的锚点（未指定时用盒子默认锚点）。
func (b *box) xanchor() XAnchor {
	if b.pos.X.IsZero() {
		return b.defaultX
	}
	return b.pos.X
}

func (b *box) yanchor() YAnchor {
	if b.pos.Y.IsZero() {
		return b.defaultY
	}
	return b.pos.Y
}

// paintRotated 在需要时把“绕锚点旋转”应用到绘制上下文，并执行 draw。
// 与 Rect 使用同一组 translate→rotate→translate 变换。
func (b *box) paintRotated(ctx *canvas.Context, draw func()) {
	if b.angle == 0 {
		draw()
		return
	}
	ctx.Push()
	deg := b.angle * 180 / math.Pi
	ctx.ComposeView(canvas.Identity.
		Translate(b.pos.SX, b.pos.SY).
		Rotate(deg).
		Translate(-b.pos.SX, -b.pos.SY))
	draw()
	ctx.Pop()
}
