package graphics

import (
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/quill/geom"
	"github.com/ByLCY/quill/measure"
)

// expoFontScale 是上标相对底座的字号缩放。
const expoFontScale = 0.7

// BaseExpo 是“底座 + 上标”的复合盒：上标的垂直抬升取底座高度的一个比例，
// 比例由底座字体的 x_height/cap_height 决定（非单行文本底座固定为 2/3）。
type BaseExpo struct {
	box
	ms   *measure.Service
	base Box
	expo Box
}

// NewBaseExpo 创建复合盒并把上标的字号缩放设为 0.7。
func NewBaseExpo(ms *measure.Service, base, expo Box) *BaseExpo {
	be := &BaseExpo{ms: ms, base: base, expo: expo}
	be.init(be)
	expo.SetFontSizeScale(expoFontScale)
	return be
}

// SetVisuals 把样式级联给两个子盒（上标保持 0.7 缩放）。
func (be *BaseExpo) SetVisuals(v Visuals) {
	be.base.SetVisuals(v)
	be.expo.SetVisuals(v)
}

// SetBaseFontSize 级联基准字号。
func (be *BaseExpo) SetBaseFontSize(px float64) {
	be.box.SetBaseFontSize(px)
	be.base.SetBaseFontSize(px)
	be.expo.SetBaseFontSize(px)
}

// InferTextHeight 委托给底座。
func (be *BaseExpo) InferTextHeight() TextHeightMetric {
	return be.base.InferTextHeight()
}

// shiftScale 返回上标抬升相对底座高度的比例。
func (be *BaseExpo) shiftScale() float64 {
	if tb, ok := be.base.(*TextBox); ok && !strings.Contains(tb.text, "\n") {
		fm := be.ms.Metrics(tb.font)
		if fm.CapHeight > 0 {
			return fm.XHeight / fm.CapHeight
		}
	}
	return 2.0 / 3.0
}

// shift 返回上标底边相对复合盒底边的抬升量。
func (be *BaseExpo) shift() float64 {
	return be.shiftScale() * be.base.Size().Height
}

func (be *BaseExpo) rawSize() Size {
	bs := be.base.Size()
	es := be.expo.Size()
	h := bs.Height
	if s := be.shift() + es.Height; s > h {
		h = s
	}
	return Size{Width: bs.Width + es.Width, Height: h}
}

// SetPosition 立即布局两个子盒：底座左下角锚定在复合盒底边，
// 上标左下角锚定在底座右侧、抬升 shift 处。
func (be *BaseExpo) SetPosition(p Position) {
	be.box.SetPosition(p)

	x0, y0 := be.computedPosition()
	sz := be.rawSize()
	bottom := y0 + sz.Height

	be.base.SetPosition(Position{SX: x0, SY: bottom, X: XLeft, Y: YBottom})
	be.expo.SetPosition(Position{
		SX: x0 + be.base.Size().Width,
		SY: bottom - be.shift(),
		X:  XLeft,
		Y:  YBottom,
	})
}

func (be *BaseExpo) computedPosition() (float64, float64) {
	sz := be.rawSize()
	x := be.pos.SX - be.xanchor().Frac()*sz.Width
	y := be.pos.SY - be.yanchor().Frac()*sz.Height
	return x, y
}

// rawRect 取两个子盒外包络的并集。
func (be *BaseExpo) rawRect() geom.Quad {
	return geom.QuadFromBBox(be.base.BBox().Union(be.expo.BBox()))
}

// Paint 依次绘制底座与上标。
func (be *BaseExpo) Paint(ctx *canvas.Context) error {
	var err error
	be.paintRotated(ctx, func() {
		if e := be.base.Paint(ctx); e != nil && err == nil {
			err = e
		}
		if e := be.expo.Paint(ctx); e != nil && err == nil {
			err = e
		}
	})
	return err
}
