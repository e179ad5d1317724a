package graphics

import (
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/quill/geom"
)

// Container 是水平序列容器：子盒从左到右依次排布，宽度求和、高度取最大。
// 容器把自己的垂直锚点原样透传给每个子盒，子盒各自解析该锚点：
// top 锚点自然对齐顶边，baseline 锚点让文字与数学片段共享同一条基线。
type Container struct {
	box
	children []Box
}

// NewContainer 创建容器。容器的默认垂直锚点是 top。
func NewContainer(children ...Box) *Container {
	c := &Container{children: children}
	c.init(c)
	c.defaultY = YTop
	return c
}

// Children 返回子盒列表（调用方不得修改）。
func (c *Container) Children() []Box { return c.children }

// SetVisuals 把样式级联给所有子盒，然后计算全体子盒中最严格的文本高度分类
// （x < cap < ascent < x_descent < cap_descent < ascent_descent 取最大），
// 并强制指定给每个子盒，使混排的文字与数学片段共享一条基线。
func (c *Container) SetVisuals(v Visuals) {
	strictest := MetricX
	for _, ch := range c.children {
		ch.SetVisuals(v)
		if m := ch.InferTextHeight(); m > strictest {
			strictest = m
		}
	}
	for _, ch := range c.children {
		ch.SetTextHeightMetric(strictest)
	}
}

// SetBaseFontSize 级联基准字号。
func (c *Container) SetBaseFontSize(px float64) {
	c.box.SetBaseFontSize(px)
	for _, ch := range c.children {
		ch.SetBaseFontSize(px)
	}
}

// InferTextHeight 取全体子盒的最严格分类。
func (c *Container) InferTextHeight() TextHeightMetric {
	strictest := MetricX
	for _, ch := range c.children {
		if m := ch.InferTextHeight(); m > strictest {
			strictest = m
		}
	}
	return strictest
}

func (c *Container) rawSize() Size {
	var w, h float64
	for _, ch := range c.children {
		s := ch.Size()
		w += s.Width
		if s.Height > h {
			h = s.Height
		}
	}
	return Size{Width: w, Height: h}
}

// SetPosition 布局子盒：第一个子盒从容器左缘开始，之后每个子盒紧贴前一个
// 的测量宽度；纵向把容器的 (SY, 锚点) 透传给子盒自行解析。
func (c *Container) SetPosition(p Position) {
	c.box.SetPosition(p)

	sz := c.rawSize()
	sx := c.pos.SX - c.xanchor().Frac()*sz.Width
	ya := c.yanchor()
	for _, ch := range c.children {
		ch.SetPosition(Position{SX: sx, SY: c.pos.SY, X: XLeft, Y: ya})
		sx += ch.Size().Width
	}
}

func (c *Container) computedPosition() (float64, float64) {
	sz := c.rawSize()
	x := c.pos.SX - c.xanchor().Frac()*sz.Width
	y := c.pos.SY - c.yanchor().Frac()*sz.Height
	return x, y
}

func (c *Container) rawRect() geom.Quad {
	x, y := c.computedPosition()
	sz := c.rawSize()
	return geom.QuadFromBBox(geom.BBox{Left: x, Right: x + sz.Width, Top: y, Bottom: y + sz.Height})
}

// Paint 按顺序绘制每个子盒，不做裁剪。任一子盒出错即返回该错误。
func (c *Container) Paint(ctx *canvas.Context) error {
	var err error
	c.paintRotated(ctx, func() {
		for _, ch := range c.children {
			if e := ch.Paint(ctx); e != nil {
				err = e
				return
			}
		}
	})
	return err
}
