package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/quill/graphics"
	"github.com/ByLCY/quill/renderer"
)

// Renderer 通过 github.com/tdewolff/canvas 把盒子树栅格化为 PNG。
// 画布单位与盒子坐标同为 px，像素密度由 Options.Scale 控制。
type Renderer struct {
	opts Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options 配置 PNG 渲染器。
type Options struct {
	// Padding 是盒子四周的留白（px）。
	Padding float64
	// Scale 是 px 到输出像素的倍数，<= 0 时取 1。
	Scale float64
	// Background 是底色，nil 表示透明。
	Background color.Color
}

// NewRenderer 创建一个默认配置（无留白、1 倍像素、透明底）的渲染器。
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions 按给定配置创建渲染器。
func NewRendererWithOptions(opts Options) *Renderer {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	return &Renderer{opts: opts}
}

// Render 把盒子锚定在留白内的左上角，绘制并编码为 PNG 字节。
// 画布尺寸取盒子旋转感知的外包尺寸加上两侧留白。
func (r *Renderer) Render(box graphics.Box) ([]byte, error) {
	if box == nil {
		return nil, fmt.Errorf("渲染对象为空")
	}
	sz := box.Size()
	w := sz.Width + 2*r.opts.Padding
	h := sz.Height + 2*r.opts.Padding
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("盒子尺寸非法: %gx%g", sz.Width, sz.Height)
	}
	box.SetPosition(graphics.Position{
		SX: r.opts.Padding,
		SY: r.opts.Padding,
		X:  graphics.XLeft,
		Y:  graphics.YTop,
	})

	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与盒子布局保持左上角为原点

	if r.opts.Background != nil {
		ctx.SetFillColor(r.opts.Background)
		ctx.DrawPath(0, 0, canvas.Rectangle(w, h))
	}
	ctx.SetFillColor(canvas.Black)
	if err := box.Paint(ctx); err != nil {
		return nil, err
	}

	img := rasterizer.Draw(c, canvas.DPMM(r.opts.Scale), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}
