package graphics

import (
	"image"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/quill/geom"
	"github.com/ByLCY/quill/measure"
)

// ImageProperties 描述一个栅格化数学片段的逻辑尺寸与基线偏移（单位 px）。
type ImageProperties struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// VAlign 是基线以下的偏移量，至少为字体的 descent。
	VAlign float64 `json:"v_align"`
}

// LoadFunc 是注入给 ImageTextBox 的转换能力：盒子只持有“请求转换”这一能力，
// 不持有所属视图的引用。实现方应异步完成转换并最终调用 SetImage。
type LoadFunc func(*ImageTextBox)

// ImageTextBox 是 TextBox 的变体：携带原始数学源码，图片就绪后按图片尺寸
// 参与布局与绘制；图片缺席时尺寸为零，paint 触发一次异步加载而不绘制。
type ImageTextBox struct {
	TextBox
	load LoadFunc

	mu      sync.Mutex
	img     image.Image
	props   ImageProperties
	loading bool
}

// NewImageTextBox 创建一个携带数学源码与加载回调的图文盒。
func NewImageTextBox(ms *measure.Service, math string, load LoadFunc) *ImageTextBox {
	ib := &ImageTextBox{load: load}
	ib.ms = ms
	ib.text = math
	ib.font = measure.DefaultFont
	ib.color.A = 255
	ib.lineHeight = 1.2
	ib.init(ib)
	return ib
}

// Math 返回原始数学源码。
func (ib *ImageTextBox) Math() string { return ib.text }

// HasImage 报告图片是否已经就绪。
func (ib *ImageTextBox) HasImage() bool {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	return ib.img != nil
}

// Image 返回已解码的图片（可能为 nil）与其属性。
func (ib *ImageTextBox) Image() (image.Image, ImageProperties) {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	return ib.img, ib.props
}

// SetImage 安装解码后的图片与属性。图片一经设置不再替换：
// text 变化会重建整个容器并产生全新实例，而不是复用旧盒子。
func (ib *ImageTextBox) SetImage(img image.Image, props ImageProperties) {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	if ib.img != nil {
		return
	}
	ib.img = img
	ib.props = props
	ib.loading = false
}

// beginLoad 抢占进行中标记，防止重复 paint 触发并行转换。
func (ib *ImageTextBox) beginLoad() bool {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	if ib.loading || ib.img != nil {
		return false
	}
	ib.loading = true
	return true
}

// EndLoad 清除进行中标记。转换失败（图片保持 nil）时由加载方调用。
func (ib *ImageTextBox) EndLoad() {
	ib.mu.Lock()
	ib.loading = false
	ib.mu.Unlock()
}

func (ib *ImageTextBox) rawSize() Size {
	ib.mu.Lock()
	img, props := ib.img, ib.props
	ib.mu.Unlock()
	if img == nil {
		return Size{}
	}
	// 高度不小于一行文字，图片不会塌缩到行高以下。
	fm := ib.ms.Metrics(ib.font)
	h := props.Height
	if h < fm.Height {
		h = fm.Height
	}
	w := props.Width
	if ib.widthScale != nil {
		w *= *ib.widthScale
	}
	if ib.heightScale != nil {
		h *= *ib.heightScale
	}
	return Size{Width: w, Height: h}
}

// computedPosition 无图片时退化为原始锚点；有图片时：
// top/bottom 锚点在图片高于一行时分别偏移 (height−metrics.height)+v_align 与
// height+v_align，否则回退到 0/height；center 与 baseline 都解析为半高。
func (ib *ImageTextBox) computedPosition() (float64, float64) {
	sz := ib.rawSize()
	if sz.Width == 0 && sz.Height == 0 {
		return ib.pos.SX, ib.pos.SY
	}
	x := ib.pos.SX - ib.xanchor().Frac()*sz.Width

	fm := ib.ms.Metrics(ib.font)
	ib.mu.Lock()
	vAlign := ib.props.VAlign
	ib.mu.Unlock()

	ya := ib.yanchor()
	var off float64
	switch {
	case ya.IsTop():
		if sz.Height > fm.Height {
			off = (sz.Height - fm.Height) + vAlign
		}
	case ya.IsBottom():
		off = sz.Height
		if sz.Height > fm.Height {
			off = sz.Height + vAlign
		}
	default:
		off = sz.Height / 2
	}
	return x, ib.pos.SY - off
}

func (ib *ImageTextBox) rawRect() geom.Quad {
	x, y := ib.computedPosition()
	sz := ib.rawSize()
	return geom.QuadFromBBox(geom.BBox{Left: x, Right: x + sz.Width, Top: y, Bottom: y + sz.Height})
}

// Paint 有图片时按计算位置绘制；无图片时触发一次异步加载（进行中标记
// 保证同一实例不会产生并行转换），本次调用不绘制任何内容。
func (ib *ImageTextBox) Paint(ctx *canvas.Context) error {
	ib.mu.Lock()
	img := ib.img
	ib.mu.Unlock()

	if img == nil {
		if ib.load != nil && ib.beginLoad() {
			ib.load(ib)
		}
		return nil
	}

	sz := ib.rawSize()
	if sz.Width <= 0 {
		return nil
	}
	x0, y0 := ib.computedPosition()
	// 解码图片可能是超采样的，分辨率按像素宽/逻辑宽折算。
	res := canvas.DPMM(float64(img.Bounds().Dx()) / sz.Width)
	ib.paintRotated(ctx, func() {
		ctx.DrawImage(x0, y0, img, res)
	})
	return nil
}
