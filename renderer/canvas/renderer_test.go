package canvasrenderer

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/quill/graphics"
	"github.com/ByLCY/quill/measure"
)

// TestRenderTextBoxPNG 断言输出为可解码的 PNG，且像素尺寸 =（盒子 + 留白）× 倍数。
func TestRenderTextBoxPNG(t *testing.T) {
	ms := measure.NewService()
	tb := graphics.NewTextBox(ms, "Hello")
	r := NewRendererWithOptions(Options{Padding: 4, Scale: 2, Background: canvas.White})

	data, err := r.Render(tb)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("输出不是合法 PNG: %v", err)
	}

	sz := tb.Size()
	wantW := int((sz.Width + 8) * 2)
	wantH := int((sz.Height + 8) * 2)
	b := img.Bounds()
	// 栅格化尺寸有取整，放宽一个像素。
	if d := b.Dx() - wantW; d < -1 || d > 1 {
		t.Fatalf("宽度错误: got=%d want≈%d", b.Dx(), wantW)
	}
	if d := b.Dy() - wantH; d < -1 || d > 1 {
		t.Fatalf("高度错误: got=%d want≈%d", b.Dy(), wantH)
	}
}

// TestRenderNilBox 断言空盒子返回错误。
func TestRenderNilBox(t *testing.T) {
	if _, err := NewRenderer().Render(nil); err == nil {
		t.Fatalf("空盒子应返回错误")
	}
}

// TestRenderEmptyTextBox 断言零尺寸盒子（且无留白）返回错误。
func TestRenderEmptyTextBox(t *testing.T) {
	tb := graphics.NewTextBox(measure.NewService(), "")
	if _, err := NewRenderer().Render(tb); err == nil {
		t.Fatalf("零尺寸盒子应返回错误")
	}
}
