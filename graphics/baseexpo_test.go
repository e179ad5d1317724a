package graphics

import (
	"testing"

	"github.com/ByLCY/quill/measure"
)

// TestBaseExpoCompositeHeight 断言复合高度 = max(base.height, shift + expo.height)。
// 非单行文本底座的 shift_scale 固定为 2/3。
func TestBaseExpoCompositeHeight(t *testing.T) {
	base := newStubBox(20, 10, MetricAscentDescent)
	expo := newStubBox(8, 8, MetricAscentDescent)
	be := NewBaseExpo(measure.NewService(), base, expo)

	shift := 2.0 / 3.0 * 10
	want := shift + 8 // 14.67 > 10
	sz := be.Size()
	if abs(sz.Height-want) > 1e-9 {
		t.Fatalf("复合高度错误: got=%g want=%g", sz.Height, want)
	}
	if abs(sz.Width-28) > 1e-9 {
		t.Fatalf("复合宽度应为 base+expo 宽度之和: got=%g", sz.Width)
	}
}

// TestBaseExpoShortExponent 断言上标不超出底座时复合高度取底座高度。
func TestBaseExpoShortExponent(t *testing.T) {
	base := newStubBox(20, 30, MetricAscentDescent)
	expo := newStubBox(8, 5, MetricAscentDescent)
	be := NewBaseExpo(measure.NewService(), base, expo)

	// shift = 2/3×30 = 20，20+5 = 25 < 30。
	if sz := be.Size(); abs(sz.Height-30) > 1e-9 {
		t.Fatalf("复合高度应取底座高度 30: got=%g", sz.Height)
	}
}

// TestBaseExpoFontScale 断言构造时上标字号缩放被设为 0.7。
func TestBaseExpoFontScale(t *testing.T) {
	base := newStubBox(20, 10, MetricAscentDescent)
	expo := newStubBox(8, 8, MetricAscentDescent)
	NewBaseExpo(measure.NewService(), base, expo)
	if expo.gotScale != expoFontScale {
		t.Fatalf("上标字号缩放应为 %g，实际 %g", expoFontScale, expo.gotScale)
	}
}

// TestBaseExpoLayout 断言 SetPosition 立即布局：底座左下角贴复合盒底边，
// 上标左下角位于底座右侧、抬升 shift。
func TestBaseExpoLayout(t *testing.T) {
	base := newStubBox(20, 10, MetricAscentDescent)
	expo := newStubBox(8, 8, MetricAscentDescent)
	be := NewBaseExpo(measure.NewService(), base, expo)
	be.SetPosition(Position{SX: 0, SY: 0, X: XLeft, Y: YTop})

	shift := 2.0 / 3.0 * 10
	h := shift + 8
	bb := base.BBox()
	if abs(bb.Left-0) > 1e-9 || abs(bb.Bottom-h) > 1e-9 {
		t.Fatalf("底座位置错误: %#v", bb)
	}
	eb := expo.BBox()
	if abs(eb.Left-20) > 1e-9 || abs(eb.Bottom-(h-shift)) > 1e-9 {
		t.Fatalf("上标位置错误: %#v", eb)
	}
}

// TestBaseExpoVisualsCascade 断言样式级联到两个子盒。
func TestBaseExpoVisualsCascade(t *testing.T) {
	base := newStubBox(20, 10, MetricAscentDescent)
	expo := newStubBox(8, 8, MetricAscentDescent)
	be := NewBaseExpo(measure.NewService(), base, expo)
	be.SetVisuals(Visuals{})
	if base.gotVisuals != 1 || expo.gotVisuals != 1 {
		t.Fatalf("样式未级联: base=%d expo=%d", base.gotVisuals, expo.gotVisuals)
	}
}
