package graphics

import (
	"math"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/quill/geom"
)

// stubBox 是固定尺寸的最小盒子实现，仅用于测试复合盒的布局逻辑。
type stubBox struct {
	box
	w, h   float64
	metric TextHeightMetric

	gotVisuals int
	gotMetric  *TextHeightMetric
	gotScale   float64
}

func newStubBox(w, h float64, m TextHeightMetric) *stubBox {
	s := &stubBox{w: w, h: h, metric: m, gotScale: 1}
	s.init(s)
	return s
}

func (s *stubBox) rawSize() Size { return Size{Width: s.w, Height: s.h} }

func (s *stubBox) rawRect() geom.Quad {
	x := s.pos.SX - s.xanchor().Frac()*s.w
	y := s.pos.SY - s.yanchor().Frac()*s.h
	return geom.QuadFromBBox(geom.BBox{Left: x, Right: x + s.w, Top: y, Bottom: y + s.h})
}

func (s *stubBox) InferTextHeight() TextHeightMetric { return s.metric }
func (s *stubBox) SetVisuals(v Visuals)              { s.gotVisuals++ }
func (s *stubBox) Paint(ctx *canvas.Context) error   { return nil }

func (s *stubBox) SetTextHeightMetric(m TextHeightMetric) {
	s.gotMetric = &m
	s.box.SetTextHeightMetric(m)
}

func (s *stubBox) SetFontSizeScale(f float64) {
	s.gotScale = f
	s.box.SetFontSizeScale(f)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// TestRectZeroAngleIsRaw 断言：angle=0 时 Rect 与未旋转矩形严格相等。
func TestRectZeroAngleIsRaw(t *testing.T) {
	s := newStubBox(40, 10, MetricAscentDescent)
	s.SetPosition(Position{SX: 5, SY: 7, X: XLeft, Y: YTop})
	if got, want := s.Rect(), s.rawRect(); got != want {
		t.Fatalf("零角度 Rect 应与 rawRect 相等: got=%#v want=%#v", got, want)
	}
}

// TestRotatedSizeEnvelope 断言：旋转 90° 后外包尺寸宽高互换。
func TestRotatedSizeEnvelope(t *testing.T) {
	s := newStubBox(40, 10, MetricAscentDescent)
	s.SetAngle(math.Pi / 2)
	sz := s.Size()
	if abs(sz.Width-10) > 1e-9 || abs(sz.Height-40) > 1e-9 {
		t.Fatalf("旋转 90° 的外包尺寸应为 {10,40}，实际 %#v", sz)
	}
}

// TestAnchorIdempotence 断言：对每种锚点组合，
// “左上角 + 锚点分数 × 尺寸”能还原出输入的锚点坐标。
func TestAnchorIdempotence(t *testing.T) {
	xs := []XAnchor{XLeft, XCenter, XRight, XFrac(0.25)}
	ys := []YAnchor{YTop, YCenter, YBottom, YFrac(0.75)}
	for _, xa := range xs {
		for _, ya := range ys {
			s := newStubBox(40, 10, MetricAscentDescent)
			s.SetPosition(Position{SX: 100, SY: 50, X: xa, Y: ya})
			bb := s.BBox()
			sx := bb.Left + xa.Frac()*s.w
			sy := bb.Top + ya.Frac()*s.h
			if abs(sx-100) > 1e-9 || abs(sy-50) > 1e-9 {
				t.Fatalf("锚点 %v/%v 不可逆: 还原得 (%g,%g)", xa, ya, sx, sy)
			}
		}
	}
}

// TestRotatedRectAnchorFixed 断言：绕锚点旋转时锚点本身保持不动。
func TestRotatedRectAnchorFixed(t *testing.T) {
	s := newStubBox(40, 10, MetricAscentDescent)
	s.SetPosition(Position{SX: 20, SY: 30, X: XLeft, Y: YTop})
	s.SetAngle(math.Pi / 3)
	q := s.Rect()
	// 左上角即锚点，旋转后仍应在 (20,30)。
	if abs(q.P0.X-20) > 1e-9 || abs(q.P0.Y-30) > 1e-9 {
		t.Fatalf("旋转后锚点漂移: P0=(%g,%g)", q.P0.X, q.P0.Y)
	}
}

// TestPaddingExpandsSize 断言：padding 对宽高各扩张两倍 padding 值。
func TestPaddingExpandsSize(t *testing.T) {
	s := newStubBox(40, 10, MetricAscentDescent)
	s.SetPadding(3)
	sz := s.Size()
	if sz.Width != 46 || sz.Height != 16 {
		t.Fatalf("padding 扩张错误: %#v", sz)
	}
}
