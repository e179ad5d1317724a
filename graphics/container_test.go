package graphics

import "testing"

// TestContainerSizeInvariant 断言：宽度 = Σ子盒宽度，高度 = max 子盒高度。
func TestContainerSizeInvariant(t *testing.T) {
	c := NewContainer(
		newStubBox(10, 5, MetricCap),
		newStubBox(20, 15, MetricAscentDescent),
		newStubBox(5, 8, MetricX),
	)
	sz := c.Size()
	if abs(sz.Width-35) > 1e-9 {
		t.Fatalf("容器宽度应为子盒宽度之和 35: got=%g", sz.Width)
	}
	if abs(sz.Height-15) > 1e-9 {
		t.Fatalf("容器高度应为子盒高度最大值 15: got=%g", sz.Height)
	}
}

// TestContainerStrictestMetricCascade 断言样式级联后，
// 所有子盒被强制指定为全体中最严格的高度分类。
func TestContainerStrictestMetricCascade(t *testing.T) {
	a := newStubBox(10, 5, MetricCap)
	b := newStubBox(20, 15, MetricCapDescent)
	d := newStubBox(5, 8, MetricX)
	c := NewContainer(a, b, d)
	c.SetVisuals(Visuals{})

	for i, s := range []*stubBox{a, b, d} {
		if s.gotMetric == nil || *s.gotMetric != MetricCapDescent {
			t.Fatalf("子盒 %d 未被指定最严格分类 cap_descent: %v", i, s.gotMetric)
		}
	}
}

// TestContainerTopAlignment 断言 top 锚点下子盒顶边对齐，且横向依次紧贴。
func TestContainerTopAlignment(t *testing.T) {
	a := newStubBox(10, 5, MetricCap)
	b := newStubBox(20, 15, MetricAscentDescent)
	c := NewContainer(a, b)
	c.SetPosition(Position{SX: 100, SY: 50, X: XLeft, Y: YTop})

	ab, bb := a.BBox(), b.BBox()
	if abs(ab.Top-50) > 1e-9 || abs(bb.Top-50) > 1e-9 {
		t.Fatalf("子盒顶边未对齐: a.Top=%g b.Top=%g", ab.Top, bb.Top)
	}
	if abs(ab.Left-100) > 1e-9 || abs(bb.Left-110) > 1e-9 {
		t.Fatalf("子盒横向位置错误: a.Left=%g b.Left=%g", ab.Left, bb.Left)
	}
}

// TestContainerSingleTextRoundTrip 断言无数学片段的容器只含一个原文 TextBox。
func TestContainerSingleTextRoundTrip(t *testing.T) {
	tb := NewTextBox(testMS, "plain words")
	c := NewContainer(tb)
	if len(c.Children()) != 1 {
		t.Fatalf("容器应只含一个子盒: %d", len(c.Children()))
	}
	got, ok := c.Children()[0].(*TextBox)
	if !ok || got.Text() != "plain words" {
		t.Fatalf("子盒应为原文 TextBox: %#v", c.Children()[0])
	}
}
