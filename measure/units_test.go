package measure

import (
	"math"
	"testing"
)

// TestPtPxRoundTrip 验证 pt↔px 换算的往返精度（允许极小的浮点误差）。
func TestPtPxRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		px := pt * PtToPx
		back := px * PxToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→px→pt 往返误差过大: in=%gpt px=%g back=%g diff=%g", pt, px, back, diff)
		}
	}
}

// TestLengthPxConversions 覆盖 Length 在常见单位上解析到 px 的正确性。
func TestLengthPxConversions(t *testing.T) {
	// 2em，em=16px → 32px
	em := Length{Value: 2, Unit: UnitEM}
	if got := em.Px(16, 7); math.Abs(got-32) > 1e-9 {
		t.Fatalf("2em 转 px 期望 32，实际 %g", got)
	}
	// 3ex，ex=7px → 21px
	ex := Length{Value: 3, Unit: UnitEX}
	if got := ex.Px(16, 7); math.Abs(got-21) > 1e-9 {
		t.Fatalf("3ex 转 px 期望 21，实际 %g", got)
	}
	// 12pt → 16px
	pt := Length{Value: 12, Unit: UnitPT}
	if got := pt.Px(16, 7); math.Abs(got-16) > 1e-9 {
		t.Fatalf("12pt 转 px 期望 16，实际 %g", got)
	}
	// 裸数值按 px 处理
	bare := Length{Value: 13, Unit: UnitNone}
	if got := bare.Px(16, 7); got != 13 {
		t.Fatalf("裸数值应按 px 处理: %g", got)
	}
}

// TestParseLength 验证 CSS 长度解析保留原始单位。
func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want Length
		ok   bool
	}{
		{"13px", Length{13, UnitPX}, true},
		{"1.5em", Length{1.5, UnitEM}, true},
		{"-0.5ex", Length{-0.5, UnitEX}, true},
		{"12pt", Length{12, UnitPT}, true},
		{" 10 ", Length{10, UnitNone}, true},
		{"", Length{}, false},
		{"abc", Length{}, false},
	}
	for _, c := range cases {
		got, ok := ParseLength(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseLength(%q) = %#v,%v，期望 %#v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

// TestParseFontSize 验证字号解析：em 相对基准字号，ex 退化为 em/2。
func TestParseFontSize(t *testing.T) {
	if got, ok := ParseFontSize("2em", 10); !ok || got != 20 {
		t.Fatalf("2em@10px 期望 20，实际 %g,%v", got, ok)
	}
	if got, ok := ParseFontSize("1ex", 10); !ok || got != 5 {
		t.Fatalf("1ex@10px 期望 5，实际 %g,%v", got, ok)
	}
	if got, ok := ParseFontSize("12pt", 10); !ok || math.Abs(got-16) > 1e-9 {
		t.Fatalf("12pt 期望 16px，实际 %g,%v", got, ok)
	}
	if _, ok := ParseFontSize("big", 10); ok {
		t.Fatalf("非法字号不应解析成功")
	}
}
