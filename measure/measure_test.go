package measure

import "testing"

// TestParseFontString 验证 "{style} {size} {face}" 形式字体串的拆解。
func TestParseFontString(t *testing.T) {
	style, size, face, err := ParseFontString("bold italic 13px serif", 13)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if style != "bold italic" || size != 13 || face != "serif" {
		t.Fatalf("拆解错误: style=%q size=%g face=%q", style, size, face)
	}

	style, size, face, err = ParseFontString("16px sans-serif", 13)
	if err != nil || style != "" || size != 16 || face != "sans-serif" {
		t.Fatalf("无样式字体串拆解错误: %q %g %q %v", style, size, face, err)
	}

	if _, _, _, err := ParseFontString("serif", 13); err == nil {
		t.Fatalf("缺少字号应返回错误")
	}
	if _, _, _, err := ParseFontString("13px", 13); err == nil {
		t.Fatalf("缺少字族应返回错误")
	}
}

// TestComposeFontStringRoundTrip 验证组合后的字体串可以被再次拆解。
func TestComposeFontStringRoundTrip(t *testing.T) {
	s := ComposeFontString("italic", 14.5, "monospace")
	style, size, face, err := ParseFontString(s, 13)
	if err != nil || style != "italic" || size != 14.5 || face != "monospace" {
		t.Fatalf("往返失败: %q → %q %g %q %v", s, style, size, face, err)
	}
	if got := ComposeFontString("", 12, ""); got != "12px serif" {
		t.Fatalf("空字族应回退 serif: %q", got)
	}
}

// TestVariantFromStyle 验证 CSS 样式串到字体变体的归一化。
func TestVariantFromStyle(t *testing.T) {
	cases := map[string]string{
		"":            "regular",
		"bold":        "bold",
		"italic":      "italic",
		"oblique":     "italic",
		"bold italic": "bolditalic",
		"Bold Oblique": "bolditalic",
	}
	for in, want := range cases {
		if got := variantFromStyle(in); got != want {
			t.Fatalf("variantFromStyle(%q) = %q，期望 %q", in, got, want)
		}
	}
}

// TestTextWidthMonotone 验证更长的文本测得更大的宽度，且缓存命中不影响结果。
func TestTextWidthMonotone(t *testing.T) {
	s := NewService()
	w1 := s.TextWidth("a", DefaultFont)
	w2 := s.TextWidth("aaaa", DefaultFont)
	if w1 <= 0 || w2 <= w1 {
		t.Fatalf("宽度应随文本增长: w1=%g w2=%g", w1, w2)
	}
	if again := s.TextWidth("a", DefaultFont); again != w1 {
		t.Fatalf("缓存命中后宽度应一致: %g != %g", again, w1)
	}
}

// TestMetricsSanity 验证字体度量的基本关系：ascent、descent、x_height、cap_height 为正，
// 且 x_height < cap_height ≤ ascent。
func TestMetricsSanity(t *testing.T) {
	fm := NewService().Metrics(DefaultFont)
	if fm.Ascent <= 0 || fm.Descent <= 0 || fm.XHeight <= 0 || fm.CapHeight <= 0 {
		t.Fatalf("度量应为正: %#v", fm)
	}
	if !(fm.XHeight < fm.CapHeight && fm.CapHeight <= fm.Ascent) {
		t.Fatalf("度量关系错误: %#v", fm)
	}
}
