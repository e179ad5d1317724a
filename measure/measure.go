package measure

// 测量服务：按字体串（"{style} {size}px {face}"）提供文本宽度与字体度量。
// canvas 的字体接口以 pt 设定字号、以画布单位返回度量；quill 把画布单位视作 px，
// 仅在本文件边界处做一次 px↔pt 换算，其余代码不出现 pt。

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/quill/fonts"
)

// facePt 把 px 字号换算成 canvas 字体面所需的 pt 值。
const facePt = 72.0 / 25.4

// DefaultFont 是字体串解析失败时的兜底字体。
const DefaultFont = "13px serif"

// FontMetrics 记录一个字体串的关键度量（单位 px）。
type FontMetrics struct {
	Ascent    float64 `json:"ascent"`
	Descent   float64 `json:"descent"`
	Height    float64 `json:"height"`
	XHeight   float64 `json:"x_height"`
	CapHeight float64 `json:"cap_height"`
}

// Service 是线程安全的测量服务，内部缓存已加载的字体族。
type Service struct {
	mu       sync.Mutex
	families map[string]*canvas.FontFamily
}

// NewService 创建一个空缓存的测量服务。
func NewService() *Service {
	return &Service{families: map[string]*canvas.FontFamily{}}
}

// ParseFontString 拆解 "{style} {size} {face}" 形式的字体串。
// style 可省略；size 支持 px/em/pt，em 相对 basePx 解析；face 为其后的全部内容。
func ParseFontString(font string, basePx float64) (style string, sizePx float64, face string, err error) {
	fields := strings.Fields(font)
	sizeIdx := -1
	for i, f := range fields {
		if f[0] >= '0' && f[0] <= '9' || f[0] == '.' {
			sizeIdx = i
			break
		}
	}
	if sizeIdx == -1 || sizeIdx == len(fields)-1 {
		return "", 0, "", fmt.Errorf("字体串缺少字号或字族：%q", font)
	}
	sizePx, ok := ParseFontSize(fields[sizeIdx], basePx)
	if !ok || sizePx <= 0 {
		return "", 0, "", fmt.Errorf("无法解析字号 %q", fields[sizeIdx])
	}
	style = strings.Join(fields[:sizeIdx], " ")
	face = strings.Join(fields[sizeIdx+1:], " ")
	return style, sizePx, face, nil
}

// ComposeFontString 按 "{style} {size}px {face}" 组合字体串，style 为空时省略。
func ComposeFontString(style string, sizePx float64, face string) string {
	if face == "" {
		face = "serif"
	}
	if style == "" {
		return fmt.Sprintf("%gpx %s", sizePx, face)
	}
	return fmt.Sprintf("%s %gpx %s", style, sizePx, face)
}

// Face 按字体串与颜色创建 canvas 字体面，供绘制阶段使用。
func (s *Service) Face(font string, col color.Color) (*canvas.FontFace, error) {
	style, sizePx, face, err := ParseFontString(font, 13)
	if err != nil {
		return nil, err
	}
	family, err := s.ensureFamily(face, variantFromStyle(style))
	if err != nil {
		return nil, err
	}
	return family.Face(sizePx*facePt, col, canvas.FontRegular, canvas.FontNormal), nil
}

// TextWidth 返回单行文本在给定字体串下的像素宽度。
// 解析失败时回退到 DefaultFont，保证布局路径不中断（失败静默，见错误策略）。
func (s *Service) TextWidth(text, font string) float64 {
	face, err := s.Face(font, canvas.Black)
	if err != nil {
		face, err = s.Face(DefaultFont, canvas.Black)
		if err != nil {
			return 0
		}
	}
	return face.TextWidth(text)
}

// Metrics 返回字体串的度量信息，解析失败时回退到 DefaultFont。
func (s *Service) Metrics(font string) FontMetrics {
	face, err := s.Face(font, canvas.Black)
	if err != nil {
		face, err = s.Face(DefaultFont, canvas.Black)
		if err != nil {
			return FontMetrics{}
		}
	}
	m := face.Metrics()
	return FontMetrics{
		Ascent:    m.Ascent,
		Descent:   m.Descent,
		Height:    m.LineHeight,
		XHeight:   m.XHeight,
		CapHeight: m.CapHeight,
	}
}

func (s *Service) ensureFamily(face, variant string) (*canvas.FontFamily, error) {
	key := face + "|" + variant
	s.mu.Lock()
	defer s.mu.Unlock()

	if family, ok := s.families[key]; ok {
		return family, nil
	}
	data, err := fonts.Load(face, variant)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(key)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", key, err)
	}
	s.families[key] = family
	return family, nil
}

// variantFromStyle 把 CSS 风格串归一化为内置字体的变体名。
func variantFromStyle(style string) string {
	st := strings.ToLower(style)
	bold := strings.Contains(st, "bold")
	italic := strings.Contains(st, "italic") || strings.Contains(st, "oblique")
	switch {
	case bold && italic:
		return "bolditalic"
	case bold:
		return "bold"
	case italic:
		return "italic"
	default:
		return "regular"
	}
}
