package typeset

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tdewolff/canvas"
)

// texEx 是排版字体的 ex 高度（pt），用来把路径尺寸折算成 ex 单位。
// 与 cmr10 的 x-height 一致。
const texEx = 4.30554

// colorDirective 匹配样式钩子注入的 \color[RGB]{r,g,b} 前缀。
// 排版器本身不认识该指令，这里剥离并转成 SVG 填充色。
var colorDirective = regexp.MustCompile(`^\s*\\color\[RGB\]\{(\d+),\s*(\d+),\s*(\d+)\}`)

// TeX2SVG 把 TeX 源码排版为一段自描述的 SVG 标记：
// width/height/vertical-align 以 ex 为单位，消费方按宿主字体的 x_height 还原像素值。
// 排版失败返回错误；空输出（宽或高为零）返回空串。
func (p *texProvider) TeX2SVG(src string, opt Options, macros map[string]string) (string, error) {
	fill := "#000000"
	if m := colorDirective.FindStringSubmatch(src); m != nil {
		fill = fmt.Sprintf("rgb(%s,%s,%s)", m[1], m[2], m[3])
		src = src[len(m[0]):]
	}

	var b strings.Builder
	names := make([]string, 0, len(macros))
	for name := range macros {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, `\def\%s{%s}`, name, macros[name])
	}
	if opt.Display {
		b.WriteString(`\displaystyle `)
	}
	b.WriteString(src)

	path, err := canvas.ParseLaTeX(b.String())
	if err != nil {
		return "", fmt.Errorf("排版 TeX 失败: %w", err)
	}
	bounds := path.Bounds()
	w, h := bounds.W(), bounds.H()
	if w <= 0 || h <= 0 {
		return "", nil
	}

	// 路径坐标 y 向上，包一层 matrix(1 0 0 -1 0 0) 翻转到 SVG 的 y 向下；
	// viewBox 随之取 [-Y1, -Y0] 作为纵向区间。
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.4fex" height="%.4fex" role="img" focusable="false" style="vertical-align:%.4fex" viewBox="%.4f %.4f %.4f %.4f"><g transform="matrix(1 0 0 -1 0 0)"><path d="%s" fill="%s"/></g></svg>`,
		w/texEx, h/texEx, bounds.Y0/texEx,
		bounds.X0, -bounds.Y1, w, h,
		path.ToSVG(), fill,
	), nil
}
