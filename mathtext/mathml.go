package mathtext

import (
	"fmt"
	"image/color"
	"strings"
)

// styleMathML 在根 <math> 元素内侧注入
// <mstyle displaystyle="true" mathcolor="#rrggbb">…</mstyle> 着色包装。
// 找不到 <math …>…</math> 结构时原样返回去除首尾空白的源码。
func styleMathML(src string, col color.RGBA) string {
	trimmed := strings.TrimSpace(src)

	openStart := strings.Index(trimmed, "<math")
	if openStart < 0 {
		return trimmed
	}
	openEnd := strings.Index(trimmed[openStart:], ">")
	if openEnd < 0 {
		return trimmed
	}
	openEnd += openStart + 1

	closeStart := strings.LastIndex(trimmed, "</math>")
	if closeStart < openEnd {
		return trimmed
	}

	open := fmt.Sprintf(`<mstyle displaystyle="true" mathcolor="#%02x%02x%02x">`, col.R, col.G, col.B)
	return trimmed[:openEnd] + open + trimmed[openEnd:closeStart] + "</mstyle>" + trimmed[closeStart:]
}
