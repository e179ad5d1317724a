package fonts

import (
	"fmt"
	"strings"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10oblique"
	"github.com/go-fonts/latin-modern/lmsans10regular"
)

// 内置字体表：把 CSS 字族名（serif/sans-serif/monospace）映射到 Latin Modern 字体数据。
// key 的形式为 "<face>|<variant>"，variant ∈ {regular, bold, italic, bolditalic}。
var builtin = map[string][]byte{
	"serif|regular":      lmroman10regular.TTF,
	"serif|bold":         lmroman10bold.TTF,
	"serif|italic":       lmroman10italic.TTF,
	"serif|bolditalic":   lmroman10bolditalic.TTF,
	"sans-serif|regular": lmsans10regular.TTF,
	"sans-serif|bold":    lmsans10bold.TTF,
	"sans-serif|italic":  lmsans10oblique.TTF,
	"monospace|regular":  lmmono10regular.TTF,
}

// Load 返回内置字体的字节数据。face 是 CSS 字族名，variant 为 regular/bold/italic/bolditalic。
// 未知字族回退到 serif，未知变体回退到 regular。
func Load(face, variant string) ([]byte, error) {
	face = normalizeFace(face)
	variant = strings.ToLower(strings.TrimSpace(variant))
	if variant == "" {
		variant = "regular"
	}
	if data, ok := builtin[face+"|"+variant]; ok {
		return data, nil
	}
	if data, ok := builtin[face+"|regular"]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("没有可用的内置字体：%s/%s", face, variant)
}

func normalizeFace(face string) string {
	switch strings.ToLower(strings.TrimSpace(face)) {
	case "sans-serif", "sans", "helvetica", "arial":
		return "sans-serif"
	case "monospace", "mono", "courier":
		return "monospace"
	default:
		// serif 是缺省字族；未知名字一律按 serif 处理。
		return "serif"
	}
}
