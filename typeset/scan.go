package typeset

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// texLexer 把文本切成定界符与普通片段。规则顺序即优先级：
// $$ 先于 $，\[ \( 等先于一般的转义序列。
var texLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "DisplayDollar", Pattern: `\$\$`},
	{Name: "Dollar", Pattern: `\$`},
	{Name: "OpenBracket", Pattern: `\\\[`},
	{Name: "CloseBracket", Pattern: `\\\]`},
	{Name: "OpenParen", Pattern: `\\\(`},
	{Name: "CloseParen", Pattern: `\\\)`},
	{Name: "Escape", Pattern: `\\.`},
	{Name: "Backslash", Pattern: `\\`},
	{Name: "Text", Pattern: `[^$\\]+`},
})

var (
	texSymbols       = texLexer.Symbols()
	tokDisplayDollar = texSymbols["DisplayDollar"]
	tokDollar        = texSymbols["Dollar"]
	tokOpenBracket   = texSymbols["OpenBracket"]
	tokCloseBracket  = texSymbols["CloseBracket"]
	tokOpenParen     = texSymbols["OpenParen"]
	tokCloseParen    = texSymbols["CloseParen"]
)

// closerFor 返回开定界符对应的闭定界符与是否独立行公式。
func closerFor(t lexer.TokenType) (lexer.TokenType, bool, bool) {
	switch t {
	case tokDisplayDollar:
		return tokDisplayDollar, true, true
	case tokDollar:
		return tokDollar, false, true
	case tokOpenBracket:
		return tokCloseBracket, true, true
	case tokOpenParen:
		return tokCloseParen, false, true
	default:
		return 0, false, false
	}
}

// FindTeX 定位 text 中所有 TeX 数学片段：$…$、$$…$$、\(…\)、\[…\]。
// 返回的片段互不重叠、按位置排序；未闭合的定界符按普通文本处理。
// 转义的 \$ 不作为定界符。
func (p *texProvider) FindTeX(text string) []Span {
	return FindTeX(text)
}

// FindTeX 是无状态的扫描入口，供测试与假后端复用。
func FindTeX(text string) []Span {
	lx, err := texLexer.Lex("", strings.NewReader(text))
	if err != nil {
		return nil
	}
	var toks []lexer.Token
	for {
		tok, err := lx.Next()
		if err != nil || tok.Type == lexer.EOF {
			break
		}
		toks = append(toks, tok)
	}

	var spans []Span
	for i := 0; i < len(toks); i++ {
		closer, display, ok := closerFor(toks[i].Type)
		if !ok {
			continue
		}
		j := i + 1
		for j < len(toks) && toks[j].Type != closer {
			j++
		}
		if j == len(toks) {
			// 未闭合：整段退化为普通文本。
			continue
		}
		var math strings.Builder
		for k := i + 1; k < j; k++ {
			math.WriteString(toks[k].Value)
		}
		spans = append(spans, Span{
			Start:   toks[i].Pos.Offset,
			End:     toks[j].Pos.Offset + len(toks[j].Value),
			Math:    math.String(),
			Display: display,
		})
		i = j
	}
	return spans
}
