// Package mathtext 实现文字/数学混排视图：把原始文本拆成普通文字与数学
// 片段，逐片段走 排版 → SVG → 栅格化 的异步管线，全部安顿后发出完成信号。
package mathtext

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/ByLCY/quill/graphics"
	"github.com/ByLCY/quill/measure"
	"github.com/ByLCY/quill/svgimg"
	"github.com/ByLCY/quill/typeset"
)

// Dialect 是数学标记方言。盒子层级是封闭集合，方言也是。
type Dialect int

const (
	TeX Dialect = iota
	MathML
	Ascii
)

// View 是一个混排视图实例：持有当前容器并驱动每个数学盒的转换管线。
// 盒子只拿到“请求转换”这一个能力（loadMath 以值传入），不持有视图引用。
type View struct {
	dialect  Dialect
	ms       *measure.Service
	imgs     *svgimg.Service
	provider typeset.Provider

	mu        sync.Mutex
	text      string
	visuals   graphics.Visuals
	pos       graphics.Position
	macros    map[string]string
	container *graphics.Container
	display   map[*graphics.ImageTextBox]bool
	settled   map[*graphics.ImageTextBox]bool // 转换已放弃（永久空白）的盒子
	finished  bool

	onFinished func()
	onLayout   func()
}

// NewView 创建指定方言的视图。provider 为 nil 时使用进程级单例。
func NewView(d Dialect, ms *measure.Service, imgs *svgimg.Service, provider typeset.Provider) *View {
	if provider == nil {
		provider = typeset.Default()
	}
	return &View{
		dialect:   d,
		ms:        ms,
		imgs:      imgs,
		provider:  provider,
		container: graphics.NewContainer(),
		display:   map[*graphics.ImageTextBox]bool{},
		settled:   map[*graphics.ImageTextBox]bool{},
	}
}

// OnFinished 注册完成信号回调：全部异步工作安顿后、最后一次 paint 之后触发一次。
func (v *View) OnFinished(fn func()) { v.onFinished = fn }

// OnLayout 注册重布局请求回调：某个数学盒拿到图片后触发。
func (v *View) OnLayout(fn func()) { v.onLayout = fn }

// SetMacros 设置 TeX 宏表，注入为每次转换的 \def 前导。
func (v *View) SetMacros(m map[string]string) {
	v.mu.Lock()
	v.macros = m
	v.mu.Unlock()
}

// Graphics 返回当前容器。
func (v *View) Graphics() *graphics.Container {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.container
}

// Finished 报告管线是否已完成。
func (v *View) Finished() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.finished
}

// SetText 重建整个容器：text 变化产生全新的盒子实例，
// 迟到的旧转换结果会在落地前被归属校验拦下。
func (v *View) SetText(text string) {
	v.mu.Lock()
	v.text = text
	v.container = v.parse(text)
	v.settled = map[*graphics.ImageTextBox]bool{}
	v.finished = false
	c, vis, pos := v.container, v.visuals, v.pos
	v.mu.Unlock()

	c.SetVisuals(vis)
	c.SetPosition(pos)
	if v.provider.Status() == typeset.NotStarted {
		v.provider.Fetch()
	}
}

// SetVisuals 记录样式并级联到当前容器。颜色同时用于数学片段的着色钩子。
func (v *View) SetVisuals(vis graphics.Visuals) {
	v.mu.Lock()
	v.visuals = vis
	c := v.container
	v.mu.Unlock()
	c.SetVisuals(vis)
}

// SetPosition 记录位置并布局当前容器。
func (v *View) SetPosition(p graphics.Position) {
	v.mu.Lock()
	v.pos = p
	c := v.container
	v.mu.Unlock()
	c.SetPosition(p)
}

// parse 把 text 拆成普通文字与数学片段并组装容器。调用方持锁。
// TeX 方言用排版后端定位定界符；MathML/Ascii 把整段文本视为一个数学片段。
// 无数学片段的文本退化为单个承载原文的 TextBox。
func (v *View) parse(text string) *graphics.Container {
	v.display = map[*graphics.ImageTextBox]bool{}

	var spans []typeset.Span
	switch v.dialect {
	case TeX:
		spans = v.provider.FindTeX(text)
	default:
		if text != "" {
			spans = []typeset.Span{{Start: 0, End: len(text), Math: text}}
		}
	}
	if len(spans) == 0 {
		return graphics.NewContainer(graphics.NewTextBox(v.ms, text))
	}

	var children []graphics.Box
	cur := 0
	for _, sp := range spans {
		if sp.Start > cur {
			children = append(children, graphics.NewTextBox(v.ms, text[cur:sp.Start]))
		}
		ib := graphics.NewImageTextBox(v.ms, sp.Math, v.loadMath)
		v.display[ib] = sp.Display
		children = append(children, ib)
		cur = sp.End
	}
	if cur < len(text) {
		children = append(children, graphics.NewTextBox(v.ms, text[cur:]))
	}
	return graphics.NewContainer(children...)
}

// owns 检查盒子是否仍属于当前容器，拦截迟到的旧转换结果。
func (v *View) owns(ib *graphics.ImageTextBox) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, ch := range v.container.Children() {
		if ch == graphics.Box(ib) {
			return true
		}
	}
	return false
}

// mathBoxes 返回当前容器中的全部数学盒。
func (v *View) mathBoxes() []*graphics.ImageTextBox {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []*graphics.ImageTextBox
	for _, ch := range v.container.Children() {
		if ib, ok := ch.(*graphics.ImageTextBox); ok {
			out = append(out, ib)
		}
	}
	return out
}

func (v *View) anyImage() bool {
	for _, ib := range v.mathBoxes() {
		if ib.HasImage() {
			return true
		}
	}
	return false
}

func (v *View) allHaveImages() bool {
	for _, ib := range v.mathBoxes() {
		if !ib.HasImage() {
			return false
		}
	}
	return true
}

// finish 把管线标记为完成并发出完成信号，保证只发一次。
func (v *View) finish() {
	v.mu.Lock()
	if v.finished {
		v.mu.Unlock()
		return
	}
	v.finished = true
	fn := v.onFinished
	v.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// requestLayout 重新布局当前容器并通知宿主重绘。
func (v *View) requestLayout() {
	v.mu.Lock()
	c, pos := v.container, v.pos
	fn := v.onLayout
	v.mu.Unlock()
	c.SetPosition(pos)
	if fn != nil {
		fn()
	}
}

// loadMath 是注入给每个数学盒的加载回调：paint 发现图片缺席时触发。
// 实际转换在独立 goroutine 中进行，paint 路径不被阻塞。
func (v *View) loadMath(ib *graphics.ImageTextBox) {
	go v.convertBox(ib)
}

// convertBox 驱动单个数学盒的转换状态机。
func (v *View) convertBox(ib *graphics.ImageTextBox) {
	if !v.owns(ib) {
		ib.EndLoad()
		return
	}

	st := v.provider.Status()
	if !v.anyImage() && (st == typeset.NotStarted || st == typeset.Loading) {
		// 后端尚未就绪：订阅一次就绪通知，届时重试同一个盒子。
		// 进行中标记保持置位，重复 paint 不会产生并行转换。
		v.provider.Fetch()
		v.provider.OnReady(func() { go v.convertBox(ib) })
		return
	}

	if st == typeset.Failed || v.allHaveImages() {
		ib.EndLoad()
		v.finish()
		return
	}

	svg, err := v.convert(ib)
	if err != nil || svg == "" {
		// 转换无输出：该片段永久空白，但不阻塞整体完成。
		v.settle(ib)
		return
	}

	url := v.imgs.Blobs().Put([]byte(svg))
	img, err := v.imgs.LoadImage(url)
	v.imgs.Blobs().Revoke(url)
	if err != nil {
		v.settle(ib)
		return
	}

	if !v.owns(ib) {
		ib.EndLoad()
		return
	}

	props, ok := svgimg.ParseProperties(svg, v.ms.Metrics(ib.Font()))
	if !ok {
		b := img.Bounds()
		props = graphics.ImageProperties{Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
	ib.SetImage(img, props)
	v.requestLayout()
	if v.allHaveImages() {
		v.finish()
	}
}

// settle 把盒子标记为永久空白，全部盒子安顿后发完成信号。
func (v *View) settle(ib *graphics.ImageTextBox) {
	ib.EndLoad()
	v.mu.Lock()
	v.settled[ib] = true
	v.mu.Unlock()

	for _, b := range v.mathBoxes() {
		if b.HasImage() {
			continue
		}
		v.mu.Lock()
		done := v.settled[b]
		v.mu.Unlock()
		if !done {
			return
		}
	}
	v.finish()
}

// convert 执行方言相关的着色与转换。
func (v *View) convert(ib *graphics.ImageTextBox) (string, error) {
	v.mu.Lock()
	col := v.visuals.Color
	macros := v.macros
	disp := v.display[ib]
	v.mu.Unlock()

	fm := v.ms.Metrics(ib.Font())
	_, sizePx, _, err := measure.ParseFontString(ib.Font(), graphics.DefaultBaseFontSize)
	if err != nil {
		sizePx = graphics.DefaultBaseFontSize
	}
	opt := typeset.Options{Display: disp, Em: sizePx, Ex: fm.XHeight}

	switch v.dialect {
	case TeX:
		return v.provider.TeX2SVG(styleTeX(ib.Math(), col), opt, macros)
	case MathML:
		return v.provider.MathML2SVG(styleMathML(ib.Math(), col), opt)
	default:
		return v.provider.Ascii2SVG(ib.Math(), opt)
	}
}

// styleTeX 给 TeX 源码加 \color[RGB]{r,g,b} 着色前缀。
func styleTeX(src string, col color.RGBA) string {
	return fmt.Sprintf(`\color[RGB]{%d,%d,%d}%s`, col.R, col.G, col.B, src)
}
