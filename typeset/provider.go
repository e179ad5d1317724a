// Package typeset 提供数学排版能力：定位文本中的数学片段，
// 并把 TeX 源码排版成带 ex 单位标注的 SVG 标记。
package typeset

import (
	"sync"

	"github.com/tdewolff/canvas"
)

// Status 是排版后端的生命周期状态。
type Status int

const (
	NotStarted Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Span 是文本中一段数学片段：[Start, End) 覆盖包括定界符在内的原文区间，
// Math 是去掉定界符的数学源码。
type Span struct {
	Start   int
	End     int
	Math    string
	Display bool
}

// Options 是一次转换的排版参数：是否独立行公式，以及宿主字体的 em/ex 像素值。
type Options struct {
	Display bool
	Em      float64
	Ex      float64
}

// Provider 是排版后端的消费契约。状态只读，就绪通知只触发一次，
// 转换返回空串表示“无输出”（调用方据此把片段视为永久空白）。
type Provider interface {
	Status() Status
	// Fetch 启动后端加载，重复调用无副作用。
	Fetch()
	// OnReady 注册一次性就绪回调：状态迁移到 ready 或 failed 时触发。
	// 注册时已处于终态的立即触发。
	OnReady(fn func())
	// FindTeX 返回 text 中所有 TeX 数学片段，互不重叠且按位置排序。
	FindTeX(text string) []Span
	// TeX2SVG 把 TeX 源码排版为 SVG 标记，macros 作为 \def 前导注入。
	TeX2SVG(src string, opt Options, macros map[string]string) (string, error)
	// MathML2SVG 目前没有可用的 MathML 排版引擎，恒返回空串。
	MathML2SVG(src string, opt Options) (string, error)
	// Ascii2SVG 按契约未实现，恒返回空串。
	Ascii2SVG(src string, opt Options) (string, error)
}

// texProvider 是基于 canvas 内置 TeX 排版器的 Provider 实现。
// 排版器本身是纯函数式的，Fetch 只做一次预热，把字体与宏包初始化
// 的开销移出首帧绘制。
type texProvider struct {
	mu      sync.Mutex
	status  Status
	waiters []func()
}

var (
	defaultOnce     sync.Once
	defaultProvider *texProvider
)

// Default 返回进程级共享的排版后端单例。
func Default() Provider {
	defaultOnce.Do(func() {
		defaultProvider = &texProvider{}
	})
	return defaultProvider
}

func (p *texProvider) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *texProvider) Fetch() {
	p.mu.Lock()
	if p.status != NotStarted {
		p.mu.Unlock()
		return
	}
	p.status = Loading
	p.mu.Unlock()

	go func() {
		// 预热一次最小公式，触发内部字体与格式文件的惰性加载。
		_, err := canvas.ParseLaTeX("x")
		final := Ready
		if err != nil {
			final = Failed
		}

		p.mu.Lock()
		p.status = final
		waiters := p.waiters
		p.waiters = nil
		p.mu.Unlock()

		for _, fn := range waiters {
			fn()
		}
	}()
}

func (p *texProvider) OnReady(fn func()) {
	p.mu.Lock()
	if p.status == Ready || p.status == Failed {
		p.mu.Unlock()
		fn()
		return
	}
	p.waiters = append(p.waiters, fn)
	p.mu.Unlock()
}

func (p *texProvider) MathML2SVG(src string, opt Options) (string, error) {
	// 没有可用的 MathML 排版引擎，按“无输出”处理。
	return "", nil
}

func (p *texProvider) Ascii2SVG(src string, opt Options) (string, error) {
	return "", nil
}
