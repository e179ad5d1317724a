package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ByLCY/quill/binding"
	"github.com/ByLCY/quill/graphics"
	"github.com/ByLCY/quill/mathtext"
	"github.com/ByLCY/quill/measure"
	"github.com/ByLCY/quill/renderer"
	canvasrenderer "github.com/ByLCY/quill/renderer/canvas"
	"github.com/ByLCY/quill/svgimg"
)

func main() {
	text := flag.String("text", `能量公式 $E=mc^2$ 改变了物理学`, "待排版的混排文本，TeX 片段用 $…$ 包裹")
	output := flag.String("out", "output/demo.png", "PNG 输出路径")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	colorHex := flag.String("color", "#000000", "文字与公式颜色")
	size := flag.Float64("size", 16, "字号（px）")
	padding := flag.Float64("padding", 8, "画布四周留白（px）")
	scale := flag.Float64("scale", 2, "输出像素倍数")
	timeout := flag.Duration("timeout", 30*time.Second, "等待公式排版完成的上限")
	dataJSON := flag.String("data", "", "绑定到文本占位符的 JSON 数据")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	col, err := parseHexColor(*colorHex)
	if err != nil {
		log.Fatalf("解析颜色失败: %v", err)
	}

	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		Padding:    *padding,
		Scale:      *scale,
		Background: color.White,
	})
	if err := run(binding.Interpolate(*text, inputData), *output, *debug, col, *size, *timeout, r); err != nil {
		log.Fatalf("生成 PNG 失败: %v", err)
	}
	fmt.Printf("已生成 PNG：%s\n", *output)
}

// run 串联解析、异步公式排版与渲染。
func run(text, outputPath, debugPath string, col color.RGBA, sizePx float64, timeout time.Duration, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}

	view := mathtext.NewView(mathtext.TeX, measure.NewService(), svgimg.NewService(), nil)
	done := make(chan struct{}, 1)
	view.OnFinished(func() { done <- struct{}{} })
	view.SetText(text)
	view.SetVisuals(graphics.Visuals{
		Color: col,
		Font:  graphics.FontSpec{Size: fmt.Sprintf("%gpx", sizePx), Face: "serif"},
	})

	// 第一次渲染触发各数学盒的异步加载；全部安顿后再渲染一次作为最终输出。
	if _, err := r.Render(view.Graphics()); err != nil {
		return fmt.Errorf("首次渲染失败: %w", err)
	}
	if hasMath(view) && !view.Finished() {
		select {
		case <-done:
		case <-time.After(timeout):
			return fmt.Errorf("等待公式排版超时（%s）", timeout)
		}
	}

	if debugPath != "" {
		if err := writeDebug(view.Graphics(), debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	pngBytes, err := r.Render(view.Graphics())
	if err != nil {
		return fmt.Errorf("渲染 PNG 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pngBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PNG 文件失败: %w", err)
	}
	return nil
}

func hasMath(view *mathtext.View) bool {
	for _, ch := range view.Graphics().Children() {
		if _, ok := ch.(*graphics.ImageTextBox); ok {
			return true
		}
	}
	return false
}

func writeDebug(box graphics.Box, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := graphics.WriteDebugJSON(box, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// parseHexColor 解析 #rgb/#rrggbb 形式的颜色。
func parseHexColor(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("颜色必须以 # 开头: %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("颜色格式非法: %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("颜色格式非法: %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
