package graphics

import (
	"encoding/json"
	"os"

	"github.com/ByLCY/quill/geom"
)

// DebugBox 是单个盒子的调试快照。
type DebugBox struct {
	Kind     string     `json:"kind"`
	Text     string     `json:"text,omitempty"`
	Size     Size       `json:"size"`
	BBox     geom.BBox  `json:"bbox"`
	Metric   string     `json:"text_height"`
	HasImage bool       `json:"has_image,omitempty"`
	Children []DebugBox `json:"children,omitempty"`
}

// Snapshot 递归收集盒子树的布局信息。
func Snapshot(b Box) DebugBox {
	d := DebugBox{
		Size:   b.Size(),
		BBox:   b.BBox(),
		Metric: b.InferTextHeight().String(),
	}
	switch v := b.(type) {
	case *ImageTextBox:
		d.Kind = "image_text"
		d.Text = v.Math()
		d.HasImage = v.HasImage()
	case *TextBox:
		d.Kind = "text"
		d.Text = v.Text()
	case *BaseExpo:
		d.Kind = "base_expo"
		d.Children = []DebugBox{Snapshot(v.base), Snapshot(v.expo)}
	case *Container:
		d.Kind = "container"
		for _, ch := range v.children {
			d.Children = append(d.Children, Snapshot(ch))
		}
	default:
		d.Kind = "box"
	}
	return d
}

// WriteDebugJSON 将盒子树的布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(b Box, path string) error {
	if b == nil {
		return nil
	}
	data, err := json.MarshalIndent(Snapshot(b), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
