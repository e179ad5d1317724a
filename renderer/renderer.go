package renderer

import "github.com/ByLCY/quill/graphics"

// Renderer 将盒子树输出为最终文件，例如 PNG 图像。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(box graphics.Box) ([]byte, error)
}
