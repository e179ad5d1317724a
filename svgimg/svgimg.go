// Package svgimg 把 SVG 标记解码成位图：blob URL 仓库 + oksvg 栅格化。
package svgimg

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/quill/graphics"
	"github.com/ByLCY/quill/measure"
)

// supersample 是栅格化的超采样倍数，先放大绘制再缩回，抗锯齿效果更好。
const supersample = 2.0

// Service 是图片解码服务：持有 blob 仓库并按 URL 解码 SVG。
type Service struct {
	blobs *BlobStore
}

// NewService 创建带空 blob 仓库的解码服务。
func NewService() *Service {
	return &Service{blobs: NewBlobStore()}
}

// Blobs 暴露内部仓库，供调用方 Put/Revoke。
func (s *Service) Blobs() *BlobStore { return s.blobs }

// LoadImage 把 URL 解码为位图：blob URL 中的 SVG 走栅格化，
// 其余按文件路径处理（.svg 栅格化，其它交给已注册的位图解码器）。
// 解码失败返回错误，调用方按“该片段永久空白”处理。
func (s *Service) LoadImage(url string) (image.Image, error) {
	if strings.HasPrefix(url, "blob:") {
		data, ok := s.blobs.Get(url)
		if !ok {
			return nil, fmt.Errorf("blob URL 不存在: %s", url)
		}
		return Rasterize(data, supersample)
	}
	if strings.HasSuffix(strings.ToLower(url), ".svg") {
		data, err := os.ReadFile(url)
		if err != nil {
			return nil, fmt.Errorf("读取 SVG %s 失败: %w", url, err)
		}
		return Rasterize(data, supersample)
	}
	file, err := os.Open(url)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", url, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", url, err)
	}
	return img, nil
}

// Rasterize 把 SVG 按 viewBox 尺寸 × scale 栅格化。
// 内部以两倍超采样绘制，再经 Catmull-Rom 缩回目标尺寸。
func Rasterize(svg []byte, scale float64) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("解析 SVG 失败: %w", err)
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("SVG viewBox 尺寸非法: %gx%g", vw, vh)
	}

	w := int(vw*scale + 0.5)
	h := int(vh*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	big := image.NewRGBA(image.Rect(0, 0, 2*w, 2*h))
	icon.SetTarget(0, 0, float64(2*w), float64(2*h))
	scanner := rasterx.NewScannerGV(2*w, 2*h, big, big.Bounds())
	raster := rasterx.NewDasher(2*w, 2*h, scanner)
	icon.Draw(raster, 1.0)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), big, big.Bounds(), xdraw.Over, nil)
	return dst, nil
}

var (
	widthAttr  = regexp.MustCompile(`width="(-?[0-9.]+)ex"`)
	heightAttr = regexp.MustCompile(`height="(-?[0-9.]+)ex"`)
	vAlignAttr = regexp.MustCompile(`vertical-align:\s*(-?[0-9.]+)(ex|px)`)
)

// ParseProperties 从 SVG 标记推导盒子的逻辑尺寸与基线偏移：
// width/height 的 ex 值按宿主字体的 x_height 折算为 px；
// vertical-align（ex 按 x_height 折算，px 直接使用）取负后加上字体的 descent。
func ParseProperties(svg string, fm measure.FontMetrics) (graphics.ImageProperties, bool) {
	wm := widthAttr.FindStringSubmatch(svg)
	hm := heightAttr.FindStringSubmatch(svg)
	if wm == nil || hm == nil {
		return graphics.ImageProperties{}, false
	}
	wEx, err1 := strconv.ParseFloat(wm[1], 64)
	hEx, err2 := strconv.ParseFloat(hm[1], 64)
	if err1 != nil || err2 != nil {
		return graphics.ImageProperties{}, false
	}

	props := graphics.ImageProperties{
		Width:  wEx * fm.XHeight,
		Height: hEx * fm.XHeight,
		VAlign: fm.Descent,
	}
	if vm := vAlignAttr.FindStringSubmatch(svg); vm != nil {
		if v, err := strconv.ParseFloat(vm[1], 64); err == nil {
			if vm[2] == "ex" {
				props.VAlign = fm.Descent - v*fm.XHeight
			} else {
				props.VAlign = fm.Descent - v
			}
		}
	}
	return props, true
}
