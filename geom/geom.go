package geom

// 该文件定义布局与绘制共用的几何基元：轴对齐包围盒、带方向的四边形与仿射变换。
// 布局侧刻意不依赖 canvas：仿射仅用于围绕锚点旋转盒子的四角。

import "math"

// BBox 是轴对齐包围盒，约定 Left <= Right 且 Top <= Bottom（屏幕坐标系，y 向下）。
type BBox struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Width 返回包围盒宽度。
func (b BBox) Width() float64 { return b.Right - b.Left }

// Height 返回包围盒高度。
func (b BBox) Height() float64 { return b.Bottom - b.Top }

// Union 返回能同时覆盖 b 与 o 的最小包围盒。
func (b BBox) Union(o BBox) BBox {
	return BBox{
		Left:   math.Min(b.Left, o.Left),
		Right:  math.Max(b.Right, o.Right),
		Top:    math.Min(b.Top, o.Top),
		Bottom: math.Max(b.Bottom, o.Bottom),
	}
}

// Point 是屏幕坐标系中的一个点。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quad 按绘制顺序保存四个角点 P0..P3。未旋转时 P0 为左上角，按顺时针排列。
type Quad struct {
	P0 Point `json:"p0"`
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
	P3 Point `json:"p3"`
}

// QuadFromBBox 由轴对齐包围盒构造未旋转的四边形。
func QuadFromBBox(b BBox) Quad {
	return Quad{
		P0: Point{b.Left, b.Top},
		P1: Point{b.Right, b.Top},
		P2: Point{b.Right, b.Bottom},
		P3: Point{b.Left, b.Bottom},
	}
}

// BBox 返回四边形（可能已旋转）的轴对齐外包络。
func (q Quad) BBox() BBox {
	left, right := q.P0.X, q.P0.X
	top, bottom := q.P0.Y, q.P0.Y
	for _, p := range [...]Point{q.P1, q.P2, q.P3} {
		left = math.Min(left, p.X)
		right = math.Max(right, p.X)
		top = math.Min(top, p.Y)
		bottom = math.Max(bottom, p.Y)
	}
	return BBox{Left: left, Right: right, Top: top, Bottom: bottom}
}

// Affine 是 2×3 仿射变换矩阵：
//
//	| A C E |
//	| B D F |
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity 返回单位变换。
func Identity() Affine { return Affine{A: 1, D: 1} }

// Translate 在当前变换后追加平移。
func (t Affine) Translate(x, y float64) Affine {
	return t.mul(Affine{A: 1, D: 1, E: x, F: y})
}

// Rotate 在当前变换后追加旋转（弧度）。
func (t Affine) Rotate(angle float64) Affine {
	c, s := math.Cos(angle), math.Sin(angle)
	return t.mul(Affine{A: c, B: s, C: -s, D: c})
}

// mul 计算 t·o（先应用 o，再应用 t）。
func (t Affine) mul(o Affine) Affine {
	return Affine{
		A: t.A*o.A + t.C*o.B,
		B: t.B*o.A + t.D*o.B,
		C: t.A*o.C + t.C*o.D,
		D: t.B*o.C + t.D*o.D,
		E: t.A*o.E + t.C*o.F + t.E,
		F: t.B*o.E + t.D*o.F + t.F,
	}
}

// Apply 将变换作用于单点。
func (t Affine) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

// ApplyQuad 将变换作用于四边形的四个角点。
func (t Affine) ApplyQuad(q Quad) Quad {
	return Quad{
		P0: t.Apply(q.P0),
		P1: t.Apply(q.P1),
		P2: t.Apply(q.P2),
		P3: t.Apply(q.P3),
	}
}

// RotateAbout 构造“绕锚点 (x, y) 旋转 angle 弧度”的变换，
// 即 translate(x, y) ∘ rotate(angle) ∘ translate(-x, -y)。
func RotateAbout(angle, x, y float64) Affine {
	return Identity().Translate(x, y).Rotate(angle).Translate(-x, -y)
}
