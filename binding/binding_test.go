package binding

import (
	"encoding/json"
	"testing"
)

func mustData(t *testing.T, s string) any {
	t.Helper()
	var data any
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		t.Fatalf("解析测试数据失败: %v", err)
	}
	return data
}

// TestInterpolatePaths 验证对象路径与数组下标的解析。
func TestInterpolatePaths(t *testing.T) {
	data := mustData(t, `{"m":2.5,"v":{"items":[10,20]}}`)
	got := Interpolate("质量 ${m} kg，第二项 ${v.items[1]}", data)
	if got != "质量 2.5 kg，第二项 20" {
		t.Fatalf("插值结果错误: %q", got)
	}
}

// TestInterpolateMissingPathKept 验证路径不存在时保留原占位符。
func TestInterpolateMissingPathKept(t *testing.T) {
	data := mustData(t, `{"a":1}`)
	if got := Interpolate("${b.c}", data); got != "${b.c}" {
		t.Fatalf("缺失路径应保留占位符: %q", got)
	}
}

// TestInterpolateNilData 验证无数据时原样返回。
func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${x}", nil); got != "${x}" {
		t.Fatalf("nil 数据应原样返回: %q", got)
	}
}

// TestInterpolateMathUntouched 验证 TeX 定界符不受插值影响。
func TestInterpolateMathUntouched(t *testing.T) {
	data := mustData(t, `{"E":42}`)
	got := Interpolate(`能量 ${E}，公式 $E=mc^2$ 与 $\frac{1}{2}$`, data)
	if got != `能量 42，公式 $E=mc^2$ 与 $\frac{1}{2}$` {
		t.Fatalf("数学片段不应被改写: %q", got)
	}
}

// TestInterpolateEscapedPlaceholder 验证 $${…} 还原为字面 ${…}。
func TestInterpolateEscapedPlaceholder(t *testing.T) {
	data := mustData(t, `{"x":1}`)
	if got := Interpolate("literal $${x} and ${x}", data); got != "literal ${x} and 1" {
		t.Fatalf("转义占位符处理错误: %q", got)
	}
}
