package layout

import (
	"errors"

	"github.com/ByLCY/inkwell/style"
)

var (
	// ErrShaping 表示排版后端无法处理文本（例如非法 UTF-8）。
	ErrShaping = errors.New("layout: text cannot be shaped")
	// ErrInvalidRange 表示样式覆盖区间超出文本范围。
	ErrInvalidRange = errors.New("layout: invalid style range")
)

// Typesetter 负责把文本与基础样式转换为可测量、可绘制的 Layout。
type Typesetter interface {
	NewLayout(text string, base style.Spec, align Align) (Layout, error)
}

// Layout 是一次排版会话：先批量应用样式，再测量、约束与命中测试。
// 区间与命中测试返回值均以码点为单位。
type Layout interface {
	ApplyStyle(start, end int, spec style.Spec) error
	Measure() (width, height float64)
	// Constrain 设置最大宽高；maxWidth <= 0 或 +Inf 表示不限制。
	Constrain(maxWidth, maxHeight float64)
	HitTester
	Release()
}

// HitTester 将布局局部坐标映射到最近的码点下标，结果总在 [0, len] 内。
type HitTester interface {
	HitTest(x, y float64) int
}
