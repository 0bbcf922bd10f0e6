package layout

import (
	"fmt"
	"strings"

	"github.com/ByLCY/inkwell/style"
)

// Align 为行内水平对齐方式。
type Align int

const (
	AlignStart Align = iota // 随文本方向：LTR 居左，RTL 居右
	AlignLeft
	AlignCenter
	AlignRight
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// ParseAlign 接受 start/left/center/right/end，空串视为 start。
func ParseAlign(value string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "start":
		return AlignStart, nil
	case "left":
		return AlignLeft, nil
	case "center", "middle":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	case "end":
		return AlignEnd, nil
	default:
		return AlignStart, fmt.Errorf("未知的对齐方式: %q", value)
	}
}

// Offset 返回宽为 width 的行在宽为 box 的容器内的横向偏移。
// dir 必须是已解析的方向（LTR 或 RTL）。
func (a Align) Offset(box, width float64, dir style.Direction) float64 {
	free := box - width
	if free <= 0 {
		return 0
	}
	switch a {
	case AlignCenter:
		return free / 2
	case AlignRight:
		return free
	case AlignStart:
		if dir == style.DirectionRTL {
			return free
		}
	case AlignEnd:
		if dir != style.DirectionRTL {
			return free
		}
	}
	return 0
}
