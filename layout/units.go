package layout

import (
	"strconv"
	"strings"
)

// 画布内部以毫米为单位，光栅化时取 1px/mm，因此布局中的 1 个单位即 1 像素。
// 字体接口按 pt 接收字号，这里集中提供换算。

// Unit represents the original unit of a length value as written in a label file.
type Unit int

const (
	UnitNone Unit = iota // 无单位，按像素处理
	UnitPX               // pixels
	UnitPT               // points
)

// Conversion constants between pt and mm (= px at 1px/mm).
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	// PxPerPt 假定 96dpi 的宿主：1pt = 96/72 px。
	PxPerPt = 96.0 / 72.0
)

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Pixels converts the length to pixels.
func (l Length) Pixels() float64 {
	if l.Unit == UnitPT {
		return l.Value * PxPerPt
	}
	return l.Value
}

// ParseLength 解析 "24"、"24px"、"18pt" 形式的长度。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	unit := UnitNone
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, err
	}
	return Length{Value: f, Unit: unit}, nil
}

// FaceSize 将像素字号换算为字体接口所需的 pt。
func FaceSize(px float64) float64 { return px * MmToPt }
