package style

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ARGB 是打包后的颜色，布局为 0xAARRGGBB。
type ARGB uint32

// Color 的各分量取值范围为 [0,1]。
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// 常用颜色。
var (
	White       = Color{R: 1, G: 1, B: 1, A: 1}
	Black       = Color{A: 1}
	Transparent = Color{}
)

// Pack 将各分量乘以 255 后截断为 8 位通道，并打包为 (a<<24)|(r<<16)|(g<<8)|b。
func (c Color) Pack() ARGB {
	return ARGB(uint32(toByte(c.A))<<24 | uint32(toByte(c.R))<<16 | uint32(toByte(c.G))<<8 | uint32(toByte(c.B)))
}

func toByte(v float64) uint8 {
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v * 255)
}

// Alpha returns the alpha byte.
func (c ARGB) Alpha() uint8 { return uint8(c >> 24) }

// Transparent 报告 alpha 是否为 0；光晕与背景据此视为“关闭”。
func (c ARGB) Transparent() bool { return c.Alpha() == 0 }

// NRGBA converts the packed value to a non-premultiplied color.
func (c ARGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: uint8(c >> 24)}
}

func (c ARGB) String() string { return fmt.Sprintf("#%08X", uint32(c)) }

// ParseHex 解析 #RGB、#RRGGBB 与 #AARRGGBB 三种写法。
func ParseHex(value string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(v) {
	case 3:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
		fallthrough
	case 6:
		v = "FF" + v
	case 8:
	default:
		return Color{}, fmt.Errorf("颜色格式错误: %q", value)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("颜色格式错误: %q: %w", value, err)
	}
	return Color{
		A: float64(uint8(n>>24)) / 255,
		R: float64(uint8(n>>16)) / 255,
		G: float64(uint8(n>>8)) / 255,
		B: float64(uint8(n)) / 255,
	}, nil
}
