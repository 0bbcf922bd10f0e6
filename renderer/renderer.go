package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ByLCY/inkwell/layout"
	"github.com/ByLCY/inkwell/style"
)

var (
	// ErrFontDecode 表示字体字节无法解析为字形；调用方应回退到默认字体。
	ErrFontDecode = errors.New("renderer: font cannot be decoded")
	// ErrEmptySurface 表示请求的绘制表面宽或高为 0。
	ErrEmptySurface = errors.New("renderer: empty surface")
)

// Renderer 将排版结果光栅化为像素缓冲。每次调用都返回新分配的缓冲。
type Renderer interface {
	Render(l layout.Layout, width, height int, format ColorFormat) (*PixelBuffer, error)
}

// ColorFormat 选择像素缓冲的通道布局以及着色责任。
type ColorFormat int

const (
	// Alpha8 单通道覆盖率，显示时由调用方用前景色着色。
	Alpha8 ColorFormat = iota
	// RGB32 四通道 RGBA（预乘），自带颜色。
	RGB32
)

// Channels returns the number of bytes per pixel.
func (f ColorFormat) Channels() int {
	if f == RGB32 {
		return 4
	}
	return 1
}

// SelfColored 报告缓冲是否已包含最终颜色。
func (f ColorFormat) SelfColored() bool { return f == RGB32 }

func (f ColorFormat) String() string {
	if f == RGB32 {
		return "rgb32"
	}
	return "alpha8"
}

// ParseColorFormat 接受 alpha8 或 rgb32。
func ParseColorFormat(value string) (ColorFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "alpha8":
		return Alpha8, nil
	case "rgb32":
		return RGB32, nil
	default:
		return Alpha8, fmt.Errorf("未知的颜色格式: %q", value)
	}
}

// PixelBuffer 是紧密排列、按行存储的像素数据。
type PixelBuffer struct {
	Width  int
	Height int
	Stride int
	Format ColorFormat
	// Tint 为 Alpha8 模式下显示时使用的前景色。
	Tint style.ARGB
	Pix  []byte
}

// Release 释放像素数据；之后缓冲不可再用。
func (b *PixelBuffer) Release() {
	if b == nil {
		return
	}
	b.Pix = nil
}

// Released reports whether Release has been called.
func (b *PixelBuffer) Released() bool { return b == nil || b.Pix == nil }
