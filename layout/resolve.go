package layout

import "math"

// AutoFitPadding 是水平自适应且未触及最大宽度时追加的固定留白。
const AutoFitPadding = 20.0

// Rect 是容器尺寸（像素）。
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty 报告宽或高是否为 0；此时渲染被跳过。
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Pixels 将尺寸向上取整为整数像素。
func (r Rect) Pixels() (int, int) {
	return int(math.Ceil(r.Width)), int(math.Ceil(r.Height))
}

// SizeOptions 为尺寸协商相关的配置。
type SizeOptions struct {
	MaxWidth          float64 `json:"maxWidth"`
	AutoFitHorizontal bool    `json:"autoFitHorizontal"`
	AutoFitVertical   bool    `json:"autoFitVertical"`
}

// PreferredWidth 计算首选宽度：
// 水平自适应时，内容超出 MaxWidth 则取 MaxWidth，否则取内容宽度加留白；
// 否则沿用容器宽度。MaxWidth <= 0 表示不限制。
func PreferredWidth(measuredWidth float64, opts SizeOptions, containerWidth float64) float64 {
	if !opts.AutoFitHorizontal {
		return containerWidth
	}
	if opts.MaxWidth > 0 && measuredWidth > opts.MaxWidth {
		return opts.MaxWidth
	}
	return measuredWidth + AutoFitPadding
}

// ResolveContainer 计算最终容器尺寸。垂直自适应时组件自行驱动容器尺寸，
// 宽度取首选宽度（水平自适应）或原容器宽度，高度取测量高度。
func ResolveContainer(preferredWidth, measuredHeight float64, opts SizeOptions, container Rect) Rect {
	if !opts.AutoFitVertical {
		return container
	}
	width := container.Width
	if opts.AutoFitHorizontal {
		width = preferredWidth
	}
	return Rect{Width: width, Height: measuredHeight}
}
