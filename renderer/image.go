package renderer

import (
	"image"
	"image/color"
)

// Image 把缓冲转换为 image.Image。Alpha8 缓冲以 Tint 为前景色着色，
// 覆盖率与 Tint 的不透明度相乘。
func (b *PixelBuffer) Image() image.Image {
	rect := image.Rect(0, 0, b.Width, b.Height)
	if b.Format == RGB32 {
		return &image.RGBA{Pix: b.Pix, Stride: b.Stride, Rect: rect}
	}
	tint := b.Tint.NRGBA()
	img := image.NewNRGBA(rect)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			a := b.Pix[y*b.Stride+x]
			if a == 0 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{
				R: tint.R,
				G: tint.G,
				B: tint.B,
				A: uint8(uint16(a) * uint16(tint.A) / 255),
			})
		}
	}
	return img
}
