package canvasrenderer

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/inkwell/renderer"
)

// 绘制层按合成顺序排列：背景、光晕、文字与装饰线。
const (
	layerBackground = iota
	layerHalo
	layerText
	layerCount
)

// 画布单位为 mm，按 1px/mm 光栅化，布局坐标即像素坐标。
var resolution = canvas.DPMM(1.0)

// surface 是一次渲染独占的绘制目标：像素图加若干图层画布。
type surface struct {
	owner    *Renderer
	width    int
	height   int
	pix      *image.RGBA
	layers   [layerCount]*canvas.Canvas
	contexts [layerCount]*canvas.Context
	used     [layerCount]bool
	haloBlur float64
	released bool
}

func (r *Renderer) acquireSurface(width, height int) *surface {
	s := &surface{
		owner:  r,
		width:  width,
		height: height,
		pix:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	for i := range s.layers {
		c := canvas.New(float64(width), float64(height))
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
		s.layers[i] = c
		s.contexts[i] = ctx
	}
	r.stats.Acquired++
	r.stats.Live++
	r.stats.MaxLive = max(r.stats.MaxLive, r.stats.Live)
	return s
}

// layer 返回指定图层的绘制上下文并标记其已使用。
func (s *surface) layer(i int) *canvas.Context {
	s.used[i] = true
	return s.contexts[i]
}

// flush 依次光栅化已使用的图层并按 Over 合成到像素图。光晕层按需做高斯模糊。
func (s *surface) flush() {
	for i, c := range s.layers {
		if !s.used[i] {
			continue
		}
		var src image.Image = rasterizer.Draw(c, resolution, canvas.DefaultColorSpace)
		if i == layerHalo && s.haloBlur > 0 {
			src = blur.Gaussian(src, s.haloBlur)
		}
		draw.Draw(s.pix, s.pix.Bounds(), src, image.Point{}, draw.Over)
	}
}

// readPixels 拷贝出紧密排列的像素；Alpha8 只保留 alpha 通道。
func (s *surface) readPixels(format renderer.ColorFormat) []byte {
	if format == renderer.RGB32 {
		out := make([]byte, len(s.pix.Pix))
		copy(out, s.pix.Pix)
		return out
	}
	out := make([]byte, s.width*s.height)
	for i := range out {
		out[i] = s.pix.Pix[i*4+3]
	}
	return out
}

func (s *surface) release() {
	if s.released {
		return
	}
	s.released = true
	s.pix = nil
	s.layers = [layerCount]*canvas.Canvas{}
	s.contexts = [layerCount]*canvas.Context{}
	s.owner.stats.Released++
	s.owner.stats.Live--
}
