package canvasrenderer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/inkwell/fonts"
	"github.com/ByLCY/inkwell/layout"
	"github.com/ByLCY/inkwell/renderer"
	"github.com/ByLCY/inkwell/style"
)

// Renderer shapes and rasterizes text via github.com/tdewolff/canvas.
// 一个 Renderer 由一个组件独占，不做并发保护。
type Renderer struct {
	baseDir string
	logger  *slog.Logger

	// injected resources
	fontBlobs map[string][]byte // by unique name

	typeface    *typeface
	typefaceKey string
	fallbackTF  *typeface

	stats Stats
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	Fonts   map[string]Resource // built-in fonts accessible via built-in:<name>
	Logger  *slog.Logger
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// Stats 统计绘制表面的分配与释放，以及字体解码次数。
type Stats struct {
	Acquired      int
	Released      int
	Live          int
	MaxLive       int
	TypefaceLoads int
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving font paths.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected resources and optional baseDir.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:   opts.BaseDir,
		logger:    opts.Logger,
		fontBlobs: map[string][]byte{},
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // 读取失败在实际使用时按解码失败处理
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Stats returns a copy of the resource counters.
func (r *Renderer) Stats() Stats { return r.stats }

// NewLayout 实现 layout.Typesetter：校验文本并创建排版会话。空文本得到零尺寸布局。
func (r *Renderer) NewLayout(text string, base style.Spec, align layout.Align) (layout.Layout, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("文本包含非法 UTF-8 序列: %w", layout.ErrShaping)
	}
	if base.Size <= 0 {
		return nil, fmt.Errorf("字号必须为正数，当前为 %g: %w", base.Size, layout.ErrShaping)
	}
	tf, err := r.ensureTypeface(base.Font)
	if err != nil {
		return nil, fmt.Errorf("无法获得可用字体: %w", err)
	}
	return newTextLayout(tf, text, base, align), nil
}

// Render 实现 renderer.Renderer：分配 width×height 的绘制表面，绘制后读回像素。
// 表面在所有返回路径上都会被释放。
func (r *Renderer) Render(l layout.Layout, width, height int, format renderer.ColorFormat) (*renderer.PixelBuffer, error) {
	tl, ok := l.(*TextLayout)
	if !ok {
		return nil, fmt.Errorf("不支持的布局类型 %T", l)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("绘制表面 %dx%d: %w", width, height, renderer.ErrEmptySurface)
	}

	s := r.acquireSurface(width, height)
	defer s.release()

	tl.Paint(s)
	s.flush()

	return &renderer.PixelBuffer{
		Width:  width,
		Height: height,
		Stride: width * format.Channels(),
		Format: format,
		Tint:   tl.base.Color,
		Pix:    s.readPixels(format),
	}, nil
}

// Close 释放当前持有的字体。
func (r *Renderer) Close() error {
	r.typeface = nil
	r.typefaceKey = ""
	r.fallbackTF = nil
	return nil
}

// typeface 是已解码的字体族，四种样式（常规/粗体/斜体/粗斜体）均已加载。
type typeface struct {
	family   *canvas.FontFamily
	fallback bool
}

var faceStyles = []canvas.FontStyle{
	canvas.FontRegular,
	canvas.FontBold,
	canvas.FontItalic,
	canvas.FontBold | canvas.FontItalic,
}

// ensureTypeface 返回 src 对应的字体；仅当 src 变化时才重新解码。
// 解码失败不致命：记录警告并回退到内置 Go 字体。
func (r *Renderer) ensureTypeface(src string) (*typeface, error) {
	if r.typeface != nil && r.typefaceKey == src {
		return r.typeface, nil
	}
	tf, err := r.loadTypeface(src)
	if err != nil {
		r.logger.Warn("字体加载失败，回退到默认字体", "src", src, "error", err)
		fb, fbErr := r.fallback()
		if fbErr != nil {
			return nil, fbErr
		}
		tf = fb
	}
	// 旧字体在此被替换，随之释放
	r.typeface = tf
	r.typefaceKey = src
	return tf, nil
}

func (r *Renderer) loadTypeface(src string) (*typeface, error) {
	if strings.TrimSpace(src) == "" {
		return r.fallback()
	}
	data, err := r.loadFontBytes(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", renderer.ErrFontDecode, err)
	}
	family := canvas.NewFontFamily(src)
	for _, st := range faceStyles {
		if err := family.LoadFont(data, 0, st); err != nil {
			return nil, fmt.Errorf("解析字体 %s 失败: %w: %w", src, renderer.ErrFontDecode, err)
		}
	}
	r.stats.TypefaceLoads++
	return &typeface{family: family}, nil
}

func (r *Renderer) loadFontBytes(src string) ([]byte, error) {
	if strings.HasPrefix(src, "built-in:") || strings.HasPrefix(src, "builtin:") {
		name := strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:")
		if blob, ok := r.fontBlobs[name]; ok {
			return blob, nil
		}
		return nil, fmt.Errorf("找不到内置字体资源 built-in:%s", name)
	}
	if strings.HasPrefix(src, "embed:") {
		return fonts.Load(src)
	}
	// Path based
	path := src
	if r.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 built-in: 或 embed:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	return os.ReadFile(path)
}

// fallback 返回由 Go 字体四种样式组成的默认字体族。
func (r *Renderer) fallback() (*typeface, error) {
	if r.fallbackTF != nil {
		return r.fallbackTF, nil
	}
	family := canvas.NewFontFamily("inkwell-fallback")
	sources := map[canvas.FontStyle]string{
		canvas.FontRegular:                  fonts.Regular,
		canvas.FontBold:                     fonts.Bold,
		canvas.FontItalic:                   fonts.Italic,
		canvas.FontBold | canvas.FontItalic: fonts.BoldItalic,
	}
	for _, st := range faceStyles {
		data, err := fonts.Load(sources[st])
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, st); err != nil {
			return nil, fmt.Errorf("解析默认字体 %s 失败: %w", sources[st], err)
		}
	}
	r.stats.TypefaceLoads++
	r.fallbackTF = &typeface{family: family, fallback: true}
	return r.fallbackTF, nil
}

// fontStyle 将样式的字重与斜体映射为 canvas.FontStyle。
func fontStyle(spec style.Spec) canvas.FontStyle {
	st := canvas.FontRegular
	if spec.Weight >= style.WeightBold {
		st = canvas.FontBold
	}
	if spec.Italic {
		st |= canvas.FontItalic
	}
	return st
}
