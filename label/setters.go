package label

import (
	"github.com/ByLCY/inkwell/layout"
	"github.com/ByLCY/inkwell/renderer"
	"github.com/ByLCY/inkwell/style"
)

// 以下每个 setter 都会立即触发一次完整渲染；需要批量修改时使用 Update。

// SetText 设置标签文本。
func (l *Label) SetText(text string) error {
	return l.Update(func(c *Config) { c.Text = text })
}

// SetFont 设置字体来源（embed:、built-in: 或相对路径）。
func (l *Label) SetFont(src string) error {
	return l.Update(func(c *Config) { c.Style.Font = src })
}

// SetFontSize 设置字号（像素）。
func (l *Label) SetFontSize(px float64) error {
	return l.Update(func(c *Config) { c.Style.FontSize = px })
}

// SetColor 设置文字颜色。
func (l *Label) SetColor(col style.Color) error {
	return l.Update(func(c *Config) { c.Style.Color = col })
}

// SetBackground 设置背景色，透明表示不绘制背景。
func (l *Label) SetBackground(col style.Color) error {
	return l.Update(func(c *Config) { c.Style.Background = col })
}

// SetBold 切换粗体。
func (l *Label) SetBold(bold bool) error {
	return l.Update(func(c *Config) { c.Style.Bold = bold })
}

// SetItalic 切换斜体。
func (l *Label) SetItalic(italic bool) error {
	return l.Update(func(c *Config) { c.Style.Italic = italic })
}

// SetLetterSpacing 设置每个码点后追加的字距（像素）。
func (l *Label) SetLetterSpacing(px float64) error {
	return l.Update(func(c *Config) { c.Style.LetterSpacing = px })
}

// SetHaloWidth 设置光晕宽度，<= 0 关闭光晕。
func (l *Label) SetHaloWidth(px float64) error {
	return l.Update(func(c *Config) { c.Style.HaloWidth = px })
}

// SetHaloColor 设置光晕颜色，透明同样关闭光晕。
func (l *Label) SetHaloColor(col style.Color) error {
	return l.Update(func(c *Config) { c.Style.HaloColor = col })
}

// SetHaloBlur 设置光晕的高斯模糊半径。
func (l *Label) SetHaloBlur(px float64) error {
	return l.Update(func(c *Config) { c.Style.HaloBlur = px })
}

// SetUnderline 设置下划线样式。
func (l *Label) SetUnderline(d style.Decoration) error {
	return l.Update(func(c *Config) { c.Style.Underline = d })
}

// SetStrikethrough 设置删除线样式。
func (l *Label) SetStrikethrough(d style.Decoration) error {
	return l.Update(func(c *Config) { c.Style.Strikethrough = d })
}

// SetLineHeight 设置行高倍数。
func (l *Label) SetLineHeight(factor float64) error {
	return l.Update(func(c *Config) { c.Style.LineHeight = factor })
}

// LineHeight 返回行高倍数。
func (l *Label) LineHeight() float64 { return l.cfg.Style.LineHeight }

// SetDirection 设置文本方向，auto 按首个强方向字符判断。
func (l *Label) SetDirection(d style.Direction) error {
	return l.Update(func(c *Config) { c.Style.Direction = d })
}

// SetAlign 设置行内对齐方式。
func (l *Label) SetAlign(a layout.Align) error {
	return l.Update(func(c *Config) { c.Align = a })
}

// SetAutoFitHorizontal 开关按内容宽度自适应。
func (l *Label) SetAutoFitHorizontal(on bool) error {
	return l.Update(func(c *Config) { c.Size.AutoFitHorizontal = on })
}

// SetAutoFitVertical 开关按换行后高度自适应。
func (l *Label) SetAutoFitVertical(on bool) error {
	return l.Update(func(c *Config) { c.Size.AutoFitVertical = on })
}

// SetMaxWidth 设置水平自适应的最大宽度，<= 0 表示不限制。
func (l *Label) SetMaxWidth(px float64) error {
	return l.Update(func(c *Config) { c.Size.MaxWidth = px })
}

// SetRenderLinks 开关链接识别与链接样式。
func (l *Label) SetRenderLinks(on bool) error {
	return l.Update(func(c *Config) { c.RenderLinks = on })
}

// SetFormat 设置输出像素格式。
func (l *Label) SetFormat(f renderer.ColorFormat) error {
	return l.Update(func(c *Config) { c.Format = f })
}
