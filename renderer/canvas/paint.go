package canvasrenderer

import (
	"image/color"
	"math"
	"unicode"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/inkwell/style"
)

var transparent = color.RGBA{0, 0, 0, 0}

// Paint 将已排版文本绘制到表面：背景、光晕、字形，最后是装饰线。
// 顶部位于 maxHeight 以下的行不绘制。
func (l *TextLayout) Paint(s *surface) {
	l.layoutLines()
	for _, ln := range l.lines {
		if l.maxHeight > 0 && !math.IsInf(l.maxHeight, 1) && ln.y >= l.maxHeight {
			break
		}
		x0 := l.lineX(ln)
		baseline := ln.y + ln.baseline
		for _, p := range ln.pieces {
			if p.spec.HasBackground() {
				ctx := s.layer(layerBackground)
				ctx.SetFillColor(p.spec.Background.NRGBA())
				ctx.SetStrokeColor(transparent)
				ctx.DrawPath(x0+p.x, ln.y, canvas.Rectangle(p.width, ln.height))
			}
		}
		for _, p := range ln.pieces {
			if p.fs.halo == nil || l.blank(p) {
				continue
			}
			s.haloBlur = math.Max(s.haloBlur, p.spec.Halo.Blur)
			ctx := s.layer(layerHalo)
			for _, off := range haloOffsets(p.spec.Halo.Width) {
				l.drawRun(ctx, p.fs.halo, p, x0+p.x+off[0], baseline+off[1])
			}
		}
		for _, p := range ln.pieces {
			ctx := s.layer(layerText)
			if !l.blank(p) {
				l.drawRun(ctx, p.fs.fill, p, x0+p.x, baseline)
			}
			l.drawDecorations(ctx, p, x0+p.x, baseline)
		}
	}
}

func (l *TextLayout) blank(p piece) bool {
	for _, r := range l.runes[p.start:p.end] {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// drawRun 在基线 (x, baseline) 处绘制一段文本；有字距时逐码点定位，
// 位置与 advance 的计算保持一致，以便命中测试对齐。
func (l *TextLayout) drawRun(ctx *canvas.Context, face *canvas.FontFace, p piece, x, baseline float64) {
	if p.spec.LetterSpacing == 0 {
		ctx.DrawText(x, baseline, canvas.NewTextLine(face, string(l.runes[p.start:p.end]), canvas.Left))
		return
	}
	for i := p.start; i < p.end; i++ {
		if unicode.IsSpace(l.runes[i]) {
			continue
		}
		ctx.DrawText(x+l.advance(p, i), baseline, canvas.NewTextLine(face, string(l.runes[i]), canvas.Left))
	}
}

// haloOffsets 返回以 width 为半径、逐像素向外的同心环偏移，用于叠印描边。
func haloOffsets(width float64) [][2]float64 {
	var out [][2]float64
	for r := math.Min(1, width); r > 0; r = math.Min(r+1, width) {
		n := max(8, int(math.Ceil(2*math.Pi*r)))
		for k := range n {
			a := 2 * math.Pi * float64(k) / float64(n)
			out = append(out, [2]float64{r * math.Cos(a), r * math.Sin(a)})
		}
		if r >= width {
			break
		}
	}
	return out
}

func (l *TextLayout) drawDecorations(ctx *canvas.Context, p piece, x, baseline float64) {
	if p.spec.Underline == style.DecorationNone && p.spec.Strikethrough == style.DecorationNone {
		return
	}
	thickness := math.Max(1, p.spec.Size/16)
	col := p.spec.Color.NRGBA()
	if p.spec.Underline != style.DecorationNone {
		y := baseline + math.Max(1, p.spec.Size*0.1)
		drawDecoration(ctx, p.spec.Underline, col, x, y, p.width, thickness)
	}
	if p.spec.Strikethrough != style.DecorationNone {
		m := p.fs.metrics
		rise := m.XHeight / 2
		if rise <= 0 {
			rise = m.Ascent * 0.3
		}
		drawDecoration(ctx, p.spec.Strikethrough, col, x, baseline-rise-thickness/2, p.width, thickness)
	}
}

// drawDecoration 以 (x,y) 为左上角绘制宽 width、粗 t 的装饰线。
func drawDecoration(ctx *canvas.Context, kind style.Decoration, col color.Color, x, y, width, t float64) {
	if width <= 0 {
		return
	}
	ctx.SetFillColor(col)
	ctx.SetStrokeColor(transparent)
	switch kind {
	case style.DecorationDouble:
		ctx.DrawPath(x, y, canvas.Rectangle(width, t))
		ctx.DrawPath(x, y+2*t, canvas.Rectangle(width, t))
	case style.DecorationDotted:
		for dx := 0.0; dx < width; dx += 2 * t {
			ctx.DrawPath(x+dx, y, canvas.Rectangle(math.Min(t, width-dx), t))
		}
	case style.DecorationDashed:
		for dx := 0.0; dx < width; dx += 5 * t {
			ctx.DrawPath(x+dx, y, canvas.Rectangle(math.Min(3*t, width-dx), t))
		}
	case style.DecorationWavy:
		amp := t
		step := 2 * t
		wave := &canvas.Path{}
		wave.MoveTo(0, 0)
		up := true
		for dx := step; ; dx += step {
			dy := amp
			if up {
				dy = -amp
			}
			if dx >= width {
				wave.LineTo(width, dy)
				break
			}
			wave.LineTo(dx, dy)
			up = !up
		}
		ctx.SetFillColor(transparent)
		ctx.SetStrokeColor(col)
		ctx.SetStrokeWidth(t)
		ctx.DrawPath(x, y+amp, wave)
	default:
		ctx.DrawPath(x, y, canvas.Rectangle(width, t))
	}
}
