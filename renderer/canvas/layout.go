package canvasrenderer

import (
	"fmt"
	"math"
	"unicode"

	"github.com/tdewolff/canvas"
	"golang.org/x/text/unicode/bidi"

	"github.com/ByLCY/inkwell/layout"
	"github.com/ByLCY/inkwell/style"
)

// TextLayout 是基于 tdewolff/canvas 字体度量的排版会话。
// 样式覆盖先批量记录，首次测量、绘制或命中测试时才统一断行。
type TextLayout struct {
	tf    *typeface
	text  string
	runes []rune
	base  style.Spec
	align layout.Align
	dir   style.Direction // 已解析为 LTR 或 RTL

	spans []styleSpan
	faces map[style.Spec]*faceSet

	maxWidth  float64
	maxHeight float64

	lines    []textLine
	valid    bool
	released bool
}

var (
	_ layout.Layout       = (*TextLayout)(nil)
	_ layout.LineReporter = (*TextLayout)(nil)
)

type styleSpan struct {
	start, end int
	spec       style.Spec
}

// faceSet 缓存某个样式对应的填充字体面、光晕字体面与度量。
type faceSet struct {
	fill    *canvas.FontFace
	halo    *canvas.FontFace
	metrics canvas.FontMetrics
	spacing float64
}

// piece 是一行内样式一致的一段文本，x 相对行首。
type piece struct {
	start, end int
	spec       style.Spec
	fs         *faceSet
	x, width   float64
}

type textLine struct {
	start, end int
	pieces     []piece
	y          float64 // 行顶部
	width      float64
	height     float64
	baseline   float64 // 相对行顶部
}

type token struct {
	start, end int
	space      bool
	newline    bool
}

func newTextLayout(tf *typeface, text string, base style.Spec, align layout.Align) *TextLayout {
	runes := []rune(text)
	return &TextLayout{
		tf:    tf,
		text:  text,
		runes: runes,
		base:  base,
		align: align,
		dir:   resolveDirection(base.Direction, runes),
		faces: map[style.Spec]*faceSet{},
	}
}

// resolveDirection 在 auto 模式下取第一个强方向字符的方向，默认 LTR。
func resolveDirection(dir style.Direction, runes []rune) style.Direction {
	if dir != style.DirectionAuto {
		return dir
	}
	for _, r := range runes {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return style.DirectionLTR
		case bidi.R, bidi.AL:
			return style.DirectionRTL
		}
	}
	return style.DirectionLTR
}

// Direction returns the resolved text direction.
func (l *TextLayout) Direction() style.Direction { return l.dir }

// ApplyStyle 覆盖 [start,end) 的样式，后应用的覆盖优先。
func (l *TextLayout) ApplyStyle(start, end int, spec style.Spec) error {
	if start < 0 || start >= end || end > len(l.runes) {
		return fmt.Errorf("区间 [%d,%d) 超出文本范围 [0,%d): %w", start, end, len(l.runes), layout.ErrInvalidRange)
	}
	l.spans = append(l.spans, styleSpan{start: start, end: end, spec: spec})
	l.valid = false
	return nil
}

// Constrain 设置最大宽高；<= 0 或 +Inf 表示不限制。
func (l *TextLayout) Constrain(maxWidth, maxHeight float64) {
	if maxWidth != l.maxWidth {
		l.valid = false
	}
	l.maxWidth = maxWidth
	l.maxHeight = maxHeight
}

// Measure 返回当前约束下的内容尺寸（像素）。
func (l *TextLayout) Measure() (float64, float64) {
	l.layoutLines()
	var width, height float64
	for _, ln := range l.lines {
		width = math.Max(width, ln.width)
		height += ln.height
	}
	return width, height
}

// Release 丢弃字体面与行缓存；可重复调用。
func (l *TextLayout) Release() {
	l.released = true
	l.faces = nil
	l.lines = nil
	l.spans = nil
	l.valid = false
}

// Lines 实现 layout.LineReporter。
func (l *TextLayout) Lines() []layout.LineInfo {
	l.layoutLines()
	out := make([]layout.LineInfo, 0, len(l.lines))
	for _, ln := range l.lines {
		out = append(out, layout.LineInfo{
			Start:    ln.start,
			End:      ln.end,
			X:        l.lineX(ln),
			Y:        ln.y,
			Width:    ln.width,
			Height:   ln.height,
			Baseline: ln.y + ln.baseline,
		})
	}
	return out
}

// HitTest 返回局部坐标 (x,y) 处字符的码点下标，结果限制在 [0, len(text)]。
func (l *TextLayout) HitTest(x, y float64) int {
	l.layoutLines()
	if len(l.lines) == 0 {
		return 0
	}
	ln := l.lines[len(l.lines)-1]
	for _, candidate := range l.lines {
		if y < candidate.y+candidate.height {
			ln = candidate
			break
		}
	}
	lx := x - l.lineX(ln)
	if lx < 0 {
		return ln.start
	}
	for _, p := range ln.pieces {
		if lx >= p.x+p.width {
			continue
		}
		for i := p.start; i < p.end; i++ {
			if lx < p.x+l.advance(p, i+1) {
				return i
			}
		}
		return p.end
	}
	return ln.end
}

func (l *TextLayout) bounded() bool {
	return l.maxWidth > 0 && !math.IsInf(l.maxWidth, 1)
}

// boxWidth 是对齐所用的容器宽度：有约束时取约束宽度，否则取最宽行。
func (l *TextLayout) boxWidth() float64 {
	if l.bounded() {
		return l.maxWidth
	}
	var width float64
	for _, ln := range l.lines {
		width = math.Max(width, ln.width)
	}
	return width
}

func (l *TextLayout) lineX(ln textLine) float64 {
	return l.align.Offset(l.boxWidth(), ln.width, l.dir)
}

func (l *TextLayout) styleAt(i int) style.Spec {
	for k := len(l.spans) - 1; k >= 0; k-- {
		if sp := l.spans[k]; i >= sp.start && i < sp.end {
			return sp.spec
		}
	}
	return l.base
}

func (l *TextLayout) faceSet(spec style.Spec) *faceSet {
	if fs, ok := l.faces[spec]; ok {
		return fs
	}
	st := fontStyle(spec)
	size := layout.FaceSize(spec.Size)
	fill := l.tf.family.Face(size, spec.Color.NRGBA(), st, canvas.FontNormal)
	fs := &faceSet{fill: fill, metrics: fill.Metrics(), spacing: spec.LetterSpacing}
	if spec.HaloEnabled() {
		fs.halo = l.tf.family.Face(size, spec.Halo.Color.NRGBA(), st, canvas.FontNormal)
	}
	l.faces[spec] = fs
	return fs
}

// segments 按样式边界切分 [start,end)。
func (l *TextLayout) segments(start, end int, fn func(a, b int, spec style.Spec)) {
	for a := start; a < end; {
		spec := l.styleAt(a)
		b := a + 1
		for b < end && l.styleAt(b) == spec {
			b++
		}
		fn(a, b, spec)
		a = b
	}
}

func (l *TextLayout) runWidth(fs *faceSet, start, end int) float64 {
	if end <= start {
		return 0
	}
	return fs.fill.TextWidth(string(l.runes[start:end])) + fs.spacing*float64(end-start)
}

func (l *TextLayout) spanWidth(start, end int) float64 {
	var width float64
	l.segments(start, end, func(a, b int, spec style.Spec) {
		width += l.runWidth(l.faceSet(spec), a, b)
	})
	return width
}

// advance 返回段内从 p.start 到 i 的前缀宽度。
func (l *TextLayout) advance(p piece, i int) float64 {
	return l.runWidth(p.fs, p.start, i)
}

// tokenize 把文本拆成空白、非空白与换行三类记号。
func (l *TextLayout) tokenize() []token {
	var tokens []token
	start := -1
	lastWasSpace := false
	flush := func(i int) {
		if start >= 0 && i > start {
			tokens = append(tokens, token{start: start, end: i, space: lastWasSpace})
		}
		start = -1
	}
	for i, r := range l.runes {
		if r == '\r' {
			flush(i)
			continue
		}
		if r == '\n' {
			flush(i)
			tokens = append(tokens, token{start: i, end: i + 1, newline: true})
			continue
		}
		isSpace := unicode.IsSpace(r)
		if start < 0 {
			start = i
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush(i)
			start = i
			lastWasSpace = isSpace
		}
	}
	flush(len(l.runes))
	return tokens
}

// layoutLines 使用贪心换行：优先在空白处断行，单个词超过限制时按码点拆分，
// 显式换行总是断行。
func (l *TextLayout) layoutLines() {
	if l.valid || l.released {
		return
	}
	limit := l.maxWidth
	if !l.bounded() {
		limit = math.MaxFloat64
	}

	var lines []textLine
	cur := textLine{}
	emit := func(end, next int) {
		cur.end = end
		l.finishLine(&cur)
		lines = append(lines, cur)
		cur = textLine{start: next, end: next}
	}

	afterNewline := false
	for _, tok := range l.tokenize() {
		afterNewline = tok.newline
		if tok.newline {
			emit(tok.start, tok.end)
			continue
		}
		width := l.spanWidth(tok.start, tok.end)
		if cur.width > 0 && cur.width+width > limit {
			if tok.space {
				// 行尾空白不进入下一行
				emit(tok.start, tok.end)
				continue
			}
			emit(cur.end, tok.start)
		}
		if width <= limit {
			l.appendRange(&cur, tok.start, tok.end)
			continue
		}
		for _, chunk := range l.splitByWidth(tok.start, tok.end, limit) {
			cw := l.spanWidth(chunk[0], chunk[1])
			if cur.width > 0 && cur.width+cw > limit {
				emit(cur.end, chunk[0])
			}
			l.appendRange(&cur, chunk[0], chunk[1])
		}
	}
	if len(cur.pieces) > 0 || afterNewline || (len(lines) == 0 && len(l.runes) > 0) {
		emit(max(cur.end, cur.start), len(l.runes))
	}

	y := 0.0
	for i := range lines {
		lines[i].y = y
		y += lines[i].height
	}
	l.lines = lines
	l.valid = true
}

func (l *TextLayout) appendRange(ln *textLine, start, end int) {
	l.segments(start, end, func(a, b int, spec style.Spec) {
		fs := l.faceSet(spec)
		width := l.runWidth(fs, a, b)
		ln.pieces = append(ln.pieces, piece{start: a, end: b, spec: spec, fs: fs, x: ln.width, width: width})
		ln.width += width
	})
	ln.end = end
}

// finishLine 计算行高与基线：行高取各段 LineHeight×倍数的最大值，
// 多出的行距平均分配到上下。空行使用基础样式的度量。
func (l *TextLayout) finishLine(ln *textLine) {
	specs := make([]style.Spec, 0, len(ln.pieces))
	for _, p := range ln.pieces {
		specs = append(specs, p.spec)
	}
	if len(specs) == 0 {
		specs = append(specs, l.base)
	}
	var natural, ascent float64
	for _, spec := range specs {
		m := l.faceSet(spec).metrics
		natural = math.Max(natural, m.LineHeight)
		ascent = math.Max(ascent, m.Ascent)
		ln.height = math.Max(ln.height, m.LineHeight*spec.LineHeightFactor())
	}
	ln.baseline = (ln.height-natural)/2 + ascent
}

// splitByWidth 将超长记号按码点拆成不超过 limit 的若干块（每块至少一个码点）。
func (l *TextLayout) splitByWidth(start, end int, limit float64) [][2]int {
	var chunks [][2]int
	a := start
	for i := start + 1; i <= end; i++ {
		if i-a > 1 && l.spanWidth(a, i) > limit {
			chunks = append(chunks, [2]int{a, i - 1})
			a = i - 1
		}
	}
	if a < end {
		chunks = append(chunks, [2]int{a, end})
	}
	return chunks
}
