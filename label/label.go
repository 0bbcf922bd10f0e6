// Package label 把一段带样式的富文本渲染为可作为纹理显示的像素缓冲，
// 支持按内容自适应尺寸、识别文本中的链接以及指针到链接的命中测试。
package label

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/ByLCY/inkwell/layout"
	"github.com/ByLCY/inkwell/links"
	"github.com/ByLCY/inkwell/renderer"
	"github.com/ByLCY/inkwell/style"
)

// Sink 接收渲染好的像素缓冲，例如上传为纹理。
type Sink interface {
	Upload(buf *renderer.PixelBuffer) error
}

// LinkOpener 在外部查看器中打开被点击的链接。
type LinkOpener interface {
	Open(url string) error
}

// Backend 同时提供排版与光栅化，canvasrenderer.Renderer 即为一种实现。
type Backend interface {
	layout.Typesetter
	renderer.Renderer
}

// Config 是组件的持久配置。
type Config struct {
	Text        string               `json:"text"`
	Style       style.Props          `json:"style"`
	Align       layout.Align         `json:"align"`
	Size        layout.SizeOptions   `json:"size"`
	RenderLinks bool                 `json:"renderLinks"`
	Format      renderer.ColorFormat `json:"format"`
}

// DefaultMaxWidth 是默认的水平自适应最大宽度。
const DefaultMaxWidth = 264

// DefaultConfig 返回默认配置：默认样式、左对齐、垂直自适应、
// 最大宽度 264、不识别链接、Alpha8 输出。
func DefaultConfig() Config {
	return Config{
		Style: style.DefaultProps(),
		Align: layout.AlignLeft,
		Size: layout.SizeOptions{
			MaxWidth:        DefaultMaxWidth,
			AutoFitVertical: true,
		},
		Format: renderer.Alpha8,
	}
}

// Options configures a Label.
type Options struct {
	Config    Config
	Container layout.Rect
	Backend   Backend
	Sink      Sink
	Opener    LinkOpener
	Logger    *slog.Logger
}

// Label 是单线程组件：每次属性变化都会在调用方的协程内同步完成一次完整渲染。
type Label struct {
	cfg     Config
	backend Backend
	sink    Sink
	opener  LinkOpener
	logger  *slog.Logger

	container layout.Rect // 最近一次观察到（或由自适应驱动）的容器尺寸
	preferred layout.Rect
	measured  layout.Rect

	layout layout.Layout
	links  links.Ranges
	output *renderer.PixelBuffer

	renders int
	closed  bool
}

// ErrClosed 表示组件已关闭，不再接受修改。
var ErrClosed = errors.New("label: closed")

// New 创建组件并立即完成首次渲染。首次渲染失败时返回组件与错误，
// 组件仍可通过后续属性修改恢复。
func New(opts Options) (*Label, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("backend 不能为空")
	}
	l := &Label{
		cfg:       opts.Config,
		backend:   opts.Backend,
		sink:      opts.Sink,
		opener:    opts.Opener,
		logger:    opts.Logger,
		container: opts.Container,
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l, l.render()
}

// Config returns a copy of the current configuration.
func (l *Label) Config() Config { return l.cfg }

// Update 在一次调用中应用任意多处修改，只触发一次渲染。
func (l *Label) Update(fn func(*Config)) error {
	if l.closed {
		return ErrClosed
	}
	fn(&l.cfg)
	return l.render()
}

// Tick 由宿主周期调用，传入当前容器尺寸；仅当尺寸变化时重新渲染。
func (l *Label) Tick(container layout.Rect) error {
	if l.closed {
		return ErrClosed
	}
	if container == l.container {
		return nil
	}
	l.container = container
	return l.render()
}

// Container 返回当前容器尺寸；垂直自适应时为组件驱动后的尺寸。
func (l *Label) Container() layout.Rect { return l.container }

// PreferredSize 返回最近一次渲染得到的首选尺寸，供宿主布局查询。
func (l *Label) PreferredSize() (float64, float64) {
	return l.preferred.Width, l.preferred.Height
}

// Output 返回最近一次成功渲染的像素缓冲，可能为 nil。
func (l *Label) Output() *renderer.PixelBuffer { return l.output }

// Links 返回当前文本中的链接区间。
func (l *Label) Links() links.Ranges { return l.links }

// Renders 返回完成的渲染遍数（包括因零尺寸而跳过光栅化的遍数）。
func (l *Label) Renders() int { return l.renders }

// Snapshot 导出调试快照。
func (l *Label) Snapshot() layout.Snapshot {
	snap := layout.Snapshot{
		Text:      l.cfg.Text,
		Measured:  l.measured,
		Preferred: l.preferred,
		Container: l.container,
		Rendered:  l.output != nil,
		Links:     append([]links.Range(nil), l.links...),
	}
	if lr, ok := l.layout.(layout.LineReporter); ok {
		snap.Lines = lr.Lines()
	}
	return snap
}

// LinkAt 把归一化指针坐标映射到链接，返回链接文本。
func (l *Label) LinkAt(nx, ny float64) (string, bool) {
	if l.layout == nil {
		return "", false
	}
	r, ok := layout.LocateLink(nx, ny, l.container, l.layout, l.links)
	if !ok {
		return "", false
	}
	return r.URL(l.cfg.Text), true
}

// Click 解析被点击的链接并交给 LinkOpener 打开。没有链接时返回 false。
func (l *Label) Click(nx, ny float64) (string, bool, error) {
	url, ok := l.LinkAt(nx, ny)
	if !ok {
		return "", false, nil
	}
	if l.opener != nil {
		if err := l.opener.Open(url); err != nil {
			return url, true, fmt.Errorf("打开链接 %s 失败: %w", url, err)
		}
	}
	return url, true, nil
}

// Close 按顺序释放资源：排版会话、输出缓冲、字体。
func (l *Label) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if l.layout != nil {
		l.layout.Release()
		l.layout = nil
	}
	l.links = nil
	if l.output != nil {
		l.output.Release()
		l.output = nil
	}
	if c, ok := l.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// render 是完整的渲染流程：构建样式 → 排版 → 链接覆盖 → 尺寸协商 → 光栅化。
// 新布局就绪前失败时保留上一次的布局、链接区间与输出。
func (l *Label) render() error {
	base := style.Build(l.cfg.Style)
	next, err := l.backend.NewLayout(l.cfg.Text, base, l.cfg.Align)
	if err != nil {
		return fmt.Errorf("排版失败: %w", err)
	}

	var ranges links.Ranges
	if l.cfg.RenderLinks {
		ranges, err = links.NewRanges(links.Extract(l.cfg.Text), len([]rune(l.cfg.Text)))
		if err != nil {
			next.Release()
			return fmt.Errorf("链接区间无效: %w", err)
		}
		linkSpec := style.BuildLink(l.cfg.Style)
		for _, r := range ranges {
			if err := next.ApplyStyle(r.Start, r.End, linkSpec); err != nil {
				next.Release()
				return fmt.Errorf("应用链接样式失败: %w", err)
			}
		}
	}

	// 第一阶段：无约束测量
	next.Constrain(0, math.Inf(1))
	width, height := next.Measure()
	l.measured = layout.Rect{Width: width, Height: height}

	// 第二阶段：按首选宽度约束后取换行高度，再确定容器尺寸
	preferredWidth := layout.PreferredWidth(width, l.cfg.Size, l.container.Width)
	next.Constrain(preferredWidth, math.Inf(1))
	_, wrappedHeight := next.Measure()
	l.preferred = layout.Rect{Width: preferredWidth, Height: wrappedHeight}
	target := layout.ResolveContainer(preferredWidth, wrappedHeight, l.cfg.Size, l.container)
	next.Constrain(target.Width, target.Height)

	if l.layout != nil {
		l.layout.Release()
	}
	l.layout = next
	l.links = ranges
	l.container = target
	l.renders++

	if target.Empty() {
		l.logger.Debug("容器尺寸为 0，跳过渲染", "width", target.Width, "height", target.Height)
		return nil
	}

	w, h := target.Pixels()
	buf, err := l.backend.Render(next, w, h, l.cfg.Format)
	if err != nil {
		return fmt.Errorf("光栅化失败: %w", err)
	}
	if l.output != nil {
		l.output.Release()
	}
	l.output = buf
	l.logger.Debug("渲染完成", "width", w, "height", h, "format", l.cfg.Format.String(), "links", len(ranges))
	if l.sink != nil {
		if err := l.sink.Upload(buf); err != nil {
			return fmt.Errorf("上传像素缓冲失败: %w", err)
		}
	}
	return nil
}
