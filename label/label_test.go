package label_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/inkwell/label"
	"github.com/ByLCY/inkwell/layout"
	"github.com/ByLCY/inkwell/renderer"
	canvasrenderer "github.com/ByLCY/inkwell/renderer/canvas"
	"github.com/ByLCY/inkwell/style"
)

type recordingSink struct {
	uploads []*renderer.PixelBuffer
}

func (s *recordingSink) Upload(buf *renderer.PixelBuffer) error {
	s.uploads = append(s.uploads, buf)
	return nil
}

type recordingOpener struct {
	opened []string
}

func (o *recordingOpener) Open(url string) error {
	o.opened = append(o.opened, url)
	return nil
}

func newLabel(t *testing.T, cfg label.Config, container layout.Rect) (*label.Label, *canvasrenderer.Renderer, *recordingSink) {
	t.Helper()
	backend := canvasrenderer.NewRenderer(".")
	sink := &recordingSink{}
	l, err := label.New(label.Options{Config: cfg, Container: container, Backend: backend, Sink: sink})
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, backend, sink
}

// textConfig 返回固定容器尺寸、开启链接识别的白色文本配置。
func textConfig(text string) label.Config {
	cfg := label.DefaultConfig()
	cfg.Text = text
	cfg.Style.Color = style.White
	cfg.Style.FontSize = 16
	cfg.Size = layout.SizeOptions{}
	cfg.RenderLinks = true
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := label.DefaultConfig()
	assert.Equal(t, 12.0, cfg.Style.FontSize)
	assert.Equal(t, style.Black.Pack(), cfg.Style.Color.Pack())
	assert.Equal(t, style.Black.Pack(), cfg.Style.HaloColor.Pack())
	assert.Equal(t, 0.0, cfg.Style.HaloWidth)
	assert.Equal(t, 1.0, cfg.Style.LineHeight)
	assert.Equal(t, layout.AlignLeft, cfg.Align)
	assert.Equal(t, layout.SizeOptions{MaxWidth: 264, AutoFitVertical: true}, cfg.Size)
	assert.False(t, cfg.RenderLinks)
	assert.Equal(t, renderer.Alpha8, cfg.Format)
	assert.False(t, style.Build(cfg.Style).HaloEnabled())
}

func TestDefaultConfigFitsHeight(t *testing.T) {
	cfg := label.DefaultConfig()
	cfg.Text = "see https://go.dev"
	l, _, _ := newLabel(t, cfg, layout.Rect{Width: 200, Height: 500})

	assert.Equal(t, 200.0, l.Container().Width)
	assert.Less(t, l.Container().Height, 500.0)
	assert.Greater(t, l.Container().Height, 0.0)
	assert.Equal(t, style.Black.Pack(), l.Output().Tint)
	assert.Empty(t, l.Links())
}

func TestRenderMatchesContainer(t *testing.T) {
	l, _, sink := newLabel(t, textConfig("Hello"), layout.Rect{Width: 120, Height: 30})
	out := l.Output()
	require.NotNil(t, out)
	assert.Equal(t, 120, out.Width)
	assert.Equal(t, 30, out.Height)
	assert.Equal(t, renderer.Alpha8, out.Format)
	assert.Equal(t, style.White.Pack(), out.Tint)
	require.Len(t, sink.uploads, 1)
	assert.Same(t, out, sink.uploads[0])
}

func TestRenderIsDeterministic(t *testing.T) {
	cfg := textConfig("deterministic https://example.com")
	cfg.Format = renderer.RGB32
	a, _, _ := newLabel(t, cfg, layout.Rect{Width: 300, Height: 40})
	b, _, _ := newLabel(t, cfg, layout.Rect{Width: 300, Height: 40})
	assert.True(t, bytes.Equal(a.Output().Pix, b.Output().Pix))

	first := append([]byte(nil), a.Output().Pix...)
	require.NoError(t, a.SetText(cfg.Text))
	assert.True(t, bytes.Equal(first, a.Output().Pix))
}

func TestZeroContainerSkipsRendering(t *testing.T) {
	l, backend, sink := newLabel(t, textConfig("Hello"), layout.Rect{Width: 120, Height: 30})
	prev := l.Output()
	require.NotNil(t, prev)

	require.NoError(t, l.Tick(layout.Rect{Width: 0, Height: 30}))
	assert.Same(t, prev, l.Output())
	assert.False(t, prev.Released())
	assert.Len(t, sink.uploads, 1)
	assert.Equal(t, 1, backend.Stats().Acquired)

	empty, _, _ := newLabel(t, textConfig("Hello"), layout.Rect{})
	assert.Nil(t, empty.Output())
}

func TestTickRendersOnlyOnChange(t *testing.T) {
	l, _, _ := newLabel(t, textConfig("tick"), layout.Rect{Width: 80, Height: 20})
	assert.Equal(t, 1, l.Renders())

	require.NoError(t, l.Tick(layout.Rect{Width: 80, Height: 20}))
	assert.Equal(t, 1, l.Renders())

	require.NoError(t, l.Tick(layout.Rect{Width: 90, Height: 20}))
	assert.Equal(t, 2, l.Renders())
	assert.Equal(t, 90, l.Output().Width)
}

func TestEachSetterRendersAndUpdateBatches(t *testing.T) {
	l, _, _ := newLabel(t, textConfig("batch"), layout.Rect{Width: 80, Height: 20})
	require.NoError(t, l.SetBold(true))
	require.NoError(t, l.SetItalic(true))
	require.NoError(t, l.SetFontSize(18))
	assert.Equal(t, 4, l.Renders())

	require.NoError(t, l.Update(func(c *label.Config) {
		c.Style.Bold = false
		c.Style.Italic = false
		c.Style.FontSize = 14
	}))
	assert.Equal(t, 5, l.Renders())
	assert.Equal(t, 14.0, l.Config().Style.FontSize)
}

func TestAutoFitDrivesContainer(t *testing.T) {
	cfg := textConfig("auto fit")
	cfg.Size = layout.SizeOptions{AutoFitHorizontal: true, AutoFitVertical: true, MaxWidth: 264}
	l, _, _ := newLabel(t, cfg, layout.Rect{})

	snap := l.Snapshot()
	require.Greater(t, snap.Measured.Width, 0.0)
	assert.InDelta(t, snap.Measured.Width+layout.AutoFitPadding, l.Container().Width, 1e-9)
	assert.InDelta(t, snap.Measured.Height, l.Container().Height, 1e-9)
	w, h := l.PreferredSize()
	assert.Equal(t, l.Container().Width, w)
	assert.Equal(t, l.Container().Height, h)

	out := l.Output()
	require.NotNil(t, out)
	pw, ph := l.Container().Pixels()
	assert.Equal(t, pw, out.Width)
	assert.Equal(t, ph, out.Height)

	// 宿主回传组件驱动的尺寸不会再次触发渲染
	renders := l.Renders()
	require.NoError(t, l.Tick(l.Container()))
	assert.Equal(t, renders, l.Renders())
}

func TestAutoFitClampsAndWraps(t *testing.T) {
	cfg := textConfig("a fairly long sentence that will not fit inside the narrow maximum width")
	cfg.Size = layout.SizeOptions{AutoFitHorizontal: true, AutoFitVertical: true, MaxWidth: 120}
	l, _, _ := newLabel(t, cfg, layout.Rect{})

	snap := l.Snapshot()
	assert.Greater(t, snap.Measured.Width, 120.0)
	assert.Equal(t, 120.0, l.Container().Width)
	assert.Greater(t, l.Container().Height, snap.Measured.Height)
	assert.Greater(t, len(snap.Lines), 1)
}

func TestLinksAndClick(t *testing.T) {
	opener := &recordingOpener{}
	cfg := textConfig("https://go.dev")
	l, err := label.New(label.Options{
		Config:    cfg,
		Container: layout.Rect{Width: 200, Height: 30},
		Backend:   canvasrenderer.NewRenderer("."),
		Opener:    opener,
	})
	require.NoError(t, err)
	defer l.Close()

	require.Len(t, l.Links(), 1)
	url, ok, err := l.Click(0.05, 0.5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "https://go.dev", url)
	assert.Equal(t, []string{"https://go.dev"}, opener.opened)

	require.NoError(t, l.SetRenderLinks(false))
	assert.Empty(t, l.Links())
	_, ok, _ = l.Click(0.05, 0.5)
	assert.False(t, ok)
}

func TestNoLinksNeverHits(t *testing.T) {
	l, _, _ := newLabel(t, textConfig("nothing to click here"), layout.Rect{Width: 200, Height: 30})
	assert.Empty(t, l.Links())
	for _, x := range []float64{0, 0.25, 0.5, 0.99} {
		_, ok := l.LinkAt(x, 0.5)
		assert.False(t, ok)
	}
}

func TestShapingErrorKeepsPreviousOutput(t *testing.T) {
	l, _, sink := newLabel(t, textConfig("good"), layout.Rect{Width: 80, Height: 20})
	prev := l.Output()

	err := l.SetText("bad \xff")
	require.Error(t, err)
	assert.True(t, errors.Is(err, layout.ErrShaping))
	assert.Same(t, prev, l.Output())
	assert.False(t, prev.Released())
	assert.Len(t, sink.uploads, 1)
}

func TestShapingErrorKeepsLinks(t *testing.T) {
	l, _, _ := newLabel(t, textConfig("https://go.dev"), layout.Rect{Width: 200, Height: 30})
	require.Len(t, l.Links(), 1)

	require.Error(t, l.SetText("https://go.dev \xff"))
	require.Len(t, l.Links(), 1)
	url, ok := l.LinkAt(0.05, 0.5)
	require.True(t, ok)
	assert.Equal(t, "https://go.dev", url)
}

func TestResourcesDoNotAccumulate(t *testing.T) {
	l, backend, _ := newLabel(t, textConfig("cycle"), layout.Rect{Width: 80, Height: 20})
	var outputs []*renderer.PixelBuffer
	outputs = append(outputs, l.Output())
	for i := 0; i < 6; i++ {
		require.NoError(t, l.SetLetterSpacing(float64(i)))
		outputs = append(outputs, l.Output())
	}
	st := backend.Stats()
	assert.Equal(t, 7, st.Acquired)
	assert.Equal(t, st.Acquired, st.Released)
	assert.Equal(t, 0, st.Live)
	assert.Equal(t, 1, st.MaxLive)
	assert.Equal(t, 1, st.TypefaceLoads)

	for _, old := range outputs[:len(outputs)-1] {
		assert.True(t, old.Released())
	}
	assert.False(t, l.Output().Released())
}

func TestCloseReleasesOutput(t *testing.T) {
	backend := canvasrenderer.NewRenderer(".")
	l, err := label.New(label.Options{Config: textConfig("bye"), Container: layout.Rect{Width: 50, Height: 20}, Backend: backend})
	require.NoError(t, err)
	out := l.Output()
	require.NoError(t, l.Close())
	assert.True(t, out.Released())
	assert.Nil(t, l.Output())
	assert.ErrorIs(t, l.SetText("again"), label.ErrClosed)
	assert.NoError(t, l.Close())
}

func TestLineHeightAccessorReadsField(t *testing.T) {
	l, _, _ := newLabel(t, textConfig("lines"), layout.Rect{Width: 80, Height: 40})
	require.NoError(t, l.SetLineHeight(1.5))
	assert.Equal(t, 1.5, l.LineHeight())
}
