package layout

// 该文件定义调试快照使用的结构，供渲染组件与调试 JSON 共用。

import "github.com/ByLCY/inkwell/links"

// LineInfo 描述排版后的一行：码点区间与像素几何。
type LineInfo struct {
	Start    int     `json:"start"`
	End      int     `json:"end"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Baseline float64 `json:"baseline"`
}

// LineReporter 由能够导出行信息的 Layout 实现。
type LineReporter interface {
	Lines() []LineInfo
}

// Snapshot 记录一次渲染后的尺寸、链接与行信息。
type Snapshot struct {
	Name      string        `json:"name,omitempty"`
	Text      string        `json:"text"`
	Measured  Rect          `json:"measured"`
	Preferred Rect          `json:"preferred"`
	Container Rect          `json:"container"`
	Rendered  bool          `json:"rendered"`
	Links     []links.Range `json:"links"`
	Lines     []LineInfo    `json:"lines,omitempty"`
}
