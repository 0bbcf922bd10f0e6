// Package style 将面向用户的扁平属性翻译为不可变的文本样式 Spec。
package style

import (
	"fmt"
	"strings"
)

// Weight 为字重，取值 100–900。
type Weight int

const (
	WeightRegular Weight = 400
	WeightBold    Weight = 700
)

// Decoration 描述下划线或删除线的样式。
type Decoration int

const (
	DecorationNone Decoration = iota
	DecorationSolid
	DecorationDouble
	DecorationDotted
	DecorationDashed
	DecorationWavy
)

var decorationNames = map[Decoration]string{
	DecorationNone:   "none",
	DecorationSolid:  "solid",
	DecorationDouble: "double",
	DecorationDotted: "dotted",
	DecorationDashed: "dashed",
	DecorationWavy:   "wavy",
}

func (d Decoration) String() string {
	if name, ok := decorationNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Decoration(%d)", int(d))
}

// ParseDecoration 接受 none/solid/double/dotted/dashed/wavy，空串视为 none。
func ParseDecoration(value string) (Decoration, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return DecorationNone, nil
	}
	for d, name := range decorationNames {
		if name == v {
			return d, nil
		}
	}
	return DecorationNone, fmt.Errorf("未知的装饰线样式: %q", value)
}

// Direction 为文本方向。
type Direction int

const (
	DirectionAuto Direction = iota
	DirectionLTR
	DirectionRTL
)

func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "ltr"
	case DirectionRTL:
		return "rtl"
	default:
		return "auto"
	}
}

// ParseDirection 接受 auto/ltr/rtl。
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return DirectionAuto, nil
	case "ltr":
		return DirectionLTR, nil
	case "rtl":
		return DirectionRTL, nil
	default:
		return DirectionAuto, fmt.Errorf("未知的文本方向: %q", value)
	}
}

// LinkColor 是链接文本的固定颜色。
var LinkColor = Color{R: 0.02, G: 0.27, B: 0.68, A: 1}

// Halo 为字形描边（光晕）。
type Halo struct {
	Width float64
	Color ARGB
	Blur  float64
}

// Spec 是附加到文本区间上的样式，构造后不可修改。
// 所有字段均为值类型，因此 Spec 可以直接作为 map 的键。
type Spec struct {
	Font          string
	Size          float64
	Color         ARGB
	Weight        Weight
	Italic        bool
	LetterSpacing float64
	Halo          Halo
	Background    ARGB
	Underline     Decoration
	Strikethrough Decoration
	LineHeight    float64
	Direction     Direction
}

// HaloEnabled 报告光晕是否可见：宽度为正且颜色不透明度不为 0。
func (s Spec) HaloEnabled() bool {
	return s.Halo.Width > 0 && !s.Halo.Color.Transparent()
}

// HasBackground 报告是否需要绘制背景填充。
func (s Spec) HasBackground() bool { return !s.Background.Transparent() }

// LineHeightFactor returns the line height multiplier, defaulting to 1.
func (s Spec) LineHeightFactor() float64 {
	if s.LineHeight <= 0 {
		return 1
	}
	return s.LineHeight
}

// Props 是面向用户的扁平样式属性集合。
type Props struct {
	Font          string     `json:"font"`
	FontSize      float64    `json:"fontSize"`
	Color         Color      `json:"color"`
	Bold          bool       `json:"bold"`
	Italic        bool       `json:"italic"`
	LetterSpacing float64    `json:"letterSpacing"`
	HaloWidth     float64    `json:"haloWidth"`
	HaloColor     Color      `json:"haloColor"`
	HaloBlur      float64    `json:"haloBlur"`
	Background    Color      `json:"background"`
	Underline     Decoration `json:"underline"`
	Strikethrough Decoration `json:"strikethrough"`
	LineHeight    float64    `json:"lineHeight"`
	Direction     Direction  `json:"direction"`
}

// DefaultProps 返回默认属性：12px 黑色常规字重，光晕颜色为黑色（宽度为 0 时不生效）。
func DefaultProps() Props {
	return Props{
		FontSize:   12,
		Color:      Black,
		HaloColor:  Black,
		LineHeight: 1,
	}
}

// Build 由属性构造基础样式，是当前属性集的纯函数。
func Build(p Props) Spec {
	weight := WeightRegular
	if p.Bold {
		weight = WeightBold
	}
	spec := Spec{
		Font:          p.Font,
		Size:          p.FontSize,
		Color:         p.Color.Pack(),
		Weight:        weight,
		Italic:        p.Italic,
		LetterSpacing: p.LetterSpacing,
		Background:    p.Background.Pack(),
		Underline:     p.Underline,
		Strikethrough: p.Strikethrough,
		LineHeight:    p.LineHeight,
		Direction:     p.Direction,
	}
	halo := p.HaloColor.Pack()
	if p.HaloWidth > 0 && !halo.Transparent() {
		spec.Halo = Halo{Width: p.HaloWidth, Color: halo, Blur: p.HaloBlur}
	}
	if spec.Background.Transparent() {
		spec.Background = 0
	}
	return spec
}

// BuildLink 构造链接区间的覆盖样式：除固定链接颜色与实线下划线外与基础样式一致。
func BuildLink(p Props) Spec {
	p.Color = LinkColor
	p.Underline = DecorationSolid
	return Build(p)
}
