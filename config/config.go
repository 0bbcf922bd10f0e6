// Package config 从 .label DSL 文件或 YAML 文件加载标签定义。
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/inkwell/dsl"
	"github.com/ByLCY/inkwell/label"
	"github.com/ByLCY/inkwell/layout"
	"github.com/ByLCY/inkwell/renderer"
	"github.com/ByLCY/inkwell/style"
)

// Definition 是一个可直接交给 label.New 的标签定义。
type Definition struct {
	Name      string
	Config    label.Config
	Container layout.Rect
}

// property 是与来源格式无关的属性值：标量或列表。
type property struct {
	scalar string
	list   []string
	isList bool
}

type rawLabel struct {
	name  string
	text  *string
	props map[string]property
	order []string
}

// Load 根据扩展名选择解析器：.yaml/.yml 走 YAML，其余按 DSL 解析。
func Load(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseDSL(path, data)
	}
}

// ParseDSL 解析 .label 内容。
func ParseDSL(filename string, data []byte) ([]Definition, error) {
	file, err := dsl.Parse(filename, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解析 DSL 失败: %w", err)
	}
	raws := make([]rawLabel, 0, len(file.Labels))
	for _, decl := range file.Labels {
		raw := rawLabel{name: decl.Name, props: map[string]property{}}
		if text, ok := decl.Text(); ok {
			raw.text = &text
		}
		for _, st := range decl.Block.Statements {
			a := st.Assignment
			if a == nil {
				continue
			}
			var p property
			if a.Value.Array != nil {
				list, err := a.Value.List()
				if err != nil {
					return nil, fmt.Errorf("%s: 属性 %s: %w", a.Pos, a.Key, err)
				}
				p = property{list: list, isList: true}
			} else {
				s, err := a.Value.Scalar()
				if err != nil {
					return nil, fmt.Errorf("%s: 属性 %s: %w", a.Pos, a.Key, err)
				}
				p = property{scalar: s}
			}
			raw.set(a.Key, p)
		}
		raws = append(raws, raw)
	}
	return build(raws)
}

type yamlFile struct {
	Labels []yaml.Node `yaml:"labels"`
}

// ParseYAML 解析 YAML 内容，格式为 labels 列表，每项是属性映射。
func ParseYAML(data []byte) ([]Definition, error) {
	var doc yamlFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("解析 YAML 失败: %w", err)
	}
	raws := make([]rawLabel, 0, len(doc.Labels))
	for i, node := range doc.Labels {
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("第 %d 行: labels[%d] 必须是映射", node.Line, i)
		}
		raw := rawLabel{props: map[string]property{}}
		for k := 0; k+1 < len(node.Content); k += 2 {
			key, val := node.Content[k].Value, node.Content[k+1]
			switch {
			case key == "name":
				raw.name = val.Value
			case key == "text":
				text := val.Value
				raw.text = &text
			case val.Kind == yaml.SequenceNode:
				list := make([]string, 0, len(val.Content))
				for _, item := range val.Content {
					if item.Kind != yaml.ScalarNode {
						return nil, fmt.Errorf("第 %d 行: 属性 %s 只支持标量列表", item.Line, key)
					}
					list = append(list, item.Value)
				}
				raw.set(key, property{list: list, isList: true})
			case val.Kind == yaml.ScalarNode:
				raw.set(key, property{scalar: val.Value})
			default:
				return nil, fmt.Errorf("第 %d 行: 属性 %s 的值类型不受支持", val.Line, key)
			}
		}
		if raw.name == "" {
			raw.name = fmt.Sprintf("label%d", i+1)
		}
		raws = append(raws, raw)
	}
	return build(raws)
}

func (r *rawLabel) set(key string, p property) {
	if _, ok := r.props[key]; !ok {
		r.order = append(r.order, key)
	}
	r.props[key] = p
}

func build(raws []rawLabel) ([]Definition, error) {
	seen := map[string]bool{}
	defs := make([]Definition, 0, len(raws))
	for _, raw := range raws {
		if seen[raw.name] {
			return nil, fmt.Errorf("标签 %s 重复定义", raw.name)
		}
		seen[raw.name] = true
		def, err := raw.definition()
		if err != nil {
			return nil, fmt.Errorf("标签 %s: %w", raw.name, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (r rawLabel) definition() (Definition, error) {
	def := Definition{Name: r.name, Config: label.DefaultConfig()}
	if r.text != nil {
		def.Config.Text = *r.text
	}
	for _, key := range r.order {
		p := r.props[key]
		if err := apply(&def, key, p); err != nil {
			return Definition{}, fmt.Errorf("属性 %s: %w", key, err)
		}
	}
	return def, nil
}

func apply(def *Definition, key string, p property) error {
	cfg := &def.Config
	if key == "container" {
		if !p.isList || len(p.list) != 2 {
			return fmt.Errorf("container 需要 [宽, 高] 两个值")
		}
		w, err := parsePixels(p.list[0])
		if err != nil {
			return err
		}
		h, err := parsePixels(p.list[1])
		if err != nil {
			return err
		}
		def.Container = layout.Rect{Width: w, Height: h}
		return nil
	}
	if p.isList {
		return fmt.Errorf("此属性需要标量值")
	}
	v := p.scalar

	var err error
	switch key {
	case "font":
		cfg.Style.Font = v
	case "size", "font-size":
		cfg.Style.FontSize, err = parsePixels(v)
	case "color":
		cfg.Style.Color, err = style.ParseHex(v)
	case "background":
		cfg.Style.Background, err = style.ParseHex(v)
	case "bold":
		cfg.Style.Bold, err = strconv.ParseBool(v)
	case "italic":
		cfg.Style.Italic, err = strconv.ParseBool(v)
	case "letter-spacing":
		cfg.Style.LetterSpacing, err = parsePixels(v)
	case "halo-width":
		cfg.Style.HaloWidth, err = parsePixels(v)
	case "halo-color":
		cfg.Style.HaloColor, err = style.ParseHex(v)
	case "halo-blur":
		cfg.Style.HaloBlur, err = parsePixels(v)
	case "underline":
		cfg.Style.Underline, err = parseDecoration(v)
	case "strikethrough":
		cfg.Style.Strikethrough, err = parseDecoration(v)
	case "line-height":
		cfg.Style.LineHeight, err = strconv.ParseFloat(v, 64)
	case "direction":
		cfg.Style.Direction, err = style.ParseDirection(v)
	case "align":
		cfg.Align, err = layout.ParseAlign(v)
	case "auto-fit-horizontal":
		cfg.Size.AutoFitHorizontal, err = strconv.ParseBool(v)
	case "auto-fit-vertical":
		cfg.Size.AutoFitVertical, err = strconv.ParseBool(v)
	case "max-width":
		cfg.Size.MaxWidth, err = parsePixels(v)
	case "render-links":
		cfg.RenderLinks, err = strconv.ParseBool(v)
	case "format":
		cfg.Format, err = renderer.ParseColorFormat(v)
	default:
		return fmt.Errorf("未知属性")
	}
	return err
}

func parsePixels(v string) (float64, error) {
	l, err := layout.ParseLength(v)
	if err != nil {
		return 0, fmt.Errorf("无效长度 %q: %w", v, err)
	}
	return l.Pixels(), nil
}

// parseDecoration 额外接受布尔值：true 表示实线，false 表示无。
func parseDecoration(v string) (style.Decoration, error) {
	if b, err := strconv.ParseBool(v); err == nil {
		if b {
			return style.DecorationSolid, nil
		}
		return style.DecorationNone, nil
	}
	return style.ParseDecoration(v)
}
