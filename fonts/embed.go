package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名称，可写为 "embed:Go-Regular.ttf"。
const (
	Regular    = "Go-Regular.ttf"
	Bold       = "Go-Bold.ttf"
	Italic     = "Go-Italic.ttf"
	BoldItalic = "Go-BoldItalic.ttf"
	Mono       = "Go-Mono.ttf"
)

var builtin = map[string][]byte{
	Regular:    goregular.TTF,
	Bold:       gobold.TTF,
	Italic:     goitalic.TTF,
	BoldItalic: gobolditalic.TTF,
	Mono:       gomono.TTF,
}

// Load 返回内置字体的字节数据，path 可写为 "embed:Go-Regular.ttf" 或直接 "Go-Regular.ttf"。
func Load(path string) ([]byte, error) {
	name := strings.TrimPrefix(strings.TrimSpace(path), "embed:")
	data, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 可用字体 %s", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names 返回所有内置字体名称（已排序）。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
