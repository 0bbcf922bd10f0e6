// Package links 在纯文本中查找 URL 样式的子串并返回按码点计的区间。
package links

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// 链接在任意 Unicode 空白处结束（与 unicode.IsSpace 一致），RE2 的 \s 只覆盖 ASCII 空白。
var urlPattern = regexp.MustCompile(`(?:https?://|www\.)[^\s\v\p{Z}\x{85}]+`)

var (
	ErrDuplicateStart = errors.New("links: duplicate start offset")
	ErrUnordered      = errors.New("links: ranges out of order or overlapping")
	ErrOutOfBounds    = errors.New("links: range outside text")
)

// Range 描述原始文本中的一个链接，偏移以码点计，End 不包含在内。
type Range struct {
	Start  int `json:"start"`
	End    int `json:"end"`
	Length int `json:"length"`
}

// URL 从当前文本中复制 [Start, Start+Length) 的码点。
// 若文本已缩短则截断到文本末尾。
func (r Range) URL(text string) string {
	runes := []rune(text)
	start := min(max(r.Start, 0), len(runes))
	end := min(start+r.Length, len(runes))
	return string(runes[start:end])
}

// Ranges 是按起点严格递增、互不重叠的链接区间序列。
type Ranges []Range

// NewRanges 校验区间并返回 Ranges。textLen 为文本码点数。
func NewRanges(rs []Range, textLen int) (Ranges, error) {
	out := make(Ranges, 0, len(rs))
	for i, r := range rs {
		if r.Start < 0 || r.End <= r.Start || r.End > textLen {
			return nil, fmt.Errorf("区间 #%d [%d,%d) 越界（文本长度 %d）: %w", i, r.Start, r.End, textLen, ErrOutOfBounds)
		}
		if r.Length != r.End-r.Start {
			r.Length = r.End - r.Start
		}
		if i > 0 {
			prev := out[i-1]
			if r.Start == prev.Start {
				return nil, fmt.Errorf("区间 #%d 起点 %d 重复: %w", i, r.Start, ErrDuplicateStart)
			}
			if r.Start < prev.End {
				return nil, fmt.Errorf("区间 #%d [%d,%d) 与前一区间 [%d,%d) 冲突: %w", i, r.Start, r.End, prev.Start, prev.End, ErrUnordered)
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// Extract 从左到右扫描 text，返回所有 http(s):// 或 www. 开头、
// 直到下一个空白为止的子串区间。对同一文本多次调用结果一致。
func Extract(text string) Ranges {
	matches := urlPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make(Ranges, 0, len(matches))
	cursor, runeIdx := 0, 0
	for _, m := range matches {
		runeIdx += utf8.RuneCountInString(text[cursor:m[0]])
		start := runeIdx
		runeIdx += utf8.RuneCountInString(text[m[0]:m[1]])
		cursor = m[1]
		out = append(out, Range{Start: start, End: runeIdx, Length: runeIdx - start})
	}
	return out
}

// Find 返回第一个满足 Start <= index <= End 的区间（两端均包含）。
func (rs Ranges) Find(index int) (Range, bool) {
	for _, r := range rs {
		if index >= r.Start && index <= r.End {
			return r, true
		}
	}
	return Range{}, false
}
