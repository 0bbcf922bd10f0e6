// Package dsl 解析 .label 标签定义文件。
//
// 一个文件可以包含多个标签定义：
//
//	label title {
//	  "Hello https://go.dev"
//	  font: "embed:Go-Bold.ttf"
//	  size: 24px
//	  color: #FFFFFF
//	  container: [320, 48]
//	}
package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:px|pt|%)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][(),;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// File is the root AST node of a .label file.
type File struct {
	Labels []*LabelDecl `parser:"Newline* ( @@ Newline* )*"`
}

// LabelDecl 是一个具名的标签定义。
type LabelDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"'label' @Ident"`
	Block *Block         `parser:"@@"`
}

// Block is a delimited list of statements.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement 是属性赋值或作为标签文本的字符串字面量。
type Statement struct {
	Assignment *Assignment  `parser:"  @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' Newline* @@"`
}

// TextLiteral encapsulates raw string statements within blocks.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value represents property values.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
	Array  *ArrayValue    `parser:"| @@"`
}

// ArrayValue captures `[ ... ]` expressions.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// Scalar 返回标量值的文本形式；数组返回错误。
func (v *Value) Scalar() (string, error) {
	switch {
	case v == nil:
		return "", fmt.Errorf("缺少属性值")
	case v.String != nil:
		return string(*v.String), nil
	case v.Number != nil:
		return *v.Number, nil
	case v.Color != nil:
		return *v.Color, nil
	case v.Ident != nil:
		return *v.Ident, nil
	default:
		return "", fmt.Errorf("此处需要标量值，得到数组")
	}
}

// List 返回数组中各元素的文本形式。标量视为单元素数组。
func (v *Value) List() ([]string, error) {
	if v == nil || v.Array == nil {
		s, err := v.Scalar()
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	out := make([]string, 0, len(v.Array.Values))
	for _, item := range v.Array.Values {
		s, err := item.Scalar()
		if err != nil {
			return nil, fmt.Errorf("不支持嵌套数组: %w", err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Text 拼接块内所有字符串字面量，多个字面量之间以换行连接。
func (d *LabelDecl) Text() (string, bool) {
	var parts []string
	for _, st := range d.Block.Statements {
		if st.Text != nil {
			parts = append(parts, string(st.Text.Value))
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses DSL content from an io.Reader.
func Parse(filename string, r io.Reader) (*File, error) {
	return fileParser.Parse(filename, r)
}

// ParseString parses DSL content from a string.
func ParseString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}
