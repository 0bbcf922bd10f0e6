package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/inkwell/dsl"
)

const sampleDSL = `
// 标题与正文两个标签
label title {
  "Release notes"
  font: "embed:Go-Bold.ttf"
  size: 24px
  color: #FFFFFF
  halo-width: 2; halo-color: #CC000000
  bold: true
  container: [320, 48]
}

label body {
  "See https://go.dev"
  "and www.example.com"
  letter-spacing: -0.5
  align: center
  container: [
    240
    64
  ]
}
`

func TestParseLabels(t *testing.T) {
	file, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(file.Labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(file.Labels))
	}

	title := file.Labels[0]
	if title.Name != "title" {
		t.Fatalf("expected label title, got %s", title.Name)
	}
	text, ok := title.Text()
	if !ok || text != "Release notes" {
		t.Fatalf("unexpected title text %q (%v)", text, ok)
	}

	values := map[string]*dsl.Value{}
	for _, st := range title.Block.Statements {
		if st.Assignment != nil {
			values[st.Assignment.Key] = st.Assignment.Value
		}
	}
	expect := map[string]string{
		"font":       "embed:Go-Bold.ttf",
		"size":       "24px",
		"color":      "#FFFFFF",
		"halo-width": "2",
		"halo-color": "#CC000000",
		"bold":       "true",
	}
	for key, want := range expect {
		v, ok := values[key]
		if !ok {
			t.Fatalf("missing assignment %s", key)
		}
		got, err := v.Scalar()
		if err != nil {
			t.Fatalf("scalar %s: %v", key, err)
		}
		if got != want {
			t.Fatalf("expected %s=%s, got %s", key, want, got)
		}
	}

	container, err := values["container"].List()
	if err != nil {
		t.Fatalf("container list: %v", err)
	}
	if strings.Join(container, ",") != "320,48" {
		t.Fatalf("unexpected container %v", container)
	}
	if _, err := values["container"].Scalar(); err == nil {
		t.Fatalf("array should not convert to scalar")
	}
}

func TestMultipleTextLiteralsJoinWithNewline(t *testing.T) {
	file, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	body := file.Labels[1]
	text, _ := body.Text()
	if text != "See https://go.dev\nand www.example.com" {
		t.Fatalf("unexpected body text %q", text)
	}
	for _, st := range body.Block.Statements {
		if st.Assignment == nil {
			continue
		}
		switch st.Assignment.Key {
		case "letter-spacing":
			if got, _ := st.Assignment.Value.Scalar(); got != "-0.5" {
				t.Fatalf("expected negative spacing, got %s", got)
			}
		case "container":
			list, err := st.Assignment.Value.List()
			if err != nil || len(list) != 2 || list[1] != "64" {
				t.Fatalf("unexpected multi-line container %v (%v)", list, err)
			}
		}
	}
}

func TestParseEmptyFile(t *testing.T) {
	file, err := dsl.ParseString("\n# nothing here\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(file.Labels) != 0 {
		t.Fatalf("expected no labels, got %d", len(file.Labels))
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := dsl.Parse("broken.label", strings.NewReader("label x {\n  size 12\n}\n"))
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "broken.label:2") {
		t.Fatalf("error should mention file and line, got %v", err)
	}
}
