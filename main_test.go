package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/inkwell/layout"
)

func TestRunWritesImagesAndDebug(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "demo.label")
	src := "label hello {\n  \"https://go.dev\"\n  auto-fit-horizontal: true\n  auto-fit-vertical: true\n  render-links: true\n}\n" +
		"label empty {\n  \"no room\"\n}\n"
	if err := os.WriteFile(input, []byte(src), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	opts := runOptions{
		input:  input,
		outDir: filepath.Join(dir, "out"),
		debug:  filepath.Join(dir, "debug", "layout.json"),
		click:  "0.1,0.5",
	}
	if err := run(opts); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(opts.outDir, "hello.png")); err != nil {
		t.Fatalf("expected hello.png: %v", err)
	}
	if _, err := os.Stat(filepath.Join(opts.outDir, "empty.png")); !os.IsNotExist(err) {
		t.Fatalf("zero-size label should not produce an image, stat err %v", err)
	}

	data, err := os.ReadFile(opts.debug)
	if err != nil {
		t.Fatalf("read debug: %v", err)
	}
	var snaps []layout.Snapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		t.Fatalf("decode debug: %v", err)
	}
	if len(snaps) != 2 || snaps[0].Name != "hello" || !snaps[0].Rendered || snaps[1].Rendered {
		t.Fatalf("unexpected snapshots: %+v", snaps)
	}
	if len(snaps[0].Links) != 1 || snaps[0].Links[0].Length != 14 {
		t.Fatalf("unexpected links: %+v", snaps[0].Links)
	}
}

func TestParsePoint(t *testing.T) {
	x, y, err := parsePoint(" 0.25, 0.75 ")
	if err != nil || x != 0.25 || y != 0.75 {
		t.Fatalf("parsePoint = %v,%v,%v", x, y, err)
	}
	for _, bad := range []string{"", "1", "a,b", "1,2,3"} {
		if _, _, err := parsePoint(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
