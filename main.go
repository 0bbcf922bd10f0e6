package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/ByLCY/inkwell/config"
	"github.com/ByLCY/inkwell/label"
	"github.com/ByLCY/inkwell/layout"
	"github.com/ByLCY/inkwell/renderer"
	canvasrenderer "github.com/ByLCY/inkwell/renderer/canvas"
)

type runOptions struct {
	input  string
	outDir string
	debug  string
	click  string
}

func main() {
	var opts runOptions
	flag.StringVar(&opts.input, "in", "examples/demo.label", "标签定义文件路径（.label 或 .yaml）")
	flag.StringVar(&opts.outDir, "out", "output", "PNG 输出目录")
	flag.StringVar(&opts.debug, "debug", "", "布局调试 JSON 输出路径")
	flag.StringVar(&opts.click, "click", "", "归一化坐标 x,y，输出该点下的链接")
	watch := flag.Bool("watch", false, "监听输入文件，修改后重新渲染")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatalf("渲染标签失败: %v", err)
	}
	if *watch {
		if err := watchInput(opts); err != nil {
			log.Fatalf("监听文件失败: %v", err)
		}
	}
}

// run 串联加载、渲染与输出。
func run(opts runOptions) error {
	defs, err := config.Load(opts.input)
	if err != nil {
		return err
	}
	var probe *[2]float64
	if opts.click != "" {
		x, y, err := parsePoint(opts.click)
		if err != nil {
			return err
		}
		probe = &[2]float64{x, y}
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	snaps := make([]layout.Snapshot, 0, len(defs))
	for _, def := range defs {
		snap, err := renderOne(def, filepath.Dir(opts.input), opts.outDir, probe)
		if err != nil {
			return fmt.Errorf("标签 %s: %w", def.Name, err)
		}
		snaps = append(snaps, snap)
	}

	if opts.debug != "" {
		if err := os.MkdirAll(filepath.Dir(opts.debug), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := layout.WriteDebugJSON(snaps, opts.debug); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	return nil
}

func renderOne(def config.Definition, baseDir, outDir string, probe *[2]float64) (layout.Snapshot, error) {
	backend := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{BaseDir: baseDir})
	sink := &pngSink{path: filepath.Join(outDir, def.Name+".png")}
	l, err := label.New(label.Options{
		Config:    def.Config,
		Container: def.Container,
		Backend:   backend,
		Sink:      sink,
		Opener:    printOpener{},
	})
	if err != nil {
		if l != nil {
			l.Close()
		}
		return layout.Snapshot{}, err
	}
	defer l.Close()

	if l.Output() == nil {
		fmt.Printf("%s: 容器尺寸为 0，未生成图片\n", def.Name)
	} else {
		fmt.Printf("已生成 PNG：%s\n", sink.path)
	}
	if probe != nil {
		if _, ok, err := l.Click(probe[0], probe[1]); err != nil {
			return layout.Snapshot{}, err
		} else if !ok {
			fmt.Printf("%s: (%g,%g) 处没有链接\n", def.Name, probe[0], probe[1])
		}
	}

	snap := l.Snapshot()
	snap.Name = def.Name
	return snap, nil
}

// watchInput 监听输入文件所在目录，文件被写入或替换后重新渲染。
// 所有渲染都在本协程内完成。
func watchInput(opts runOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target, err := filepath.Abs(opts.input)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}
	fmt.Printf("正在监听 %s\n", opts.input)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, _ := filepath.Abs(event.Name)
			if name != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := run(opts); err != nil {
				log.Printf("重新渲染失败: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("监听错误: %v", err)
		}
	}
}

func parsePoint(value string) (float64, float64, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("坐标格式应为 x,y：%q", value)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("无效的 x 坐标 %q: %w", parts[0], err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("无效的 y 坐标 %q: %w", parts[1], err)
	}
	return x, y, nil
}

// pngSink 把每次上传的缓冲写成 PNG 文件。
type pngSink struct {
	path string
}

func (s *pngSink) Upload(buf *renderer.PixelBuffer) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("创建 PNG 文件失败: %w", err)
	}
	if err := png.Encode(f, buf.Image()); err != nil {
		f.Close()
		return fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return f.Close()
}

// printOpener 只把链接打印出来。
type printOpener struct{}

func (printOpener) Open(url string) error {
	fmt.Printf("打开链接：%s\n", url)
	return nil
}
