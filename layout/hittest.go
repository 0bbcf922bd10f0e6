package layout

import "github.com/ByLCY/inkwell/links"

// LocateLink 将归一化指针坐标（0..1，原点在左上角）按容器像素尺寸换算为
// 布局局部坐标，命中测试得到码点下标后查找所在链接。没有链接时返回 false。
func LocateLink(nx, ny float64, container Rect, ht HitTester, ranges links.Ranges) (links.Range, bool) {
	if ht == nil || len(ranges) == 0 {
		return links.Range{}, false
	}
	index := ht.HitTest(nx*container.Width, ny*container.Height)
	return ranges.Find(index)
}
