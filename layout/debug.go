package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将渲染快照输出为 JSON，便于调试或可视化。
func WriteDebugJSON(snaps []Snapshot, path string) error {
	if len(snaps) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(snaps, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
