package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/zengarden/status"
)

// FitLine truncates or pads s to exactly width display columns
func FitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// MetricsLine formats the selected metrics as "key=value" pairs in key order
// Keys absent from the snapshot are skipped
func MetricsLine(metrics []status.Metric, keys ...string) string {
	values := make(map[string]string, len(metrics))
	for _, m := range metrics {
		values[m.Key] = m.Value
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v, ok := values[k]; ok {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, "  ")
}
