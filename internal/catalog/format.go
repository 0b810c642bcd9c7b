package catalog

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"modelswitch/pkg/types"
)

// Sort orders models by name ascending.
func Sort(models []types.Model) {
	sort.SliceStable(models, func(i, j int) bool { return models[i].Name < models[j].Name })
}

// FormatSize renders bytes in decimal units: GB with one decimal from 1e9 up,
// whole MB below that.
func FormatSize(bytes int64) string {
	const gb = 1_000_000_000
	const mb = 1_000_000
	if bytes >= gb {
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	}
	return fmt.Sprintf("%.0f MB", float64(bytes)/mb)
}

// Width is the longest model name in terminal columns.
func Width(models []types.Model) int {
	w := 0
	for _, m := range models {
		if n := runewidth.StringWidth(m.Name); n > w {
			w = n
		}
	}
	return w
}

// Render writes one numbered, aligned line per model in the given order.
func Render(w io.Writer, models []types.Model) error {
	width := Width(models)
	for i, m := range models {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(m.Name))
		if _, err := fmt.Fprintf(w, "%3d) %s%s  (%s)\n", i+1, m.Name, pad, FormatSize(m.Size)); err != nil {
			return err
		}
	}
	return nil
}
