package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	barGlyph            = "█"
	barColor            = "\x1b[36m"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// RenderChart writes one line per number with a non-zero count:
// the number, a bar of one glyph per occurrence and the count.
// Bars are scaled down only when a line would exceed width; width <= 0 never scales.
func RenderChart(w io.Writer, t *Table, width int, useColor bool) error {
	if t == nil {
		return nil
	}
	highest := t.MaxCount()
	if highest == 0 {
		return nil
	}
	for _, n := range t.Numbers() {
		count := t.Count(n)
		if count == 0 {
			continue
		}
		prefix := fmt.Sprintf("%02d: ", n)
		suffix := fmt.Sprintf(" (%d)", count)
		bar := strings.Repeat(barGlyph, barLength(count, highest, width, prefix))
		if useColor {
			bar = barColor + bar + colorReset
		}
		if _, err := fmt.Fprintln(w, prefix+bar+suffix); err != nil {
			return err
		}
	}
	return nil
}

func barLength(count, highest, width int, prefix string) int {
	if width <= 0 {
		return count
	}
	// Reserve room for the widest count suffix so all bars share one scale.
	avail := width - runewidth.StringWidth(prefix) - runewidth.StringWidth(fmt.Sprintf(" (%d)", highest))
	if avail < 1 {
		avail = 1
	}
	if highest <= avail {
		return count
	}
	length := count * avail / highest
	if length < 1 {
		length = 1
	}
	return length
}

// TerminalWidth returns the stdout width or a fallback.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
