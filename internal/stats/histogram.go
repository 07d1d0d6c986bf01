package stats

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	terminalWidthBackup = 80
	minBarWidth         = 10
	barChar             = "#"
	colorGreen          = "\x1b[32m"
	colorReset          = "\x1b[0m"
)

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderHistogram prints one bar per turn count, scaled so the longest bar
// fits totalWidth columns. totalWidth <= 0 uses the terminal width.
func RenderHistogram(w io.Writer, dist map[int]int, totalWidth int) error {
	if len(dist) == 0 {
		return nil
	}
	if totalWidth <= 0 {
		totalWidth = TerminalWidth()
	}
	keys := make([]int, 0, len(dist))
	maxCount := 0
	for turns, n := range dist {
		keys = append(keys, turns)
		maxCount = max(maxCount, n)
	}
	slices.Sort(keys)

	labelWidth := len(strconv.Itoa(keys[len(keys)-1]))
	countWidth := len(strconv.Itoa(maxCount))
	barWidth := max(totalWidth-labelWidth-countWidth-3, minBarWidth)
	color := shouldUseColor(w)

	if _, err := fmt.Fprintln(w, "Guess distribution"); err != nil {
		return err
	}
	for _, turns := range keys {
		n := dist[turns]
		size := 0
		if maxCount > 0 {
			size = n * barWidth / maxCount
		}
		if n > 0 && size == 0 {
			size = 1
		}
		bar := strings.Repeat(barChar, size)
		if color && bar != "" {
			bar = colorGreen + bar + colorReset
		}
		if _, err := fmt.Fprintf(w, "%*d %s %*d\n", labelWidth, turns, bar, countWidth, n); err != nil {
			return err
		}
	}
	return nil
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
