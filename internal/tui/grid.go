package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordrank/internal/feedback"
)

const gridGap = 2

// layoutGrid arranges words in columns that fit width, filling rows first.
func layoutGrid(words []string, width int) string {
	if len(words) == 0 {
		return ""
	}
	cell := 0
	for _, w := range words {
		cell = max(cell, runewidth.StringWidth(w))
	}
	cols := 1
	if width > cell {
		cols = max(1, (width+gridGap)/(cell+gridGap))
	}

	var b strings.Builder
	for i, w := range words {
		col := i % cols
		if col > 0 {
			b.WriteString(strings.Repeat(" ", gridGap))
		}
		last := col == cols-1 || i == len(words)-1
		if last {
			b.WriteString(w)
		} else {
			b.WriteString(runewidth.FillRight(w, cell))
		}
		if last && i != len(words)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func tileStyle(mark feedback.Mark) lipgloss.Style {
	switch mark {
	case feedback.Correct:
		return correctTile
	case feedback.Present:
		return presentTile
	default:
		return absentTile
	}
}

func renderTile(r rune, mark feedback.Mark, cursor bool) string {
	style := tileStyle(mark)
	if cursor {
		style = style.Underline(true)
	}
	return style.Render(" " + string(r) + " ")
}

func renderTiles(guess []rune, marks feedback.Marks, cursor int) string {
	var b strings.Builder
	for i, r := range guess {
		mark := feedback.Absent
		if i < len(marks) {
			mark = marks[i]
		}
		b.WriteString(renderTile(r, mark, i == cursor))
	}
	return b.String()
}
