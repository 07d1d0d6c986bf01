// Package tui provides the Bubble Tea solving assistant.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/wordrank/internal/feedback"
	"github.com/verte-zerg/wordrank/internal/model"
	"github.com/verte-zerg/wordrank/internal/solver"
	"github.com/verte-zerg/wordrank/internal/store"
)

type phase int

const (
	phaseGuess phase = iota
	phaseMarks
)

const maxGridWords = 60

// Model implements the Bubble Tea UI. The user types the guess they played,
// marks each letter with the colors the game showed, and gets the next
// ranked suggestions.
type Model struct {
	config       model.Config
	store        *store.Store
	solver       *solver.Solver
	log          *log.Logger
	wordListPath string

	width  int
	height int

	input     textinput.Model
	phase     phase
	pending   []rune
	marks     feedback.Marks
	cursor    int
	turns     []feedback.Turn
	remaining []int
	result    solver.Result
	status    string
	startedAt time.Time

	games  int
	solved int
}

var (
	correctTile = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#538D4E"))
	presentTile = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#B59F3B"))
	absentTile  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3A3A3C"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	gridStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs the solver UI. st may be nil, in which case finished
// games are not stored.
func NewModel(cfg model.Config, st *store.Store, s *solver.Solver, wordListPath string, logger *log.Logger) *Model {
	input := textinput.New()
	input.Placeholder = "guess"
	input.Prompt = "> "
	if cfg.Length > 0 {
		input.CharLimit = cfg.Length
	}
	input.Focus()

	m := &Model{
		config:       cfg,
		store:        st,
		solver:       s,
		log:          logger,
		wordListPath: wordListPath,
		input:        input,
	}
	m.resetGame()
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlR:
			m.resetGame()
			return m, nil
		}
		if m.phase == phaseMarks {
			m.handleMarkKey(msg)
			return m, nil
		}
		return m.handleGuessKey(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleGuessKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		if best, ok := m.result.Best(); ok {
			m.input.SetValue(best)
			m.input.CursorEnd()
		}
		return m, nil
	case tea.KeyEnter:
		m.submitGuess()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitGuess() {
	guess := strings.ToLower(strings.TrimSpace(m.input.Value()))
	n := utf8.RuneCountInString(guess)
	switch {
	case n == 0:
		m.status = "type a guess first"
		return
	case m.config.Length > 0 && n != m.config.Length:
		m.status = fmt.Sprintf("guess must have %d letters", m.config.Length)
		return
	case !m.solver.ValidGuess(guess):
		m.status = fmt.Sprintf("%q is not in the word list", guess)
		return
	}
	m.status = ""
	m.pending = []rune(guess)
	m.marks = make(feedback.Marks, len(m.pending))
	m.cursor = 0
	m.phase = phaseMarks
	m.input.Blur()
}

func (m *Model) handleMarkKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.commitTurn()
	case tea.KeyLeft:
		m.cursor = max(0, m.cursor-1)
	case tea.KeyRight:
		m.cursor = min(len(m.pending)-1, m.cursor+1)
	case tea.KeySpace:
		m.marks[m.cursor] = (m.marks[m.cursor] + 1) % 3
	case tea.KeyBackspace, tea.KeyDelete:
		if m.cursor > 0 {
			m.cursor--
			return
		}
		m.phase = phaseGuess
		m.input.SetValue(string(m.pending))
		m.input.CursorEnd()
		m.input.Focus()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			marks, err := feedback.ParseMarks(string(r))
			if err != nil {
				m.status = "use g, y or . to mark letters"
				continue
			}
			m.status = ""
			m.marks[m.cursor] = marks[0]
			m.cursor = min(len(m.pending)-1, m.cursor+1)
		}
	}
}

func (m *Model) commitTurn() {
	turn := feedback.Turn{Guess: string(m.pending), Marks: m.marks}
	m.turns = append(m.turns, turn)
	m.result = m.solver.Suggest(m.turns...)
	m.remaining = append(m.remaining, m.result.Candidates.Len())
	m.pending = nil
	m.marks = nil
	m.phase = phaseGuess
	m.input.Reset()
	m.input.Focus()

	switch {
	case turn.Marks.Solved():
		m.finishGame(true)
		m.status = fmt.Sprintf("solved in %d", len(m.turns))
		m.resetBoard()
	case m.config.MaxTurns > 0 && len(m.turns) >= m.config.MaxTurns:
		m.finishGame(false)
		m.status = "out of turns"
		m.resetBoard()
	case m.result.Candidates.Len() == 0:
		m.status = "no words match; check the marks or press ctrl+r"
	}
}

func (m *Model) resetGame() {
	m.status = ""
	m.resetBoard()
}

func (m *Model) resetBoard() {
	m.turns = nil
	m.remaining = nil
	m.pending = nil
	m.marks = nil
	m.cursor = 0
	m.phase = phaseGuess
	m.startedAt = time.Now()
	m.result = m.solver.Suggest()
	m.input.Reset()
	m.input.Focus()
}

func (m *Model) finishGame(solved bool) {
	m.games++
	if solved {
		m.solved++
	}
	if m.store == nil {
		return
	}
	opts := m.solver.Options()
	game := model.GameRecord{
		StartedAt:    m.startedAt,
		EndedAt:      time.Now(),
		Lang:         m.config.Lang,
		WordListPath: m.wordListPath,
		Source:       model.SourceSolve,
		Solved:       solved,
		Turns:        len(m.turns),
		Positional:   opts.Positional,
		Weights:      opts.WeightFrom.String(),
	}
	if solved {
		game.Secret = m.turns[len(m.turns)-1].Guess
	}
	records := make([]model.TurnRecord, 0, len(m.turns))
	for i, t := range m.turns {
		records = append(records, model.TurnRecord{
			Turn:      i + 1,
			Guess:     t.Guess,
			Marks:     t.Marks.String(),
			Remaining: m.remaining[i],
		})
	}
	if _, err := m.store.InsertGame(context.Background(), game, records); err != nil {
		m.log.Error("failed to save game", "err", err)
	}
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	games, err := m.store.ListGames(context.Background(), model.HistoryConfig{Lang: m.config.Lang, Source: model.SourceSolve})
	if err != nil {
		m.log.Error("failed to load game history", "err", err)
		return
	}
	for _, g := range games {
		m.games++
		if g.Solved {
			m.solved++
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{titleStyle.Render("wordrank")}
	for _, t := range m.turns {
		sections = append(sections, renderTiles([]rune(t.Guess), t.Marks, -1))
	}
	if m.phase == phaseMarks {
		sections = append(sections, renderTiles(m.pending, m.marks, m.cursor))
		sections = append(sections, footerStyle.Render("g/y/. mark · space cycle · ←/→ move · enter confirm"))
	} else {
		sections = append(sections, m.input.View())
	}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}

	width := m.width
	if width == 0 {
		width = 80
	}
	contentWidth := max(1, int(float64(width)*0.70))
	words := make([]string, 0, min(len(m.result.Ranked), maxGridWords))
	for _, r := range m.result.Ranked {
		if len(words) == maxGridWords {
			break
		}
		words = append(words, r.Word)
	}
	if len(words) > 0 {
		sections = append(sections, "", gridStyle.Render(layoutGrid(words, contentWidth)))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	footer := m.renderFooter()
	if m.width == 0 || m.height < 3 {
		return content + "\n" + footer
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Candidates %d", m.result.Candidates.Len()),
		fmt.Sprintf("Turn %d", len(m.turns)+1),
	}
	if m.games > 0 {
		segments = append(segments, fmt.Sprintf("Solved %d/%d", m.solved, m.games))
	}
	segments = append(segments, "tab fill · ctrl+r reset · esc quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}
