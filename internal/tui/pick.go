package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/radiantjournal/radiant/internal/ui"
)

// Entry is one journal line offered by the picker.
type Entry struct {
	Index  int    // position in the source list
	Text   string // matched and displayed
	Detail string // optional muted suffix
}

// PickOption configures a Pick.
type PickOption func(*Pick)

// WithTitle sets the heading displayed above the list.
func WithTitle(title string) PickOption {
	return func(p *Pick) { p.title = title }
}

// WithHeight caps the number of visible entries (0 = fit the terminal).
func WithHeight(h int) PickOption {
	return func(p *Pick) { p.height = h }
}

// Pick is a filter-as-you-type list for choosing a journal entry.
type Pick struct {
	title  string
	height int

	entries []Entry
	shown   []Entry
	query   string
	cursor  int
	offset  int

	chosen   *Entry
	canceled bool

	termWidth  int
	termHeight int
}

// NewPick returns a Pick over entries.
func NewPick(entries []Entry, opts ...PickOption) *Pick {
	p := &Pick{
		height:     10,
		entries:    entries,
		termWidth:  80,
		termHeight: 24,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.filter()
	return p
}

// PickEntry shows the picker and returns the chosen entry. ok is false when
// the user backed out.
func PickEntry(entries []Entry, opts ...PickOption) (e Entry, ok bool, err error) {
	m, err := tea.NewProgram(NewPick(entries, opts...), tea.WithAltScreen()).Run()
	if err != nil {
		return Entry{}, false, fmt.Errorf("picker: %w", err)
	}
	p := m.(*Pick)
	if p.canceled || p.chosen == nil {
		return Entry{}, false, nil
	}
	return *p.chosen, true, nil
}

// IsTTY reports whether stdin is a terminal the picker can read keys from.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func (p *Pick) Init() tea.Cmd {
	return nil
}

func (p *Pick) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.termWidth, p.termHeight = msg.Width, msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			p.canceled = true
			return p, tea.Quit
		case tea.KeyEnter:
			if len(p.shown) > 0 {
				e := p.shown[p.cursor]
				p.chosen = &e
			}
			return p, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP:
			p.move(-1)
		case tea.KeyDown, tea.KeyCtrlN:
			p.move(1)
		case tea.KeyBackspace:
			if r := []rune(p.query); len(r) > 0 {
				p.query = string(r[:len(r)-1])
				p.filter()
			}
		case tea.KeySpace:
			p.query += " "
			p.filter()
		case tea.KeyRunes:
			p.query += string(msg.Runes)
			p.filter()
		}
	}
	return p, nil
}

func (p *Pick) move(delta int) {
	next := p.cursor + delta
	if next < 0 || next >= len(p.shown) {
		return
	}
	p.cursor = next
	vis := p.visible()
	switch {
	case p.cursor < p.offset:
		p.offset = p.cursor
	case p.cursor >= p.offset+vis:
		p.offset = p.cursor - vis + 1
	}
}

func (p *Pick) View() string {
	var b strings.Builder

	if p.title != "" {
		b.WriteString("  " + ui.Title.Render(p.title) + "\n\n")
	}
	prompt := lipgloss.NewStyle().Foreground(ui.Coral).Bold(true).Render("> ")
	b.WriteString("  " + prompt + p.query + ui.Accent.Render("▎") + "\n\n")

	if len(p.shown) == 0 {
		b.WriteString("  " + ui.Muted.Render("No matches") + "\n")
	}
	end := min(p.offset+p.visible(), len(p.shown))
	for i := p.offset; i < end; i++ {
		b.WriteString(p.renderEntry(p.shown[i], i == p.cursor) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.Muted.Render(fmt.Sprintf("  %d/%d · ↑↓ move · enter choose · esc cancel", len(p.shown), len(p.entries))) + "\n")
	return b.String()
}

func (p *Pick) visible() int {
	h := p.height
	if h <= 0 || h > p.termHeight-6 {
		h = p.termHeight - 6
	}
	return max(h, 3)
}

// filter keeps entries matching the query, best match first. With no query
// the original order is kept.
func (p *Pick) filter() {
	type hit struct {
		e     Entry
		score int
	}
	var hits []hit
	for _, e := range p.entries {
		if ok, score := Match(p.query, e.Text); ok {
			hits = append(hits, hit{e, score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	p.shown = p.shown[:0]
	for _, h := range hits {
		p.shown = append(p.shown, h.e)
	}
	p.cursor, p.offset = 0, 0
}

func (p *Pick) renderEntry(e Entry, selected bool) string {
	pointer := "  "
	text := lipgloss.NewStyle()
	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		text = text.Foreground(ui.Coral).Bold(true)
	}
	num := ui.Muted.Render(fmt.Sprintf("%2d.", e.Index+1))
	line := "  " + pointer + num + " " + text.Render(e.Text)
	if e.Detail != "" {
		line += "  " + ui.Muted.Render(e.Detail)
	}
	return line
}
