package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/radiantjournal/radiant/internal/activity"
	"github.com/radiantjournal/radiant/internal/journal"
	"github.com/radiantjournal/radiant/internal/streak"
	"github.com/radiantjournal/radiant/internal/ui"
)

// DashDeps are the collaborators the dashboard reads from and writes to.
type DashDeps struct {
	Activity *activity.Store
	Journal  *journal.Store
	Clock    streak.Clock
	Name     string
}

// DashData holds all loaded panel data for the dashboard.
type DashData struct {
	Activity    streak.UserActivity
	CheckedIn   bool
	Affirmation string
	Insight     string
	MonthDone   int
	MonthDays   int
	MonthRate   string
	Next        int // next milestone, 0 when all are reached
	Hour        int
}

type dashDataMsg DashData

type checkInMsg struct {
	activity streak.UserActivity
	err      error
}

// DashModel is the Bubbletea model for the radiant dashboard.
type DashModel struct {
	ctx  context.Context
	deps DashDeps
	rng  *rand.Rand

	data       DashData
	width      int
	height     int
	loading    bool
	checkingIn bool
	notice     string // celebration or warning after a check-in
	noticeErr  bool
}

// NewDashModel creates a DashModel. Data is loaded by Init.
func NewDashModel(ctx context.Context, deps DashDeps) *DashModel {
	if deps.Clock == nil {
		deps.Clock = streak.SystemClock
	}
	return &DashModel{
		ctx:     ctx,
		deps:    deps,
		width:   80,
		height:  24,
		loading: true,
	}
}

// RunDash runs the dashboard until the user quits.
func RunDash(ctx context.Context, deps DashDeps) error {
	prog := tea.NewProgram(NewDashModel(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

func (m *DashModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashDataMsg:
		m.data = DashData(msg)
		m.loading = false
		return m, nil

	case checkInMsg:
		m.checkingIn = false
		switch {
		case errors.Is(msg.err, activity.ErrCheckInInProgress):
			return m, nil
		case errors.Is(msg.err, activity.ErrSaveFailed):
			m.notice = "Checked in, but it couldn't be saved. Your check-in may not be backed up."
			m.noticeErr = true
		case msg.err != nil:
			m.notice = msg.err.Error()
			m.noticeErr = true
			return m, nil
		default:
			title, body := streak.CelebrationMessage(msg.activity.StreakData.CurrentStreak)
			m.notice = title + " " + body
			m.noticeErr = false
		}
		// The returned state holds the check-in even when it wasn't saved, so
		// reloading from storage here would drop it.
		d := dashDataFor(msg.activity, m.now())
		d.Affirmation = m.data.Affirmation
		m.data = d
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *DashModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "c", "enter":
		if m.loading || m.checkingIn || m.data.CheckedIn {
			return m, nil
		}
		m.checkingIn = true
		return m, m.checkIn()
	case "r":
		m.loading = true
		m.notice = ""
		return m, m.loadData()
	}
	return m, nil
}

func (m *DashModel) View() string {
	if m.loading {
		return "\n  " + ui.Muted.Render("Loading…") + "\n"
	}
	switch {
	case m.width < 60:
		return m.renderMinimal()
	case m.width >= 120:
		return m.renderTwoColumn()
	default:
		return m.renderStacked()
	}
}

func (m *DashModel) header() string {
	return "  " + ui.Title.Render(ui.Greet(m.deps.Name, m.data.Hour))
}

func (m *DashModel) noticeLine() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return "  " + ui.Warning.Render(ui.IconWarn+m.notice)
	}
	return "  " + ui.Success.Render(m.notice)
}

func (m *DashModel) renderTwoColumn() string {
	leftW := m.width/2 - 2
	rightW := m.width - leftW - 4

	left := lipgloss.NewStyle().Width(leftW).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			renderCheckInPanel(m.data, m.checkingIn),
			"",
			renderStreakPanel(m.data),
		),
	)
	right := lipgloss.NewStyle().Width(rightW).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			renderAffirmationPanel(m.data.Affirmation, rightW),
			"",
			renderMonthPanel(m.data, rightW),
		),
	)

	parts := []string{m.header(), "", lipgloss.JoinHorizontal(lipgloss.Top, left, right)}
	if n := m.noticeLine(); n != "" {
		parts = append(parts, "", n)
	}
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n\n" + renderHelpBar(m.data.CheckedIn) + "\n"
}

func (m *DashModel) renderStacked() string {
	w := m.width - 4
	parts := []string{
		m.header(),
		"",
		renderCheckInPanel(m.data, m.checkingIn),
		"",
		renderStreakPanel(m.data),
		"",
		renderAffirmationPanel(m.data.Affirmation, w),
		"",
		renderMonthPanel(m.data, w),
	}
	if n := m.noticeLine(); n != "" {
		parts = append(parts, "", n)
	}
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n\n" + renderHelpBar(m.data.CheckedIn) + "\n"
}

func (m *DashModel) renderMinimal() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + ui.Title.Render(ui.IconSun+"radiant") + "\n\n")
	b.WriteString("  " + ui.StreakBadge(m.data.Activity.StreakData.CurrentStreak) + "\n")
	if m.data.CheckedIn {
		b.WriteString("  " + ui.Success.Render(ui.IconOk+"checked in") + "\n")
	} else {
		b.WriteString("  " + ui.Warning.Render("not checked in yet") + "\n")
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", ui.IconCalendar, m.data.MonthRate))
	if n := m.noticeLine(); n != "" {
		b.WriteString(n + "\n")
	}
	b.WriteString("\n  " + ui.Muted.Render("c check in · r refresh · q quit") + "\n")
	return b.String()
}

// Panel renderers are pure functions of the loaded data.

func renderCheckInPanel(d DashData, busy bool) string {
	var b strings.Builder
	b.WriteString("  " + ui.Title.Render(ui.IconCalendar+" Today") + "\n\n")
	switch {
	case busy:
		b.WriteString("  " + ui.Muted.Render("Checking in…") + "\n")
	case d.CheckedIn:
		when := ""
		if c, ok := d.Activity.CheckIns[d.Activity.StreakData.LastCheckInDate]; ok && c.Timestamp > 0 {
			when = " at " + streak.FormatCheckInTime(c.Timestamp, nil)
		}
		b.WriteString("  " + ui.Success.Render(ui.IconOk+"Checked in"+when) + "\n")
	default:
		b.WriteString("  " + ui.Warning.Render("Not checked in yet.") + ui.Muted.Render(" Press c to check in.") + "\n")
	}
	return b.String()
}

func renderStreakPanel(d DashData) string {
	sd := d.Activity.StreakData
	var b strings.Builder
	b.WriteString("  " + ui.Title.Render(ui.IconFire+" Streak") + "\n\n")
	b.WriteString("  " + ui.StreakBadge(sd.CurrentStreak) + "\n")
	b.WriteString(fmt.Sprintf("  %s Longest: %s\n", ui.IconTrophy, ui.Days(sd.LongestStreak)))
	b.WriteString(fmt.Sprintf("  %s Total check-ins: %d\n", ui.IconDot, sd.TotalCheckIns))
	if d.Next > 0 {
		b.WriteString("  " + ui.Muted.Render(fmt.Sprintf("%s to the %d-day milestone", ui.Days(d.Next-sd.CurrentStreak), d.Next)) + "\n")
	}
	b.WriteString("\n  " + ui.Subtitle.Render(d.Insight) + "\n")
	return b.String()
}

func renderAffirmationPanel(aff string, width int) string {
	var b strings.Builder
	b.WriteString("  " + ui.Title.Render(ui.IconHeart+" Affirmation") + "\n\n")
	if aff == "" {
		b.WriteString("  " + ui.Muted.Render("Add one with: radiant journal affirm add \"...\"") + "\n")
		return b.String()
	}
	w := width - 4
	if w < 20 {
		w = 20
	}
	b.WriteString(lipgloss.NewStyle().Width(w).PaddingLeft(2).Render(ui.Quote.Render("\""+aff+"\"")) + "\n")
	return b.String()
}

func renderMonthPanel(d DashData, width int) string {
	var b strings.Builder
	b.WriteString("  " + ui.Title.Render(ui.IconStar+" This Month") + "\n\n")
	barW := width - 6
	if barW > 31 {
		barW = 31
	}
	if bar := ui.ProgressBar(d.MonthDone, d.MonthDays, barW); bar != "" {
		b.WriteString("  " + bar + "\n")
	}
	b.WriteString("  " + d.MonthRate + "\n")
	return b.String()
}

func renderHelpBar(checkedIn bool) string {
	if checkedIn {
		return ui.Muted.Render("  r refresh · q quit")
	}
	return ui.Muted.Render("  c check in · r refresh · q quit")
}

// Commands

func (m *DashModel) loadData() tea.Cmd {
	deps, ctx, rng := m.deps, m.ctx, m.rng
	return func() tea.Msg {
		d := dashDataFor(deps.Activity.Refresh(ctx), deps.Clock.Now())
		if deps.Journal != nil {
			j := deps.Journal.Load(ctx)
			d.Affirmation = j.RandomAffirmation(rng)
		}
		return dashDataMsg(d)
	}
}

// dashDataFor derives the panel data for a as of now. The affirmation is
// left for the caller.
func dashDataFor(a streak.UserActivity, now time.Time) DashData {
	return DashData{
		Activity:  a,
		CheckedIn: streak.HasCompletedToday(a, now),
		Insight:   streak.InsightMessage(a.StreakData),
		MonthDone: streak.CompletedInMonth(a.CheckIns, now),
		MonthRate: streak.MonthlyCompletionRate(a.CheckIns, now),
		Next:      streak.NextMilestone(a.StreakData.CurrentStreak),
		MonthDays: streak.DaysInMonth(now),
		Hour:      now.Hour(),
	}
}

func (m *DashModel) now() time.Time {
	if m.deps.Clock == nil {
		return streak.SystemClock.Now()
	}
	return m.deps.Clock.Now()
}

func (m *DashModel) checkIn() tea.Cmd {
	store, ctx := m.deps.Activity, m.ctx
	return func() tea.Msg {
		a, err := store.CheckIn(ctx)
		return checkInMsg{activity: a, err: err}
	}
}
