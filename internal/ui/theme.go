package ui

import "github.com/charmbracelet/lipgloss"

// radiant's palette: sunrise coral and peach over warm neutrals.
var (
	Coral    = lipgloss.Color("#FF9A76")
	Peach    = lipgloss.Color("#FFC09F")
	Sunrise  = lipgloss.Color("#FFD166")
	Blush    = lipgloss.Color("#FFE5DC")
	Sage     = lipgloss.Color("#06D6A0")
	Rose     = lipgloss.Color("#EF476F")
	Lavender = lipgloss.Color("#A29BFE")
	Ink      = lipgloss.Color("#2D3436")
	Dim      = lipgloss.Color("#636E72")
	Bright   = lipgloss.Color("#FFFFFF")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Coral)

	Subtitle = lipgloss.NewStyle().
			Foreground(Peach)

	Success = lipgloss.NewStyle().
		Foreground(Sage)

	Error = lipgloss.NewStyle().
		Foreground(Rose)

	Warning = lipgloss.NewStyle().
		Foreground(Sunrise)

	Info = lipgloss.NewStyle().
		Foreground(Lavender)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Coral).
		Bold(true)

	Quote = lipgloss.NewStyle().
		Italic(true).
		Foreground(Peach)

	Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Coral).
		Padding(0, 1)

	Tag = lipgloss.NewStyle().
		Foreground(Ink).
		Background(Peach).
		Padding(0, 1).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Peach).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

const (
	IconSun      = "✨ "
	IconFire     = "🔥"
	IconTrophy   = "🏆"
	IconCalendar = "📅"
	IconHeart    = "💫"
	IconTarget   = "🎯"
	IconStar     = "🌟"
	IconBolt     = "⚡"
	IconMorning  = "🌅"
	IconEvening  = "🌙"
	IconBell     = "🔔"
	IconImage    = "🖼️"
	IconLock     = "🔑"
	IconWarn     = "⚠️ "
	IconError    = "✗ "
	IconOk       = "✓ "
	IconArrow    = "→"
	IconDot      = "·"
)
