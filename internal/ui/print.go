package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func Puts(s string) {
	fmt.Println(s)
}

func Putsf(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Warn prints a warning message.
func Warn(msg string) {
	fmt.Println(Warning.Render(IconWarn + msg))
}

// Err prints an error message to stderr.
func Err(msg string) {
	fmt.Fprintln(os.Stderr, Error.Bold(true).Render(IconError+msg))
}

// Ok prints a success message.
func Ok(msg string) {
	fmt.Println(Success.Render(IconOk + msg))
}

// Inf prints an info message.
func Inf(msg string) {
	fmt.Println(Info.Render("  " + msg))
}

// Header prints a section header.
func Header(s string) {
	fmt.Println()
	fmt.Println(Title.Render(s))
	fmt.Println(Muted.Render(strings.Repeat("─", lipgloss.Width(s)+2)))
}

// Tip prints a helpful tip.
func Tip(msg string) {
	fmt.Println()
	fmt.Println(Muted.Render("  tip: " + msg))
}

// Kv prints a key-value pair, padded.
func Kv(key string, value string) {
	k := KeyStyle.Render(fmt.Sprintf("  %-14s", key))
	v := ValueStyle.Render(value)
	fmt.Printf("%s %s\n", k, v)
}

// Greet returns the greeting for name at the given hour of the day.
func Greet(name string, hour int) string {
	part := "Good evening"
	switch {
	case hour < 12:
		part = "Good morning"
	case hour < 18:
		part = "Good afternoon"
	}
	if name == "" {
		return IconSun + part + "!"
	}
	return fmt.Sprintf("%s%s, %s!", IconSun, part, name)
}

// Days formats n with a singular or plural unit.
func Days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// StreakBadge renders the current streak, e.g. "🔥 12 days".
func StreakBadge(current int) string {
	if current == 0 {
		return Muted.Render("no active streak")
	}
	return Accent.Render(IconFire + " " + Days(current))
}

// ProgressBar renders done/total as a fixed-width bar.
func ProgressBar(done, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	return Accent.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}
