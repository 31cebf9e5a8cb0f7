package export

import (
	"fmt"
	"strings"

	"github.com/radiantjournal/radiant/internal/streak"
)

func mdList(sb *strings.Builder, title string, items []string, numbered bool) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", title)
	for i, it := range items {
		if numbered {
			fmt.Fprintf(sb, "%d. %s\n", i+1, it)
		} else {
			fmt.Fprintf(sb, "- %s\n", it)
		}
	}
	sb.WriteString("\n")
}

// Markdown renders b as a markdown document.
func Markdown(b Backup) string {
	var sb strings.Builder
	j := b.Journal
	sd := b.Activity.StreakData

	sb.WriteString("# ✨ My Radiant Journal\n\n")
	fmt.Fprintf(&sb, "_Exported on %s_\n\n", exportDate(b))

	sb.WriteString("## 🔥 Daily Check-in\n\n")
	fmt.Fprintf(&sb, "| Current | Longest | Total |\n|---|---|---|\n| %d | %d | %d |\n\n",
		sd.CurrentStreak, sd.LongestStreak, sd.TotalCheckIns)
	fmt.Fprintf(&sb, "> %s\n\n", streak.InsightMessage(sd))

	mdList(&sb, "💫 My Affirmations", j.Affirmations, true)

	if goals := goalsOf(b); len(goals) > 0 {
		sb.WriteString("## 🎯 My Goals\n\n")
		for _, g := range goals {
			fmt.Fprintf(&sb, "- **%s:** %s\n", g.Label, g.Text)
		}
		sb.WriteString("\n")
	}

	mdList(&sb, "🌟 Who I'm Becoming", j.Traits, false)
	mdList(&sb, "⚡ My Standards", j.Standards, false)
	mdList(&sb, "🔔 Daily Reminders", j.DailyReminders, false)

	if j.MorningRoutine != "" {
		fmt.Fprintf(&sb, "## 🌅 Morning Routine\n\n%s\n\n", j.MorningRoutine)
	}
	if j.EveningRoutine != "" {
		fmt.Fprintf(&sb, "## 🌙 Evening Routine\n\n%s\n\n", j.EveningRoutine)
	}

	if imgs := j.AllVisionImages(); len(imgs) > 0 {
		sb.WriteString("## 🖼️ Vision Boards\n\n")
		for _, img := range imgs {
			label := img.Label
			if label == "" {
				label = img.URI
			}
			fmt.Fprintf(&sb, "- **%s** %s (`%s`)\n", img.Category.Title(), label, img.ID[:min(8, len(img.ID))])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
