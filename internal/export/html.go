package export

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/radiantjournal/radiant/internal/streak"
)

var strict = bluemonday.StrictPolicy()

// clean strips any markup from user text. The template escapes the result,
// so entities produced by the policy are decoded first to avoid escaping
// twice.
func clean(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

type goalView struct {
	Label string
	Text  string
}

type boardView struct {
	Title  string
	Images []imageView
}

type imageView struct {
	Label string
	URI   string
}

type pageView struct {
	ExportedOn     string
	Affirmations   []string
	Goals          []goalView
	Traits         []string
	Standards      []string
	Reminders      []string
	MorningRoutine string
	EveningRoutine string
	Boards         []boardView
	Streak         streak.StreakData
	Insight        string
	CheckIns       int
}

func goalsOf(b Backup) []goalView {
	g := b.Journal.Goals
	var out []goalView
	for _, v := range []goalView{
		{"Wealth & Abundance", g.Wealth},
		{"Business & Career", g.Business},
		{"Health & Fitness", g.HealthFitness},
		{"Personal Growth", g.PersonalBehavior},
	} {
		if v.Text != "" {
			out = append(out, v)
		}
	}
	return out
}

func exportDate(b Backup) string {
	t, err := time.Parse(time.RFC3339, b.ExportDate)
	if err != nil {
		return b.ExportDate
	}
	return t.Local().Format("Monday, January 2, 2006")
}

func cleanAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if c := clean(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func newPageView(b Backup) pageView {
	v := pageView{
		ExportedOn:     exportDate(b),
		Affirmations:   cleanAll(b.Journal.Affirmations),
		Traits:         cleanAll(b.Journal.Traits),
		Standards:      cleanAll(b.Journal.Standards),
		Reminders:      cleanAll(b.Journal.DailyReminders),
		MorningRoutine: clean(b.Journal.MorningRoutine),
		EveningRoutine: clean(b.Journal.EveningRoutine),
		Streak:         b.Activity.StreakData,
		Insight:        streak.InsightMessage(b.Activity.StreakData),
		CheckIns:       len(b.Activity.CheckIns),
	}
	for _, g := range goalsOf(b) {
		v.Goals = append(v.Goals, goalView{Label: g.Label, Text: clean(g.Text)})
	}
	for _, bi := range b.Journal.AllVisionImages() {
		if n := len(v.Boards); n == 0 || v.Boards[n-1].Title != bi.Category.Title() {
			v.Boards = append(v.Boards, boardView{Title: bi.Category.Title()})
		}
		last := &v.Boards[len(v.Boards)-1]
		last.Images = append(last.Images, imageView{Label: clean(bi.Label), URI: clean(bi.URI)})
	}
	return v
}

var page = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>My Radiant Journal</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; max-width: 800px; margin: 0 auto; padding: 40px 20px; color: #2D3436; }
    h1 { color: #FF9A76; text-align: center; }
    h2 { color: #FF9A76; border-bottom: 2px solid #FFE5DC; padding-bottom: 6px; }
    .export-date { text-align: center; color: #636E72; }
    .affirmation { background: #FFF5F0; border-left: 4px solid #FF9A76; padding: 12px; margin: 8px 0; font-style: italic; }
    .goal-label { font-weight: 600; }
    .streak { display: flex; gap: 24px; }
  </style>
</head>
<body>
  <h1>✨ My Radiant Journal</h1>
  <p class="export-date">Exported on {{.ExportedOn}}</p>

  <div class="section">
    <h2>🔥 Daily Check-in</h2>
    <div class="streak">
      <div>Current streak: <strong>{{.Streak.CurrentStreak}}</strong></div>
      <div>Longest streak: <strong>{{.Streak.LongestStreak}}</strong></div>
      <div>Total check-ins: <strong>{{.Streak.TotalCheckIns}}</strong></div>
    </div>
    <p>{{.Insight}}</p>
  </div>
{{if .Affirmations}}
  <div class="section">
    <h2>💫 My Affirmations</h2>
    {{range .Affirmations}}<div class="affirmation">{{.}}</div>
    {{end}}
  </div>
{{end}}{{if .Goals}}
  <div class="section">
    <h2>🎯 My Goals</h2>
    {{range .Goals}}<div class="goal"><span class="goal-label">{{.Label}}:</span> {{.Text}}</div>
    {{end}}
  </div>
{{end}}{{if .Traits}}
  <div class="section">
    <h2>🌟 Who I'm Becoming</h2>
    <ul>{{range .Traits}}<li>{{.}}</li>{{end}}</ul>
  </div>
{{end}}{{if .Standards}}
  <div class="section">
    <h2>⚡ My Standards</h2>
    <ul>{{range .Standards}}<li>{{.}}</li>{{end}}</ul>
  </div>
{{end}}{{if .Reminders}}
  <div class="section">
    <h2>🔔 Daily Reminders</h2>
    <ul>{{range .Reminders}}<li>{{.}}</li>{{end}}</ul>
  </div>
{{end}}{{if .MorningRoutine}}
  <div class="section">
    <h2>🌅 Morning Routine</h2>
    <p>{{.MorningRoutine}}</p>
  </div>
{{end}}{{if .EveningRoutine}}
  <div class="section">
    <h2>🌙 Evening Routine</h2>
    <p>{{.EveningRoutine}}</p>
  </div>
{{end}}{{if .Boards}}
  <div class="section">
    <h2>🖼️ Vision Boards</h2>
    {{range .Boards}}<h3>{{.Title}}</h3>
    <ul>{{range .Images}}<li>{{if .Label}}{{.Label}}: {{end}}{{.URI}}</li>{{end}}</ul>
    {{end}}
  </div>
{{end}}
</body>
</html>
`))

// WriteHTML renders b as a standalone printable HTML page. User text is
// stripped of markup and then escaped.
func WriteHTML(w io.Writer, b Backup) error {
	if err := page.Execute(w, newPageView(b)); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}
