// Package remind decides which daily reminders are due and what they say.
// It does not schedule or deliver anything.
package remind

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/radiantjournal/radiant/internal/config"
)

// StreakProtectionTime is when the "don't break your streak" reminder fires.
const StreakProtectionTime = "20:00"

// Kind identifies a reminder.
type Kind string

const (
	Morning          Kind = "morning"
	Evening          Kind = "evening"
	StreakProtection Kind = "streak-protection"
)

// Settings controls which reminders exist and when.
type Settings struct {
	Enabled          bool
	MorningEnabled   bool
	EveningEnabled   bool
	StreakProtection bool
	MorningTime      string // "HH:MM"
	EveningTime      string // "HH:MM"
}

// FromConfig builds Settings from the [notifications] config section.
func FromConfig(c config.NotificationConfig) Settings {
	return Settings{
		Enabled:          c.Enabled,
		MorningEnabled:   c.MorningEnabled,
		EveningEnabled:   c.EveningEnabled,
		StreakProtection: c.StreakProtection,
		MorningTime:      c.MorningTime,
		EveningTime:      c.EveningTime,
	}
}

// Reminder is one reminder slot for a given day.
type Reminder struct {
	Kind Kind
	At   time.Time
	// Due is true once At has passed.
	Due bool
}

// ParseClock parses a 24-hour "HH:MM" time.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, 0, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	return t.Hour(), t.Minute(), nil
}

func atClock(now time.Time, clock string) (time.Time, bool) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, false
	}
	y, mo, d := now.Date()
	return time.Date(y, mo, d, h, m, 0, 0, now.Location()), true
}

// Schedule returns today's reminder slots in time order. Slots with an
// unparsable time are left out. The streak-protection slot only appears
// when today's check-in is still outstanding.
func Schedule(s Settings, now time.Time, checkedInToday bool) []Reminder {
	if !s.Enabled {
		return nil
	}
	var out []Reminder
	add := func(kind Kind, clock string) {
		at, ok := atClock(now, clock)
		if !ok {
			return
		}
		out = append(out, Reminder{Kind: kind, At: at, Due: !now.Before(at)})
	}
	if s.MorningEnabled {
		add(Morning, s.MorningTime)
	}
	if s.EveningEnabled {
		add(Evening, s.EveningTime)
	}
	if s.StreakProtection && !checkedInToday {
		add(StreakProtection, StreakProtectionTime)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// Plan returns the reminders that are due now.
func Plan(s Settings, now time.Time, checkedInToday bool) []Reminder {
	var due []Reminder
	for _, r := range Schedule(s, now, checkedInToday) {
		if r.Due {
			due = append(due, r)
		}
	}
	return due
}

// Message is a reminder's title and body.
type Message struct {
	Title string
	Body  string
}

var morningTitles = []string{
	"Good morning! ✨",
	"Rise and shine! 🌅",
	"Start your day with gratitude",
	"A new day, a new opportunity",
}

var eveningMessages = []Message{
	{"Time to reflect 🌙", "How did your day go? Take a moment to practice gratitude."},
	{"Evening check-in ✨", "End your day on a positive note. What are you grateful for?"},
	{"Gratitude time 🙏", "Reflect on three good things that happened today."},
}

func pick(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}

// MorningMessage greets the user, quoting a random affirmation if any.
func MorningMessage(affirmations []string, rng *rand.Rand) Message {
	title := morningTitles[pick(rng, len(morningTitles))]
	if len(affirmations) > 0 {
		a := affirmations[pick(rng, len(affirmations))]
		return Message{Title: title, Body: fmt.Sprintf("\"%s\" - Begin your day with this affirmation.", a)}
	}
	return Message{Title: title, Body: "Take a moment to reflect on what you're grateful for today."}
}

// EveningMessage returns one of the reflection prompts.
func EveningMessage(rng *rand.Rand) Message {
	return eveningMessages[pick(rng, len(eveningMessages))]
}

func StreakProtectionMessage() Message {
	return Message{
		Title: "Don't break your streak! 🔥",
		Body:  "You haven't checked in today. Keep your momentum going!",
	}
}

// Message returns the content for r.
func (r Reminder) Message(affirmations []string, rng *rand.Rand) Message {
	switch r.Kind {
	case Morning:
		return MorningMessage(affirmations, rng)
	case Evening:
		return EveningMessage(rng)
	default:
		return StreakProtectionMessage()
	}
}
