// Package widget builds the small at-a-glance summary that status bars and
// home-screen widgets display.
package widget

import (
	"math/rand/v2"
	"time"

	"github.com/radiantjournal/radiant/internal/journal"
	"github.com/radiantjournal/radiant/internal/streak"
)

const (
	// NoAffirmations is shown until the user adds one.
	NoAffirmations = "Add your first affirmation to see it here!"
	// Unavailable is shown when the data could not be read.
	Unavailable = "Open Radiant to see your affirmation"
)

// Snapshot is the widget payload.
type Snapshot struct {
	Affirmation       string `json:"affirmation"`
	CurrentStreak     int    `json:"currentStreak"`
	HasCheckedInToday bool   `json:"hasCheckedInToday"`
	LastUpdate        int64  `json:"lastUpdate"` // unix milliseconds
}

// Build derives a snapshot from loaded data. Today is the local date of now.
func Build(j journal.Data, a streak.UserActivity, now time.Time, rng *rand.Rand) Snapshot {
	aff := j.RandomAffirmation(rng)
	if aff == "" {
		aff = NoAffirmations
	}
	return Snapshot{
		Affirmation:       aff,
		CurrentStreak:     streak.ComputeStreak(a.CheckIns, now),
		HasCheckedInToday: streak.HasCompletedToday(a, now),
		LastUpdate:        now.UnixMilli(),
	}
}

// Fallback is the snapshot used when loading failed.
func Fallback(now time.Time) Snapshot {
	return Snapshot{Affirmation: Unavailable, LastUpdate: now.UnixMilli()}
}
