// Package streak derives check-in streak metrics from a history of daily
// check-ins. Every function is pure: the reference time is always passed in,
// and all calendar math happens on the caller's local calendar day.
package streak

import (
	"sort"
	"time"
)

// dateLayout is the DateKey format. Fixed width and zero padded, so string
// ordering matches calendar ordering.
const dateLayout = "2006-01-02"

// DateKey is a local calendar date in "YYYY-MM-DD" form.
type DateKey string

// DailyCheckIn is the record of a single day's completed ritual.
type DailyCheckIn struct {
	Date      DateKey `json:"date"`
	Completed bool    `json:"completed"`
	Timestamp int64   `json:"timestamp"` // unix milliseconds
}

// StreakData is the derived summary cached alongside the check-ins.
// CurrentStreak is only trustworthy right after a recompute.
type StreakData struct {
	CurrentStreak   int     `json:"currentStreak"`
	LongestStreak   int     `json:"longestStreak"`
	LastCheckInDate DateKey `json:"lastCheckInDate,omitempty"`
	TotalCheckIns   int     `json:"totalCheckIns"`
}

// UserActivity is the aggregate persisted for the installation.
type UserActivity struct {
	CheckIns   map[DateKey]DailyCheckIn `json:"checkIns"`
	StreakData StreakData               `json:"streakData"`
}

// InitialActivity returns the empty state of a fresh installation.
func InitialActivity() UserActivity {
	return UserActivity{CheckIns: map[DateKey]DailyCheckIn{}}
}

// Clone returns a deep copy so callers can't mutate shared snapshots.
func (a UserActivity) Clone() UserActivity {
	out := UserActivity{
		CheckIns:   make(map[DateKey]DailyCheckIn, len(a.CheckIns)),
		StreakData: a.StreakData,
	}
	for k, v := range a.CheckIns {
		out.CheckIns[k] = v
	}
	return out
}

// Clock supplies the current time. Stateful callers take one so tests can
// move across day boundaries deterministically.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the local wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// KeyFor returns the DateKey of t in t's own location.
func KeyFor(t time.Time) DateKey {
	return DateKey(t.Format(dateLayout))
}

// Today returns the local date key of now.
func Today(now time.Time) DateKey {
	return KeyFor(now)
}

// Yesterday returns the local date key of the calendar day before now.
// The subtraction is done on the date, not on 24h, so DST transitions
// never skip or repeat a day.
func Yesterday(now time.Time) DateKey {
	y, m, d := now.Date()
	return KeyFor(time.Date(y, m, d-1, 0, 0, 0, 0, time.UTC))
}

// ParseKey parses a DateKey into midnight UTC of that date. UTC is used only
// as a neutral container for calendar arithmetic.
func ParseKey(k DateKey) (time.Time, bool) {
	t, err := time.Parse(dateLayout, string(k))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// previousDay returns the key one calendar day before k.
func previousDay(k DateKey) (DateKey, bool) {
	t, ok := ParseKey(k)
	if !ok {
		return "", false
	}
	return KeyFor(t.AddDate(0, 0, -1)), true
}

// HasCompletedToday reports whether activity holds a completed check-in for
// the local date of now.
func HasCompletedToday(activity UserActivity, now time.Time) bool {
	c, ok := activity.CheckIns[Today(now)]
	return ok && c.Completed
}

// completedDatesDesc returns the well-formed completed keys, newest first.
func completedDatesDesc(checkIns map[DateKey]DailyCheckIn) []DateKey {
	dates := make([]DateKey, 0, len(checkIns))
	for k, c := range checkIns {
		if !c.Completed {
			continue
		}
		if _, ok := ParseKey(k); !ok {
			continue
		}
		dates = append(dates, k)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] > dates[j] })
	return dates
}

// ComputeStreak returns the number of consecutive completed days ending at
// the most recent check-in, provided that check-in is today or yesterday.
//
// A check-in yesterday keeps the streak alive until today ends; the streak
// only drops to zero once a whole day has been skipped.
func ComputeStreak(checkIns map[DateKey]DailyCheckIn, now time.Time) int {
	dates := completedDatesDesc(checkIns)
	if len(dates) == 0 {
		return 0
	}

	mostRecent := dates[0]
	if mostRecent != Today(now) && mostRecent != Yesterday(now) {
		return 0
	}

	streak := 0
	expected := mostRecent
	for _, d := range dates {
		if d != expected {
			break
		}
		streak++
		prev, ok := previousDay(expected)
		if !ok {
			break
		}
		expected = prev
	}
	return streak
}
