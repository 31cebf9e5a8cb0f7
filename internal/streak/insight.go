package streak

import (
	"fmt"
	"strings"
	"time"
)

// milestones are the streak lengths that get a celebration.
var milestones = []int{5, 10, 30, 50, 100, 365}

// Milestones returns the celebration thresholds in ascending order.
func Milestones() []int {
	out := make([]int, len(milestones))
	copy(out, milestones)
	return out
}

// IsMilestone reports whether n is exactly a celebration threshold.
// Crossing a threshold isn't enough; the alert fires once, on the day itself.
func IsMilestone(n int) bool {
	for _, m := range milestones {
		if n == m {
			return true
		}
	}
	return false
}

// NextMilestone returns the smallest milestone strictly greater than n,
// or 0 once the last one is passed.
func NextMilestone(n int) int {
	for _, m := range milestones {
		if m > n {
			return m
		}
	}
	return 0
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CompletedInMonth counts completed check-ins in the local month of now.
func CompletedInMonth(checkIns map[DateKey]DailyCheckIn, now time.Time) int {
	prefix := now.Format("2006-01") + "-"
	n := 0
	for k, c := range checkIns {
		if !c.Completed || !strings.HasPrefix(string(k), prefix) {
			continue
		}
		if _, ok := ParseKey(k); ok {
			n++
		}
	}
	return n
}

// MonthlyCompletionRate formats the current month's completion as
// "<completed>/<days> days this month".
func MonthlyCompletionRate(checkIns map[DateKey]DailyCheckIn, now time.Time) string {
	return fmt.Sprintf("%d/%d days this month", CompletedInMonth(checkIns, now), DaysInMonth(now))
}

// InsightMessage picks an encouragement line for the given streak summary.
// The first matching rule wins.
func InsightMessage(d StreakData) string {
	cur, longest, total := d.CurrentStreak, d.LongestStreak, d.TotalCheckIns

	switch {
	case cur == 0 && total == 0:
		return "Start your journey today!"
	case cur == 0 && total > 0:
		return "Don't break the chain! Start a new streak today."
	case cur == longest && cur > 1:
		return fmt.Sprintf("New record! Your longest streak is %d days!", longest)
	case cur >= 30:
		return fmt.Sprintf("Incredible! %d days in a row!", cur)
	case cur >= 10:
		return fmt.Sprintf("You're on fire! %d days in a row!", cur)
	case cur >= 5:
		return fmt.Sprintf("Keep it up! %d days strong!", cur)
	case cur >= 3:
		return fmt.Sprintf("Great momentum! %d days in a row!", cur)
	default:
		return fmt.Sprintf("%d day streak - keep going!", cur)
	}
}

// CelebrationMessage returns the title and body shown right after a
// successful check-in, given the recomputed streak.
func CelebrationMessage(streak int) (title, body string) {
	if IsMilestone(streak) {
		return "Milestone Achieved!",
			fmt.Sprintf("Congratulations! You've reached a %d-day streak! Keep up the amazing work!", streak)
	}
	unit := "days"
	if streak == 1 {
		unit = "day"
	}
	return "Check-in Complete!", fmt.Sprintf("Great job! Your streak is now %d %s!", streak, unit)
}

// FormatCheckInTime renders a unix-millisecond timestamp as "9:14 AM" in loc.
func FormatCheckInTime(ms int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc).Format("3:04 PM")
}

// DescribeCheckIn renders a check-in relative to now, e.g. "Today at 9:14 AM".
func DescribeCheckIn(c DailyCheckIn, now time.Time) string {
	clock := FormatCheckInTime(c.Timestamp, now.Location())
	switch c.Date {
	case Today(now):
		return "Today at " + clock
	case Yesterday(now):
		return "Yesterday at " + clock
	}
	if t, ok := ParseKey(c.Date); ok {
		return t.Format("Jan 2") + " at " + clock
	}
	return string(c.Date)
}
