package streak

import (
	"testing"
	"time"
)

// at returns local noon on the given date.
func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t.Add(12 * time.Hour)
}

func history(dates ...string) map[DateKey]DailyCheckIn {
	m := make(map[DateKey]DailyCheckIn, len(dates))
	for _, d := range dates {
		m[DateKey(d)] = DailyCheckIn{Date: DateKey(d), Completed: true, Timestamp: at(d).UnixMilli()}
	}
	return m
}

func TestToday_UsesLocalDate(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*60*60)
	// 23:30 local on Jun 3 is already Jun 4 in UTC.
	now := time.Date(2025, 6, 3, 23, 30, 0, 0, loc)
	if got := Today(now); got != "2025-06-03" {
		t.Errorf("Today = %q, want 2025-06-03", got)
	}
}

func TestYesterday_Rollover(t *testing.T) {
	tests := []struct {
		now  time.Time
		want DateKey
	}{
		{time.Date(2025, 3, 1, 8, 0, 0, 0, time.Local), "2025-02-28"},
		{time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local), "2024-02-29"},
		{time.Date(2026, 1, 1, 0, 5, 0, 0, time.Local), "2025-12-31"},
		{time.Date(2025, 6, 15, 23, 59, 0, 0, time.Local), "2025-06-14"},
	}
	for _, tt := range tests {
		if got := Yesterday(tt.now); got != tt.want {
			t.Errorf("Yesterday(%s) = %q, want %q", tt.now, got, tt.want)
		}
	}
}

func TestYesterday_AcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 2025-03-09 is a 23h day in New York.
	now := time.Date(2025, 3, 10, 0, 30, 0, 0, ny)
	if got := Yesterday(now); got != "2025-03-09" {
		t.Errorf("Yesterday = %q, want 2025-03-09", got)
	}
}

func TestHasCompletedToday(t *testing.T) {
	now := at("2025-06-03")

	a := InitialActivity()
	if HasCompletedToday(a, now) {
		t.Error("empty activity should not be completed today")
	}

	a.CheckIns["2025-06-03"] = DailyCheckIn{Date: "2025-06-03", Completed: false}
	if HasCompletedToday(a, now) {
		t.Error("record with completed=false must not count")
	}

	a.CheckIns["2025-06-03"] = DailyCheckIn{Date: "2025-06-03", Completed: true}
	if !HasCompletedToday(a, now) {
		t.Error("completed record for today should count")
	}
}

func TestComputeStreak_Empty(t *testing.T) {
	if got := ComputeStreak(nil, at("2025-06-03")); got != 0 {
		t.Errorf("ComputeStreak(nil) = %d, want 0", got)
	}
	if got := ComputeStreak(map[DateKey]DailyCheckIn{}, at("2025-06-03")); got != 0 {
		t.Errorf("ComputeStreak(empty) = %d, want 0", got)
	}
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		now   string
		want  int
	}{
		{"today only", []string{"2025-06-03"}, "2025-06-03", 1},
		{"yesterday only keeps streak alive", []string{"2025-06-02"}, "2025-06-03", 1},
		{"two days, today not required", []string{"2025-06-01", "2025-06-02"}, "2025-06-03", 2},
		{"skipped whole day breaks it", []string{"2025-06-01", "2025-06-02"}, "2025-06-04", 0},
		{"long run broken by inactivity", []string{"2025-05-01", "2025-05-02", "2025-05-03", "2025-05-04"}, "2025-06-03", 0},
		{"run ending today", []string{"2025-06-01", "2025-06-02", "2025-06-03"}, "2025-06-03", 3},
		{"gap before run", []string{"2025-05-28", "2025-05-29", "2025-06-01", "2025-06-02", "2025-06-03"}, "2025-06-03", 3},
		{"across month boundary", []string{"2025-05-30", "2025-05-31", "2025-06-01"}, "2025-06-01", 3},
		{"across year boundary", []string{"2024-12-30", "2024-12-31", "2025-01-01"}, "2025-01-02", 3},
		{"leap day", []string{"2024-02-28", "2024-02-29", "2024-03-01"}, "2024-03-01", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStreak(history(tt.dates...), at(tt.now)); got != tt.want {
				t.Errorf("ComputeStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeStreak_NRunEndingToday(t *testing.T) {
	now := at("2025-06-30")
	for n := 1; n <= 40; n++ {
		checkIns := map[DateKey]DailyCheckIn{}
		for i := 0; i < n; i++ {
			k := KeyFor(now.AddDate(0, 0, -i))
			checkIns[k] = DailyCheckIn{Date: k, Completed: true}
		}
		// Leave a gap, then an older run that must not be counted.
		for i := n + 1; i < n+5; i++ {
			k := KeyFor(now.AddDate(0, 0, -i))
			checkIns[k] = DailyCheckIn{Date: k, Completed: true}
		}
		if got := ComputeStreak(checkIns, now); got != n {
			t.Fatalf("run of %d: ComputeStreak = %d", n, got)
		}
	}
}

func TestComputeStreak_IgnoresIncompleteAndMalformed(t *testing.T) {
	checkIns := history("2025-06-02", "2025-06-03")
	checkIns["2025-06-01"] = DailyCheckIn{Date: "2025-06-01", Completed: false}
	checkIns["2025-05-31"] = DailyCheckIn{Date: "2025-05-31", Completed: true}
	checkIns["not-a-date"] = DailyCheckIn{Date: "not-a-date", Completed: true}

	if got := ComputeStreak(checkIns, at("2025-06-03")); got != 2 {
		t.Errorf("ComputeStreak = %d, want 2", got)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	a := UserActivity{CheckIns: history("2025-06-03")}
	b := a.Clone()
	b.CheckIns["2025-06-04"] = DailyCheckIn{Date: "2025-06-04", Completed: true}
	if _, ok := a.CheckIns["2025-06-04"]; ok {
		t.Error("Clone shares the check-in map with the original")
	}
}
