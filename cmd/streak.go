package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/radiantjournal/radiant/internal/streak"
	"github.com/radiantjournal/radiant/internal/ui"
	"github.com/spf13/cobra"
)

var streakDays int

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your check-in streak",
	Args:  cobra.NoArgs,
	RunE:  runStreak,
}

func init() {
	streakCmd.Flags().IntVarP(&streakDays, "days", "d", 14, "days of history to show")
}

func runStreak(cmd *cobra.Command, _ []string) error {
	if streakDays < 0 {
		return fmt.Errorf("--days must not be negative")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	a := s.activity.Load(cmdContext(cmd))
	now := clock.Now()
	sd := a.StreakData

	ui.Header(ui.IconFire + " Your streak")
	ui.Kv("Current", ui.StreakBadge(sd.CurrentStreak))
	ui.Kv("Longest", ui.Days(sd.LongestStreak))
	ui.Kv("Total", fmt.Sprintf("%d check-ins", sd.TotalCheckIns))
	if c, ok := a.CheckIns[sd.LastCheckInDate]; ok && c.Completed {
		ui.Kv("Last", streak.DescribeCheckIn(c, now))
	}
	if next := streak.NextMilestone(sd.CurrentStreak); next > 0 {
		ui.Kv("Next", fmt.Sprintf("%d-day milestone, %s to go", next, ui.Days(next-sd.CurrentStreak)))
	}

	done, total := streak.CompletedInMonth(a.CheckIns, now), streak.DaysInMonth(now)
	ui.Kv("This month", ui.ProgressBar(done, total, 20)+" "+streak.MonthlyCompletionRate(a.CheckIns, now))

	if streakDays > 0 {
		fmt.Println()
		fmt.Println("  " + historyStrip(a.CheckIns, now, streakDays))
	}

	fmt.Println()
	fmt.Println("  " + ui.Quote.Render(streak.InsightMessage(sd)))
	if !streak.HasCompletedToday(a, now) {
		ui.Tip("`radiant checkin` to mark today.")
	}
	fmt.Println()
	return nil
}

// historyStrip renders the last n days oldest first, one cell per day.
func historyStrip(checkIns map[streak.DateKey]streak.DailyCheckIn, now time.Time, n int) string {
	cells := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		k := streak.KeyFor(now.AddDate(0, 0, -i))
		if c, ok := checkIns[k]; ok && c.Completed {
			cells = append(cells, ui.Accent.Render("●"))
		} else {
			cells = append(cells, ui.Muted.Render("○"))
		}
	}
	return strings.Join(cells, " ")
}
