package cmd

import (
	"errors"
	"fmt"

	"github.com/radiantjournal/radiant/internal/activity"
	"github.com/radiantjournal/radiant/internal/streak"
	"github.com/radiantjournal/radiant/internal/ui"
	"github.com/spf13/cobra"
)

var checkinCmd = &cobra.Command{
	Use:     "checkin",
	Aliases: []string{"ci", "done"},
	Short:   "Check in for today",
	Long:    `Record today's check-in and extend your streak. Checking in twice on the same day is harmless.`,
	Args:    cobra.NoArgs,
	RunE:    runCheckIn,
}

func runCheckIn(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmdContext(cmd)
	s.activity.Load(ctx)
	if s.activity.HasCheckedInToday() {
		a := s.activity.Activity()
		ui.Ok("You've already checked in today.")
		if c, ok := a.CheckIns[streak.Today(clock.Now())]; ok {
			ui.Kv(ui.IconCalendar+" Checked in", streak.DescribeCheckIn(c, clock.Now()))
		}
		ui.Kv(ui.IconFire+" Streak", ui.StreakBadge(a.StreakData.CurrentStreak))
		fmt.Println()
		return nil
	}

	a, err := s.activity.CheckIn(ctx)
	if err != nil && !errors.Is(err, activity.ErrSaveFailed) {
		return fmt.Errorf("checking in: %w", err)
	}

	title, body := streak.CelebrationMessage(a.StreakData.CurrentStreak)
	icon := ui.IconOk
	if streak.IsMilestone(a.StreakData.CurrentStreak) {
		icon = ui.IconTrophy + " "
	}
	fmt.Println(ui.Title.Render(icon + title))
	fmt.Println("  " + body)
	fmt.Println()
	ui.Kv(ui.IconFire+" Streak", ui.StreakBadge(a.StreakData.CurrentStreak))
	ui.Kv(ui.IconTrophy+" Longest", ui.Days(a.StreakData.LongestStreak))
	ui.Kv(ui.IconCalendar+" Month", streak.MonthlyCompletionRate(a.CheckIns, clock.Now()))
	fmt.Println()
	fmt.Println("  " + ui.Quote.Render(streak.InsightMessage(a.StreakData)))
	fmt.Println()

	if err != nil {
		ui.Warn("Checked in, but it couldn't be saved. Your check-in may not be backed up.")
		return fmt.Errorf("saving check-in: %w", err)
	}
	return nil
}
