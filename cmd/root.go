package cmd

import (
	"fmt"
	"os"

	"github.com/radiantjournal/radiant/internal/config"
	"github.com/radiantjournal/radiant/internal/logging"
	"github.com/radiantjournal/radiant/internal/streak"
	"github.com/radiantjournal/radiant/internal/tips"
	"github.com/radiantjournal/radiant/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	verbose bool

	// logger is replaced by the root pre-run hook. Commands invoked directly
	// in tests keep the no-op logger.
	logger   = zap.NewNop()
	closeLog = func() {}

	// clock is the time source for every date decision made by a command.
	clock streak.Clock = streak.SystemClock
)

var rootCmd = &cobra.Command{
	Use:               "radiant",
	Short:             "Daily affirmations, goals and check-in streaks",
	Long:              `radiant - show up for yourself every day, and watch the streak grow.`,
	RunE:              runDashboard,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeLog()
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		closeLog()
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(dashCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(tipsCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging builds the file logger from config before any command runs.
// A broken config is not fatal here; the command itself reports it.
func setupLogging(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	logger, closeLog = logging.New(logging.Options{
		Path:    config.GetPaths().LogFile,
		Config:  cfg.Log,
		Verbose: verbose,
	})
	if err != nil {
		logger.Warn("config unreadable, using defaults", zap.Error(err))
	}

	fields := []zap.Field{zap.String("command", cmd.CommandPath())}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			fields = append(fields, zap.String("flag."+f.Name, f.Value.String()))
		}
	})
	logger.Debug("command start", fields...)
	return nil
}

// runDashboard shows the at-a-glance status when you just type `radiant`.
func runDashboard(cmd *cobra.Command, _ []string) error {
	now := clock.Now()

	if !config.Initialized() {
		fmt.Println(ui.Greet("", now.Hour()))
		fmt.Println()
		fmt.Println("  Looks like this is your first time. Let's set things up!")
		fmt.Println()
		fmt.Printf("  Run %s to get started.\n", ui.Accent.Render("radiant init"))
		fmt.Println()
		return nil
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmdContext(cmd)
	a := s.activity.Load(ctx)
	j := s.journal.Load(ctx)

	fmt.Println(ui.Greet(s.cfg.User.Name, now.Hour()))
	fmt.Println()

	if s.activity.HasCheckedInToday() {
		ui.Kv(ui.IconOk+"Today", ui.Success.Render("checked in"))
	} else {
		ui.Kv(ui.IconDot+" Today", ui.Warning.Render("not checked in yet"))
	}
	ui.Kv(ui.IconFire+" Streak", ui.StreakBadge(a.StreakData.CurrentStreak))
	ui.Kv(ui.IconTrophy+" Longest", ui.Days(a.StreakData.LongestStreak))
	ui.Kv(ui.IconCalendar+" Month", streak.MonthlyCompletionRate(a.CheckIns, now))
	if aff := j.RandomAffirmation(nil); aff != "" {
		fmt.Println()
		fmt.Println("  " + ui.Quote.Render(aff))
	}

	fmt.Println()
	if s.activity.NeedsReminder() {
		ui.Tip("`radiant checkin` to keep your streak going.")
	} else {
		ui.Tip(tips.Daily(now))
	}
	fmt.Println()
	return nil
}
