package cmd

import (
	"fmt"

	"github.com/radiantjournal/radiant/internal/tui"
	"github.com/radiantjournal/radiant/internal/ui"
	"github.com/spf13/cobra"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the interactive dashboard",
	Long: `Opens the full TUI dashboard with your streak, today's affirmation and
this month's progress.

Keyboard shortcuts:
  c / Enter  Check in for today
  r          Refresh
  q / Ctrl+C Quit`,
	Args: cobra.NoArgs,
	RunE: runDash,
}

func runDash(cmd *cobra.Command, _ []string) error {
	if !ui.IsStdoutTTY() {
		return fmt.Errorf("the dashboard needs a terminal; try %s", ui.Accent.Render("radiant streak"))
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	return tui.RunDash(cmdContext(cmd), tui.DashDeps{
		Activity: s.activity,
		Journal:  s.journal,
		Clock:    clock,
		Name:     s.cfg.User.Name,
	})
}
