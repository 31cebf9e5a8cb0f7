package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/radiantjournal/radiant/internal/ui"
	"github.com/spf13/cobra"
)

var (
	resetActivity bool
	resetJournal  bool
	resetAll      bool
	resetYes      bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase check-ins, the journal, or both",
	Long: `Permanently delete stored data. Pick what to erase:

  --activity  check-in history and streaks
  --journal   affirmations, goals, traits and vision boards
  --all       both

Consider ` + "`radiant export -o <dir>`" + ` first.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetActivity, "activity", false, "erase check-in history")
	resetCmd.Flags().BoolVar(&resetJournal, "journal", false, "erase the journal")
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "erase everything")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "don't ask for confirmation")
}

func runReset(cmd *cobra.Command, _ []string) error {
	return runResetWithReader(cmdContext(cmd), bufio.NewReader(os.Stdin))
}

func runResetWithReader(ctx context.Context, reader *bufio.Reader) error {
	activity, journal := resetActivity || resetAll, resetJournal || resetAll
	if !activity && !journal {
		return fmt.Errorf("nothing to reset: pass --activity, --journal or --all")
	}

	var what []string
	if activity {
		what = append(what, "check-in history")
	}
	if journal {
		what = append(what, "journal")
	}
	target := strings.Join(what, " and ")

	if !resetYes {
		ui.Warn(fmt.Sprintf("This permanently deletes your %s.", target))
		answer := prompt(reader, "  Type 'reset' to confirm:", "")
		if answer != "reset" {
			fmt.Println(ui.Muted.Render("  Cancelled."))
			return nil
		}
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if activity {
		if err := s.activity.Clear(ctx); err != nil {
			return err
		}
	}
	if journal {
		if err := s.journal.Clear(ctx); err != nil {
			return err
		}
	}

	ui.Ok(fmt.Sprintf("Erased your %s.", target))
	return nil
}
