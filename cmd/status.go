package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/radiantjournal/radiant/internal/widget"
	"github.com/spf13/cobra"
)

var statusJSON bool
var statusPrompt bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show radiant status (for widgets and prompt integration)",
	Long:  `Output the widget snapshot as JSON or a compact prompt segment.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
	statusCmd.Flags().BoolVar(&statusPrompt, "prompt", false, "Output compact prompt segment")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	data := gatherStatus(cmd)

	if statusPrompt {
		fmt.Print(formatPromptSegment(data))
		return nil
	}

	if statusJSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(data)
	}

	fmt.Printf("Streak: %d\n", data.CurrentStreak)
	if data.HasCheckedInToday {
		fmt.Println("Today: checked in")
	} else {
		fmt.Println("Today: not checked in")
	}
	fmt.Printf("Affirmation: %s\n", data.Affirmation)
	return nil
}

// gatherStatus never fails: status output feeds prompts and widgets, so a
// broken store degrades to the fallback snapshot.
func gatherStatus(cmd *cobra.Command) widget.Snapshot {
	now := clock.Now()

	s, err := openSession()
	if err != nil {
		logger.Sugar().Warnw("status unavailable", "error", err)
		return widget.Fallback(now)
	}
	defer s.Close()

	ctx := cmdContext(cmd)
	return widget.Build(s.journal.Load(ctx), s.activity.Load(ctx), now, nil)
}

// formatPromptSegment renders "[streak]", with a trailing ! while today is
// still open.
func formatPromptSegment(data widget.Snapshot) string {
	seg := fmt.Sprintf("%d", data.CurrentStreak)
	if !data.HasCheckedInToday {
		seg += "!"
	}
	return "[" + seg + "]"
}
