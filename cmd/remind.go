package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/radiantjournal/radiant/internal/remind"
	"github.com/radiantjournal/radiant/internal/ui"
	"github.com/spf13/cobra"
)

var (
	remindAll  bool
	remindJSON bool
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Show the reminders that are due now",
	Long: `Print the daily reminders that are due at this moment: the morning
affirmation, the evening reflection and, while today's check-in is still
open, the 20:00 streak protection nudge.

Meant for cron jobs and shell prompts. Turn reminders on with:
  radiant config set notifications.enabled true`,
	Args: cobra.NoArgs,
	RunE: runRemind,
}

func init() {
	remindCmd.Flags().BoolVarP(&remindAll, "all", "a", false, "show today's whole schedule, not only what is due")
	remindCmd.Flags().BoolVar(&remindJSON, "json", false, "Output as JSON")
}

// remindItem is one reminder in --json output.
type remindItem struct {
	Kind  string `json:"kind"`
	At    string `json:"at"`
	Due   bool   `json:"due"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func runRemind(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmdContext(cmd)
	now := clock.Now()
	settings := remind.FromConfig(s.cfg.Notifications)

	if !settings.Enabled && !remindJSON {
		fmt.Println("  Reminders are off.")
		ui.Tip("`radiant config set notifications.enabled true` to turn them on.")
		return nil
	}

	s.activity.Load(ctx)
	checkedIn := s.activity.HasCheckedInToday()

	var reminders []remind.Reminder
	if remindAll {
		reminders = remind.Schedule(settings, now, checkedIn)
	} else {
		reminders = remind.Plan(settings, now, checkedIn)
	}
	affirmations := s.journal.Load(ctx).Affirmations

	if remindJSON {
		items := make([]remindItem, 0, len(reminders))
		for _, r := range reminders {
			msg := r.Message(affirmations, nil)
			items = append(items, remindItem{
				Kind:  string(r.Kind),
				At:    r.At.Format("15:04"),
				Due:   r.Due,
				Title: msg.Title,
				Body:  msg.Body,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(reminders) == 0 {
		fmt.Println(ui.Muted.Render("  Nothing due right now."))
		return nil
	}

	for _, r := range reminders {
		msg := r.Message(affirmations, nil)
		stamp := ui.Muted.Render(r.At.Format("15:04"))
		if !r.Due {
			fmt.Printf("  %s %s %s\n", stamp, remindIcon(r.Kind), ui.Muted.Render(msg.Title))
			continue
		}
		fmt.Printf("  %s %s %s\n", stamp, remindIcon(r.Kind), ui.Title.Render(msg.Title))
		fmt.Printf("        %s\n", msg.Body)
	}
	return nil
}

func remindIcon(k remind.Kind) string {
	switch k {
	case remind.Morning:
		return ui.IconMorning
	case remind.Evening:
		return ui.IconEvening
	default:
		return ui.IconFire
	}
}
