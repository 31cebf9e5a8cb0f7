package cmd

import (
	"fmt"

	"github.com/radiantjournal/radiant/internal/tips"
	"github.com/radiantjournal/radiant/internal/ui"
	"github.com/spf13/cobra"
)

var tipsShowAll bool

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Discover what radiant can do",
	Long:  `Show a tip of the day, or every tip with --all.`,
	Args:  cobra.NoArgs,
	RunE:  runTips,
}

func init() {
	tipsCmd.Flags().BoolVarP(&tipsShowAll, "all", "a", false, "List all tips")
}

func runTips(_ *cobra.Command, _ []string) error {
	if tipsShowAll {
		fmt.Println()
		fmt.Println(ui.Title.Render("  radiant tips"))
		fmt.Println()
		for _, tip := range tips.All() {
			fmt.Printf("  %s %s\n", ui.Accent.Render("✦"), ui.Muted.Render(tip))
		}
		fmt.Println()
		return nil
	}

	ui.Tip(tips.Daily(clock.Now()))
	fmt.Println()
	fmt.Printf("  %s\n", ui.Muted.Render("Run `radiant tips --all` to see all tips."))
	fmt.Println()
	return nil
}
