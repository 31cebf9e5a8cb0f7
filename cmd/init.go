package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/radiantjournal/radiant/internal/config"
	"github.com/radiantjournal/radiant/internal/journal"
	"github.com/radiantjournal/radiant/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up radiant for the first time",
	Long:  `Initialize radiant with your preferences. Creates config and data directories.`,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	return runInitWithReader(cmdContext(cmd), bufio.NewReader(os.Stdin))
}

func runInitWithReader(ctx context.Context, reader *bufio.Reader) error {
	fmt.Println(ui.Title.Render(ui.IconSun + "Welcome to radiant!"))
	fmt.Println()
	ui.Inf("A few quick questions and you're ready for your first check-in.")
	fmt.Println()

	// Start from the existing file so re-running init keeps other settings.
	cfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	defaultName := cfg.User.Name
	if defaultName == "" {
		defaultName = guessName()
	}
	cfg.User.Name = prompt(reader, "  What should I call you?", defaultName)
	fmt.Println()

	fmt.Println(ui.Subtitle.Render("  Daily reminders (optional)"))
	fmt.Println(ui.Muted.Render("  radiant remind lists the reminders that are due, for cron or your shell prompt."))
	fmt.Println()

	def := "n"
	if cfg.Notifications.Enabled {
		def = "y"
	}
	enabled := confirm(prompt(reader, "  Turn on daily reminders? (y/n)", def))
	cfg.Notifications.Enabled = enabled

	if enabled {
		cfg.Notifications.MorningTime = promptClock(reader, "  Morning affirmation at?", cfg.Notifications.MorningTime)
		cfg.Notifications.EveningTime = promptClock(reader, "  Evening reflection at?", cfg.Notifications.EveningTime)
	}
	fmt.Println()

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	j := s.journal.Load(ctx)
	if len(j.Affirmations) == 0 {
		aff := prompt(reader, "  Your first affirmation? (Enter to skip)", "")
		if aff != "" {
			if _, err := s.journal.Update(ctx, func(d *journal.Data) error {
				return d.AddAffirmation(aff)
			}); err != nil {
				return fmt.Errorf("saving affirmation: %w", err)
			}
		}
		fmt.Println()
	}

	paths := config.GetPaths()
	ui.Ok("All set!")
	ui.Kv("Config", paths.ConfigFile)
	ui.Kv("Data", paths.DBFile)
	fmt.Println()
	fmt.Printf("  Run %s to start your streak.\n", ui.Accent.Render("radiant checkin"))
	fmt.Println()
	return nil
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s %s ", question, ui.Muted.Render(fmt.Sprintf("(%s)", defaultVal)))
	} else {
		fmt.Printf("%s ", question)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

// confirm reads a y/n style answer; anything unrecognized is a no.
func confirm(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	b, err := config.ParseBoolValue(answer)
	if err != nil {
		ui.Warn(fmt.Sprintf("Didn't understand %q, taking that as a no.", answer))
		return false
	}
	return b
}

// promptClock asks for an HH:MM time and keeps the default on bad input.
func promptClock(reader *bufio.Reader, question, defaultVal string) string {
	v := prompt(reader, question, defaultVal)
	if err := config.ValidateClock(v); err != nil {
		ui.Warn(fmt.Sprintf("%v, keeping %s", err, defaultVal))
		return defaultVal
	}
	return v
}

func guessName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return ""
}
