package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/radiantjournal/radiant/internal/activity"
	"github.com/radiantjournal/radiant/internal/config"
	"github.com/radiantjournal/radiant/internal/journal"
	"github.com/radiantjournal/radiant/internal/store"
	"github.com/radiantjournal/radiant/internal/ui"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check your radiant setup for problems",
	Long:  `Run a suite of health checks and report what's working (and what isn't).`,
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

// checkResult holds the outcome of a single health check.
type checkResult struct {
	name    string
	ok      bool
	detail  string
	fixHint string
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ctx := cmdContext(cmd)
	cfg, _ := config.Load()

	results := []checkResult{
		checkConfig(),
		checkStore(),
		checkDocument(ctx, "Check-ins", activity.Namespace),
		checkDocument(ctx, "Journal", journal.Namespace),
		checkReminders(cfg),
		checkLog(),
	}

	fmt.Println()

	allPassed := true
	for _, r := range results {
		printCheck(r)
		if !r.ok {
			allPassed = false
		}
	}

	fmt.Println()

	if !allPassed {
		return fmt.Errorf("one or more checks failed, see suggestions above")
	}
	return nil
}

func printCheck(r checkResult) {
	label := fmt.Sprintf("%-16s", r.name)
	if r.ok {
		icon := ui.Success.Render(ui.IconOk)
		fmt.Printf("  %s %s %s\n", icon, ui.KeyStyle.Render(label), ui.Muted.Render(r.detail))
	} else {
		icon := ui.Error.Render(ui.IconError)
		fmt.Printf("  %s %s %s\n", icon, ui.KeyStyle.Render(label), r.detail)
		if r.fixHint != "" {
			fmt.Printf("  %s %s %s\n", "  ", "                ", ui.Muted.Render(ui.IconArrow+" "+r.fixHint))
		}
	}
}

func checkConfig() checkResult {
	if !config.Initialized() {
		return checkResult{
			name:    "Config",
			ok:      false,
			detail:  "config file not found",
			fixHint: fmt.Sprintf("Run %s to create it", ui.Accent.Render("radiant init")),
		}
	}
	paths := config.GetPaths()
	_, err := config.Load()
	if err != nil {
		return checkResult{
			name:    "Config",
			ok:      false,
			detail:  fmt.Sprintf("parse error: %v", err),
			fixHint: fmt.Sprintf("Check %s for syntax errors", paths.ConfigFile),
		}
	}
	return checkResult{
		name:   "Config",
		ok:     true,
		detail: paths.ConfigFile + " found and valid",
	}
}

func checkStore() checkResult {
	db, err := store.Open()
	if err != nil {
		return checkResult{
			name:    "Store",
			ok:      false,
			detail:  fmt.Sprintf("cannot open database: %v", err),
			fixHint: "Check available disk space and permissions on " + config.GetPaths().DBFile,
		}
	}
	db.Close()
	return checkResult{
		name:   "Store",
		ok:     true,
		detail: "SQLite database opens and responds",
	}
}

// checkDocument reports a stored document that would be discarded on load.
func checkDocument(ctx context.Context, name, namespace string) checkResult {
	db, err := store.Open()
	if err != nil {
		return checkResult{name: name, ok: false, detail: "store unavailable"}
	}
	defer db.Close()

	data, found, err := db.KV().Load(ctx, namespace)
	switch {
	case err != nil:
		return checkResult{name: name, ok: false, detail: fmt.Sprintf("read error: %v", err)}
	case !found:
		return checkResult{name: name, ok: true, detail: "nothing stored yet"}
	case !json.Valid(data):
		return checkResult{
			name:    name,
			ok:      false,
			detail:  "stored data is corrupt and will be ignored",
			fixHint: fmt.Sprintf("Back up %s, then run %s", config.GetPaths().DBFile, ui.Accent.Render("radiant reset")),
		}
	}
	return checkResult{name: name, ok: true, detail: fmt.Sprintf("%d bytes, valid", len(data))}
}

func checkReminders(cfg *config.Config) checkResult {
	if cfg == nil || !cfg.Notifications.Enabled {
		return checkResult{name: "Reminders", ok: true, detail: "off"}
	}
	n := cfg.Notifications
	for _, t := range []string{n.MorningTime, n.EveningTime} {
		if err := config.ValidateClock(t); err != nil {
			return checkResult{
				name:    "Reminders",
				ok:      false,
				detail:  err.Error(),
				fixHint: fmt.Sprintf("Fix it with %s", ui.Accent.Render("radiant config set notifications.<morning|evening>_time HH:MM")),
			}
		}
	}
	return checkResult{name: "Reminders", ok: true, detail: fmt.Sprintf("morning %s, evening %s", n.MorningTime, n.EveningTime)}
}

func checkLog() checkResult {
	path := config.GetPaths().LogFile
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return checkResult{name: "Log", ok: false, detail: fmt.Sprintf("cannot create %s: %v", filepath.Dir(path), err)}
	}
	return checkResult{name: "Log", ok: true, detail: path}
}
