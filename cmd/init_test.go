package cmd

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/radiantjournal/radiant/internal/config"
)

func runInitInput(t *testing.T, input string) string {
	t.Helper()
	return captureStdout(t, func() {
		if err := runInitWithReader(context.Background(), bufio.NewReader(strings.NewReader(input))); err != nil {
			t.Errorf("runInitWithReader: %v", err)
		}
	})
}

func TestRunInit_Defaults(t *testing.T) {
	configTestEnv(t)
	t.Setenv("USER", "sam")

	out := runInitInput(t, "\n\n\n")
	if !strings.Contains(out, "All set!") {
		t.Errorf("output = %q", out)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.User.Name != "sam" {
		t.Errorf("Name = %q, want guessed 'sam'", cfg.User.Name)
	}
	if cfg.Notifications.Enabled {
		t.Error("reminders should default to off")
	}
	if got := loadJournal(t).Affirmations; len(got) != 0 {
		t.Errorf("skipping the affirmation prompt still saved %q", got)
	}
}

func TestRunInit_WithReminders(t *testing.T) {
	configTestEnv(t)

	// name, reminders on, valid morning time, bad evening time, affirmation
	runInitInput(t, "Sam\ny\n06:30\n9pm\nI am enough.\n")

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.User.Name != "Sam" || !cfg.Notifications.Enabled {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Notifications.MorningTime != "06:30" {
		t.Errorf("MorningTime = %q", cfg.Notifications.MorningTime)
	}
	if cfg.Notifications.EveningTime != "21:00" {
		t.Errorf("EveningTime = %q, bad input should keep the default", cfg.Notifications.EveningTime)
	}
	if got := loadJournal(t).Affirmations; len(got) != 1 || got[0] != "I am enough." {
		t.Errorf("Affirmations = %q", got)
	}
}

func TestRunInit_RerunKeepsName(t *testing.T) {
	configTestEnv(t)
	runInitInput(t, "Sam\nn\nI am enough.\n")

	// Second run: accept every default. No affirmation prompt appears now.
	out := runInitInput(t, "\n\n")
	if !strings.Contains(out, "(Sam)") {
		t.Errorf("expected saved name as default, got %q", out)
	}
	if strings.Contains(out, "first affirmation") {
		t.Error("affirmation prompt should be skipped once one exists")
	}
}
