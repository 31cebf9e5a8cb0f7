package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/radiantjournal/radiant/internal/streak"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// configTestEnv points every XDG directory and the database at a temp dir.
func configTestEnv(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_CACHE_HOME", tmpDir+"/cache")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")
	for _, k := range []string{"RADIANT_DB", "RADIANT_LOG_LEVEL", "RADIANT_NOTIFICATIONS", passphraseEnv} {
		t.Setenv(k, "") // restored on cleanup
		os.Unsetenv(k)
	}
}

// setNow pins the command clock for the rest of the test.
func setNow(t *testing.T, now time.Time) {
	t.Helper()
	old := clock
	clock = streak.ClockFunc(func() time.Time { return now })
	t.Cleanup(func() { clock = old })
}

// day returns local time on 2025-06-<d> at hh:mm.
func day(d, hh, mm int) time.Time {
	return time.Date(2025, 6, d, hh, mm, 0, 0, time.Local)
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = old
		r.Close()
	}()

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.Bytes()
	}()

	fn()

	w.Close()
	return string(<-done)
}
