package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/radiantjournal/radiant/internal/widget"
)

func TestGatherStatus_EmptyDB(t *testing.T) {
	configTestEnv(t)
	setNow(t, day(3, 9, 0))

	data := gatherStatus(nil)
	if data.CurrentStreak != 0 || data.HasCheckedInToday {
		t.Errorf("unexpected status for empty store: %+v", data)
	}
	if data.Affirmation != widget.NoAffirmations {
		t.Errorf("Affirmation = %q, want %q", data.Affirmation, widget.NoAffirmations)
	}
	if data.LastUpdate != day(3, 9, 0).UnixMilli() {
		t.Errorf("LastUpdate = %d", data.LastUpdate)
	}
}

func TestGatherStatus_AfterCheckIn(t *testing.T) {
	configTestEnv(t)

	checkInAt(t, 2, 9)
	checkInAt(t, 3, 9)
	if err := runTextListAdd(nil, textLists[0], "I am steady."); err != nil {
		t.Fatal(err)
	}

	data := gatherStatus(nil)
	if data.CurrentStreak != 2 || !data.HasCheckedInToday {
		t.Errorf("status = %+v, want streak 2 checked in", data)
	}
	if data.Affirmation != "I am steady." {
		t.Errorf("Affirmation = %q", data.Affirmation)
	}
}

func TestRunStatus_JSON(t *testing.T) {
	configTestEnv(t)
	checkInAt(t, 3, 9)

	statusJSON = true
	t.Cleanup(func() { statusJSON = false })

	out := captureStdout(t, func() {
		if err := runStatus(nil, nil); err != nil {
			t.Errorf("runStatus: %v", err)
		}
	})

	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	for _, key := range []string{"affirmation", "currentStreak", "hasCheckedInToday", "lastUpdate"} {
		if _, ok := got[key]; !ok {
			t.Errorf("JSON missing %q: %s", key, out)
		}
	}
	if got["currentStreak"] != float64(1) {
		t.Errorf("currentStreak = %v, want 1", got["currentStreak"])
	}
}

func TestRunStatus_HumanReadable(t *testing.T) {
	configTestEnv(t)
	setNow(t, day(3, 9, 0))

	out := captureStdout(t, func() {
		if err := runStatus(nil, nil); err != nil {
			t.Errorf("runStatus: %v", err)
		}
	})
	if !strings.Contains(out, "Streak: 0") || !strings.Contains(out, "not checked in") {
		t.Errorf("output = %q", out)
	}
}

func TestFormatPromptSegment(t *testing.T) {
	tests := []struct {
		name string
		in   widget.Snapshot
		want string
	}{
		{"fresh", widget.Snapshot{}, "[0!]"},
		{"open day", widget.Snapshot{CurrentStreak: 4}, "[4!]"},
		{"done today", widget.Snapshot{CurrentStreak: 5, HasCheckedInToday: true}, "[5]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPromptSegment(tt.in); got != tt.want {
				t.Errorf("formatPromptSegment = %q, want %q", got, tt.want)
			}
		})
	}
}
