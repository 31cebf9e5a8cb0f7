package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/radiantjournal/radiant/internal/version"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		short   bool
		wantOut string
	}{
		{"default version output", false, "radiant " + version.Get().String()},
		{"short flag version output", true, version.Version},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			versionShort = tt.short
			t.Cleanup(func() { versionShort = false })

			out := captureStdout(t, func() {
				if err := runVersion(nil, nil); err != nil {
					t.Errorf("runVersion: %v", err)
				}
			})
			if !strings.HasPrefix(out, tt.wantOut) {
				t.Errorf("output = %q, want prefix %q", out, tt.wantOut)
			}
		})
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	versionJSON = true
	t.Cleanup(func() { versionJSON = false })

	out := captureStdout(t, func() {
		if err := runVersion(nil, nil); err != nil {
			t.Errorf("runVersion: %v", err)
		}
	})

	var info version.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if info != version.Get() {
		t.Errorf("info = %+v, want %+v", info, version.Get())
	}
}
