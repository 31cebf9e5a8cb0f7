// Package export renders a full backup of the journal and check-in history
// as JSON, HTML or markdown, and optionally seals it with a passphrase.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/radiantjournal/radiant/internal/journal"
	"github.com/radiantjournal/radiant/internal/streak"
)

// FormatVersion is written into every backup.
const FormatVersion = "1.0"

// Backup is the exported document.
type Backup struct {
	Version    string              `json:"version"`
	ExportDate string              `json:"exportDate"`
	Journal    journal.Data        `json:"journalData"`
	Activity   streak.UserActivity `json:"activity"`
}

// New assembles a backup taken at now.
func New(j journal.Data, a streak.UserActivity, now time.Time) Backup {
	return Backup{
		Version:    FormatVersion,
		ExportDate: now.UTC().Format(time.RFC3339),
		Journal:    j,
		Activity:   a,
	}
}

// Format is an output format name.
type Format string

const (
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatHTML, FormatMarkdown}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q (use json, html, or md)", s)
}

// Write renders b in format f.
func Write(w io.Writer, b Backup, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, b)
	case FormatHTML:
		return WriteHTML(w, b)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(b))
		return err
	}
	return fmt.Errorf("unknown format %q", f)
}

// WriteJSON writes b as indented JSON.
func WriteJSON(w io.Writer, b Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	return nil
}

// ReadJSON parses a JSON backup.
func ReadJSON(r io.Reader) (Backup, error) {
	var b Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Backup{}, fmt.Errorf("decoding backup: %w", err)
	}
	if b.Version == "" {
		return Backup{}, fmt.Errorf("decoding backup: missing version")
	}
	return b, nil
}

// DefaultFilename names a backup file for the given time and format.
func DefaultFilename(now time.Time, f Format, sealed bool) string {
	name := fmt.Sprintf("radiant-backup-%d.%s", now.UnixMilli(), f)
	if sealed {
		name += ".age"
	}
	return name
}

// WriteFile writes data to path atomically: a temp file in the same
// directory is synced and then renamed over the target.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".radiant-export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if err := os.Chmod(tmpName, perm); err != nil {
		tmp.Close()
		return fmt.Errorf("setting temp file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing export: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("fsyncing export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("committing export file: %w", err)
	}

	success = true
	return nil
}
