package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/radiantjournal/radiant/internal/export"
	"github.com/radiantjournal/radiant/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const passphraseEnv = "RADIANT_PASSPHRASE"

// formatValue is a --format flag restricted to the export formats.
type formatValue export.Format

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	v, err := export.ParseFormat(s)
	if err != nil {
		return err
	}
	*f = formatValue(v)
	return nil
}

func (f *formatValue) Type() string { return "format" }

var (
	exportFormat  = formatValue(export.FormatJSON)
	exportOutput  string
	exportEncrypt bool
	openOutput    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Back up your journal and check-ins",
	Long: `Export everything as JSON (the backup format), a printable HTML page,
or Markdown. Output goes to stdout unless -o is given; when -o names a
directory a timestamped file is created inside it.

With --encrypt the export is sealed with a passphrase (age, ASCII armor).
The passphrase is read from $RADIANT_PASSPHRASE or prompted for.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var exportOpenCmd = &cobra.Command{
	Use:   "open <file>",
	Short: "Decrypt a sealed export",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportOpen,
}

func init() {
	exportCmd.Flags().VarP(&exportFormat, "format", "f", "json, html or md")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "file or directory to write to")
	exportCmd.Flags().BoolVarP(&exportEncrypt, "encrypt", "e", false, "seal the export with a passphrase")

	exportOpenCmd.Flags().StringVarP(&openOutput, "output", "o", "", "write the decrypted export to a file")
	exportCmd.AddCommand(exportOpenCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmdContext(cmd)
	now := clock.Now()
	format := export.Format(exportFormat)
	backup := export.New(s.journal.Load(ctx), s.activity.Load(ctx), now)

	var buf bytes.Buffer
	if err := export.Write(&buf, backup, format); err != nil {
		return fmt.Errorf("rendering export: %w", err)
	}
	data := buf.Bytes()

	if exportEncrypt {
		pass, err := readPassphrase(true)
		if err != nil {
			return err
		}
		if data, err = export.Seal(data, pass); err != nil {
			return fmt.Errorf("encrypting export: %w", err)
		}
	}

	if exportOutput == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	path := exportOutput
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, export.DefaultFilename(now, format, exportEncrypt))
	}
	if err := export.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Info("export written",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Bool("encrypted", exportEncrypt),
		zap.Int("bytes", len(data)),
	)
	ui.Ok(fmt.Sprintf("Exported %s to %s", strings.ToUpper(string(format)), path))
	if exportEncrypt {
		ui.Tip(fmt.Sprintf("`radiant export open %s` to read it back.", path))
	}
	return nil
}

func runExportOpen(_ *cobra.Command, args []string) error {
	sealed, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	pass, err := readPassphrase(false)
	if err != nil {
		return err
	}
	plain, err := export.Open(sealed, pass)
	if err != nil {
		if errors.Is(err, export.ErrWrongPassphrase) {
			return fmt.Errorf("wrong passphrase for %s", args[0])
		}
		return fmt.Errorf("opening %s: %w", args[0], err)
	}

	if b, err := export.ReadJSON(bytes.NewReader(plain)); err == nil {
		logger.Debug("opened backup", zap.String("version", b.Version), zap.String("export_date", b.ExportDate))
	}

	if openOutput == "" {
		_, err := os.Stdout.Write(plain)
		return err
	}
	if err := export.WriteFile(openOutput, plain, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", openOutput, err)
	}
	ui.Ok("Decrypted to " + openOutput)
	return nil
}

// readPassphrase returns the passphrase from $RADIANT_PASSPHRASE or an
// interactive prompt. With confirm set the prompt asks twice.
func readPassphrase(confirm bool) (string, error) {
	if p := os.Getenv(passphraseEnv); p != "" {
		return p, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("passphrase required: set %s or run interactively", passphraseEnv)
	}

	fmt.Fprint(os.Stderr, ui.Muted.Render("  Passphrase: "))
	passBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	passphrase := strings.TrimSpace(string(passBytes))
	if passphrase == "" {
		return "", fmt.Errorf("passphrase can't be empty")
	}

	if confirm {
		fmt.Fprint(os.Stderr, ui.Muted.Render("  Confirm passphrase: "))
		confirmBytes, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase confirmation: %w", err)
		}
		if strings.TrimSpace(string(confirmBytes)) != passphrase {
			return "", fmt.Errorf("passphrases do not match")
		}
	}
	return passphrase, nil
}
