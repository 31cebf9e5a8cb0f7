package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/radiantjournal/radiant/internal/version"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print radiant version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func runVersion(_ *cobra.Command, _ []string) error {
	info := version.Get()
	switch {
	case versionJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case versionShort:
		fmt.Println(info.Version)
	default:
		fmt.Printf("radiant %s\n", info)
		fmt.Printf("  %s %s\n", info.GoVersion, info.Platform)
	}
	return nil
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output as JSON")
}
