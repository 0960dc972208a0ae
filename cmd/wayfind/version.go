package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wayfind/internal/version"
)

var versionAsJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the wayfind version",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionAsJSON, "json", false, "print version info as JSON")
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func runVersion(cmd *cobra.Command, args []string) error {
	payload := versionPayload{
		Tool:      "wayfind",
		Version:   strings.TrimSpace(version.Semver),
		Commit:    strings.TrimSpace(version.Commit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
	out := cmd.OutOrStdout()

	if versionAsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	rendered := payload.Version
	if useColor(cmd, os.Stdout) {
		rendered = version.Colored()
	}
	fmt.Fprintf(out, "wayfind %s\n", rendered)
	if payload.Commit != "" {
		fmt.Fprintf(out, "commit: %s\n", payload.Commit)
	}
	if payload.BuildDate != "" {
		fmt.Fprintf(out, "built:  %s\n", payload.BuildDate)
	}
	return nil
}
