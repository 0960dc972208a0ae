package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wayfind/internal/config"
	"wayfind/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "wayfind",
	Short: "Terminal map browser",
	Long:  `Wayfind browses notes, changesets and map elements from the terminal`,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to a wayfind.toml config file")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
}

// main initializes the CLI by setting the command version, registering subcommands, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	rootCmd.Version = version.Semver

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config named by --config, or the defaults when the
// flag is unset.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// useColor resolves the --color persistent flag against the given stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	flag, _ := cmd.Root().PersistentFlags().GetString("color")
	return flag == "on" || (flag == "auto" && isTerminal(f))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
