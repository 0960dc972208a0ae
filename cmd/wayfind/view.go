package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"wayfind/internal/viewer"
)

var viewCmd = &cobra.Command{
	Use:   "view [flags] [path]",
	Short: "Open the interactive map browser",
	Long: `View starts the full-screen browser. The optional path argument
overrides the configured start location, e.g. "wayfind view /note/42".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().String("server", "", "override the configured server URL")
}

func runView(cmd *cobra.Command, args []string) (err error) {
	// Panel code runs inside the tea program; a panic there should land as a
	// command error after the terminal is restored, not as a raw stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("viewer panicked: %v", r)
		}
	}()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	server, err := cmd.Flags().GetString("server")
	if err != nil {
		return fmt.Errorf("failed to get server flag: %w", err)
	}
	if server != "" {
		cfg.Server.URL = server
	}
	if len(args) == 1 {
		cfg.UI.StartPath = args[0]
	}

	if !isTerminal(os.Stdout) {
		return fmt.Errorf("view needs an interactive terminal")
	}

	app, err := viewer.New(cfg)
	if err != nil {
		return fmt.Errorf("start viewer: %w", err)
	}
	program := tea.NewProgram(app, tea.WithOutput(os.Stdout), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
