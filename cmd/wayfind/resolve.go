package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wayfind/internal/routes"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] path",
	Short: "Resolve a path against the route table",
	Long: `Resolve matches a path (with optional query string) the way the
browser would and prints the route, panel and decoded values.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type resolvePayload struct {
	Path   string         `json:"path"`
	Route  string         `json:"route"`
	Panel  string         `json:"panel"`
	Params map[string]any `json:"params,omitempty"`
	Query  map[string]any `json:"query,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	table, err := routes.Build(routes.StaticPanels())
	if err != nil {
		return fmt.Errorf("build route table: %w", err)
	}

	m, ok := table.MatchURL(args[0])
	if !ok {
		return fmt.Errorf("no route matches %q", args[0])
	}

	payload := resolvePayload{
		Path:   args[0],
		Route:  m.Route.ID,
		Panel:  m.Route.Panel,
		Params: m.Params,
		Query:  m.Query,
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
		printResolvePretty(cmd, payload)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printResolvePretty(cmd *cobra.Command, p resolvePayload) {
	out := cmd.OutOrStdout()
	heading := color.New(color.FgCyan, color.Bold)
	if !useColor(cmd, os.Stdout) {
		heading.DisableColor()
	}

	fmt.Fprintf(out, "%s %s (panel %s)\n", heading.Sprint("route:"), p.Route, p.Panel)
	printDecoded(cmd, "params", p.Params)
	printDecoded(cmd, "query", p.Query)
}

func printDecoded(cmd *cobra.Command, label string, values map[string]any) {
	if len(values) == 0 {
		return
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:\n", label)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s = %v\n", k, values[k])
	}
}
