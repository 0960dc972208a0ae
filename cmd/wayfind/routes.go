package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wayfind/internal/route"
	"wayfind/internal/routes"
)

var routesCmd = &cobra.Command{
	Use:   "routes [flags]",
	Short: "List every route the browser knows",
	RunE:  runRoutes,
}

func init() {
	routesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type routePayload struct {
	ID       string   `json:"id"`
	Patterns []string `json:"patterns"`
	Panel    string   `json:"panel"`
	Query    []string `json:"query,omitempty"`
}

func runRoutes(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	defs := routes.Definitions()

	switch format {
	case "json":
		payload := make([]routePayload, 0, len(defs))
		for _, def := range defs {
			payload = append(payload, routePayload{
				ID:       def.ID,
				Patterns: def.Patterns,
				Panel:    def.Panel,
				Query:    queryKeys(def),
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
		printRoutesPretty(cmd, defs)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printRoutesPretty(cmd *cobra.Command, defs []*route.Definition) {
	out := cmd.OutOrStdout()
	id := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	if !useColor(cmd, os.Stdout) {
		id.DisableColor()
		dim.DisableColor()
	}

	for _, def := range defs {
		fmt.Fprintf(out, "%-12s %s", id.Sprint(def.ID), strings.Join(def.Patterns, ", "))
		if q := queryKeys(def); len(q) > 0 {
			fmt.Fprintf(out, " %s", dim.Sprintf("?%s", strings.Join(q, "&")))
		}
		fmt.Fprintln(out)
	}
}

// queryKeys lists a route's query parameters, required ones first.
func queryKeys(def *route.Definition) []string {
	required := make([]string, 0, len(def.Query))
	optional := make([]string, 0, len(def.Query))
	for name, p := range def.Query {
		if p.Required {
			required = append(required, name)
		} else {
			optional = append(optional, name)
		}
	}
	sort.Strings(required)
	sort.Strings(optional)
	return append(required, optional...)
}
