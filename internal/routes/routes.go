// Package routes declares the client's route table: the fixed mapping
// from URL paths to panels, mirroring the map service's page structure.
package routes

import "wayfind/internal/route"

// Panel identifiers. The set is closed: the route table refuses to build
// against a registry that does not know all of them.
const (
	PanelIndex      = "index"
	PanelSearch     = "search"
	PanelExport     = "export"
	PanelDirections = "directions"
	PanelNewNote    = "new-note"
	PanelNote       = "note"
	PanelChangeset  = "changeset"
	PanelElement    = "element"
	PanelUser       = "user"
)

// PanelIDs returns every panel identifier a full host must register.
func PanelIDs() []string {
	return []string{
		PanelIndex, PanelSearch, PanelExport, PanelDirections,
		PanelNewNote, PanelNote, PanelChangeset, PanelElement, PanelUser,
	}
}

// ElementKinds are the map object kinds addressable by path.
var ElementKinds = []string{"node", "way", "relation"}

// mapQuery is the shared optional "map" parameter: every panel keeps the
// viewport in the URL so links and history restore the same view.
var mapQuery = route.Param{Codec: route.MapCenterCodec{}}

// Definitions returns the route table entries in matching order. Literal
// routes precede capture routes that could shadow them (/note/new before
// /note/:id; the element capture route goes last).
func Definitions() []*route.Definition {
	id := route.Param{Codec: route.IntCodec{Min: 1}, Required: true}
	return []*route.Definition{
		{
			ID:       PanelIndex,
			Patterns: []string{"/"},
			Query:    map[string]route.Param{"map": mapQuery},
			Panel:    PanelIndex,
		},
		{
			ID:       PanelSearch,
			Patterns: []string{"/search"},
			Query: map[string]route.Param{
				"q":    {Codec: route.QueryTextCodec{}, Required: true},
				"bbox": {Codec: route.BBoxCodec{}},
				"page": {Codec: route.IntCodec{Min: 1}},
				"map":  mapQuery,
			},
			Panel: PanelSearch,
		},
		{
			ID:       PanelExport,
			Patterns: []string{"/export"},
			Query: map[string]route.Param{
				"bbox": {Codec: route.BBoxCodec{}},
				"map":  mapQuery,
			},
			Panel: PanelExport,
		},
		{
			ID:       PanelDirections,
			Patterns: []string{"/directions"},
			Query: map[string]route.Param{
				"from": {Codec: route.QueryTextCodec{}},
				"to":   {Codec: route.QueryTextCodec{}},
				"map":  mapQuery,
			},
			Panel: PanelDirections,
		},
		{
			ID:       PanelNewNote,
			Patterns: []string{"/note/new"},
			Query:    map[string]route.Param{"map": mapQuery},
			Panel:    PanelNewNote,
		},
		{
			ID:       PanelNote,
			Patterns: []string{"/note/:id"},
			Params:   map[string]route.Param{"id": id},
			Query:    map[string]route.Param{"map": mapQuery},
			Panel:    PanelNote,
		},
		{
			ID:       PanelChangeset,
			Patterns: []string{"/changeset/:id"},
			Params:   map[string]route.Param{"id": id},
			Query:    map[string]route.Param{"map": mapQuery},
			Panel:    PanelChangeset,
		},
		{
			ID:       PanelUser,
			Patterns: []string{"/user/:name"},
			Params:   map[string]route.Param{"name": {Codec: route.StringCodec{}, Required: true}},
			Panel:    PanelUser,
		},
		{
			ID:       PanelElement,
			Patterns: []string{"/:kind/:id"},
			Params: map[string]route.Param{
				"kind": {Codec: route.EnumCodec{Values: ElementKinds}, Required: true},
				"id":   id,
			},
			Query: map[string]route.Param{"map": mapQuery},
			Panel: PanelElement,
		},
	}
}

// Build compiles the table against the host's panel set.
func Build(panels route.PanelChecker) (*route.Table, error) {
	return route.NewTable(Definitions(), panels)
}

type staticSet map[string]struct{}

func (s staticSet) HasPanel(id string) bool {
	_, ok := s[id]
	return ok
}

// StaticPanels is a checker over the canonical panel set, for hosts that
// inspect the table without mounting real panels (CLI tooling, tests).
func StaticPanels() route.PanelChecker {
	s := make(staticSet, len(PanelIDs()))
	for _, id := range PanelIDs() {
		s[id] = struct{}{}
	}
	return s
}
