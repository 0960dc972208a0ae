package route

import "testing"

type allowAll struct{}

func (allowAll) HasPanel(string) bool { return true }

func noteRoutes(newFirst bool) []*Definition {
	newNote := &Definition{
		ID:       "new-note",
		Patterns: []string{"/note/new"},
		Panel:    "new-note",
	}
	note := &Definition{
		ID:       "note",
		Patterns: []string{"/note/:id"},
		Params:   map[string]Param{"id": {Codec: IntCodec{Min: 1}, Required: true}},
		Panel:    "note",
	}
	if newFirst {
		return []*Definition{newNote, note}
	}
	return []*Definition{note, newNote}
}

func mustTable(t *testing.T, defs []*Definition) *Table {
	t.Helper()
	table, err := NewTable(defs, allowAll{})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestMatchNoteByID(t *testing.T) {
	table := mustTable(t, noteRoutes(true))

	m, ok := table.Match("/note/42", "")
	if !ok {
		t.Fatal("no match for /note/42")
	}
	if m.Route.ID != "note" {
		t.Fatalf("matched %q, want note", m.Route.ID)
	}
	if m.Params["id"].(int64) != 42 {
		t.Fatalf("params = %+v", m.Params)
	}
}

func TestLiteralVsCaptureBothOrderings(t *testing.T) {
	// With /note/new registered first, the literal wins for /note/new.
	table := mustTable(t, noteRoutes(true))
	m, ok := table.Match("/note/new", "")
	if !ok || m.Route.ID != "new-note" {
		t.Fatalf("new-first ordering: got %+v", m)
	}

	// With /note/:id registered first, "new" fails the id codec and falls
	// through, so the literal route still matches.
	table = mustTable(t, noteRoutes(false))
	m, ok = table.Match("/note/new", "")
	if !ok || m.Route.ID != "new-note" {
		t.Fatalf("capture-first ordering: got %+v", m)
	}
	// But a numeric id goes to the capture route in both orderings.
	m, ok = table.Match("/note/42", "")
	if !ok || m.Route.ID != "note" {
		t.Fatalf("capture-first numeric: got %+v", m)
	}
}

func TestFirstMatchWins(t *testing.T) {
	a := &Definition{ID: "a", Patterns: []string{"/about"}, Panel: "a"}
	b := &Definition{ID: "b", Patterns: []string{"/about"}, Panel: "b"}
	table := mustTable(t, []*Definition{a, b})

	m, ok := table.Match("/about", "")
	if !ok || m.Route.ID != "a" {
		t.Fatalf("got %+v, want route a", m)
	}
}

func TestSegmentCountMustMatch(t *testing.T) {
	table := mustTable(t, noteRoutes(true))
	for _, path := range []string{"/note", "/note/42/comments", "/", "/notes/42"} {
		if m, ok := table.Match(path, ""); ok {
			t.Fatalf("Match(%q) = %q, want no match", path, m.Route.ID)
		}
	}
}

func TestTrailingWildcard(t *testing.T) {
	def := &Definition{
		ID:       "docs",
		Patterns: []string{"/docs/*rest"},
		Panel:    "docs",
	}
	table := mustTable(t, []*Definition{def})

	m, ok := table.Match("/docs/help/faq", "")
	if !ok {
		t.Fatal("no match")
	}
	if m.Params["rest"].(string) != "help/faq" {
		t.Fatalf("rest = %v", m.Params["rest"])
	}
}

func TestRequiredQueryFailsSoftly(t *testing.T) {
	search := &Definition{
		ID:       "search",
		Patterns: []string{"/search"},
		Query:    map[string]Param{"q": {Codec: QueryTextCodec{}, Required: true}},
		Panel:    "search",
	}
	fallback := &Definition{ID: "fallback", Patterns: []string{"/search"}, Panel: "fallback"}
	table := mustTable(t, []*Definition{search, fallback})

	m, ok := table.Match("/search", "q=cafe")
	if !ok || m.Route.ID != "search" {
		t.Fatalf("with query: got %+v", m)
	}
	if m.Query["q"].(string) != "cafe" {
		t.Fatalf("query = %+v", m.Query)
	}

	// Missing required q: search falls through, fallback still matches.
	m, ok = table.Match("/search", "")
	if !ok || m.Route.ID != "fallback" {
		t.Fatalf("without query: got %+v", m)
	}
}

func TestOptionalQueryDecodeFailureDropsKey(t *testing.T) {
	def := &Definition{
		ID:       "index",
		Patterns: []string{"/"},
		Query:    map[string]Param{"map": {Codec: MapCenterCodec{}}},
		Panel:    "index",
	}
	table := mustTable(t, []*Definition{def})

	m, ok := table.Match("/", "map=garbage")
	if !ok {
		t.Fatal("no match")
	}
	if _, present := m.Query["map"]; present {
		t.Fatalf("invalid optional key kept: %+v", m.Query)
	}

	m, _ = table.Match("/", "map=15/51.5/-0.1")
	if m.Query["map"].(MapCenter) != (MapCenter{Zoom: 15, Lat: 51.5, Lon: -0.1}) {
		t.Fatalf("query = %+v", m.Query)
	}
}

func TestUnknownQueryKeysIgnored(t *testing.T) {
	table := mustTable(t, noteRoutes(true))
	m, ok := table.Match("/note/7", "utm_source=x")
	if !ok {
		t.Fatal("no match")
	}
	if len(m.Query) != 0 {
		t.Fatalf("query = %+v, want empty", m.Query)
	}
}

func TestBuildPathRoundTrip(t *testing.T) {
	element := &Definition{
		ID:       "element",
		Patterns: []string{"/:kind/:id"},
		Params: map[string]Param{
			"kind": {Codec: EnumCodec{Values: []string{"node", "way", "relation"}}, Required: true},
			"id":   {Codec: IntCodec{Min: 1}, Required: true},
		},
		Query: map[string]Param{"map": {Codec: MapCenterCodec{}}},
		Panel: "element",
	}
	table := mustTable(t, append(noteRoutes(true), element))

	tests := []struct {
		name    string
		routeID string
		params  map[string]any
		query   map[string]any
	}{
		{name: "note", routeID: "note", params: map[string]any{"id": int64(42)}},
		{name: "new note", routeID: "new-note"},
		{
			name:    "element with map",
			routeID: "element",
			params:  map[string]any{"kind": "way", "id": int64(9001)},
			query:   map[string]any{"map": MapCenter{Zoom: 17, Lat: -33.857, Lon: 151.215}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := table.BuildPath(tt.routeID, tt.params, tt.query)
			if err != nil {
				t.Fatalf("BuildPath: %v", err)
			}
			m, ok := table.MatchURL(path)
			if !ok {
				t.Fatalf("MatchURL(%q): no match", path)
			}
			if m.Route.ID != tt.routeID {
				t.Fatalf("MatchURL(%q) = %q, want %q", path, m.Route.ID, tt.routeID)
			}
			for k, v := range tt.params {
				if m.Params[k] != v {
					t.Fatalf("param %q: got %v, want %v", k, m.Params[k], v)
				}
			}
			for k, v := range tt.query {
				if m.Query[k] != v {
					t.Fatalf("query %q: got %v, want %v", k, m.Query[k], v)
				}
			}
		})
	}
}

func TestBuildPathRejectsBadInput(t *testing.T) {
	table := mustTable(t, noteRoutes(true))

	if _, err := table.BuildPath("nope", nil, nil); err == nil {
		t.Fatal("unknown route accepted")
	}
	if _, err := table.BuildPath("note", nil, nil); err == nil {
		t.Fatal("missing parameter accepted")
	}
	if _, err := table.BuildPath("note", map[string]any{"id": int64(0)}, nil); err == nil {
		t.Fatal("out-of-range parameter accepted")
	}
	if _, err := table.BuildPath("note", map[string]any{"id": int64(5)}, map[string]any{"x": 1}); err == nil {
		t.Fatal("unknown query key accepted")
	}
}

func TestTableConstructionErrors(t *testing.T) {
	tests := []struct {
		name string
		defs []*Definition
	}{
		{
			name: "duplicate ID",
			defs: []*Definition{
				{ID: "a", Patterns: []string{"/a"}, Panel: "a"},
				{ID: "a", Patterns: []string{"/b"}, Panel: "a"},
			},
		},
		{
			name: "no patterns",
			defs: []*Definition{{ID: "a", Panel: "a"}},
		},
		{
			name: "capture without schema",
			defs: []*Definition{{ID: "a", Patterns: []string{"/a/:id"}, Panel: "a"}},
		},
		{
			name: "duplicate capture name",
			defs: []*Definition{{
				ID:       "a",
				Patterns: []string{"/a/:id/:id"},
				Params:   map[string]Param{"id": {Codec: IntCodec{Min: 1}}},
				Panel:    "a",
			}},
		},
		{
			name: "wildcard not last",
			defs: []*Definition{{ID: "a", Patterns: []string{"/a/*rest/x"}, Panel: "a"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable(tt.defs, allowAll{}); err == nil {
				t.Fatal("NewTable accepted invalid definitions")
			}
		})
	}
}

type panelSet map[string]struct{}

func (p panelSet) HasPanel(id string) bool {
	_, ok := p[id]
	return ok
}

func TestUnknownPanelIsConstructionError(t *testing.T) {
	defs := []*Definition{{ID: "a", Patterns: []string{"/a"}, Panel: "ghost"}}
	if _, err := NewTable(defs, panelSet{"real": {}}); err == nil {
		t.Fatal("unknown panel accepted at construction")
	}
	if _, err := NewTable(defs, panelSet{"ghost": {}}); err != nil {
		t.Fatalf("known panel rejected: %v", err)
	}
}
