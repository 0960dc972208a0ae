package route

import (
	"fmt"
	"net/url"
)

// Param binds one path capture or query key to its codec.
type Param struct {
	Codec    Codec
	Required bool
}

// PanelChecker is the closed set of panel identifiers known to the host.
// Table construction cross-checks every definition against it, so a typo'd
// panel reference fails at startup instead of at navigation time.
type PanelChecker interface {
	HasPanel(id string) bool
}

// Definition declares one route: a unique ID, the path patterns that select
// it, the parameter and query schemas, and the panel it drives. Definitions
// are registered once at startup and never mutated.
type Definition struct {
	ID       string
	Patterns []string
	Params   map[string]Param
	Query    map[string]Param
	Panel    string

	compiled []*Pattern
}

// Match is a successful route resolution.
type Match struct {
	Route  *Definition
	Params map[string]any
	Query  map[string]any
}

// Table is the ordered route collection. Matching walks definitions in
// registration order; the first definition with a matching pattern wins.
type Table struct {
	defs []*Definition
	byID map[string]*Definition
}

// NewTable compiles and validates the definitions. Duplicate route IDs,
// malformed patterns and unknown panel identifiers are construction errors.
func NewTable(defs []*Definition, panels PanelChecker) (*Table, error) {
	t := &Table{byID: make(map[string]*Definition, len(defs))}
	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("route with empty ID")
		}
		if _, dup := t.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate route ID %q", def.ID)
		}
		if len(def.Patterns) == 0 {
			return nil, fmt.Errorf("route %q has no patterns", def.ID)
		}
		if panels != nil && !panels.HasPanel(def.Panel) {
			return nil, fmt.Errorf("route %q references unknown panel %q", def.ID, def.Panel)
		}
		def.compiled = def.compiled[:0]
		for _, spec := range def.Patterns {
			p, err := parsePattern(spec, def.Params)
			if err != nil {
				return nil, fmt.Errorf("route %q: %w", def.ID, err)
			}
			def.compiled = append(def.compiled, p)
		}
		t.defs = append(t.defs, def)
		t.byID[def.ID] = def
	}
	return t, nil
}

// Lookup returns the definition registered under id.
func (t *Table) Lookup(id string) (*Definition, bool) {
	def, ok := t.byID[id]
	return def, ok
}

// Definitions returns the routes in registration order.
func (t *Table) Definitions() []*Definition {
	return t.defs
}

// Match resolves a pathname plus raw query string ("a=1&b=2") to the first
// matching route. Capture decode failures and missing or invalid required
// query values make that route fall through to the next one; Match never
// fails hard, it only reports ok=false.
func (t *Table) Match(pathname, rawQuery string) (*Match, bool) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	for _, def := range t.defs {
		for _, pattern := range def.compiled {
			params, ok := pattern.match(pathname)
			if !ok {
				continue
			}
			query, ok := decodeQuery(def.Query, values)
			if !ok {
				// Required query failed for this route; a later route
				// may still accept the path.
				break
			}
			return &Match{Route: def, Params: params, Query: query}, true
		}
	}
	return nil, false
}

// MatchURL resolves a combined "path?query" string.
func (t *Table) MatchURL(pathAndQuery string) (*Match, bool) {
	u, err := url.Parse(pathAndQuery)
	if err != nil {
		return nil, false
	}
	return t.Match(u.Path, u.RawQuery)
}

func decodeQuery(schema map[string]Param, values url.Values) (map[string]any, bool) {
	query := make(map[string]any)
	for key, param := range schema {
		if !values.Has(key) {
			if param.Required {
				return nil, false
			}
			continue
		}
		v, err := param.Codec.Decode(values.Get(key))
		if err != nil {
			if param.Required {
				return nil, false
			}
			// Optional keys that fail to decode are dropped.
			continue
		}
		query[key] = v
	}
	return query, true
}

// BuildPath encodes params and query into a path for the given route, using
// its first pattern. It is the exact inverse of Match for all legal inputs.
func (t *Table) BuildPath(routeID string, params, query map[string]any) (string, error) {
	def, ok := t.byID[routeID]
	if !ok {
		return "", fmt.Errorf("unknown route %q", routeID)
	}
	path, err := def.compiled[0].build(params)
	if err != nil {
		return "", err
	}
	if len(query) == 0 {
		return path, nil
	}
	values := url.Values{}
	for key, v := range query {
		param, ok := def.Query[key]
		if !ok {
			return "", fmt.Errorf("route %q: unknown query key %q", routeID, key)
		}
		raw, err := param.Codec.Encode(v)
		if err != nil {
			return "", fmt.Errorf("route %q: query %q: %w", routeID, key, err)
		}
		values.Set(key, raw)
	}
	return path + "?" + values.Encode(), nil
}
