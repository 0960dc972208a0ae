package route

import (
	"fmt"
	"strings"
)

// segment is one element of a parsed path pattern: either a literal that
// must match exactly, or a named capture decoded by its codec.
type segment struct {
	literal string
	capture string
	codec   Codec
}

// Pattern is a parsed path pattern such as "/note/:id" or "/trace/:id/*rest".
// Captures bind to codecs from the owning definition's parameter schema.
type Pattern struct {
	spec     string
	segments []segment
	wildcard string // capture name for a trailing "/*name", or ""
}

// parsePattern compiles spec against the parameter schema. Every capture
// must name a schema entry and names must be unique within the pattern.
func parsePattern(spec string, params map[string]Param) (*Pattern, error) {
	if spec == "" || spec[0] != '/' {
		return nil, fmt.Errorf("pattern %q must start with '/'", spec)
	}
	p := &Pattern{spec: spec}
	if spec == "/" {
		return p, nil
	}
	seen := make(map[string]struct{})
	parts := strings.Split(strings.TrimPrefix(spec, "/"), "/")
	for i, part := range parts {
		switch {
		case strings.HasPrefix(part, "*"):
			name := part[1:]
			if name == "" {
				return nil, fmt.Errorf("pattern %q: wildcard needs a name", spec)
			}
			if i != len(parts)-1 {
				return nil, fmt.Errorf("pattern %q: wildcard must be the last segment", spec)
			}
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("pattern %q: duplicate capture %q", spec, name)
			}
			p.wildcard = name
		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if name == "" {
				return nil, fmt.Errorf("pattern %q: capture needs a name", spec)
			}
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("pattern %q: duplicate capture %q", spec, name)
			}
			seen[name] = struct{}{}
			param, ok := params[name]
			if !ok {
				return nil, fmt.Errorf("pattern %q: capture %q has no schema entry", spec, name)
			}
			p.segments = append(p.segments, segment{capture: name, codec: param.Codec})
		case part == "":
			return nil, fmt.Errorf("pattern %q: empty segment", spec)
		default:
			p.segments = append(p.segments, segment{literal: part})
		}
	}
	return p, nil
}

// match tests path against the pattern, decoding captures. A structural
// mismatch or a capture decode failure both report ok=false; matching
// never fails hard.
func (p *Pattern) match(path string) (map[string]any, bool) {
	if path == "" || path[0] != '/' {
		return nil, false
	}
	var parts []string
	if path != "/" {
		parts = strings.Split(strings.TrimPrefix(strings.TrimSuffix(path, "/"), "/"), "/")
	}
	if p.wildcard == "" {
		if len(parts) != len(p.segments) {
			return nil, false
		}
	} else if len(parts) < len(p.segments) {
		return nil, false
	}
	params := make(map[string]any)
	for i, seg := range p.segments {
		if seg.capture == "" {
			if parts[i] != seg.literal {
				return nil, false
			}
			continue
		}
		v, err := seg.codec.Decode(parts[i])
		if err != nil {
			return nil, false
		}
		params[seg.capture] = v
	}
	if p.wildcard != "" {
		params[p.wildcard] = strings.Join(parts[len(p.segments):], "/")
	}
	return params, true
}

// build renders the pattern with the given parameter values. Inverse of
// match for every value the capture codecs accept.
func (p *Pattern) build(params map[string]any) (string, error) {
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		if seg.capture == "" {
			b.WriteString(seg.literal)
			continue
		}
		v, ok := params[seg.capture]
		if !ok {
			return "", fmt.Errorf("pattern %q: missing parameter %q", p.spec, seg.capture)
		}
		raw, err := seg.codec.Encode(v)
		if err != nil {
			return "", fmt.Errorf("pattern %q: parameter %q: %w", p.spec, seg.capture, err)
		}
		b.WriteString(raw)
	}
	if p.wildcard != "" {
		if rest, ok := params[p.wildcard].(string); ok && rest != "" {
			b.WriteByte('/')
			b.WriteString(rest)
		}
	}
	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}
