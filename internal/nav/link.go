package nav

// LinkEvent describes an activated anchor as seen at the host boundary.
// The host (a real DOM bridge or the terminal shell) is responsible for
// resolving the anchor's href and origin; the controller only decides
// whether the activation becomes a client-side navigation.
type LinkEvent struct {
	Href       string
	SameOrigin bool
	Download   bool
	Button     int // 0 is the primary button
	Ctrl       bool
	Shift      bool
	Meta       bool
	Alt        bool
}

// modified reports whether any modifier key was held. Modified clicks keep
// their default browser affordance (open in new tab, save link, ...).
func (ev LinkEvent) modified() bool {
	return ev.Ctrl || ev.Shift || ev.Meta || ev.Alt
}

// InterceptClick decides whether a link activation is handled as a
// client-side navigation. It returns true — and performs the navigation —
// only for primary, unmodified, same-origin, non-download activations
// whose resolved path both differs from the current one and matches a
// registered route. In every other case it returns false and the caller
// must let the default behavior proceed.
func (c *Controller) InterceptClick(ev LinkEvent) bool {
	if ev.Button != 0 || ev.modified() || !ev.SameOrigin || ev.Download {
		return false
	}
	path, ok := normalizePath(ev.Href)
	if !ok {
		return false
	}
	if path == c.State().Path {
		return false
	}
	if err := c.NavigateTo(path); err != nil {
		return false
	}
	return true
}
