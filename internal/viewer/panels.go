package viewer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wayfind/internal/life"
	"wayfind/internal/nav"
	"wayfind/internal/osmapi"
	"wayfind/internal/panel"
	"wayfind/internal/resource"
	"wayfind/internal/routes"
)

// refreshMsg asks the program to re-render after a resource transition or
// a panel timer fired outside the update loop.
type refreshMsg struct{}

// deps is what every concrete panel needs from the host.
type deps struct {
	client    *osmapi.Client
	resources *resource.Registry
	threshold float64
	emit      func(tea.Msg)
}

// viewPanel extends panel.Panel with terminal rendering.
type viewPanel interface {
	panel.Panel
	Title() string
	View(width int) string
	Busy() bool
}

// linker is implemented by panels whose view contains numbered links the
// host can activate.
type linker interface {
	Links() []string
}

var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	notFoundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	staleStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
)

// registerPanels builds the closed panel registry the route table is
// validated against.
func registerPanels(d *deps) (*panel.Registry, error) {
	reg := panel.NewRegistry()
	entries := map[string]panel.Factory{
		routes.PanelIndex:      staticFactory("map", "Pan and zoom the map. Try /search?q=... or /note/<id>."),
		routes.PanelExport:     staticFactory("export", "Choose a bounding box to export map data."),
		routes.PanelDirections: staticFactory("directions", "Pick start and destination to route between them."),
		routes.PanelNewNote:    staticFactory("new note", "Click the map to drop a note marker, then describe the problem."),
		routes.PanelUser:       newUserPanel,
		routes.PanelNote:       newNotePanel(d),
		routes.PanelChangeset:  newChangesetPanel(d),
		routes.PanelElement:    newElementPanel(d),
		routes.PanelSearch:     newSearchPanel(d),
	}
	for id, f := range entries {
		if err := reg.Register(id, f); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// staticPanel renders fixed text; it fetches nothing.
type staticPanel struct {
	scope *life.Scope
	title string
	body  string
}

func staticFactory(title, body string) panel.Factory {
	return func(params, query map[string]any, reason nav.Reason) panel.Panel {
		return &staticPanel{scope: life.NewScope(), title: title, body: body}
	}
}

func (p *staticPanel) Update(params, query map[string]any, reason nav.Reason) {}
func (p *staticPanel) Scope() *life.Scope                                     { return p.scope }
func (p *staticPanel) Title() string                                          { return p.title }
func (p *staticPanel) Busy() bool                                             { return false }

func (p *staticPanel) View(width int) string {
	return p.body
}

// userPanel shows the profile stub for a user name from the path.
type userPanel struct {
	scope *life.Scope
	name  string
}

func newUserPanel(params, query map[string]any, reason nav.Reason) panel.Panel {
	p := &userPanel{scope: life.NewScope()}
	p.name, _ = params["name"].(string)
	return p
}

func (p *userPanel) Update(params, query map[string]any, reason nav.Reason) {
	p.name, _ = params["name"].(string)
}

func (p *userPanel) Scope() *life.Scope { return p.scope }
func (p *userPanel) Title() string      { return "user" }
func (p *userPanel) Busy() bool         { return false }

func (p *userPanel) View(width int) string {
	return headingStyle.Render(p.name) + "\n" + dimStyle.Render("profile, traces and diary entries")
}

// renderResource is the shared phase dispatch: ready data renders through
// render, stale data is annotated during reloads, transport errors keep
// the stale view visible under the banner, and not-found is its own
// message rather than an error.
func renderResource[T any](r resource.Resource[T], width int, what string, render func(T, int) string) string {
	switch r.Phase {
	case resource.PhaseIdle:
		return dimStyle.Render("nothing loaded")
	case resource.PhaseLoading:
		if stale, ok := r.Stale(); ok {
			return staleStyle.Render("reloading...") + "\n" + render(stale, width)
		}
		return dimStyle.Render("loading...")
	case resource.PhaseReady:
		return render(r.Data, width)
	case resource.PhaseNotFound:
		return notFoundStyle.Render(fmt.Sprintf("%s does not exist (deleted or never created)", what))
	case resource.PhaseError:
		banner := errorStyle.Render("temporarily unavailable: " + r.Message)
		if stale, ok := r.Stale(); ok {
			return banner + "\n" + staleStyle.Render("showing previous data") + "\n" + render(stale, width)
		}
		return banner
	default:
		return ""
	}
}
