package viewer

import (
	"context"
	"fmt"
	"strings"

	"wayfind/internal/life"
	"wayfind/internal/nav"
	"wayfind/internal/osmapi"
	"wayfind/internal/panel"
	"wayfind/internal/resource"
)

// notePanel shows one map note with its discussion.
type notePanel struct {
	scope   *life.Scope
	machine *resource.Machine[int64, osmapi.Note]
}

func newNotePanel(d *deps) panel.Factory {
	return func(params, query map[string]any, reason nav.Reason) panel.Panel {
		p := &notePanel{scope: life.NewScope()}
		p.machine = resource.NewMachine(d.resources, "panel:note",
			func(id int64) string { return fmt.Sprintf("note/%d", id) },
			func(ctx context.Context, id int64) (osmapi.Note, error) {
				return d.client.Note(ctx, id)
			},
		)
		p.machine.Subscribe(func(resource.Resource[osmapi.Note]) { d.emit(refreshMsg{}) })
		p.scope.OnDispose(func() { p.machine.SetInput(nil) })
		p.apply(params)
		return p
	}
}

func (p *notePanel) apply(params map[string]any) {
	if id, ok := params["id"].(int64); ok {
		p.machine.SetInput(&id)
	}
}

func (p *notePanel) Update(params, query map[string]any, reason nav.Reason) {
	p.apply(params)
}

func (p *notePanel) Scope() *life.Scope { return p.scope }
func (p *notePanel) Title() string      { return "note" }

func (p *notePanel) Busy() bool {
	return p.machine.State().Phase == resource.PhaseLoading
}

func (p *notePanel) View(width int) string {
	return renderResource(p.machine.State(), width, "this note", renderNote)
}

func renderNote(n osmapi.Note, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", headingStyle.Render(fmt.Sprintf("note #%d", n.ID)), dimStyle.Render("("+n.Status+")"))
	fmt.Fprintf(&b, "at %.5f, %.5f\n", n.Lat, n.Lon)
	for _, c := range n.Comments {
		fmt.Fprintf(&b, "\n%s %s\n%s\n",
			headingStyle.Render(c.Author),
			dimStyle.Render(c.Action+" "+c.CreatedAt.Format("2006-01-02")),
			c.Body)
	}
	if extra := n.NumComments - len(n.Comments); extra > 0 {
		fmt.Fprintf(&b, "\n%s\n", dimStyle.Render(fmt.Sprintf("and %d more comments", extra)))
	}
	return b.String()
}
