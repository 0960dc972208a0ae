package viewer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"wayfind/internal/life"
	"wayfind/internal/nav"
	"wayfind/internal/osmapi"
	"wayfind/internal/panel"
	"wayfind/internal/resource"
)

// changesetPanel shows one changeset summary.
type changesetPanel struct {
	scope   *life.Scope
	machine *resource.Machine[int64, osmapi.Changeset]
}

func newChangesetPanel(d *deps) panel.Factory {
	return func(params, query map[string]any, reason nav.Reason) panel.Panel {
		p := &changesetPanel{scope: life.NewScope()}
		p.machine = resource.NewMachine(d.resources, "panel:changeset",
			func(id int64) string { return fmt.Sprintf("changeset/%d", id) },
			func(ctx context.Context, id int64) (osmapi.Changeset, error) {
				return d.client.Changeset(ctx, id)
			},
		)
		p.machine.Subscribe(func(resource.Resource[osmapi.Changeset]) { d.emit(refreshMsg{}) })
		p.scope.OnDispose(func() { p.machine.SetInput(nil) })
		p.apply(params)
		return p
	}
}

func (p *changesetPanel) apply(params map[string]any) {
	if id, ok := params["id"].(int64); ok {
		p.machine.SetInput(&id)
	}
}

func (p *changesetPanel) Update(params, query map[string]any, reason nav.Reason) {
	p.apply(params)
}

func (p *changesetPanel) Scope() *life.Scope { return p.scope }
func (p *changesetPanel) Title() string      { return "changeset" }

func (p *changesetPanel) Busy() bool {
	return p.machine.State().Phase == resource.PhaseLoading
}

func (p *changesetPanel) View(width int) string {
	return renderResource(p.machine.State(), width, "this changeset", renderChangeset)
}

func renderChangeset(cs osmapi.Changeset, width int) string {
	var b strings.Builder
	state := "closed"
	if cs.Open {
		state = "open"
	}
	fmt.Fprintf(&b, "%s %s\n", headingStyle.Render(fmt.Sprintf("changeset #%d", cs.ID)), dimStyle.Render("("+state+")"))
	fmt.Fprintf(&b, "by %s, %d changes\n", cs.User, cs.NumChanges)
	if comment := cs.Comment(); comment != "" {
		fmt.Fprintf(&b, "%q\n", comment)
	}
	keys := make([]string, 0, len(cs.Tags))
	for k := range cs.Tags {
		if k != "comment" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s\n", dimStyle.Render(k+"="+cs.Tags[k]))
	}
	return b.String()
}
