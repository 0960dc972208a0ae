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

// elementInput addresses one map object.
type elementInput struct {
	Kind string
	ID   int64
}

func (in elementInput) key() string {
	return fmt.Sprintf("element/%s/%d", in.Kind, in.ID)
}

// elementPanel inspects one node, way or relation. All three kinds share
// the panel; switching between them reuses the instance.
type elementPanel struct {
	scope   *life.Scope
	machine *resource.Machine[elementInput, osmapi.Element]
}

func newElementPanel(d *deps) panel.Factory {
	return func(params, query map[string]any, reason nav.Reason) panel.Panel {
		p := &elementPanel{scope: life.NewScope()}
		p.machine = resource.NewMachine(d.resources, "panel:element",
			elementInput.key,
			func(ctx context.Context, in elementInput) (osmapi.Element, error) {
				return d.client.Element(ctx, in.Kind, in.ID)
			},
		)
		p.machine.Subscribe(func(resource.Resource[osmapi.Element]) { d.emit(refreshMsg{}) })
		p.scope.OnDispose(func() { p.machine.SetInput(nil) })
		p.apply(params)
		return p
	}
}

func (p *elementPanel) apply(params map[string]any) {
	kind, _ := params["kind"].(string)
	id, ok := params["id"].(int64)
	if kind == "" || !ok {
		return
	}
	in := elementInput{Kind: kind, ID: id}
	p.machine.SetInput(&in)
}

func (p *elementPanel) Update(params, query map[string]any, reason nav.Reason) {
	p.apply(params)
}

func (p *elementPanel) Scope() *life.Scope { return p.scope }
func (p *elementPanel) Title() string      { return "element" }

func (p *elementPanel) Busy() bool {
	return p.machine.State().Phase == resource.PhaseLoading
}

func (p *elementPanel) View(width int) string {
	return renderResource(p.machine.State(), width, "this element", renderElement)
}

func renderElement(el osmapi.Element, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		headingStyle.Render(fmt.Sprintf("%s #%d", el.Kind, el.ID)),
		dimStyle.Render(fmt.Sprintf("v%d", el.Version)))
	if !el.Visible {
		fmt.Fprintf(&b, "%s\n", notFoundStyle.Render("deleted"))
	}
	fmt.Fprintf(&b, "changeset %d, updated %s\n", el.Changeset, el.UpdatedAt.Format("2006-01-02"))
	keys := make([]string, 0, len(el.Tags))
	for k := range el.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s\n", k+"="+el.Tags[k])
	}
	return b.String()
}
