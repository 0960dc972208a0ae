package viewer

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"wayfind/internal/life"
	"wayfind/internal/nav"
	"wayfind/internal/osmapi"
	"wayfind/internal/panel"
	"wayfind/internal/resource"
	"wayfind/internal/route"
)

// worldBBox is the search viewport when the URL carries none.
var worldBBox = route.BBox{MinLon: -180, MinLat: -90, MaxLon: 180, MaxLat: 90}

// searchInput is one search request: query text, the anchored viewport
// and the result page.
type searchInput struct {
	Query string
	BBox  route.BBox
	Page  int64
}

func (in searchInput) key() string {
	raw, _ := route.BBoxCodec{}.Encode(in.BBox)
	return fmt.Sprintf("search?q=%s&bbox=%s&page=%d", in.Query, raw, in.Page)
}

// searchPanel lists geocoding results for the current query and viewport.
// Small viewport pans keep the anchored bbox (the fetch key is unchanged,
// pagination continues); a pan whose overlap with the anchor drops below
// the configured threshold re-anchors and reloads.
type searchPanel struct {
	scope     *life.Scope
	machine   *resource.Machine[searchInput, osmapi.SearchPage]
	threshold float64
	anchor    route.BBox
	anchored  bool
	fitDone   atomic.Bool
}

func newSearchPanel(d *deps) panel.Factory {
	return func(params, query map[string]any, reason nav.Reason) panel.Panel {
		p := &searchPanel{scope: life.NewScope(), threshold: d.threshold}
		p.machine = resource.NewMachine(d.resources, "panel:search",
			searchInput.key,
			func(ctx context.Context, in searchInput) (osmapi.SearchPage, error) {
				return d.client.Search(ctx, in.Query, in.BBox, int(in.Page))
			},
		)
		p.machine.Subscribe(func(resource.Resource[osmapi.SearchPage]) { d.emit(refreshMsg{}) })
		p.scope.OnDispose(func() { p.machine.SetInput(nil) })
		if reason == nav.ReasonNavigation {
			// Fresh navigations settle the view on the results once;
			// history moves and reloads keep the user's viewport.
			p.scope.AfterFunc(fitDelay, func() {
				p.fitDone.Store(true)
				d.emit(refreshMsg{})
			})
		}
		p.apply(params, query)
		return p
	}
}

func (p *searchPanel) apply(params, query map[string]any) {
	q, ok := query["q"].(string)
	if !ok {
		return
	}
	in := searchInput{Query: q, BBox: p.anchorFor(viewportOf(query)), Page: 1}
	if page, ok := query["page"].(int64); ok {
		in.Page = page
	}
	p.machine.SetInput(&in)
}

// anchorFor decides whether the incoming viewport continues the current
// result set or starts a new one.
func (p *searchPanel) anchorFor(view route.BBox) route.BBox {
	if p.anchored && view.IntersectionOverUnion(p.anchor) >= p.threshold {
		return p.anchor
	}
	p.anchor = view
	p.anchored = true
	return view
}

func viewportOf(query map[string]any) route.BBox {
	if b, ok := query["bbox"].(route.BBox); ok {
		return b
	}
	return worldBBox
}

func (p *searchPanel) Update(params, query map[string]any, reason nav.Reason) {
	p.apply(params, query)
}

func (p *searchPanel) Scope() *life.Scope { return p.scope }
func (p *searchPanel) Title() string      { return "search" }

func (p *searchPanel) Busy() bool {
	return p.machine.State().Phase == resource.PhaseLoading
}

// Links exposes the result paths so the host can activate them by number.
func (p *searchPanel) Links() []string {
	state := p.machine.State()
	results := state.Data.Results
	if stale, ok := state.Stale(); ok {
		results = stale.Results
	}
	links := make([]string, 0, len(results))
	for _, r := range results {
		links = append(links, fmt.Sprintf("/%s/%d", r.Kind, r.ID))
	}
	return links
}

func (p *searchPanel) View(width int) string {
	body := renderResource(p.machine.State(), width, "this search", renderSearchPage)
	if p.fitDone.Load() {
		body += "\n" + dimStyle.Render("view fitted to results")
	}
	return body
}

func renderSearchPage(sp osmapi.SearchPage, width int) string {
	if len(sp.Results) == 0 {
		return dimStyle.Render("no results in this area")
	}
	var b strings.Builder
	for i, r := range sp.Results {
		fmt.Fprintf(&b, "%s %s %s\n",
			dimStyle.Render(fmt.Sprintf("%d.", i+1)),
			headingStyle.Render(r.Name),
			dimStyle.Render(fmt.Sprintf("%s/%d", r.Kind, r.ID)))
	}
	fmt.Fprintf(&b, "%s", dimStyle.Render(fmt.Sprintf("page %d of %d", sp.Page, sp.NumPages)))
	return b.String()
}
