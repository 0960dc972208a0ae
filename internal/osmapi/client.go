// Package osmapi is the typed client for the map service's partial-data
// endpoints. The wire format is msgpack; panels never see it, they only
// get decoded structs and the resource.ErrNotFound sentinel for absent
// objects.
package osmapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"

	"wayfind/internal/resource"
	"wayfind/internal/route"
)

const acceptMsgpack = "application/x-msgpack"

// Client talks to one wayfind-compatible server.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a client for baseURL. Timeout bounds each request on top of
// the caller's context.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("bad server URL %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("server URL %q must be http(s)", baseURL)
	}
	return &Client{base: base, http: &http.Client{Timeout: timeout}}, nil
}

// Note fetches a note and the first page of its discussion. The two
// requests run concurrently; either failure fails the whole load.
func (c *Client) Note(ctx context.Context, id int64) (Note, error) {
	var (
		note     Note
		comments noteCommentsPage
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.get(ctx, fmt.Sprintf("/partial/note/%d", id), nil, &note)
	})
	g.Go(func() error {
		return c.get(ctx, fmt.Sprintf("/partial/note/%d/comments", id), nil, &comments)
	})
	if err := g.Wait(); err != nil {
		return Note{}, err
	}
	note.Comments = comments.Comments
	return note, nil
}

// Changeset fetches one changeset summary.
func (c *Client) Changeset(ctx context.Context, id int64) (Changeset, error) {
	var cs Changeset
	err := c.get(ctx, fmt.Sprintf("/partial/changeset/%d", id), nil, &cs)
	return cs, err
}

// Element fetches one map object by kind and id.
func (c *Client) Element(ctx context.Context, kind string, id int64) (Element, error) {
	var el Element
	err := c.get(ctx, fmt.Sprintf("/partial/element/%s/%d", kind, id), nil, &el)
	return el, err
}

// Search fetches one page of geocoding results scoped to a viewport.
func (c *Client) Search(ctx context.Context, q string, bbox route.BBox, page int) (SearchPage, error) {
	bboxRaw, err := route.BBoxCodec{}.Encode(bbox)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search viewport: %w", err)
	}
	values := url.Values{}
	values.Set("q", q)
	values.Set("bbox", bboxRaw)
	values.Set("page", strconv.Itoa(page))

	var sp SearchPage
	err = c.get(ctx, "/partial/search", values, &sp)
	return sp, err
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	u := *c.base
	u.Path = path.Join(c.base.Path, endpoint)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", acceptMsgpack)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("GET %s: %w", endpoint, resource.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("GET %s: unexpected status %s", endpoint, resp.Status)
	}
	if err := msgpack.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", endpoint, err)
	}
	return nil
}
