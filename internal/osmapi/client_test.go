package osmapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"wayfind/internal/resource"
	"wayfind/internal/route"
)

func serveMsgpack(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/x-msgpack")
	if err := msgpack.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNoteMergesCommentSubFetch(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("/partial/note/42", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/x-msgpack" {
			t.Errorf("Accept = %q", got)
		}
		serveMsgpack(t, w, Note{ID: 42, Lon: -0.1, Lat: 51.5, Status: "open", CreatedAt: created, NumComments: 2})
	})
	mux.HandleFunc("/partial/note/42/comments", func(w http.ResponseWriter, r *http.Request) {
		serveMsgpack(t, w, noteCommentsPage{Comments: []NoteComment{
			{Author: "alice", Action: "opened", Body: "missing bench", CreatedAt: created},
			{Author: "bob", Action: "commented", Body: "confirmed", CreatedAt: created},
		}})
	})

	c := newTestClient(t, mux)
	note, err := c.Note(context.Background(), 42)
	if err != nil {
		t.Fatalf("Note: %v", err)
	}
	if note.ID != 42 || note.Status != "open" {
		t.Fatalf("note = %+v", note)
	}
	if len(note.Comments) != 2 || note.Comments[1].Author != "bob" {
		t.Fatalf("comments = %+v", note.Comments)
	}
	if !note.CreatedAt.Equal(created) {
		t.Fatalf("created = %v", note.CreatedAt)
	}
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())

	_, err := c.Changeset(context.Background(), 9000)
	if !errors.Is(err, resource.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestServerErrorIsNotNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.Element(context.Background(), "way", 1)
	if err == nil {
		t.Fatal("no error for 500")
	}
	if errors.Is(err, resource.ErrNotFound) {
		t.Fatal("transport error mapped to ErrNotFound")
	}
}

func TestNoteFailsWhenEitherSubFetchFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/partial/note/7", func(w http.ResponseWriter, r *http.Request) {
		serveMsgpack(t, w, Note{ID: 7})
	})
	mux.HandleFunc("/partial/note/7/comments", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := newTestClient(t, mux)
	if _, err := c.Note(context.Background(), 7); err == nil {
		t.Fatal("partial failure not surfaced")
	}
}

func TestSearchQueryEncoding(t *testing.T) {
	var gotQuery map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/partial/search", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":    r.URL.Query().Get("q"),
			"bbox": r.URL.Query().Get("bbox"),
			"page": r.URL.Query().Get("page"),
		}
		serveMsgpack(t, w, SearchPage{
			Results:  []SearchResult{{Name: "Cafe Corner", Kind: "node", ID: 5, Lon: -0.1, Lat: 51.5}},
			Page:     2,
			NumPages: 3,
		})
	})

	c := newTestClient(t, mux)
	bbox := route.BBox{MinLon: -0.2, MinLat: 51.4, MaxLon: 0.1, MaxLat: 51.6}
	page, err := c.Search(context.Background(), "cafe", bbox, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery["q"] != "cafe" || gotQuery["page"] != "2" {
		t.Fatalf("query = %+v", gotQuery)
	}
	if gotQuery["bbox"] != "-0.20000,51.40000,0.10000,51.60000" {
		t.Fatalf("bbox = %q", gotQuery["bbox"])
	}
	if len(page.Results) != 1 || page.NumPages != 3 {
		t.Fatalf("page = %+v", page)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	if _, err := New("not a url", time.Second); err == nil {
		t.Fatal("accepted malformed URL")
	}
	if _, err := New("ftp://host/x", time.Second); err == nil {
		t.Fatal("accepted non-http scheme")
	}
}
