package osmapi

import "time"

// Note is a map note with its discussion.
type Note struct {
	ID          int64     `msgpack:"id"`
	Lon         float64   `msgpack:"lon"`
	Lat         float64   `msgpack:"lat"`
	Status      string    `msgpack:"status"` // open | closed | hidden
	CreatedAt   time.Time `msgpack:"created_at"`
	NumComments int       `msgpack:"num_comments"`

	// Filled from the comments sub-fetch.
	Comments []NoteComment `msgpack:"-"`
}

type NoteComment struct {
	Author    string    `msgpack:"author"`
	Action    string    `msgpack:"action"` // opened | commented | closed | reopened
	Body      string    `msgpack:"body"`
	CreatedAt time.Time `msgpack:"created_at"`
}

type noteCommentsPage struct {
	Comments []NoteComment `msgpack:"comments"`
}

// Changeset is an edit session summary.
type Changeset struct {
	ID         int64             `msgpack:"id"`
	User       string            `msgpack:"user"`
	CreatedAt  time.Time         `msgpack:"created_at"`
	ClosedAt   *time.Time        `msgpack:"closed_at"`
	Open       bool              `msgpack:"open"`
	NumChanges int               `msgpack:"num_changes"`
	Tags       map[string]string `msgpack:"tags"`
}

// Comment returns the changeset comment tag, if any.
func (c Changeset) Comment() string {
	return c.Tags["comment"]
}

// Element is one map object (node, way or relation).
type Element struct {
	Kind      string            `msgpack:"kind"`
	ID        int64             `msgpack:"id"`
	Version   int               `msgpack:"version"`
	Visible   bool              `msgpack:"visible"`
	Changeset int64             `msgpack:"changeset"`
	UpdatedAt time.Time         `msgpack:"updated_at"`
	Tags      map[string]string `msgpack:"tags"`
}

// SearchResult is one geocoded hit.
type SearchResult struct {
	Name string  `msgpack:"name"`
	Kind string  `msgpack:"kind"`
	ID   int64   `msgpack:"id"`
	Lon  float64 `msgpack:"lon"`
	Lat  float64 `msgpack:"lat"`
}

// SearchPage is one page of search hits.
type SearchPage struct {
	Results  []SearchResult `msgpack:"results"`
	Page     int            `msgpack:"page"`
	NumPages int            `msgpack:"num_pages"`
}
