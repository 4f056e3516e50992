package domain

import (
	"strconv"
	"time"
)

// Space is a named partition of the remote wiki grouping related pages.
type Space struct {
	// Key is the short unique identifier (e.g. "ENG").
	Key string

	// Name is the human-readable space name.
	Name string

	// Type is the space type reported by the wiki (e.g. "global", "personal").
	Type string
}

// PageSummary is a lightweight reference to a wiki page, as returned by
// list and search operations. The full body is fetched separately.
type PageSummary struct {
	// ID is the wiki page identifier.
	ID string

	// Title is the page title.
	Title string

	// SpaceKey is the key of the containing space.
	SpaceKey string

	// URL is the web link to the page.
	URL string

	// UpdatedAt is when the page was last modified.
	UpdatedAt time.Time
}

// Page is an immutable snapshot of a wiki page fetched at a point in time.
// RawBody holds the storage-format markup before normalisation.
type Page struct {
	// ID is the wiki page identifier.
	ID string

	// Title is the page title.
	Title string

	// RawBody is the storage-format markup as returned by the wiki.
	RawBody string

	// SpaceKey is the key of the containing space.
	SpaceKey string

	// URL is the web link to the page.
	URL string

	// Version is the page revision number.
	Version int

	// UpdatedAt is when this revision was created.
	UpdatedAt time.Time
}

// Document is a page prepared for indexing: the body has been normalised
// to plain text. It is transient per ingestion call.
type Document struct {
	// ID is the originating page identifier.
	ID string

	// Title is the page title.
	Title string

	// Content is the normalised plain-text body.
	Content string

	// SpaceKey is the key of the containing space.
	SpaceKey string

	// URL is the web link to the page.
	URL string

	// Version is the page revision number.
	Version int

	// UpdatedAt is when this revision was created.
	UpdatedAt time.Time
}

// Chunk is a bounded substring of a document's normalised text, the unit
// of embedding and indexing. Chunks are produced fresh on every ingestion
// call and never mutated.
type Chunk struct {
	// PageID links to the source page.
	PageID string

	// Index is the ordinal position within the document.
	Index int

	// Text is the chunk content.
	Text string
}

// EntryID derives the vector index identifier for this chunk.
// The same page and position always map to the same id, so re-ingesting
// a page overwrites its previous entries.
func (c Chunk) EntryID() string {
	return c.PageID + "_" + strconv.Itoa(c.Index)
}
