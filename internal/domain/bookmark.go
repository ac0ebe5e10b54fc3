package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookmark is a saved URL enriched with metadata at creation time.
// Title, Favicon, Summary and Tags are derived once by the enrichment
// pipeline and never recomputed afterwards.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Owner is the user this bookmark belongs to.
	// At most one bookmark may exist per (Owner, URL) pair.
	Owner primitive.ObjectID `bson:"owner" json:"owner"`

	// URL is the string as submitted by the user, not normalized at rest.
	URL string `bson:"url" json:"url"`

	// ─────────────────────────────
	// Enrichment output (set once)
	// ─────────────────────────────

	// Title is the extracted page title, or the raw URL when
	// extraction failed. Never empty.
	Title string `bson:"title" json:"title"`

	// Favicon is an absolute icon URL. Empty only when the hostname
	// itself could not be parsed.
	Favicon string `bson:"favicon,omitempty" json:"favicon,omitempty"`

	// Summary is a short plain-text excerpt (at most 5 sentences) or a
	// fixed placeholder when the summary service was unavailable.
	Summary string `bson:"summary,omitempty" json:"summary,omitempty"`

	// Tags holds lowercase tags in first-insertion order, deduplicated.
	Tags []string `bson:"tags" json:"tags"`

	// ─────────────────────────────
	// Position
	// ─────────────────────────────

	// Order is the sole sort key for listing. Orders for a given owner
	// form a dense 0..N-1 sequence after any mutating operation.
	Order int `bson:"order" json:"order"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PageMeta is the cacheable part of an enrichment result for a URL.
// It is shared across owners: two users bookmarking the same URL get
// the same title, favicon and summary.
type PageMeta struct {
	Title   string `json:"title"`
	Favicon string `json:"favicon"`
	Summary string `json:"summary"`
}
