package question

import "context"

// Filter narrows the question listing.
type Filter struct {
	// Query matches against title and content.
	Query string
	// TagSlug restricts results to questions carrying the tag.
	TagSlug string
	// Solved filters on resolution state when non-nil.
	Solved *bool
	// Sort is one of "latest", "views", "score".
	Sort string
}

// UpdateInput carries the editable question fields.
type UpdateInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	TagIDs  []string `json:"tag_ids"`
}

// Repository is the persistence contract for questions.
type Repository interface {
	// Create inserts the question and its tag junction rows atomically.
	Create(ctx context.Context, question *Question, tagIDs []string) error
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Question, int, error)
	// ListCompact returns every question in insertion order for the
	// read-only listing surface.
	ListCompact(ctx context.Context) ([]*CompactView, error)
	FindByID(ctx context.Context, id string) (*Question, error)
	FindBySlug(ctx context.Context, slug string) (*Question, error)
	// Update rewrites title, content, and the tag junction rows atomically.
	Update(ctx context.Context, question *Question, tagIDs []string) error
	Delete(ctx context.Context, id string) error
	// IncrementViews bumps the view counter without touching updatedat.
	IncrementViews(ctx context.Context, id string) error
	// ExistingSlugs returns the slugs equal to base or derived from it with
	// a numeric suffix. Used for collision-free slug assignment.
	ExistingSlugs(ctx context.Context, base string) ([]string, error)
}
