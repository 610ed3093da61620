package tag

import "time"

// Tag represents a topic label applied to questions (qna.tag).
type Tag struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"-"`
}
