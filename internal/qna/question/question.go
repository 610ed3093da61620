package question

import "time"

// Question represents a posted question (qna.question) together with its
// hydrated relations (author username, tags, aggregate counts).
type Question struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	AuthorID         string    `json:"author_id"`
	AuthorUsername   string    `json:"author"`
	Views            int       `json:"views"`
	Slug             string    `json:"slug"`
	IsSolved         bool      `json:"is_solved"`
	AcceptedAnswerID *string   `json:"accepted_answer_id,omitempty"`
	Score            int       `json:"score"`
	AnswerCount      int       `json:"answer_count"`
	Tags             []TagRef  `json:"tags"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TagRef is the embedded tag shape aggregated into question payloads.
type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CompactView is the reduced question shape served by the read-only
// listing endpoints under /api.
type CompactView struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}
