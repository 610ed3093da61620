package answer

import "time"

// Answer represents a reply posted under a question (qna.answer).
type Answer struct {
	ID             string    `json:"id"`
	QuestionID     string    `json:"question_id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author"`
	Content        string    `json:"content"`
	IsAccepted     bool      `json:"is_accepted"`
	Score          int       `json:"score"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
