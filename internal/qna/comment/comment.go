package comment

import "time"

// Comment represents a short remark on a question or an answer (qna.comment).
// Exactly one of QuestionID / AnswerID is set.
type Comment struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author"`
	Content        string    `json:"content"`
	QuestionID     *string   `json:"question_id,omitempty"`
	AnswerID       *string   `json:"answer_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
