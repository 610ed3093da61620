package vote

import "time"

// Vote represents an up or down vote on a question or an answer (qna.vote).
// Exactly one of QuestionID / AnswerID is set.
type Vote struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Value      int       `json:"value"`
	QuestionID *string   `json:"question_id,omitempty"`
	AnswerID   *string   `json:"answer_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
