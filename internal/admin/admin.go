package admin

import "time"

// UserEntry is a user row in the admin listing, joined with the profile's
// reputation.
type UserEntry struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Reputation int       `json:"reputation"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuestionEntry is a question row in the admin listing.
type QuestionEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	IsSolved  bool      `json:"is_solved"`
	Views     int       `json:"views"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteEntry is a vote row in the admin listing, labelled with the voter and
// the target.
type VoteEntry struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Value         int       `json:"value"`
	QuestionTitle *string   `json:"question,omitempty"`
	AnswerID      *string   `json:"answer_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
