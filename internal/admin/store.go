package admin

import "context"

// Repository is the read-only persistence contract for the admin listings.
type Repository interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*UserEntry, int, error)
	ListQuestions(ctx context.Context, solved *bool, query string, limit, offset int) ([]*QuestionEntry, int, error)
	ListRecentVotes(ctx context.Context, limit int) ([]*VoteEntry, error)
}
