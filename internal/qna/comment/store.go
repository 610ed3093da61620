package comment

import "context"

// Repository is the persistence contract for comments.
type Repository interface {
	Create(ctx context.Context, comment *Comment) error
	FindByID(ctx context.Context, id string) (*Comment, error)
	ListByQuestion(ctx context.Context, questionID string) ([]*Comment, error)
	ListByAnswer(ctx context.Context, answerID string) ([]*Comment, error)
	Delete(ctx context.Context, id string) error
}
