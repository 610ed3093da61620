package vote

import "context"

// Repository is the persistence contract for votes.
//
// Create relies on the table's partial unique indexes for the
// one-vote-per-user-per-target rule: a duplicate insert surfaces as a
// conflict instead of being screened with a prior read.
type Repository interface {
	Create(ctx context.Context, vote *Vote) error
	// FindByTarget returns the caller's vote on the given question or answer.
	FindByTarget(ctx context.Context, userID string, questionID, answerID *string) (*Vote, error)
	// SetValue flips the stored value of an existing vote.
	SetValue(ctx context.Context, id string, value int) error
	Delete(ctx context.Context, id string) error
}
