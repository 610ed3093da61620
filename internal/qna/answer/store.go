package answer

import "context"

// Repository is the persistence contract for answers.
type Repository interface {
	Create(ctx context.Context, answer *Answer) error
	FindByID(ctx context.Context, id string) (*Answer, error)
	// ListByQuestion returns a question's answers, accepted answer first,
	// then oldest to newest.
	ListByQuestion(ctx context.Context, questionID string) ([]*Answer, error)
	Update(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
	// FindQuestionAuthor returns the author id of the owning question.
	FindQuestionAuthor(ctx context.Context, questionID string) (string, error)
	// Accept marks answerID as the question's accepted answer in a single
	// transaction: any previously accepted answer is unmarked, the question
	// is flagged solved with the accepted answer recorded, and the answer
	// author's reputation is increased by award.
	Accept(ctx context.Context, questionID, answerID, answerAuthorID string, award int) error
}
