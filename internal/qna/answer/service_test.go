// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package answer_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/qna/answer"
)

const (
	questionID     = "01920000-0000-7000-8000-000000000001"
	questionAuthor = "01920000-0000-7000-8000-0000000000aa"
	answerAuthor   = "01920000-0000-7000-8000-0000000000bb"
	otherUser      = "01920000-0000-7000-8000-0000000000cc"
)

// fakeRepository mirrors the store's acceptance semantics: marking an answer
// unmarks any sibling on the same question, the award is accumulated on a
// per-user reputation counter, and the whole swap fails atomically when the
// author has no profile row to credit.
type fakeRepository struct {
	answers         map[string]*answer.Answer
	questionAuthors map[string]string
	profiles        map[string]bool
	reputation      map[string]int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		answers:         map[string]*answer.Answer{},
		questionAuthors: map[string]string{questionID: questionAuthor},
		profiles:        map[string]bool{},
		reputation:      map[string]int{},
	}
}

func (f *fakeRepository) Create(_ context.Context, a *answer.Answer) error {
	f.answers[a.ID] = a
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*answer.Answer, error) {
	if a, ok := f.answers[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, apperr.NotFound("Answer")
}

func (f *fakeRepository) ListByQuestion(_ context.Context, qID string) ([]*answer.Answer, error) {
	result := make([]*answer.Answer, 0)
	for _, a := range f.answers {
		if a.QuestionID == qID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeRepository) Update(_ context.Context, id, content string) error {
	a, ok := f.answers[id]
	if !ok {
		return apperr.NotFound("Answer")
	}
	a.Content = content
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.answers[id]; !ok {
		return apperr.NotFound("Answer")
	}
	delete(f.answers, id)
	return nil
}

func (f *fakeRepository) FindQuestionAuthor(_ context.Context, qID string) (string, error) {
	if author, ok := f.questionAuthors[qID]; ok {
		return author, nil
	}
	return "", apperr.NotFound("Resource")
}

func (f *fakeRepository) Accept(_ context.Context, qID, answerID, answerAuthorID string, award int) error {
	target, ok := f.answers[answerID]
	if !ok {
		return apperr.NotFound("Answer")
	}
	// The award update matching no profile row aborts the transaction with
	// nothing marked.
	if !f.profiles[answerAuthorID] {
		return apperr.NotFound("Resource")
	}
	for _, a := range f.answers {
		if a.QuestionID == qID {
			a.IsAccepted = false
		}
	}
	target.IsAccepted = true
	f.reputation[answerAuthorID] += award
	return nil
}

func (f *fakeRepository) addAnswer(id, authorID string) {
	f.answers[id] = &answer.Answer{
		ID:         id,
		QuestionID: questionID,
		AuthorID:   authorID,
		Content:    "an answer",
	}
	f.profiles[authorID] = true
}

func TestService_Accept(t *testing.T) {
	repo := newFakeRepository()
	answerA := "01920000-0000-7000-8000-000000000010"
	repo.addAnswer(answerA, answerAuthor)

	service := answer.NewService(repo)

	accepted, err := service.Accept(context.Background(), questionAuthor, answerA)

	require.NoError(t, err)
	assert.True(t, accepted.IsAccepted)
	// Flat +15 award goes to the answer author.
	assert.Equal(t, 15, repo.reputation[answerAuthor])
}

func TestService_Accept_OnlyQuestionAuthor(t *testing.T) {
	repo := newFakeRepository()
	answerA := "01920000-0000-7000-8000-000000000010"
	repo.addAnswer(answerA, answerAuthor)

	service := answer.NewService(repo)

	tests := []struct {
		name   string
		caller string
	}{
		{"answer_author", answerAuthor},
		{"unrelated_user", otherUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Accept(context.Background(), tt.caller, answerA)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
		})
	}

	// Nothing was marked and no award was paid.
	stored, _ := repo.FindByID(context.Background(), answerA)
	assert.False(t, stored.IsAccepted)
	assert.Zero(t, repo.reputation[answerAuthor])
}

func TestService_Accept_TransfersBetweenAnswers(t *testing.T) {
	repo := newFakeRepository()
	answerA := "01920000-0000-7000-8000-000000000010"
	answerB := "01920000-0000-7000-8000-000000000020"
	repo.addAnswer(answerA, answerAuthor)
	repo.addAnswer(answerB, otherUser)

	service := answer.NewService(repo)

	_, err := service.Accept(context.Background(), questionAuthor, answerA)
	require.NoError(t, err)
	_, err = service.Accept(context.Background(), questionAuthor, answerB)
	require.NoError(t, err)

	// Acceptance is exclusive: B replaced A.
	storedA, _ := repo.FindByID(context.Background(), answerA)
	storedB, _ := repo.FindByID(context.Background(), answerB)
	assert.False(t, storedA.IsAccepted)
	assert.True(t, storedB.IsAccepted)

	// Both authors kept their award; accepting B does not claw back A's.
	assert.Equal(t, 15, repo.reputation[answerAuthor])
	assert.Equal(t, 15, repo.reputation[otherUser])
}

func TestService_Accept_UnknownAnswer(t *testing.T) {
	service := answer.NewService(newFakeRepository())

	_, err := service.Accept(context.Background(), questionAuthor, "01920000-0000-7000-8000-00000000dead")

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

func TestService_Accept_MissingAuthorProfile(t *testing.T) {
	repo := newFakeRepository()
	answerA := "01920000-0000-7000-8000-000000000010"
	repo.addAnswer(answerA, answerAuthor)
	delete(repo.profiles, answerAuthor)

	service := answer.NewService(repo)

	_, err := service.Accept(context.Background(), questionAuthor, answerA)

	// No profile to credit: the operation fails whole, it does not accept
	// the answer while silently skipping the award.
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)

	stored, _ := repo.FindByID(context.Background(), answerA)
	assert.False(t, stored.IsAccepted)
	assert.Zero(t, repo.reputation[answerAuthor])
}

func TestService_Create(t *testing.T) {
	repo := newFakeRepository()
	service := answer.NewService(repo)

	created, err := service.Create(context.Background(), answerAuthor, questionID, answer.CreateInput{
		Content: "try pgx batch mode",
	})

	require.NoError(t, err)
	assert.Equal(t, questionID, created.QuestionID)
	assert.False(t, created.IsAccepted)
}

func TestService_Create_UnknownQuestion(t *testing.T) {
	service := answer.NewService(newFakeRepository())

	_, err := service.Create(context.Background(), answerAuthor,
		"01920000-0000-7000-8000-00000000dead", answer.CreateInput{Content: "hello"})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	assert.Equal(t, "Question not found", ae.Message)
}

func TestService_Create_Validation(t *testing.T) {
	service := answer.NewService(newFakeRepository())

	_, err := service.Create(context.Background(), answerAuthor, questionID, answer.CreateInput{})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_Update_OnlyAuthor(t *testing.T) {
	repo := newFakeRepository()
	answerA := "01920000-0000-7000-8000-000000000010"
	repo.addAnswer(answerA, answerAuthor)

	service := answer.NewService(repo)

	_, err := service.Update(context.Background(), otherUser, answerA, answer.CreateInput{Content: "edited"})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
}

func TestService_Delete_ModeratorOverride(t *testing.T) {
	repo := newFakeRepository()
	answerA := "01920000-0000-7000-8000-000000000010"
	repo.addAnswer(answerA, answerAuthor)

	service := answer.NewService(repo)

	require.NoError(t, service.Delete(context.Background(), otherUser, true, answerA))
	assert.Empty(t, repo.answers)
}
