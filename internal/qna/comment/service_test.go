// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/qna/comment"
)

const (
	authorID   = "01920000-0000-7000-8000-0000000000aa"
	otherUser  = "01920000-0000-7000-8000-0000000000bb"
	questionID = "01920000-0000-7000-8000-000000000001"
	answerID   = "01920000-0000-7000-8000-000000000002"
)

type fakeRepository struct {
	comments map[string]*comment.Comment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{comments: map[string]*comment.Comment{}}
}

func (f *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	c.AuthorUsername = "author"
	f.comments[c.ID] = c
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	if c, ok := f.comments[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Comment")
}

func (f *fakeRepository) ListByQuestion(_ context.Context, qID string) ([]*comment.Comment, error) {
	result := make([]*comment.Comment, 0)
	for _, c := range f.comments {
		if c.QuestionID != nil && *c.QuestionID == qID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeRepository) ListByAnswer(_ context.Context, aID string) ([]*comment.Comment, error) {
	result := make([]*comment.Comment, 0)
	for _, c := range f.comments {
		if c.AnswerID != nil && *c.AnswerID == aID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(f.comments, id)
	return nil
}

func ptr(s string) *string { return &s }

func TestService_Create_OnQuestion(t *testing.T) {
	repo := newFakeRepository()
	service := comment.NewService(repo)

	created, err := service.Create(context.Background(), authorID, comment.CreateInput{
		Content:    "did you try EXPLAIN ANALYZE?",
		QuestionID: ptr(questionID),
	})

	require.NoError(t, err)
	require.NotNil(t, created.QuestionID)
	assert.Nil(t, created.AnswerID)
	assert.Equal(t, "author", created.AuthorUsername)
}

func TestService_Create_OnAnswer(t *testing.T) {
	repo := newFakeRepository()
	service := comment.NewService(repo)

	created, err := service.Create(context.Background(), authorID, comment.CreateInput{
		Content:  "this fixed it for me",
		AnswerID: ptr(answerID),
	})

	require.NoError(t, err)
	assert.Nil(t, created.QuestionID)
	require.NotNil(t, created.AnswerID)
}

func TestService_Create_ExactlyOneParent(t *testing.T) {
	tests := []struct {
		name  string
		input comment.CreateInput
	}{
		{"no_parent", comment.CreateInput{Content: "orphan"}},
		{"both_parents", comment.CreateInput{
			Content: "greedy", QuestionID: ptr(questionID), AnswerID: ptr(answerID)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := comment.NewService(repo)

			_, err := service.Create(context.Background(), authorID, tt.input)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, "target", ae.Details[0].Field)

			// The invalid row never reached the store.
			assert.Empty(t, repo.comments)
		})
	}
}

func TestService_Create_EmptyContent(t *testing.T) {
	service := comment.NewService(newFakeRepository())

	_, err := service.Create(context.Background(), authorID, comment.CreateInput{
		QuestionID: ptr(questionID),
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_Delete_OnlyAuthorOrModerator(t *testing.T) {
	repo := newFakeRepository()
	service := comment.NewService(repo)

	created, err := service.Create(context.Background(), authorID, comment.CreateInput{
		Content:    "a remark",
		QuestionID: ptr(questionID),
	})
	require.NoError(t, err)

	err = service.Delete(context.Background(), otherUser, false, created.ID)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)

	require.NoError(t, service.Delete(context.Background(), otherUser, true, created.ID))
	assert.Empty(t, repo.comments)
}
