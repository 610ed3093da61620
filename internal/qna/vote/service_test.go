// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vote_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/qna/vote"
)

const (
	userA      = "01920000-0000-7000-8000-0000000000aa"
	userB      = "01920000-0000-7000-8000-0000000000bb"
	questionID = "01920000-0000-7000-8000-000000000001"
	answerID   = "01920000-0000-7000-8000-000000000002"
)

// fakeRepository reproduces the partial unique indexes: a second vote by the
// same user on the same target is rejected with a conflict, exactly as the
// SQLSTATE 23505 mapping does.
type fakeRepository struct {
	votes map[string]*vote.Vote
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{votes: map[string]*vote.Vote{}}
}

func targetKey(userID string, questionID, answerID *string) string {
	if questionID != nil {
		return userID + "/q/" + *questionID
	}
	return userID + "/a/" + *answerID
}

func (f *fakeRepository) Create(_ context.Context, v *vote.Vote) error {
	key := targetKey(v.UserID, v.QuestionID, v.AnswerID)
	if _, exists := f.votes[key]; exists {
		return apperr.Conflict("Duplicate entry violates a uniqueness rule")
	}
	f.votes[key] = v
	return nil
}

func (f *fakeRepository) FindByTarget(_ context.Context, userID string, questionID, answerID *string) (*vote.Vote, error) {
	if v, ok := f.votes[targetKey(userID, questionID, answerID)]; ok {
		return v, nil
	}
	return nil, apperr.NotFound("Resource")
}

func (f *fakeRepository) SetValue(_ context.Context, id string, value int) error {
	for _, v := range f.votes {
		if v.ID == id {
			v.Value = value
			return nil
		}
	}
	return apperr.NotFound("Resource")
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	for key, v := range f.votes {
		if v.ID == id {
			delete(f.votes, key)
			return nil
		}
	}
	return apperr.NotFound("Resource")
}

func ptr(s string) *string { return &s }

func TestService_Cast(t *testing.T) {
	service := vote.NewService(newFakeRepository())

	cast, err := service.Cast(context.Background(), userA, vote.CastInput{
		Value:      1,
		QuestionID: ptr(questionID),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, cast.Value)
	assert.Equal(t, userA, cast.UserID)
	require.NotNil(t, cast.QuestionID)
	assert.Nil(t, cast.AnswerID)
}

func TestService_Cast_DuplicateIsConflict(t *testing.T) {
	service := vote.NewService(newFakeRepository())

	_, err := service.Cast(context.Background(), userA, vote.CastInput{Value: 1, QuestionID: ptr(questionID)})
	require.NoError(t, err)

	// Same user, same target — even with the opposite value.
	_, err = service.Cast(context.Background(), userA, vote.CastInput{Value: -1, QuestionID: ptr(questionID)})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
}

func TestService_Cast_IndependentTargets(t *testing.T) {
	service := vote.NewService(newFakeRepository())

	// One user may vote on a question and on an answer; two users may vote
	// on the same target.
	_, err := service.Cast(context.Background(), userA, vote.CastInput{Value: 1, QuestionID: ptr(questionID)})
	require.NoError(t, err)
	_, err = service.Cast(context.Background(), userA, vote.CastInput{Value: -1, AnswerID: ptr(answerID)})
	require.NoError(t, err)
	_, err = service.Cast(context.Background(), userB, vote.CastInput{Value: 1, QuestionID: ptr(questionID)})
	require.NoError(t, err)
}

func TestService_Cast_InvalidValue(t *testing.T) {
	tests := []struct {
		name  string
		value int
	}{
		{"zero", 0},
		{"too_high", 2},
		{"too_low", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := vote.NewService(newFakeRepository())

			_, err := service.Cast(context.Background(), userA, vote.CastInput{
				Value:      tt.value,
				QuestionID: ptr(questionID),
			})

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

func TestService_Cast_ExactlyOneTarget(t *testing.T) {
	tests := []struct {
		name  string
		input vote.CastInput
	}{
		{"no_target", vote.CastInput{Value: 1}},
		{"both_targets", vote.CastInput{Value: 1, QuestionID: ptr(questionID), AnswerID: ptr(answerID)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := vote.NewService(newFakeRepository())

			_, err := service.Cast(context.Background(), userA, tt.input)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, "target", ae.Details[0].Field)
		})
	}
}

func TestService_Change(t *testing.T) {
	repo := newFakeRepository()
	service := vote.NewService(repo)

	_, err := service.Cast(context.Background(), userA, vote.CastInput{Value: 1, QuestionID: ptr(questionID)})
	require.NoError(t, err)

	changed, err := service.Change(context.Background(), userA, vote.CastInput{Value: -1, QuestionID: ptr(questionID)})

	require.NoError(t, err)
	assert.Equal(t, -1, changed.Value)
	// Still exactly one vote row.
	assert.Len(t, repo.votes, 1)
}

func TestService_Change_WithoutExistingVote(t *testing.T) {
	service := vote.NewService(newFakeRepository())

	_, err := service.Change(context.Background(), userA, vote.CastInput{Value: 1, QuestionID: ptr(questionID)})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	assert.Equal(t, "Vote not found", ae.Message)
}

func TestService_Retract(t *testing.T) {
	repo := newFakeRepository()
	service := vote.NewService(repo)

	_, err := service.Cast(context.Background(), userA, vote.CastInput{Value: 1, AnswerID: ptr(answerID)})
	require.NoError(t, err)

	require.NoError(t, service.Retract(context.Background(), userA, nil, ptr(answerID)))
	assert.Empty(t, repo.votes)

	// Retracting again is a miss.
	err = service.Retract(context.Background(), userA, nil, ptr(answerID))
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}
