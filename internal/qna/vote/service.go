// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package vote implements up/down voting on questions and answers.

Each user holds at most one vote per target. Duplicates are rejected by the
storage layer's unique indexes and surface as 409 CONFLICT; the service
never screens with a read before inserting, so concurrent duplicate casts
cannot slip through. Casting, changing, or retracting a vote never touches
reputation — reputation is recomputed on demand by the profile workflows.
*/
package vote

import (
	"context"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/platform/validate"
	"github.com/taibuivan/askora/pkg/uuid"
)

// CastInput carries the fields accepted when casting or changing a vote.
// Exactly one of QuestionID / AnswerID must be set.
type CastInput struct {
	Value      int     `json:"value"`
	QuestionID *string `json:"question_id,omitempty"`
	AnswerID   *string `json:"answer_id,omitempty"`
}

type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// Cast records a new vote for the caller.
func (service *Service) Cast(context context.Context, userID string, input CastInput) (*Vote, error) {
	if err := service.validateInput(input); err != nil {
		return nil, err
	}

	vote := &Vote{
		ID:         uuid.New(),
		UserID:     userID,
		Value:      input.Value,
		QuestionID: input.QuestionID,
		AnswerID:   input.AnswerID,
	}
	if err := service.repository.Create(context, vote); err != nil {
		return nil, err
	}

	return vote, nil
}

// Change flips the caller's existing vote on the target to input.Value.
func (service *Service) Change(context context.Context, userID string, input CastInput) (*Vote, error) {
	if err := service.validateInput(input); err != nil {
		return nil, err
	}

	vote, err := service.repository.FindByTarget(context, userID, input.QuestionID, input.AnswerID)
	if err != nil {
		return nil, voteNotFound(err)
	}

	if vote.Value != input.Value {
		if err := service.repository.SetValue(context, vote.ID, input.Value); err != nil {
			return nil, err
		}
		vote.Value = input.Value
	}

	return vote, nil
}

// Retract removes the caller's vote from the target.
func (service *Service) Retract(context context.Context, userID string, questionID, answerID *string) error {
	if err := service.validateTarget(questionID, answerID); err != nil {
		return err
	}

	vote, err := service.repository.FindByTarget(context, userID, questionID, answerID)
	if err != nil {
		return voteNotFound(err)
	}

	return service.repository.Delete(context, vote.ID)
}

func (service *Service) validateInput(input CastInput) error {
	v := &validate.Validator{}
	v.Custom("value", input.Value != 1 && input.Value != -1, "Must be +1 or -1")
	if err := v.Err(); err != nil {
		return err
	}

	return service.validateTarget(input.QuestionID, input.AnswerID)
}

// validateTarget enforces the exactly-one-target rule before the row ever
// reaches the CHECK constraint.
func (service *Service) validateTarget(questionID, answerID *string) error {
	v := &validate.Validator{}
	switch {
	case questionID == nil && answerID == nil:
		v.Custom("target", true, "Either question_id or answer_id is required")
	case questionID != nil && answerID != nil:
		v.Custom("target", true, "Only one of question_id or answer_id may be set")
	case questionID != nil:
		v.UUID("question_id", *questionID)
	default:
		v.UUID("answer_id", *answerID)
	}
	return v.Err()
}

func voteNotFound(err error) error {
	if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
		return apperr.NotFound("Vote")
	}
	return err
}
