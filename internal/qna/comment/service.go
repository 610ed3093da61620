// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment implements short remarks on questions and answers.
//
// A comment attaches to exactly one parent. The rule is enforced here in
// the service rather than by a storage constraint, so a malformed payload
// is rejected with a field-level validation error before any insert.
package comment

import (
	"context"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/platform/validate"
	"github.com/taibuivan/askora/pkg/uuid"
)

const ContentMaxLength = 1000

// CreateInput carries the fields accepted when posting a comment.
// Exactly one of QuestionID / AnswerID must be set.
type CreateInput struct {
	Content    string  `json:"content"`
	QuestionID *string `json:"question_id,omitempty"`
	AnswerID   *string `json:"answer_id,omitempty"`
}

type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// Create posts a comment on a question or an answer.
func (service *Service) Create(context context.Context, authorID string, input CreateInput) (*Comment, error) {
	v := &validate.Validator{}
	v.Required("content", input.Content).MaxLen("content", input.Content, ContentMaxLength)
	switch {
	case input.QuestionID == nil && input.AnswerID == nil:
		v.Custom("target", true, "Either question_id or answer_id is required")
	case input.QuestionID != nil && input.AnswerID != nil:
		v.Custom("target", true, "Only one of question_id or answer_id may be set")
	case input.QuestionID != nil:
		v.UUID("question_id", *input.QuestionID)
	default:
		v.UUID("answer_id", *input.AnswerID)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:         uuid.New(),
		AuthorID:   authorID,
		Content:    input.Content,
		QuestionID: input.QuestionID,
		AnswerID:   input.AnswerID,
	}
	if err := service.repository.Create(context, comment); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, comment.ID)
}

// ListByQuestion returns a question's comments, oldest first.
func (service *Service) ListByQuestion(context context.Context, questionID string) ([]*Comment, error) {
	v := &validate.Validator{}
	v.UUID("question_id", questionID)
	if err := v.Err(); err != nil {
		return nil, err
	}

	return service.repository.ListByQuestion(context, questionID)
}

// ListByAnswer returns an answer's comments, oldest first.
func (service *Service) ListByAnswer(context context.Context, answerID string) ([]*Comment, error) {
	v := &validate.Validator{}
	v.UUID("answer_id", answerID)
	if err := v.Err(); err != nil {
		return nil, err
	}

	return service.repository.ListByAnswer(context, answerID)
}

// Delete removes a comment. The author or a moderator may delete.
func (service *Service) Delete(context context.Context, userID string, isModerator bool, id string) error {
	v := &validate.Validator{}
	v.UUID("id", id)
	if err := v.Err(); err != nil {
		return err
	}

	comment, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID && !isModerator {
		return apperr.Forbidden("Only the author can delete this comment")
	}

	return service.repository.Delete(context, id)
}
