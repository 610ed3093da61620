// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package answer

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/platform/constants"
	"github.com/taibuivan/askora/internal/platform/validate"
	"github.com/taibuivan/askora/pkg/uuid"
)

const ContentMaxLength = 30000

// CreateInput carries the fields accepted when posting an answer.
type CreateInput struct {
	Content string `json:"content"`
}

type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// ListByQuestion returns a question's answers, accepted answer first.
func (service *Service) ListByQuestion(context context.Context, questionID string) ([]*Answer, error) {
	v := &validate.Validator{}
	v.UUID("question_id", questionID)
	if err := v.Err(); err != nil {
		return nil, err
	}

	// Surface a 404 for unknown questions instead of an empty list.
	if _, err := service.repository.FindQuestionAuthor(context, questionID); err != nil {
		return nil, questionNotFound(err)
	}

	return service.repository.ListByQuestion(context, questionID)
}

// Create posts an answer under a question.
func (service *Service) Create(context context.Context, authorID, questionID string, input CreateInput) (*Answer, error) {
	v := &validate.Validator{}
	v.UUID("question_id", questionID)
	v.Required("content", input.Content).MaxLen("content", input.Content, ContentMaxLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repository.FindQuestionAuthor(context, questionID); err != nil {
		return nil, questionNotFound(err)
	}

	answer := &Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		AuthorID:   authorID,
		Content:    input.Content,
	}
	if err := service.repository.Create(context, answer); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, answer.ID)
}

// Get resolves a single answer by id.
func (service *Service) Get(context context.Context, id string) (*Answer, error) {
	v := &validate.Validator{}
	v.UUID("id", id)
	if err := v.Err(); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, id)
}

// Update rewrites an answer's content. Only the author may edit.
func (service *Service) Update(context context.Context, userID, id string, input CreateInput) (*Answer, error) {
	v := &validate.Validator{}
	v.UUID("id", id)
	v.Required("content", input.Content).MaxLen("content", input.Content, ContentMaxLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	answer, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if answer.AuthorID != userID {
		return nil, apperr.Forbidden("Only the author can edit this answer")
	}

	if err := service.repository.Update(context, id, input.Content); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, id)
}

// Delete removes an answer. The author or a moderator may delete.
func (service *Service) Delete(context context.Context, userID string, isModerator bool, id string) error {
	v := &validate.Validator{}
	v.UUID("id", id)
	if err := v.Err(); err != nil {
		return err
	}

	answer, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}
	if answer.AuthorID != userID && !isModerator {
		return apperr.Forbidden("Only the author can delete this answer")
	}

	return service.repository.Delete(context, id)
}

// Accept marks an answer as the accepted solution of its question.
//
// Only the question author may accept. Accepting answer B after answer A
// transfers the accepted flag: the store unmarks A, marks B, and flags the
// question solved in one transaction. The answer author receives a flat
// reputation bonus.
func (service *Service) Accept(context context.Context, userID, answerID string) (*Answer, error) {
	v := &validate.Validator{}
	v.UUID("id", answerID)
	if err := v.Err(); err != nil {
		return nil, err
	}

	answer, err := service.repository.FindByID(context, answerID)
	if err != nil {
		return nil, err
	}

	questionAuthor, err := service.repository.FindQuestionAuthor(context, answer.QuestionID)
	if err != nil {
		return nil, questionNotFound(err)
	}
	if questionAuthor != userID {
		return nil, apperr.Forbidden("Only the question author can accept an answer")
	}

	err = service.repository.Accept(context, answer.QuestionID, answer.ID, answer.AuthorID, constants.AcceptedAnswerAward)
	if err != nil {
		return nil, err
	}

	slog.Info("answer accepted",
		slog.String("question_id", answer.QuestionID),
		slog.String("answer_id", answer.ID))

	return service.repository.FindByID(context, answerID)
}

// questionNotFound renames a generic row miss so clients see which resource
// is absent.
func questionNotFound(err error) error {
	if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
		return apperr.NotFound("Question")
	}
	return err
}
