// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package question

import (
	"context"
	"log/slog"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/platform/dberr"
	"github.com/taibuivan/askora/internal/platform/validate"
	"github.com/taibuivan/askora/pkg/pagination"
	"github.com/taibuivan/askora/pkg/slug"
	"github.com/taibuivan/askora/pkg/uuid"
)

const (
	TitleMinLength   = 5
	TitleMaxLength   = 255
	ContentMaxLength = 30000
	MaxTagsPerPost   = 5
)

// CreateInput carries the fields accepted when posting a question.
type CreateInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	TagIDs  []string `json:"tag_ids"`
}

type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// List returns a filtered page of questions plus pagination metadata.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Question, pagination.Meta, error) {
	questions, total, err := service.repository.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return questions, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Create validates the input, assigns a collision-free slug, and persists the
// question together with its tag links.
func (service *Service) Create(context context.Context, authorID string, input CreateInput) (*Question, error) {
	v := &validate.Validator{}
	v.Required("title", input.Title).
		MinLen("title", input.Title, TitleMinLength).
		MaxLen("title", input.Title, TitleMaxLength)
	v.Required("content", input.Content).MaxLen("content", input.Content, ContentMaxLength)
	v.Custom("tag_ids", len(input.TagIDs) > MaxTagsPerPost, "Too many tags")
	for _, tagID := range input.TagIDs {
		v.UUID("tag_ids", tagID)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	base := slug.From(input.Title)
	if base == "" {
		return nil, validate.RequiredError("title", "Must contain at least one letter or digit")
	}

	question := &Question{
		ID:       uuid.New(),
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: authorID,
		Tags:     []TagRef{},
	}

	// A concurrent insert can claim the chosen slug between the index scan
	// and the INSERT. One re-derivation covers that window; a second failure
	// is reported as a conflict.
	for attempt := 0; attempt < 2; attempt++ {
		assigned, err := service.assignSlug(context, base)
		if err != nil {
			return nil, err
		}
		question.Slug = assigned

		err = service.repository.Create(context, question, input.TagIDs)
		if err == nil {
			return service.repository.FindByID(context, question.ID)
		}
		if !dberr.IsUniqueViolation(err) {
			return nil, err
		}

		slog.Warn("question slug collision, re-deriving",
			slog.String("slug", assigned))
	}

	return nil, apperr.Conflict("Could not assign a unique slug")
}

// assignSlug picks the base slug when free, otherwise the lowest numeric
// suffix (-2, -3, …) not yet taken.
func (service *Service) assignSlug(context context.Context, base string) (string, error) {
	taken, err := service.repository.ExistingSlugs(context, base)
	if err != nil {
		return "", err
	}

	existing := make(map[string]bool, len(taken))
	for _, s := range taken {
		existing[s] = true
	}

	if !existing[base] {
		return base, nil
	}
	for n := 2; ; n++ {
		candidate := slug.WithSuffix(base, n)
		if !existing[candidate] {
			return candidate, nil
		}
	}
}

// Get resolves a question by UUID or slug and registers a view.
func (service *Service) Get(context context.Context, idOrSlug string) (*Question, error) {
	question, err := service.find(context, idOrSlug)
	if err != nil {
		return nil, err
	}

	if err := service.repository.IncrementViews(context, question.ID); err != nil {
		return nil, err
	}
	question.Views++

	return question, nil
}

// Update rewrites a question. Only the author may edit.
func (service *Service) Update(context context.Context, userID, id string, input UpdateInput) (*Question, error) {
	v := &validate.Validator{}
	v.UUID("id", id)
	v.Required("title", input.Title).
		MinLen("title", input.Title, TitleMinLength).
		MaxLen("title", input.Title, TitleMaxLength)
	v.Required("content", input.Content).MaxLen("content", input.Content, ContentMaxLength)
	v.Custom("tag_ids", len(input.TagIDs) > MaxTagsPerPost, "Too many tags")
	if err := v.Err(); err != nil {
		return nil, err
	}

	question, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if question.AuthorID != userID {
		return nil, apperr.Forbidden("Only the author can edit this question")
	}

	question.Title = input.Title
	question.Content = input.Content
	if err := service.repository.Update(context, question, input.TagIDs); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, id)
}

// Delete removes a question. The author or a moderator may delete.
func (service *Service) Delete(context context.Context, userID string, isModerator bool, id string) error {
	v := &validate.Validator{}
	v.UUID("id", id)
	if err := v.Err(); err != nil {
		return err
	}

	question, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}
	if question.AuthorID != userID && !isModerator {
		return apperr.Forbidden("Only the author can delete this question")
	}

	return service.repository.Delete(context, id)
}

// ListCompact returns every question in insertion order in the reduced
// read-only shape.
func (service *Service) ListCompact(context context.Context) ([]*CompactView, error) {
	return service.repository.ListCompact(context)
}

// GetCompact returns a single question in the reduced read-only shape.
// Unlike [Service.Get] it never increments the view counter.
func (service *Service) GetCompact(context context.Context, id string) (*CompactView, error) {
	question, err := service.find(context, id)
	if err != nil {
		return nil, err
	}

	return &CompactView{
		ID:      question.ID,
		Title:   question.Title,
		Content: question.Content,
		Author:  question.AuthorUsername,
	}, nil
}

// find dispatches on the identifier shape: UUIDs hit the primary key,
// everything else is treated as a slug.
func (service *Service) find(context context.Context, idOrSlug string) (*Question, error) {
	if uuid.IsValid(idOrSlug) {
		return service.repository.FindByID(context, idOrSlug)
	}
	return service.repository.FindBySlug(context, idOrSlug)
}
