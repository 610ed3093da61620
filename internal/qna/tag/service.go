// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"

	"github.com/taibuivan/askora/internal/platform/validate"
	"github.com/taibuivan/askora/pkg/slug"
	"github.com/taibuivan/askora/pkg/uuid"
)

const (
	NameMaxLength        = 60
	DescriptionMaxLength = 500
)

// CreateInput carries the fields accepted when creating a tag.
type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// List returns every tag ordered by name.
func (service *Service) List(context context.Context) ([]*Tag, error) {
	return service.repository.List(context)
}

// Get resolves a tag by id or slug.
func (service *Service) Get(context context.Context, reference string) (*Tag, error) {
	if uuid.IsValid(reference) {
		return service.repository.GetByID(context, reference)
	}

	v := &validate.Validator{}
	v.Required("slug", reference).Slug("slug", reference)
	if err := v.Err(); err != nil {
		return nil, err
	}

	return service.repository.GetBySlug(context, reference)
}

// Create registers a new tag. The slug is derived from the name; duplicate
// names or slugs are reported as a conflict.
func (service *Service) Create(context context.Context, input CreateInput) (*Tag, error) {
	v := &validate.Validator{}
	v.Required("name", input.Name).MaxLen("name", input.Name, NameMaxLength)
	v.MaxLen("description", input.Description, DescriptionMaxLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	tagSlug := slug.From(input.Name)
	if tagSlug == "" {
		return nil, validate.RequiredError("name", "Must contain at least one letter or digit")
	}

	tag := &Tag{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        tagSlug,
		Description: input.Description,
	}
	if err := service.repository.Create(context, tag); err != nil {
		return nil, err
	}

	return tag, nil
}
