// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/askora/internal/platform/apperr"
	"github.com/taibuivan/askora/internal/qna/tag"
)

type fakeRepository struct {
	tags []*tag.Tag
}

func (f *fakeRepository) List(_ context.Context) ([]*tag.Tag, error) {
	return f.tags, nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*tag.Tag, error) {
	for _, t := range f.tags {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, apperr.NotFound("Tag")
}

func (f *fakeRepository) GetBySlug(_ context.Context, slug string) (*tag.Tag, error) {
	for _, t := range f.tags {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, apperr.NotFound("Tag")
}

func (f *fakeRepository) Create(_ context.Context, created *tag.Tag) error {
	for _, t := range f.tags {
		if t.Name == created.Name || t.Slug == created.Slug {
			return apperr.Conflict("Duplicate entry violates a uniqueness rule")
		}
	}
	f.tags = append(f.tags, created)
	return nil
}

func TestService_Create_DerivesSlug(t *testing.T) {
	service := tag.NewService(&fakeRepository{})

	created, err := service.Create(context.Background(), tag.CreateInput{
		Name:        "Go Generics",
		Description: "Type parameters and constraints",
	})

	require.NoError(t, err)
	assert.Equal(t, "go-generics", created.Slug)
	assert.NotEmpty(t, created.ID)
}

func TestService_Create_DuplicateName(t *testing.T) {
	repo := &fakeRepository{}
	service := tag.NewService(repo)

	_, err := service.Create(context.Background(), tag.CreateInput{Name: "postgres"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), tag.CreateInput{Name: "postgres"})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
}

func TestService_Create_EmptySlug(t *testing.T) {
	service := tag.NewService(&fakeRepository{})

	_, err := service.Create(context.Background(), tag.CreateInput{Name: "!!!"})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestService_Get(t *testing.T) {
	repo := &fakeRepository{}
	service := tag.NewService(repo)

	created, err := service.Create(context.Background(), tag.CreateInput{Name: "Testing"})
	require.NoError(t, err)

	found, err := service.Get(context.Background(), "testing")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.Get(context.Background(), "missing")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}
