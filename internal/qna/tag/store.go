package tag

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Tag, error)
	GetByID(ctx context.Context, id string) (*Tag, error)
	GetBySlug(ctx context.Context, slug string) (*Tag, error)
	Create(ctx context.Context, tag *Tag) error
}
