package tag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/askora/internal/platform/database/schema"
	"github.com/taibuivan/askora/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		strings.Join(schema.QnaTag.Columns(), ", "),
		schema.QnaTag.Table, schema.QnaTag.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	return tags, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Tag, error) {
	return repository.getOne(context, schema.QnaTag.ID, id)
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Tag, error) {
	return repository.getOne(context, schema.QnaTag.Slug, slug)
}

func (repository *PostgresRepository) getOne(context context.Context, column, value string) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.QnaTag.Columns(), ", "),
		schema.QnaTag.Table, column)

	t := &Tag{}
	err := repository.db.QueryRow(context, query, value).Scan(
		&t.ID, &t.Name, &t.Slug, &t.Description, &t.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tag")
	}

	return t, nil
}

func (repository *PostgresRepository) Create(context context.Context, tag *Tag) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)`,
		schema.QnaTag.Table, strings.Join(schema.QnaTag.Columns(), ", "))

	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now()
	}

	// Duplicate names/slugs surface as 409 CONFLICT through dberr.
	_, err := repository.db.Exec(context, query,
		tag.ID, tag.Name, tag.Slug, tag.Description, tag.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_tag")
	}

	return nil
}
