// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/askora/internal/platform/database/schema"
	"github.com/taibuivan/askora/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL comment repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const hydratedColumns = `
	c.id, c.authorid, a.username, c.content, c.questionid, c.answerid, c.createdat`

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, authorid, content, questionid, answerid, createdat)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.QnaComment.Table)

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		comment.ID, comment.AuthorID, comment.Content, comment.QuestionID, comment.AnswerID, comment.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := `
		SELECT ` + hydratedColumns + `
		FROM qna.comment c
		JOIN users.account a ON a.id = c.authorid
		WHERE c.id = $1`

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID,
		&comment.AuthorID,
		&comment.AuthorUsername,
		&comment.Content,
		&comment.QuestionID,
		&comment.AnswerID,
		&comment.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_comment")
	}

	return comment, nil
}

func (repository *PostgresRepository) ListByQuestion(context context.Context, questionID string) ([]*Comment, error) {
	return repository.list(context, "c.questionid = $1", questionID)
}

func (repository *PostgresRepository) ListByAnswer(context context.Context, answerID string) ([]*Comment, error) {
	return repository.list(context, "c.answerid = $1", answerID)
}

func (repository *PostgresRepository) list(context context.Context, predicate string, arg any) ([]*Comment, error) {
	query := `
		SELECT ` + hydratedColumns + `
		FROM qna.comment c
		JOIN users.account a ON a.id = c.authorid
		WHERE ` + predicate + `
		ORDER BY c.createdat ASC`

	rows, err := repository.pool.Query(context, query, arg)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.AuthorID,
			&comment.AuthorUsername,
			&comment.Content,
			&comment.QuestionID,
			&comment.AnswerID,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.QnaComment.Table, schema.QnaComment.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
