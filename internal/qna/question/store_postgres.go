// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package question provides the PostgreSQL implementation for question storage.

It leans on a few Postgres features to keep list endpoints to a single
round-trip:
  - JSON Aggregation: tags are aggregated into a JSON array per row.
  - Window Functions: COUNT(*) OVER() returns the total match count without
    a second query.
  - Correlated Sub-queries: vote score and answer count are computed inline.
  - ACID Transactions: question rows and their tag junction rows are written
    atomically.
*/
package question

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/askora/internal/platform/database/schema"
	"github.com/taibuivan/askora/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL question repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// hydratedColumns is the shared SELECT list for fully hydrated question rows.
// It expects the aliases `q` (qna.question) and `a` (users.account) in scope.
const hydratedColumns = `
	q.id, q.title, q.content, q.authorid, a.username, q.views, q.slug,
	q.issolved, q.acceptedanswerid,
	COALESCE((SELECT SUM(v.value) FROM qna.vote v WHERE v.questionid = q.id), 0) AS score,
	(SELECT COUNT(*) FROM qna.answer ans WHERE ans.questionid = q.id) AS answer_count,
	COALESCE((
		SELECT json_agg(json_build_object('id', t.id, 'name', t.name, 'slug', t.slug) ORDER BY t.name)
		FROM qna.tag t
		JOIN qna.questiontag qt ON t.id = qt.tagid
		WHERE qt.questionid = q.id
	), '[]') AS tags,
	q.createdat, q.updatedat`

// Create inserts the question row and its tag junction rows in one transaction.
func (repository *PostgresRepository) Create(context context.Context, question *Question, tagIDs []string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("question_begin_transaction_failed: %w", err)
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, content, authorid, views, slug, issolved, createdat, updatedat)
		VALUES ($1, $2, $3, $4, 0, $5, FALSE, $6, $6)`,
		schema.QnaQuestion.Table)

	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	_, err = transaction.Exec(context, query,
		question.ID, question.Title, question.Content, question.AuthorID, question.Slug, now)
	if err != nil {
		return dberr.Wrap(err, "create_question")
	}

	if err := replaceTagJunctions(context, transaction, question.ID, tagIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("question_commit_transaction_failed: %w", err)
	}

	return nil
}

// List returns a filtered, paginated slice of questions and the total count.
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Question, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT ` + hydratedColumns + `,
		COUNT(*) OVER() AS total_count
		FROM qna.question q
		JOIN users.account a ON a.id = q.authorid
		WHERE a.deletedat IS NULL
	`)

	// Search across title and content
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (q.title ILIKE $%d OR q.content ILIKE $%d)", argID, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Tag filtering via junction existence
	if filter.TagSlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(`
			AND EXISTS (
				SELECT 1 FROM qna.questiontag qt
				JOIN qna.tag t ON t.id = qt.tagid
				WHERE qt.questionid = q.id AND t.slug = $%d
			)`, argID))
		args = append(args, filter.TagSlug)
		argID++
	}

	// Resolution state filtering
	if filter.Solved != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND q.issolved = $%d", argID))
		args = append(args, *filter.Solved)
		argID++
	}

	sort := "q.createdat"
	switch filter.Sort {
	case "views":
		sort = "q.views"
	case "score":
		sort = "score"
	case "latest":
		sort = "q.createdat"
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, q.id DESC", sort))

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_questions")
	}
	defer rows.Close()

	questions := make([]*Question, 0)
	var totalCount int

	for rows.Next() {
		question := &Question{}
		var tagsJSON []byte
		err := rows.Scan(
			&question.ID,
			&question.Title,
			&question.Content,
			&question.AuthorID,
			&question.AuthorUsername,
			&question.Views,
			&question.Slug,
			&question.IsSolved,
			&question.AcceptedAnswerID,
			&question.Score,
			&question.AnswerCount,
			&tagsJSON,
			&question.CreatedAt,
			&question.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_question")
		}

		if err := json.Unmarshal(tagsJSON, &question.Tags); err != nil {
			return nil, 0, fmt.Errorf("question_unmarshal_tags_failed: %w", err)
		}

		questions = append(questions, question)
	}

	return questions, totalCount, nil
}

// ListCompact returns every question in insertion order, reduced to the
// read-only listing shape.
func (repository *PostgresRepository) ListCompact(context context.Context) ([]*CompactView, error) {
	const query = `
		SELECT q.id, q.title, q.content, a.username
		FROM qna.question q
		JOIN users.account a ON a.id = q.authorid
		ORDER BY q.createdat ASC, q.id ASC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_questions_compact")
	}
	defer rows.Close()

	views := make([]*CompactView, 0)
	for rows.Next() {
		view := &CompactView{}
		if err := rows.Scan(&view.ID, &view.Title, &view.Content, &view.Author); err != nil {
			return nil, dberr.Wrap(err, "scan_question_compact")
		}
		views = append(views, view)
	}

	return views, nil
}

// FindByID retrieves a hydrated question by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Question, error) {
	return repository.findOne(context, "q.id = $1", id)
}

// FindBySlug retrieves a hydrated question by its slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Question, error) {
	return repository.findOne(context, "q.slug = $1", slug)
}

func (repository *PostgresRepository) findOne(context context.Context, predicate string, arg any) (*Question, error) {
	query := `
		SELECT ` + hydratedColumns + `
		FROM qna.question q
		JOIN users.account a ON a.id = q.authorid
		WHERE ` + predicate

	question := &Question{}
	var tagsJSON []byte
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&question.ID,
		&question.Title,
		&question.Content,
		&question.AuthorID,
		&question.AuthorUsername,
		&question.Views,
		&question.Slug,
		&question.IsSolved,
		&question.AcceptedAnswerID,
		&question.Score,
		&question.AnswerCount,
		&tagsJSON,
		&question.CreatedAt,
		&question.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_question")
	}

	if err := json.Unmarshal(tagsJSON, &question.Tags); err != nil {
		return nil, fmt.Errorf("question_unmarshal_tags_failed: %w", err)
	}

	return question, nil
}

// Update rewrites the editable fields and replaces the tag junction rows in
// one transaction.
func (repository *PostgresRepository) Update(context context.Context, question *Question, tagIDs []string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("question_begin_transaction_failed: %w", err)
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`UPDATE %s SET title = $2, content = $3, updatedat = $4 WHERE id = $1`,
		schema.QnaQuestion.Table)

	tag, err := transaction.Exec(context, query,
		question.ID, question.Title, question.Content, time.Now())
	if err != nil {
		return dberr.Wrap(err, "update_question")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.QnaQuestionTag.Table, schema.QnaQuestionTag.QuestionID)
	if _, err := transaction.Exec(context, deleteQuery, question.ID); err != nil {
		return dberr.Wrap(err, "clear_question_tags")
	}

	if err := replaceTagJunctions(context, transaction, question.ID, tagIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("question_commit_transaction_failed: %w", err)
	}

	return nil
}

// Delete removes the question. Junction rows, answers, comments, and votes
// follow via ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.QnaQuestion.Table, schema.QnaQuestion.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_question")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// IncrementViews bumps the view counter. The counter update deliberately
// skips updatedat so reads never mask content edits.
func (repository *PostgresRepository) IncrementViews(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.QnaQuestion.Table,
		schema.QnaQuestion.Views, schema.QnaQuestion.Views,
		schema.QnaQuestion.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "increment_question_views")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// ExistingSlugs returns the slugs matching base exactly or base plus a
// numeric suffix. The LIKE pattern over-matches (any suffix after the
// hyphen); the caller only probes exact candidates so that is harmless.
func (repository *PostgresRepository) ExistingSlugs(context context.Context, base string) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 OR %s LIKE $2`,
		schema.QnaQuestion.Slug, schema.QnaQuestion.Table,
		schema.QnaQuestion.Slug, schema.QnaQuestion.Slug)

	rows, err := repository.pool.Query(context, query, base, base+"-%")
	if err != nil {
		return nil, dberr.Wrap(err, "list_question_slugs")
	}
	defer rows.Close()

	slugs := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, dberr.Wrap(err, "scan_question_slug")
		}
		slugs = append(slugs, s)
	}

	return slugs, nil
}

// replaceTagJunctions inserts a junction row per tag within the transaction.
func replaceTagJunctions(context context.Context, transaction pgx.Tx, questionID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.QnaQuestionTag.Table,
		schema.QnaQuestionTag.QuestionID, schema.QnaQuestionTag.TagID)

	for _, tagID := range tagIDs {
		if _, err := transaction.Exec(context, query, questionID, tagID); err != nil {
			return dberr.Wrap(err, "attach_question_tag")
		}
	}

	return nil
}
