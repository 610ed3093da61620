// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package admin provides the role-gated browsing surface: read-only listings
// of users, questions, and recent votes for operators.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/askora/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL admin repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListUsers returns a page of accounts joined with profile reputation.
func (repository *PostgresRepository) ListUsers(context context.Context, limit, offset int) ([]*UserEntry, int, error) {
	const query = `
		SELECT a.id, a.username, a.email, a.role, COALESCE(p.reputation, 0),
		       a.createdat, COUNT(*) OVER() AS total_count
		FROM users.account a
		LEFT JOIN users.profile p ON p.userid = a.id
		WHERE a.deletedat IS NULL
		ORDER BY a.createdat DESC, a.id DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "admin_list_users")
	}
	defer rows.Close()

	entries := make([]*UserEntry, 0)
	var totalCount int
	for rows.Next() {
		entry := &UserEntry{}
		err := rows.Scan(&entry.ID, &entry.Username, &entry.Email, &entry.Role,
			&entry.Reputation, &entry.CreatedAt, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "admin_scan_user")
		}
		entries = append(entries, entry)
	}

	return entries, totalCount, nil
}

// ListQuestions returns a page of questions, optionally filtered by
// resolution state and a title/content search.
func (repository *PostgresRepository) ListQuestions(context context.Context, solved *bool, search string, limit, offset int) ([]*QuestionEntry, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT q.id, q.title, a.username, q.issolved, q.views, q.createdat,
		       COUNT(*) OVER() AS total_count
		FROM qna.question q
		JOIN users.account a ON a.id = q.authorid
		WHERE TRUE
	`)

	if solved != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND q.issolved = $%d", argID))
		args = append(args, *solved)
		argID++
	}
	if search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (q.title ILIKE $%d OR q.content ILIKE $%d)", argID, argID))
		args = append(args, "%"+search+"%")
		argID++
	}

	queryBuilder.WriteString(" ORDER BY q.createdat DESC, q.id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "admin_list_questions")
	}
	defer rows.Close()

	entries := make([]*QuestionEntry, 0)
	var totalCount int
	for rows.Next() {
		entry := &QuestionEntry{}
		err := rows.Scan(&entry.ID, &entry.Title, &entry.Author, &entry.IsSolved,
			&entry.Views, &entry.CreatedAt, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "admin_scan_question")
		}
		entries = append(entries, entry)
	}

	return entries, totalCount, nil
}

// ListRecentVotes returns the newest votes with voter and target labels.
func (repository *PostgresRepository) ListRecentVotes(context context.Context, limit int) ([]*VoteEntry, error) {
	const query = `
		SELECT v.id, a.username, v.value, q.title, v.answerid, v.createdat
		FROM qna.vote v
		JOIN users.account a ON a.id = v.userid
		LEFT JOIN qna.question q ON q.id = v.questionid
		ORDER BY v.createdat DESC, v.id DESC
		LIMIT $1`

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "admin_list_votes")
	}
	defer rows.Close()

	entries := make([]*VoteEntry, 0)
	for rows.Next() {
		entry := &VoteEntry{}
		err := rows.Scan(&entry.ID, &entry.Username, &entry.Value,
			&entry.QuestionTitle, &entry.AnswerID, &entry.CreatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "admin_scan_vote")
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
