// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vote

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

// NewPostgresRepository creates a new PostgreSQL vote repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts the vote. A duplicate (userid, questionid) or
// (userid, answerid) pair trips the partial unique index and comes back as
// a conflict through dberr.
func (repository *PostgresRepository) Create(context context.Context, vote *Vote) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.QnaVote.Table,
		columnList())

	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		vote.ID, vote.UserID, vote.Value, vote.QuestionID, vote.AnswerID, vote.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_vote")
	}

	return nil
}

// FindByTarget returns the user's vote on the question or answer.
func (repository *PostgresRepository) FindByTarget(context context.Context, userID string, questionID, answerID *string) (*Vote, error) {
	var predicate string
	var targetID string
	if questionID != nil {
		predicate = schema.QnaVote.QuestionID
		targetID = *questionID
	} else {
		predicate = schema.QnaVote.AnswerID
		targetID = *answerID
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		columnList(), schema.QnaVote.Table, schema.QnaVote.UserID, predicate)

	vote := &Vote{}
	err := repository.pool.QueryRow(context, query, userID, targetID).Scan(
		&vote.ID, &vote.UserID, &vote.Value, &vote.QuestionID, &vote.AnswerID, &vote.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_vote")
	}

	return vote, nil
}

// SetValue flips the stored value of an existing vote.
func (repository *PostgresRepository) SetValue(context context.Context, id string, value int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.QnaVote.Table, schema.QnaVote.Value, schema.QnaVote.ID)

	tag, err := repository.pool.Exec(context, query, id, value)
	if err != nil {
		return dberr.Wrap(err, "set_vote_value")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// Delete removes a vote.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.QnaVote.Table, schema.QnaVote.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_vote")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func columnList() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		schema.QnaVote.ID, schema.QnaVote.UserID, schema.QnaVote.Value,
		schema.QnaVote.QuestionID, schema.QnaVote.AnswerID, schema.QnaVote.CreatedAt)
}
