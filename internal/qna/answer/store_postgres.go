// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package answer

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

// NewPostgresRepository creates a new PostgreSQL answer repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// hydratedColumns is the shared SELECT list for answer rows with their
// author username and vote score.
const hydratedColumns = `
	ans.id, ans.questionid, ans.authorid, a.username, ans.content, ans.isaccepted,
	COALESCE((SELECT SUM(v.value) FROM qna.vote v WHERE v.answerid = ans.id), 0) AS score,
	ans.createdat, ans.updatedat`

func (repository *PostgresRepository) Create(context context.Context, answer *Answer) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, questionid, authorid, content, isaccepted, createdat, updatedat)
		VALUES ($1, $2, $3, $4, FALSE, $5, $5)`,
		schema.QnaAnswer.Table)

	now := time.Now()
	answer.CreatedAt = now
	answer.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		answer.ID, answer.QuestionID, answer.AuthorID, answer.Content, now)
	if err != nil {
		return dberr.Wrap(err, "create_answer")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Answer, error) {
	query := `
		SELECT ` + hydratedColumns + `
		FROM qna.answer ans
		JOIN users.account a ON a.id = ans.authorid
		WHERE ans.id = $1`

	answer := &Answer{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&answer.ID,
		&answer.QuestionID,
		&answer.AuthorID,
		&answer.AuthorUsername,
		&answer.Content,
		&answer.IsAccepted,
		&answer.Score,
		&answer.CreatedAt,
		&answer.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_answer")
	}

	return answer, nil
}

func (repository *PostgresRepository) ListByQuestion(context context.Context, questionID string) ([]*Answer, error) {
	query := `
		SELECT ` + hydratedColumns + `
		FROM qna.answer ans
		JOIN users.account a ON a.id = ans.authorid
		WHERE ans.questionid = $1
		ORDER BY ans.isaccepted DESC, ans.createdat ASC`

	rows, err := repository.pool.Query(context, query, questionID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_answers")
	}
	defer rows.Close()

	answers := make([]*Answer, 0)
	for rows.Next() {
		answer := &Answer{}
		err := rows.Scan(
			&answer.ID,
			&answer.QuestionID,
			&answer.AuthorID,
			&answer.AuthorUsername,
			&answer.Content,
			&answer.IsAccepted,
			&answer.Score,
			&answer.CreatedAt,
			&answer.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_answer")
		}
		answers = append(answers, answer)
	}

	return answers, nil
}

func (repository *PostgresRepository) Update(context context.Context, id, content string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.QnaAnswer.Table,
		schema.QnaAnswer.Content, schema.QnaAnswer.UpdatedAt,
		schema.QnaAnswer.ID)

	tag, err := repository.pool.Exec(context, query, id, content, time.Now())
	if err != nil {
		return dberr.Wrap(err, "update_answer")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.QnaAnswer.Table, schema.QnaAnswer.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_answer")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) FindQuestionAuthor(context context.Context, questionID string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.QnaQuestion.AuthorID, schema.QnaQuestion.Table, schema.QnaQuestion.ID)

	var authorID string
	if err := repository.pool.QueryRow(context, query, questionID).Scan(&authorID); err != nil {
		return "", dberr.Wrap(err, "find_question_author")
	}

	return authorID, nil
}

// Accept performs the acceptance swap atomically. The partial unique index
// on (questionid) WHERE isaccepted guarantees at most one accepted answer
// even if two accepts race; the losing transaction fails and rolls back.
func (repository *PostgresRepository) Accept(context context.Context, questionID, answerID, answerAuthorID string, award int) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("answer_begin_transaction_failed: %w", err)
	}
	defer transaction.Rollback(context)

	now := time.Now()

	// 1. Unmark the previously accepted answer, if any.
	unmark := fmt.Sprintf(`UPDATE %s SET %s = FALSE, %s = $2 WHERE %s = $1 AND %s = TRUE`,
		schema.QnaAnswer.Table,
		schema.QnaAnswer.IsAccepted, schema.QnaAnswer.UpdatedAt,
		schema.QnaAnswer.QuestionID, schema.QnaAnswer.IsAccepted)
	if _, err := transaction.Exec(context, unmark, questionID, now); err != nil {
		return dberr.Wrap(err, "unmark_accepted_answer")
	}

	// 2. Mark the new accepted answer.
	mark := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = $2 WHERE %s = $1`,
		schema.QnaAnswer.Table,
		schema.QnaAnswer.IsAccepted, schema.QnaAnswer.UpdatedAt,
		schema.QnaAnswer.ID)
	tag, err := transaction.Exec(context, mark, answerID, now)
	if err != nil {
		return dberr.Wrap(err, "mark_accepted_answer")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	// 3. Flag the question solved and record the accepted answer.
	solve := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = $2, %s = $3 WHERE %s = $1`,
		schema.QnaQuestion.Table,
		schema.QnaQuestion.IsSolved, schema.QnaQuestion.AcceptedAnswerID,
		schema.QnaQuestion.UpdatedAt, schema.QnaQuestion.ID)
	if _, err := transaction.Exec(context, solve, questionID, answerID, now); err != nil {
		return dberr.Wrap(err, "mark_question_solved")
	}

	// 4. Award the flat acceptance bonus to the answer author. A missing
	// profile row must abort the whole swap, not skip the bonus.
	reward := fmt.Sprintf(`UPDATE %s SET %s = %s + $2, %s = $3 WHERE %s = $1`,
		schema.UsersProfile.Table,
		schema.UsersProfile.Reputation, schema.UsersProfile.Reputation,
		schema.UsersProfile.UpdatedAt, schema.UsersProfile.UserID)
	tag, err = transaction.Exec(context, reward, answerAuthorID, award, now)
	if err != nil {
		return dberr.Wrap(err, "award_acceptance_bonus")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("answer_commit_transaction_failed: %w", err)
	}

	return nil
}
