// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

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

// NewPostgresRepository creates a new PostgreSQL profile repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// FindByUserID retrieves a profile by the owning account's UUID.
func (repository *PostgresRepository) FindByUserID(context context.Context, userID string) (*Profile, error) {
	return repository.findOne(context, "p.userid = $1", userID)
}

// FindByUsername retrieves a profile by the owning account's username.
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*Profile, error) {
	return repository.findOne(context, "a.username = $1", username)
}

func (repository *PostgresRepository) findOne(context context.Context, predicate string, arg any) (*Profile, error) {
	query := `
		SELECT p.userid, a.username, p.reputation, p.bio, p.website, p.location, p.avatarurl, p.createdat, p.updatedat
		FROM users.profile p
		JOIN users.account a ON a.id = p.userid
		WHERE ` + predicate + ` AND a.deletedat IS NULL`

	profile := &Profile{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&profile.UserID,
		&profile.Username,
		&profile.Reputation,
		&profile.Bio,
		&profile.Website,
		&profile.Location,
		&profile.AvatarURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_profile")
	}

	return profile, nil
}

// Update persists the editable profile fields.
func (repository *PostgresRepository) Update(context context.Context, userID string, input UpdateInput) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1`,
		schema.UsersProfile.Table,
		schema.UsersProfile.Bio, schema.UsersProfile.Website, schema.UsersProfile.Location,
		schema.UsersProfile.AvatarURL, schema.UsersProfile.UpdatedAt,
		schema.UsersProfile.UserID)

	tag, err := repository.pool.Exec(context, query,
		userID, input.Bio, input.Website, input.Location, input.AvatarURL, time.Now())
	if err != nil {
		return dberr.Wrap(err, "update_profile")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// SumQuestionVotes sums vote values across the user's questions.
// COALESCE keeps users without questions (or votes) at zero.
func (repository *PostgresRepository) SumQuestionVotes(context context.Context, userID string) (int, error) {
	const query = `
		SELECT COALESCE(SUM(v.value), 0)
		FROM qna.vote v
		JOIN qna.question q ON q.id = v.questionid
		WHERE q.authorid = $1`

	var sum int
	if err := repository.pool.QueryRow(context, query, userID).Scan(&sum); err != nil {
		return 0, dberr.Wrap(err, "sum_question_votes")
	}
	return sum, nil
}

// SumAnswerVotes sums vote values across the user's answers.
func (repository *PostgresRepository) SumAnswerVotes(context context.Context, userID string) (int, error) {
	const query = `
		SELECT COALESCE(SUM(v.value), 0)
		FROM qna.vote v
		JOIN qna.answer ans ON ans.id = v.answerid
		WHERE ans.authorid = $1`

	var sum int
	if err := repository.pool.QueryRow(context, query, userID).Scan(&sum); err != nil {
		return 0, dberr.Wrap(err, "sum_answer_votes")
	}
	return sum, nil
}

// SetReputation overwrites the stored reputation value.
func (repository *PostgresRepository) SetReputation(context context.Context, userID string, reputation int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.UsersProfile.Table,
		schema.UsersProfile.Reputation, schema.UsersProfile.UpdatedAt,
		schema.UsersProfile.UserID)

	tag, err := repository.pool.Exec(context, query, userID, reputation, time.Now())
	if err != nil {
		return dberr.Wrap(err, "set_reputation")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
