// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile implements reputation profiles and the reputation
recalculation engine.

Reputation has two independent mutation paths, preserved deliberately:

  - Recalculation (here): overwrites the stored value with a pure function
    of votes received — 5 points per net question vote, 10 per net answer
    vote. Idempotent; signed, so downvotes subtract.
  - Acceptance award (answer package): adds a flat +15 to the stored value
    when one of the user's answers is accepted.

The two schemes do not account for each other: recalculating after an
acceptance discards the flat award. Callers that care about which figure
they get must choose the path explicitly.
*/
package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/askora/internal/platform/constants"
	"github.com/taibuivan/askora/internal/platform/validate"
)

// Service orchestrates profile reads, updates, and reputation recalculation.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new profile [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByUsername returns the public profile for an account.
func (service *Service) GetByUsername(context context.Context, username string) (*Profile, error) {
	return service.repo.FindByUsername(context, username)
}

// UpdateOwn persists the caller's editable profile fields.
func (service *Service) UpdateOwn(context context.Context, userID string, input UpdateInput) (*Profile, error) {
	v := &validate.Validator{}
	v.MaxLen("bio", input.Bio, 2000).
		MaxLen("website", input.Website, 200).
		MaxLen("location", input.Location, 100)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, userID, input); err != nil {
		return nil, err
	}

	return service.repo.FindByUserID(context, userID)
}

/*
RecalculateReputation recomputes and persists a user's reputation from votes.

Description: Full recomputation, not incremental — the stored value is
overwritten with 5 × Σ(question votes) + 10 × Σ(answer votes). Running it
twice with no intervening votes yields the same value. Acceptance awards are
NOT part of the formula (see the package comment).

Parameters:
  - context: context.Context
  - userID: string (account UUID)

Returns:
  - int: The newly persisted reputation value
  - err: apperr.NotFound when the profile is absent, or storage errors
*/
func (service *Service) RecalculateReputation(context context.Context, userID string) (int, error) {

	// The profile must exist before any derived value is written.
	if _, err := service.repo.FindByUserID(context, userID); err != nil {
		return 0, err
	}

	questionVotes, err := service.repo.SumQuestionVotes(context, userID)
	if err != nil {
		return 0, fmt.Errorf("profile_service_sum_question_votes_failed: %w", err)
	}

	answerVotes, err := service.repo.SumAnswerVotes(context, userID)
	if err != nil {
		return 0, fmt.Errorf("profile_service_sum_answer_votes_failed: %w", err)
	}

	reputation := constants.QuestionVoteWeight*questionVotes + constants.AnswerVoteWeight*answerVotes

	if err := service.repo.SetReputation(context, userID, reputation); err != nil {
		return 0, err
	}

	service.logger.InfoContext(context, "reputation_recalculated",
		slog.String("user_id", userID),
		slog.Int("question_votes", questionVotes),
		slog.Int("answer_votes", answerVotes),
		slog.Int("reputation", reputation),
	)

	return reputation, nil
}
