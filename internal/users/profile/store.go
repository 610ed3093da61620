// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import "context"

// UpdateInput carries the editable profile fields.
type UpdateInput struct {
	Bio       string  `json:"bio"`
	Website   string  `json:"website"`
	Location  string  `json:"location"`
	AvatarURL *string `json:"avatar_url"`
}

// Repository abstracts persistence of reputation profiles.
//
// Profile rows are created by registration (one transaction with the account
// insert); this repository only reads and mutates existing rows.
type Repository interface {
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	FindByUsername(ctx context.Context, username string) (*Profile, error)
	Update(ctx context.Context, userID string, input UpdateInput) error

	// SumQuestionVotes returns the signed sum of vote values across all of
	// the user's questions (0 when the user has none).
	SumQuestionVotes(ctx context.Context, userID string) (int, error)

	// SumAnswerVotes returns the signed sum of vote values across all of
	// the user's answers (0 when the user has none).
	SumAnswerVotes(ctx context.Context, userID string) (int, error)

	// SetReputation overwrites the stored reputation value.
	SetReputation(ctx context.Context, userID string, reputation int) error
}
