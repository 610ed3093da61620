// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import "time"

// Profile is a user's public reputation profile (users.profile).
//
// Reputation is a derived value: it is written only by the recalculation
// workflow in this package and by the flat acceptance award applied by the
// answer workflow. Nothing else may touch it.
type Profile struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Reputation int       `json:"reputation"`
	Bio        string    `json:"bio"`
	Website    string    `json:"website"`
	Location   string    `json:"location"`
	AvatarURL  *string   `json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}
