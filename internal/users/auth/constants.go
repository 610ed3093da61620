// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Credential Policy

const (
	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength = 8

	// PasswordMaxLength caps input to keep bcrypt within its 72-byte limit.
	PasswordMaxLength = 72

	// UsernameMinLength is the minimum accepted username length.
	UsernameMinLength = 3

	// UsernameMaxLength mirrors the users.account column width.
	UsernameMaxLength = 150
)
