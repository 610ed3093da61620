// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/askora/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Hello, World!", "hello-world"},
		{"already_slug", "hello-world", "hello-world"},
		{"accents", "Café au Lait", "cafe-au-lait"},
		{"multiple_spaces", "a    b", "a-b"},
		{"leading_trailing_junk", "  --How do I exit vim?--  ", "how-do-i-exit-vim"},
		{"digits", "Go 1.22 generics", "go-1-22-generics"},
		{"punctuation_only", "?!???", ""},
		{"empty", "", ""},
		{"mixed_case", "PostgreSQL vs MySQL", "postgresql-vs-mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}

func TestWithSuffix(t *testing.T) {
	// Ordinal 1 keeps the base; later ordinals append.
	assert.Equal(t, "hello-world", slug.WithSuffix("hello-world", 0))
	assert.Equal(t, "hello-world", slug.WithSuffix("hello-world", 1))
	assert.Equal(t, "hello-world-2", slug.WithSuffix("hello-world", 2))
	assert.Equal(t, "hello-world-10", slug.WithSuffix("hello-world", 10))
}
