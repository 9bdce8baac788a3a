// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homequest/homequest/pkg/slug"
)

/*
TestSlug_From covers the transformation pipeline end to end.
*/
func TestSlug_From(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Cozy Lakeside Cabin", "cozy-lakeside-cabin"},
		{"accents", "Château Élan", "chateau-elan"},
		{"punctuation", "3 Bed / 2 Bath!!", "3-bed-2-bath"},
		{"multi_space", "Sunny   Loft", "sunny-loft"},
		{"leading_trailing", "  -Beach House- ", "beach-house"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}
