// Copyright (c) 2026 HomeQuest. All rights reserved.
// Author: dev@homequest.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homequest/homequest/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies hash generation and comparison.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The hash must never equal the plain text.
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
}

/*
TestHashPassword_UniqueSalts ensures two hashes of the same input differ.
*/
func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := sec.HashPassword("p")
	require.NoError(t, err)

	second, err := sec.HashPassword("p")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
