package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FathimaJufla/Ecommerce/auth"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := auth.IssueSessionToken("test-secret", 42)
	require.NoError(t, err)

	id, err := auth.ParseSessionToken("test-secret", token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	token, err := auth.IssueSessionToken("test-secret", 42)
	require.NoError(t, err)

	_, err = auth.ParseSessionToken("another-secret", token)
	assert.Error(t, err)
}

func TestSessionTokenRejectsGarbage(t *testing.T) {
	_, err := auth.ParseSessionToken("test-secret", "not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, auth.CheckPassword(hash, "hunter2"))
	assert.False(t, auth.CheckPassword(hash, "hunter3"))
}
