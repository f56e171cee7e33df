package password_test

import (
	"testing"

	"bayleaf/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("curry-leaf")
	require.NoError(t, err)
	assert.NotEqual(t, "curry-leaf", hash)

	assert.NoError(t, password.Verify("curry-leaf", hash))
	assert.ErrorIs(t, password.Verify("bay-leaf", hash), password.ErrInvalidPassword)
}

func TestHash_Empty(t *testing.T) {
	_, err := password.Hash("")

	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{"empty password", "", "$2a$10$abc", password.ErrInvalidPassword},
		{"empty hash", "secret", "", password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, password.Verify(tt.password, tt.hash), tt.wantErr)
		})
	}

	t.Run("malformed hash", func(t *testing.T) {
		err := password.Verify("secret", "not-a-bcrypt-hash")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, password.ErrInvalidPassword)
	})
}
