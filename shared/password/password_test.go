package password_test

import (
	"resort/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		plain   string
		wantErr error
	}{
		{name: "plain password", plain: "pw123"},
		{name: "special characters", plain: "P@ssw0rd!#$%^&*()"},
		{name: "multibyte password", plain: "пароль123"},
		{name: "exactly the byte limit", plain: strings.Repeat("a", password.MaxLength)},
		{name: "empty password", plain: "", wantErr: password.ErrEmptyPassword},
		{name: "over the byte limit", plain: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrPasswordTooLong},
		{name: "multibyte over the byte limit", plain: strings.Repeat("ж", 40), wantErr: password.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.plain)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, password.DefaultCost, cost)
			assert.NoError(t, password.Verify(tt.plain, hash))
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("pw123")
	require.NoError(t, err)

	second, err := password.Hash("pw123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, password.Verify("pw123", first))
	assert.NoError(t, password.Verify("pw123", second))
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("pw123")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hash    string
		wantErr error
	}{
		{name: "matching password", plain: "pw123", hash: hash},
		{name: "wrong password", plain: "pw124", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "case differs", plain: "PW123", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", plain: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", plain: "pw123", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", plain: "pw123", hash: "not-a-bcrypt-hash", wantErr: password.ErrVerifyingPassword},
		{name: "truncated hash", plain: "pw123", hash: hash[:10], wantErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hash)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}
