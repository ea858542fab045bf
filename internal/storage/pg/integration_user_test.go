package pg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
)

func TestIntegrationCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	mustCreateUser(t, "dupe@example.com")

	_, err := storage.CreateUser(ctx, domain.UserCreationData{
		Nickname:     "other",
		Email:        "dupe@example.com",
		PasswordHash: "hash",
	})

	assert.True(t, internal_errors.Is[*internal_errors.UserAlreadyExistsError](err))
}

func TestIntegrationFindUserByEmail(t *testing.T) {
	ctx := context.Background()
	userId := mustCreateUser(t, "find-user@example.com")

	user, err := storage.FindUserByEmail(ctx, "find-user@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, userId, user.Id)
	assert.Equal(t, "hash", user.PasswordHash)

	missing, err := storage.FindUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
