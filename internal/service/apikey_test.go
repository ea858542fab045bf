package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
)

// MockApiKeyStorage mocks the ApiKeyStorage interface.
type MockApiKeyStorage struct {
	createApiKeyFunc func(data domain.ApiKeyCreationData) (*domain.ApiKey, error)
	findApiKeyFunc   func(keyId domain.ApiKeyId) (*domain.ApiKey, error)
	listApiKeysFunc  func(spaceId domain.SpaceId, status *domain.ApiKeyStatus, cursor *string, limit int) (domain.ApiKeyPage, error)
	touchApiKeyFunc  func(keyId domain.ApiKeyId) error
}

func (m *MockApiKeyStorage) CreateApiKey(ctx context.Context, data domain.ApiKeyCreationData) (*domain.ApiKey, error) {
	if m.createApiKeyFunc != nil {
		return m.createApiKeyFunc(data)
	}
	return &domain.ApiKey{Id: "k1", SpaceId: data.SpaceId, SecretHash: data.SecretHash, Name: data.Name, Status: domain.ApiKeyActive, CreatedAt: time.Now()}, nil
}

func (m *MockApiKeyStorage) FindApiKey(ctx context.Context, keyId domain.ApiKeyId) (*domain.ApiKey, error) {
	if m.findApiKeyFunc != nil {
		return m.findApiKeyFunc(keyId)
	}
	return nil, nil
}

func (m *MockApiKeyStorage) ListApiKeys(ctx context.Context, spaceId domain.SpaceId, status *domain.ApiKeyStatus, cursor *string, limit int) (domain.ApiKeyPage, error) {
	if m.listApiKeysFunc != nil {
		return m.listApiKeysFunc(spaceId, status, cursor, limit)
	}
	return domain.ApiKeyPage{}, nil
}

func (m *MockApiKeyStorage) TouchApiKey(ctx context.Context, keyId domain.ApiKeyId) error {
	if m.touchApiKeyFunc != nil {
		return m.touchApiKeyFunc(keyId)
	}
	return nil
}

const testHashCost = 4 // bcrypt.MinCost, keeps the round-trip tests fast

func TestApiKeyIssueVerifyRoundTrip(t *testing.T) {
	var stored *domain.ApiKey
	storage := &MockApiKeyStorage{
		createApiKeyFunc: func(data domain.ApiKeyCreationData) (*domain.ApiKey, error) {
			stored = &domain.ApiKey{Id: "k1", SpaceId: data.SpaceId, SecretHash: data.SecretHash, Name: data.Name, Status: domain.ApiKeyActive, CreatedAt: time.Now()}
			return stored, nil
		},
		findApiKeyFunc: func(keyId domain.ApiKeyId) (*domain.ApiKey, error) {
			if stored != nil && keyId == stored.Id {
				return stored, nil
			}
			return nil, nil
		},
	}
	s := NewApiKey(storage, accessWithRole(domain.RoleAdmin), 48, testHashCost)

	key, token, err := s.Issue(context.Background(), "s1", "u1", "ci", nil)
	require.NoError(t, err)
	assert.Equal(t, "k1", key.Id)
	assert.NotContains(t, token, key.SecretHash, "token must not leak the stored hash")

	principal, err := s.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.ApiKeyPrincipal{KeyId: "k1", SpaceId: "s1"}, *principal)
}

func TestApiKeyIssueRequiresManagerRole(t *testing.T) {
	s := NewApiKey(&MockApiKeyStorage{}, accessWithRole(domain.RoleMember), 48, testHashCost)

	_, _, err := s.Issue(context.Background(), "s1", "u1", "ci", nil)

	assert.True(t, internal_errors.Is[*internal_errors.InsufficientPermissionsError](err))
}

func TestApiKeyVerifyFailures(t *testing.T) {
	active := issueTestKey(t, domain.ApiKeyActive)
	inactive := issueTestKey(t, domain.ApiKeyInactive)

	testCases := []struct {
		name   string
		stored *domain.ApiKey
		token  string
	}{
		{name: "Malformed token without separator", stored: active.key, token: "justonepart"},
		{name: "Empty secret", stored: active.key, token: active.key.Id + "."},
		{name: "Unknown key id", stored: nil, token: "missing.secret"},
		{name: "Wrong secret", stored: active.key, token: active.key.Id + ".wrong-secret"},
		{name: "Inactive key with valid secret", stored: inactive.key, token: inactive.token},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			storage := &MockApiKeyStorage{
				findApiKeyFunc: func(keyId domain.ApiKeyId) (*domain.ApiKey, error) {
					if tc.stored != nil && keyId == tc.stored.Id {
						return tc.stored, nil
					}
					return nil, nil
				},
			}
			s := NewApiKey(storage, accessWithRole(domain.RoleAdmin), 48, testHashCost)

			principal, err := s.Verify(context.Background(), tc.token)

			assert.Error(t, err)
			assert.Nil(t, principal)
		})
	}
}

func TestApiKeyVerifyTouchFailureIsNonFatal(t *testing.T) {
	issued := issueTestKey(t, domain.ApiKeyActive)
	storage := &MockApiKeyStorage{
		findApiKeyFunc: func(keyId domain.ApiKeyId) (*domain.ApiKey, error) {
			return issued.key, nil
		},
		touchApiKeyFunc: func(keyId domain.ApiKeyId) error {
			return assert.AnError
		},
	}
	s := NewApiKey(storage, accessWithRole(domain.RoleAdmin), 48, testHashCost)

	principal, err := s.Verify(context.Background(), issued.token)

	require.NoError(t, err)
	assert.NotNil(t, principal)
}

type issuedKey struct {
	key   *domain.ApiKey
	token string
}

// issueTestKey mints a key through the real Issue path so the stored
// hash matches the token secret.
func issueTestKey(t *testing.T, status domain.ApiKeyStatus) issuedKey {
	t.Helper()

	var stored *domain.ApiKey
	storage := &MockApiKeyStorage{
		createApiKeyFunc: func(data domain.ApiKeyCreationData) (*domain.ApiKey, error) {
			stored = &domain.ApiKey{Id: "k-" + string(status), SpaceId: data.SpaceId, SecretHash: data.SecretHash, Name: data.Name, Status: status, CreatedAt: time.Now()}
			return stored, nil
		},
	}
	s := NewApiKey(storage, accessWithRole(domain.RoleOwner), 48, testHashCost)

	_, token, err := s.Issue(context.Background(), "s1", "u1", "test", nil)
	require.NoError(t, err)
	return issuedKey{key: stored, token: token}
}
