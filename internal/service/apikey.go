package service

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
	"github.com/pingspace-dev/pingspace/internal/logger"
	"github.com/pingspace-dev/pingspace/internal/utils"
)

type ApiKeyService interface {
	Issue(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, name string, description *string) (*domain.ApiKey, string, error)
	Verify(ctx context.Context, token string) (*domain.ApiKeyPrincipal, error)
	List(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, status *domain.ApiKeyStatus, cursor *string, limit int) (domain.ApiKeyPage, error)
}

type ApiKeyStorage interface {
	CreateApiKey(ctx context.Context, data domain.ApiKeyCreationData) (*domain.ApiKey, error)
	FindApiKey(ctx context.Context, keyId domain.ApiKeyId) (*domain.ApiKey, error)
	ListApiKeys(ctx context.Context, spaceId domain.SpaceId, status *domain.ApiKeyStatus, cursor *string, limit int) (domain.ApiKeyPage, error)
	TouchApiKey(ctx context.Context, keyId domain.ApiKeyId) error
}

type ApiKey struct {
	storage    ApiKeyStorage
	access     *Access
	secretSize int
	hashCost   int
}

func NewApiKey(storage ApiKeyStorage, access *Access, secretSize, hashCost int) *ApiKey {
	return &ApiKey{storage, access, secretSize, hashCost}
}

// Issue mints a space-scoped producer credential. Only the salted hash
// of the secret is stored; the returned composite token
// "<keyId>.<rawSecret>" is shown exactly once and never retrievable.
func (k *ApiKey) Issue(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, name string, description *string) (*domain.ApiKey, string, error) {
	membership, err := k.access.RequireMember(ctx, spaceId, userId, "create api keys", domain.RoleOwner, domain.RoleAdmin)
	if err != nil {
		return nil, "", err
	}

	rawSecret, err := utils.GenerateSecret(k.secretSize)
	if err != nil {
		return nil, "", err
	}
	secretHash, err := bcrypt.GenerateFromPassword([]byte(rawSecret), k.hashCost)
	if err != nil {
		return nil, "", err
	}

	key, err := k.storage.CreateApiKey(ctx, domain.ApiKeyCreationData{
		SpaceId:     spaceId,
		SecretHash:  string(secretHash),
		Name:        name,
		Description: description,
		CreatedBy:   membership.Id,
	})
	if err != nil {
		return nil, "", err
	}

	return key, key.Id + "." + rawSecret, nil
}

// Verify authenticates a producer token. The key id on the left of the
// first "." is a plain lookup key; only the raw secret is compared
// against the stored hash, in constant time via bcrypt.
func (k *ApiKey) Verify(ctx context.Context, token string) (*domain.ApiKeyPrincipal, error) {
	keyId, rawSecret, ok := strings.Cut(token, ".")
	if !ok || keyId == "" || rawSecret == "" {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Malformed api key", StatusCode: http.StatusUnauthorized}
	}

	key, err := k.storage.FindApiKey(ctx, keyId)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, &internal_errors.CredentialNotFoundError{KeyId: keyId}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(key.SecretHash), []byte(rawSecret)); err != nil {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid api key", StatusCode: http.StatusUnauthorized}
	}

	if key.Status != domain.ApiKeyActive {
		return nil, &internal_errors.CredentialInactiveError{KeyId: keyId}
	}

	// Best effort; a failed timestamp update must not fail ingestion.
	if err := k.storage.TouchApiKey(ctx, key.Id); err != nil {
		logger.Log.Warn("failed to update api key last_used_at", "key_id", key.Id, "err", err)
	}

	return &domain.ApiKeyPrincipal{KeyId: key.Id, SpaceId: key.SpaceId}, nil
}

func (k *ApiKey) List(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, status *domain.ApiKeyStatus, cursor *string, limit int) (domain.ApiKeyPage, error) {
	if _, err := k.access.RequireMember(ctx, spaceId, userId, "list api keys"); err != nil {
		return domain.ApiKeyPage{}, err
	}
	return k.storage.ListApiKeys(ctx, spaceId, status, cursor, limit)
}
