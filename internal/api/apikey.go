package api

import (
	"time"

	"github.com/pingspace-dev/pingspace/internal/domain"
)

// Request DTOs

type CreateApiKeyRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
}

// Response DTOs

// CreateApiKeyResponse carries the composite token. It is shown exactly
// once; only its hash is persisted.
type CreateApiKeyResponse struct {
	Id          domain.ApiKeyId `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Key         string          `json:"key"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ListApiKeysResponse struct {
	Items      []domain.ApiKey `json:"items"`
	Pagination Pagination      `json:"pagination"`
}
