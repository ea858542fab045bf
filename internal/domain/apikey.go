package domain

import "time"

type ApiKeyCreationData struct {
	SpaceId     SpaceId
	SecretHash  string
	Name        string
	Description *string
	CreatedBy   MemberId
}

// ApiKey is a space-scoped producer credential. SecretHash is only ever
// read back for verification and never serialized.
type ApiKey struct {
	Id          ApiKeyId     `json:"id"`
	SpaceId     SpaceId      `json:"space_id"`
	SecretHash  string       `json:"-"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Status      ApiKeyStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	LastUsedAt  *time.Time   `json:"last_used_at,omitempty"`
}

// ApiKeyPrincipal is the identity attached to inbound ping submissions.
// It authenticates a producer, not a member.
type ApiKeyPrincipal struct {
	KeyId   ApiKeyId `json:"key_id"`
	SpaceId SpaceId  `json:"space_id"`
}

type ApiKeyPage struct {
	Items       []ApiKey
	HasNextPage bool
	NextCursor  *string
}
