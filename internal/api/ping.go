package api

import (
	"encoding/json"
	"time"

	"github.com/pingspace-dev/pingspace/internal/domain"
)

// Request DTOs

type PingActionRequest struct {
	Type    string          `json:"type" validate:"required,oneof=HTTP LINK"`
	Label   string          `json:"label" validate:"required,max=100"`
	Url     string          `json:"url" validate:"required,url"`
	Method  *string         `json:"method,omitempty" validate:"omitempty,oneof=GET POST PATCH PUT DELETE"`
	Headers json.RawMessage `json:"headers,omitempty"`
	Body    json.RawMessage `json:"body,omitempty"`
}

type CreatePingRequest struct {
	TopicSlug   string              `json:"topic_slug" validate:"required"`
	Title       *string             `json:"title,omitempty" validate:"omitempty,max=255"`
	ContentType string              `json:"content_type" validate:"required,oneof=MARKDOWN JSON"`
	Content     string              `json:"content" validate:"required"`
	Tags        []string            `json:"tags,omitempty" validate:"dive,required,max=50"`
	Actions     []PingActionRequest `json:"actions,omitempty" validate:"dive"`
}

type MarkReadRequest struct {
	Timestamp time.Time `json:"timestamp" validate:"required"`
}

// Response DTOs

type CreatePingResponse struct {
	domain.Ping
	SpaceId domain.SpaceId `json:"space_id"`
}

type ListPingsResponse struct {
	Items      []domain.Ping `json:"items"`
	Pagination Pagination    `json:"pagination"`
}
