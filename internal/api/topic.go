package api

import (
	"github.com/pingspace-dev/pingspace/internal/domain"
)

// Request DTOs

type CreateTopicRequest struct {
	Name             string  `json:"name" validate:"required,max=100"`
	Emoji            string  `json:"emoji" validate:"required,max=16"`
	ShortDescription string  `json:"short_description" validate:"required,max=255"`
	Description      *string `json:"description,omitempty"`
	Slug             *string `json:"slug,omitempty" validate:"omitempty,max=100"`
}

// Response DTOs

type CreateTopicResponse struct {
	TopicId domain.TopicId `json:"topic_id"`
}

type ListTopicsResponse struct {
	Topics []domain.TopicOverview `json:"topics"`
}

type TogglePinResponse struct {
	IsPinned bool `json:"is_pinned"`
}
