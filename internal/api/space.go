package api

import (
	"github.com/pingspace-dev/pingspace/internal/domain"
)

// Request DTOs

type CreateSpaceRequest struct {
	Name             string  `json:"name" validate:"required,max=100"`
	ShortDescription string  `json:"short_description" validate:"required,max=255"`
	Description      *string `json:"description,omitempty"`
	Slug             *string `json:"slug,omitempty" validate:"omitempty,max=100"`
}

type PinSpaceRequest struct {
	Pinned *bool `json:"pinned" validate:"required"`
}

type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=ADMIN MEMBER"`
}

// Response DTOs

type CreateSpaceResponse struct {
	SpaceId domain.SpaceId `json:"space_id"`
}

type AddMemberResponse struct {
	MemberId domain.MemberId `json:"member_id"`
}

type ListSpacesResponse struct {
	Items      []domain.SpaceOverview `json:"items"`
	Pagination Pagination             `json:"pagination"`
}
