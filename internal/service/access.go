package service

import (
	"context"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
)

// AccessStorage is the single source of truth for "is this user in this
// space, and with what role".
type AccessStorage interface {
	SpaceExists(ctx context.Context, spaceId domain.SpaceId) (bool, error)
	FindMembership(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId) (*domain.Membership, error)
}

// Access implements the authorization cascade shared by every mutating
// and feed-reading operation: resource exists -> caller is a member ->
// caller's role is in the allowed set. The failure ordering
// (SpaceNotFound -> Unauthorized -> InsufficientPermissions) is part of
// the contract.
type Access struct {
	storage AccessStorage
}

func NewAccess(storage AccessStorage) *Access {
	return &Access{storage}
}

// RequireMember resolves the caller's membership in the space. An empty
// allowed set admits any role.
func (a *Access) RequireMember(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, action string, allowed ...domain.MemberRole) (*domain.Membership, error) {
	exists, err := a.storage.SpaceExists(ctx, spaceId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &internal_errors.SpaceNotFoundError{SpaceId: spaceId}
	}

	membership, err := a.storage.FindMembership(ctx, spaceId, userId)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, &internal_errors.UnauthorizedError{SpaceId: spaceId, Action: action}
	}

	if len(allowed) == 0 {
		return membership, nil
	}
	for _, role := range allowed {
		if membership.Role == role {
			return membership, nil
		}
	}
	return nil, &internal_errors.InsufficientPermissionsError{SpaceId: spaceId, Required: allowed, Action: action}
}
