package service

import (
	"context"
	"net/http"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
	"github.com/pingspace-dev/pingspace/internal/utils"
)

// to mock service in tests
type SpaceService interface {
	Create(ctx context.Context, data domain.SpaceCreationData) (domain.SpaceId, error)
	Delete(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId) error
	List(ctx context.Context, userId domain.UserId, cursor *string, limit int) (domain.SpacePage, error)
	Pin(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, pinned bool) error
	AddMember(ctx context.Context, spaceId domain.SpaceId, actorId domain.UserId, email domain.Email, role domain.MemberRole) (domain.MemberId, error)
}

type SpaceStorage interface {
	CreateSpace(ctx context.Context, data domain.SpaceCreationData) (domain.SpaceId, error)
	DeleteSpace(ctx context.Context, spaceId domain.SpaceId) error
	ListSpaces(ctx context.Context, userId domain.UserId, cursor *string, limit int) (domain.SpacePage, error)
	UpsertSpacePin(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, pinned bool) error
	FindUserByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	CreateMembership(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, role domain.MemberRole) (domain.MemberId, error)
}

type Space struct {
	storage SpaceStorage
	access  *Access
}

func NewSpace(storage SpaceStorage, access *Access) *Space {
	return &Space{storage, access}
}

// Create allocates the slug and atomically persists the space together
// with its OWNER membership. Slug conflicts surface as SlugConflictError
// from the storage-level unique constraint.
func (s *Space) Create(ctx context.Context, data domain.SpaceCreationData) (domain.SpaceId, error) {
	if data.Slug == "" {
		data.Slug = utils.Slugify(data.Name)
	}
	return s.storage.CreateSpace(ctx, data)
}

func (s *Space) Delete(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId) error {
	if _, err := s.access.RequireMember(ctx, spaceId, userId, "delete this space", domain.RoleOwner); err != nil {
		return err
	}
	return s.storage.DeleteSpace(ctx, spaceId)
}

func (s *Space) List(ctx context.Context, userId domain.UserId, cursor *string, limit int) (domain.SpacePage, error) {
	return s.storage.ListSpaces(ctx, userId, cursor, limit)
}

func (s *Space) Pin(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, pinned bool) error {
	if _, err := s.access.RequireMember(ctx, spaceId, userId, "pin this space"); err != nil {
		return err
	}
	return s.storage.UpsertSpacePin(ctx, spaceId, userId, pinned)
}

// AddMember enrolls an existing user into the space by email. The OWNER
// role is granted only through space creation.
func (s *Space) AddMember(ctx context.Context, spaceId domain.SpaceId, actorId domain.UserId, email domain.Email, role domain.MemberRole) (domain.MemberId, error) {
	if _, err := s.access.RequireMember(ctx, spaceId, actorId, "add members", domain.RoleOwner, domain.RoleAdmin); err != nil {
		return "", err
	}
	if role != domain.RoleAdmin && role != domain.RoleMember {
		return "", &internal_errors.ValidationError{Message: "role must be ADMIN or MEMBER"}
	}

	user, err := s.storage.FindUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", &internal_errors.ErrorWithStatusCode{Message: "No user with this email", StatusCode: http.StatusNotFound}
	}

	return s.storage.CreateMembership(ctx, spaceId, user.Id, role)
}
