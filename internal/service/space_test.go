package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
)

// MockSpaceStorage mocks the SpaceStorage interface.
type MockSpaceStorage struct {
	createSpaceFunc      func(data domain.SpaceCreationData) (domain.SpaceId, error)
	deleteSpaceFunc      func(spaceId domain.SpaceId) error
	listSpacesFunc       func(userId domain.UserId, cursor *string, limit int) (domain.SpacePage, error)
	upsertSpacePinFunc   func(spaceId domain.SpaceId, userId domain.UserId, pinned bool) error
	findUserByEmailFunc  func(email domain.Email) (*domain.User, error)
	createMembershipFunc func(spaceId domain.SpaceId, userId domain.UserId, role domain.MemberRole) (domain.MemberId, error)
}

func (m *MockSpaceStorage) CreateSpace(ctx context.Context, data domain.SpaceCreationData) (domain.SpaceId, error) {
	if m.createSpaceFunc != nil {
		return m.createSpaceFunc(data)
	}
	return "s1", nil
}

func (m *MockSpaceStorage) DeleteSpace(ctx context.Context, spaceId domain.SpaceId) error {
	if m.deleteSpaceFunc != nil {
		return m.deleteSpaceFunc(spaceId)
	}
	return nil
}

func (m *MockSpaceStorage) ListSpaces(ctx context.Context, userId domain.UserId, cursor *string, limit int) (domain.SpacePage, error) {
	if m.listSpacesFunc != nil {
		return m.listSpacesFunc(userId, cursor, limit)
	}
	return domain.SpacePage{}, nil
}

func (m *MockSpaceStorage) UpsertSpacePin(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, pinned bool) error {
	if m.upsertSpacePinFunc != nil {
		return m.upsertSpacePinFunc(spaceId, userId, pinned)
	}
	return nil
}

func (m *MockSpaceStorage) FindUserByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	if m.findUserByEmailFunc != nil {
		return m.findUserByEmailFunc(email)
	}
	return &domain.User{Id: "u2", Email: email}, nil
}

func (m *MockSpaceStorage) CreateMembership(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, role domain.MemberRole) (domain.MemberId, error) {
	if m.createMembershipFunc != nil {
		return m.createMembershipFunc(spaceId, userId, role)
	}
	return "m2", nil
}

func accessWithRole(role domain.MemberRole) *Access {
	return NewAccess(&MockAccessStorage{
		findMembershipFunc: func(spaceId domain.SpaceId, userId domain.UserId) (*domain.Membership, error) {
			return &domain.Membership{Id: "m1", SpaceId: spaceId, UserId: userId, Role: role}, nil
		},
	})
}

func TestSpaceCreateSlugsName(t *testing.T) {
	testCases := []struct {
		name         string
		spaceName    string
		slug         string
		expectedSlug string
	}{
		{name: "Derived from name", spaceName: "My Team Space", expectedSlug: "my-team-space"},
		{name: "Explicit slug kept", spaceName: "My Team Space", slug: "custom", expectedSlug: "custom"},
		{name: "Diacritics folded", spaceName: "Café Ops", expectedSlug: "cafe-ops"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got domain.SpaceCreationData
			storage := &MockSpaceStorage{
				createSpaceFunc: func(data domain.SpaceCreationData) (domain.SpaceId, error) {
					got = data
					return "s1", nil
				},
			}
			s := NewSpace(storage, accessWithRole(domain.RoleOwner))

			_, err := s.Create(context.Background(), domain.SpaceCreationData{Name: tc.spaceName, Slug: tc.slug, OwnerId: "u1"})

			require.NoError(t, err)
			assert.Equal(t, tc.expectedSlug, got.Slug)
		})
	}
}

func TestSpaceDeleteRequiresOwner(t *testing.T) {
	testCases := []struct {
		name      string
		role      domain.MemberRole
		expectErr bool
	}{
		{name: "Owner can delete", role: domain.RoleOwner, expectErr: false},
		{name: "Admin cannot delete", role: domain.RoleAdmin, expectErr: true},
		{name: "Member cannot delete", role: domain.RoleMember, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			deleted := false
			storage := &MockSpaceStorage{
				deleteSpaceFunc: func(spaceId domain.SpaceId) error {
					deleted = true
					return nil
				},
			}
			s := NewSpace(storage, accessWithRole(tc.role))

			err := s.Delete(context.Background(), "s1", "u1")

			if tc.expectErr {
				assert.True(t, internal_errors.Is[*internal_errors.InsufficientPermissionsError](err))
				assert.False(t, deleted)
			} else {
				assert.NoError(t, err)
				assert.True(t, deleted)
			}
		})
	}
}

func TestSpaceAddMember(t *testing.T) {
	testCases := []struct {
		name        string
		actorRole   domain.MemberRole
		role        domain.MemberRole
		user        *domain.User
		expectedErr error
	}{
		{name: "Admin adds member", actorRole: domain.RoleAdmin, role: domain.RoleMember, user: &domain.User{Id: "u2"}},
		{name: "Owner adds admin", actorRole: domain.RoleOwner, role: domain.RoleAdmin, user: &domain.User{Id: "u2"}},
		{
			name:        "Member cannot add",
			actorRole:   domain.RoleMember,
			role:        domain.RoleMember,
			user:        &domain.User{Id: "u2"},
			expectedErr: &internal_errors.InsufficientPermissionsError{},
		},
		{
			name:        "Cannot grant owner",
			actorRole:   domain.RoleOwner,
			role:        domain.RoleOwner,
			user:        &domain.User{Id: "u2"},
			expectedErr: &internal_errors.ValidationError{},
		},
		{
			name:        "Unknown email",
			actorRole:   domain.RoleOwner,
			role:        domain.RoleMember,
			user:        nil,
			expectedErr: &internal_errors.ErrorWithStatusCode{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			storage := &MockSpaceStorage{
				findUserByEmailFunc: func(email domain.Email) (*domain.User, error) {
					return tc.user, nil
				},
			}
			s := NewSpace(storage, accessWithRole(tc.actorRole))

			memberId, err := s.AddMember(context.Background(), "s1", "u1", "new@example.com", tc.role)

			if tc.expectedErr != nil {
				assert.Error(t, err)
				assert.IsType(t, tc.expectedErr, err)
				assert.Empty(t, memberId)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, memberId)
			}
		})
	}
}

func TestSpacePinAllowsAnyMember(t *testing.T) {
	var gotPinned bool
	storage := &MockSpaceStorage{
		upsertSpacePinFunc: func(spaceId domain.SpaceId, userId domain.UserId, pinned bool) error {
			gotPinned = pinned
			return nil
		},
	}
	s := NewSpace(storage, accessWithRole(domain.RoleMember))

	err := s.Pin(context.Background(), "s1", "u1", true)

	require.NoError(t, err)
	assert.True(t, gotPinned)
}
