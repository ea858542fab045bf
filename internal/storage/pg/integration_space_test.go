package pg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
)

func TestIntegrationCreateSpaceCreatesOwnerMembership(t *testing.T) {
	ctx := context.Background()
	userId := mustCreateUser(t, "owner-membership@example.com")

	spaceId := mustCreateSpace(t, userId, "owner-membership")

	membership, err := storage.FindMembership(ctx, spaceId, userId)
	require.NoError(t, err)
	require.NotNil(t, membership)
	assert.Equal(t, domain.RoleOwner, membership.Role)

	exists, err := storage.SpaceExists(ctx, spaceId)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestIntegrationCreateSpaceSlugConflict(t *testing.T) {
	ctx := context.Background()
	userId := mustCreateUser(t, "slug-conflict@example.com")
	mustCreateSpace(t, userId, "taken-slug")

	_, err := storage.CreateSpace(ctx, domain.SpaceCreationData{
		Name:             "Another",
		Slug:             "taken-slug",
		ShortDescription: "x",
		OwnerId:          userId,
	})

	assert.True(t, internal_errors.Is[*internal_errors.SlugConflictError](err))
}

func TestIntegrationDeleteSpace(t *testing.T) {
	ctx := context.Background()
	userId := mustCreateUser(t, "delete-space@example.com")
	spaceId := mustCreateSpace(t, userId, "delete-space")

	require.NoError(t, storage.DeleteSpace(ctx, spaceId))

	exists, err := storage.SpaceExists(ctx, spaceId)
	require.NoError(t, err)
	assert.False(t, exists)

	// Memberships cascade with the space.
	membership, err := storage.FindMembership(ctx, spaceId, userId)
	require.NoError(t, err)
	assert.Nil(t, membership)

	err = storage.DeleteSpace(ctx, spaceId)
	assert.True(t, internal_errors.Is[*internal_errors.SpaceNotFoundError](err))
}

func TestIntegrationCreateMembershipRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	owner := mustCreateUser(t, "dup-owner@example.com")
	joiner := mustCreateUser(t, "dup-joiner@example.com")
	spaceId := mustCreateSpace(t, owner, "dup-membership")

	_, err := storage.CreateMembership(ctx, spaceId, joiner, domain.RoleMember)
	require.NoError(t, err)

	_, err = storage.CreateMembership(ctx, spaceId, joiner, domain.RoleAdmin)
	require.Error(t, err)
	var swc *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &swc)
	assert.Equal(t, 409, swc.StatusCode)
}

func TestIntegrationListSpacesOrderingAndPagination(t *testing.T) {
	ctx := context.Background()
	userId := mustCreateUser(t, "list-spaces@example.com")

	quiet := mustCreateSpace(t, userId, "ls-quiet")
	active := mustCreateSpace(t, userId, "ls-active")
	pinned := mustCreateSpace(t, userId, "ls-pinned")

	// Activity in the active space, a pin on the pinned one.
	membership := mustOwnerMembership(t, active, userId)
	keyId := mustCreateApiKey(t, active, membership.Id)
	topicId := mustCreateTopic(t, active, "ls-topic")
	mustCreatePing(t, topicId, keyId, "activity", nil)
	require.NoError(t, storage.UpsertSpacePin(ctx, pinned, userId, true))

	page, err := storage.ListSpaces(ctx, userId, nil, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.HasNextPage)
	require.NotNil(t, page.NextCursor)

	// Pinned first, then the space with the most recent ping.
	assert.Equal(t, pinned, page.Items[0].Id)
	assert.True(t, page.Items[0].IsPinned)
	assert.Equal(t, active, page.Items[1].Id)
	require.NotNil(t, page.Items[1].LastPingAt)
	assert.EqualValues(t, 1, page.Items[1].UnreadCount)

	rest, err := storage.ListSpaces(ctx, userId, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, rest.Items, 1)
	assert.False(t, rest.HasNextPage)
	assert.Equal(t, quiet, rest.Items[0].Id)
	assert.Nil(t, rest.Items[0].LastPingAt)
}

func TestIntegrationListSpacesExcludesForeignSpaces(t *testing.T) {
	ctx := context.Background()
	member := mustCreateUser(t, "member-only@example.com")
	outsider := mustCreateUser(t, "outsider@example.com")
	mustCreateSpace(t, member, "members-space")

	page, err := storage.ListSpaces(ctx, outsider, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestIntegrationListSpacesRejectsBadCursor(t *testing.T) {
	userId := mustCreateUser(t, "bad-cursor@example.com")
	bad := "not-base64url-json!"

	_, err := storage.ListSpaces(context.Background(), userId, &bad, 10)
	assert.True(t, internal_errors.Is[*internal_errors.ValidationError](err))
}

func TestIntegrationUpsertSpacePinIsIdempotent(t *testing.T) {
	ctx := context.Background()
	userId := mustCreateUser(t, "pin-upsert@example.com")
	spaceId := mustCreateSpace(t, userId, "pin-upsert")

	require.NoError(t, storage.UpsertSpacePin(ctx, spaceId, userId, true))
	require.NoError(t, storage.UpsertSpacePin(ctx, spaceId, userId, true))
	require.NoError(t, storage.UpsertSpacePin(ctx, spaceId, userId, false))

	page, err := storage.ListSpaces(ctx, userId, nil, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.False(t, page.Items[0].IsPinned)
}

func TestIntegrationPinIsPerUser(t *testing.T) {
	ctx := context.Background()
	owner := mustCreateUser(t, "pin-owner@example.com")
	other := mustCreateUser(t, "pin-other@example.com")
	spaceId := mustCreateSpace(t, owner, "per-user-pin")
	_, err := storage.CreateMembership(ctx, spaceId, other, domain.RoleMember)
	require.NoError(t, err)

	require.NoError(t, storage.UpsertSpacePin(ctx, spaceId, owner, true))

	ownerPage, err := storage.ListSpaces(ctx, owner, nil, 10)
	require.NoError(t, err)
	require.Len(t, ownerPage.Items, 1)
	assert.True(t, ownerPage.Items[0].IsPinned)

	otherPage, err := storage.ListSpaces(ctx, other, nil, 10)
	require.NoError(t, err)
	require.Len(t, otherPage.Items, 1)
	assert.False(t, otherPage.Items[0].IsPinned)
}

// Pagination stays sound when rows carry identical activity timestamps;
// the id tiebreaker must keep pages disjoint.
func TestIntegrationListSpacesCursorDisjointPages(t *testing.T) {
	ctx := context.Background()
	userId := mustCreateUser(t, "disjoint-pages@example.com")
	for _, slug := range []string{"dp-a", "dp-b", "dp-c", "dp-d", "dp-e"} {
		mustCreateSpace(t, userId, slug)
	}

	seen := map[domain.SpaceId]bool{}
	var cursor *string
	for i := 0; i < 10; i++ {
		page, err := storage.ListSpaces(ctx, userId, cursor, 2)
		require.NoError(t, err)
		for _, item := range page.Items {
			assert.False(t, seen[item.Id], "space %s returned twice", item.Id)
			seen[item.Id] = true
		}
		if !page.HasNextPage {
			break
		}
		cursor = page.NextCursor
		require.NotNil(t, cursor)
	}
	assert.Len(t, seen, 5)
}
