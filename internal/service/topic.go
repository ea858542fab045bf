package service

import (
	"context"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
	"github.com/pingspace-dev/pingspace/internal/utils"
)

type TopicService interface {
	Create(ctx context.Context, data domain.TopicCreationData, userId domain.UserId) (domain.TopicId, error)
	Delete(ctx context.Context, spaceId domain.SpaceId, topicId domain.TopicId, userId domain.UserId) error
	List(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId) ([]domain.TopicOverview, error)
	TogglePin(ctx context.Context, spaceId domain.SpaceId, topicId domain.TopicId, userId domain.UserId) (bool, error)
}

type TopicStorage interface {
	CreateTopic(ctx context.Context, data domain.TopicCreationData) (domain.TopicId, error)
	DeleteTopic(ctx context.Context, topicId domain.TopicId) error
	TopicExists(ctx context.Context, spaceId domain.SpaceId, topicId domain.TopicId) (bool, error)
	ListTopics(ctx context.Context, spaceId domain.SpaceId, memberId domain.MemberId) ([]domain.TopicOverview, error)
	ToggleTopicPin(ctx context.Context, topicId domain.TopicId) (bool, error)
}

type Topic struct {
	storage TopicStorage
	access  *Access
}

func NewTopic(storage TopicStorage, access *Access) *Topic {
	return &Topic{storage, access}
}

func (t *Topic) Create(ctx context.Context, data domain.TopicCreationData, userId domain.UserId) (domain.TopicId, error) {
	if _, err := t.access.RequireMember(ctx, data.SpaceId, userId, "create topics", domain.RoleOwner, domain.RoleAdmin); err != nil {
		return "", err
	}
	if data.Slug == "" {
		data.Slug = utils.Slugify(data.Name)
	}
	return t.storage.CreateTopic(ctx, data)
}

func (t *Topic) Delete(ctx context.Context, spaceId domain.SpaceId, topicId domain.TopicId, userId domain.UserId) error {
	if _, err := t.access.RequireMember(ctx, spaceId, userId, "delete topics", domain.RoleOwner, domain.RoleAdmin); err != nil {
		return err
	}
	exists, err := t.storage.TopicExists(ctx, spaceId, topicId)
	if err != nil {
		return err
	}
	if !exists {
		return &internal_errors.TopicNotFoundError{Ref: topicId}
	}
	return t.storage.DeleteTopic(ctx, topicId)
}

// List returns all topics of the space, pinned first, with per-member
// unread counts. The full set is returned unpaginated.
func (t *Topic) List(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId) ([]domain.TopicOverview, error) {
	membership, err := t.access.RequireMember(ctx, spaceId, userId, "list topics")
	if err != nil {
		return nil, err
	}
	return t.storage.ListTopics(ctx, spaceId, membership.Id)
}

// TogglePin flips the topic-level pin, which is global to the space,
// not per member.
func (t *Topic) TogglePin(ctx context.Context, spaceId domain.SpaceId, topicId domain.TopicId, userId domain.UserId) (bool, error) {
	if _, err := t.access.RequireMember(ctx, spaceId, userId, "pin topics", domain.RoleOwner, domain.RoleAdmin); err != nil {
		return false, err
	}
	exists, err := t.storage.TopicExists(ctx, spaceId, topicId)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, &internal_errors.TopicNotFoundError{Ref: topicId}
	}
	return t.storage.ToggleTopicPin(ctx, topicId)
}
