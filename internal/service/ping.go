package service

import (
	"context"
	"time"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
	"github.com/pingspace-dev/pingspace/internal/service/utils"
)

type PingService interface {
	Create(ctx context.Context, apiKeyId domain.ApiKeyId, submission domain.PingSubmission) (*domain.Ping, domain.SpaceId, error)
	List(ctx context.Context, spaceId domain.SpaceId, topicId domain.TopicId, userId domain.UserId, cursor *string, limit int) (domain.PingPage, error)
	MarkRead(ctx context.Context, spaceId domain.SpaceId, topicId domain.TopicId, userId domain.UserId, timestamp time.Time) error
}

type PingStorage interface {
	FindApiKey(ctx context.Context, keyId domain.ApiKeyId) (*domain.ApiKey, error)
	FindTopicBySlug(ctx context.Context, spaceId domain.SpaceId, slug domain.TopicSlug) (*domain.Topic, error)
	TopicExists(ctx context.Context, spaceId domain.SpaceId, topicId domain.TopicId) (bool, error)
	CreatePing(ctx context.Context, data domain.PingCreationData) (*domain.Ping, error)
	ListPings(ctx context.Context, topicId domain.TopicId, cursor *string, limit int) (domain.PingPage, error)
	MarkPingsRead(ctx context.Context, topicId domain.TopicId, memberId domain.MemberId, timestamp time.Time) error
}

type Ping struct {
	storage PingStorage
	access  *Access
	now     func() time.Time
}

func NewPing(storage PingStorage, access *Access) *Ping {
	return &Ping{storage, access, time.Now}
}

// Create ingests a producer submission. The caller is authenticated by
// api key only; this is the one write path with no membership check.
func (p *Ping) Create(ctx context.Context, apiKeyId domain.ApiKeyId, submission domain.PingSubmission) (*domain.Ping, domain.SpaceId, error) {
	if err := validateSubmission(submission); err != nil {
		return nil, "", err
	}

	key, err := p.storage.FindApiKey(ctx, apiKeyId)
	if err != nil {
		return nil, "", err
	}
	if key == nil {
		return nil, "", &internal_errors.CredentialNotFoundError{KeyId: apiKeyId}
	}

	topic, err := p.storage.FindTopicBySlug(ctx, key.SpaceId, submission.TopicSlug)
	if err != nil {
		return nil, "", err
	}
	if topic == nil {
		return nil, "", &internal_errors.TopicNotFoundError{Ref: submission.TopicSlug}
	}

	content := submission.Content
	if submission.ContentType == domain.ContentMarkdown {
		content = utils.SanitizeMarkdown(content)
	}

	ping, err := p.storage.CreatePing(ctx, domain.PingCreationData{
		TopicId:     topic.Id,
		ApiKeyId:    key.Id,
		Title:       p.resolveTitle(submission),
		ContentType: submission.ContentType,
		Content:     content,
		Tags:        submission.Tags,
		Actions:     submission.Actions,
	})
	if err != nil {
		return nil, "", err
	}
	return ping, key.SpaceId, nil
}

// resolveTitle prefers the submitted title, then the first level-1
// markdown heading, then a timestamped placeholder.
func (p *Ping) resolveTitle(submission domain.PingSubmission) string {
	if submission.Title != nil && *submission.Title != "" {
		return *submission.Title
	}
	if submission.ContentType == domain.ContentMarkdown {
		if title, ok := utils.ExtractTitle(submission.Content); ok {
			return title
		}
	}
	return "Ping at " + p.now().UTC().Format(time.RFC3339)
}

func validateSubmission(submission domain.PingSubmission) error {
	if submission.ContentType == domain.ContentJSON && (submission.Title == nil || *submission.Title == "") {
		return &internal_errors.ValidationError{Message: "title is required for JSON content"}
	}
	for _, action := range submission.Actions {
		switch action.Type {
		case domain.ActionHttp:
			if action.Method == nil || *action.Method == "" {
				return &internal_errors.ValidationError{Message: "HTTP actions require a method"}
			}
		case domain.ActionLink:
			if action.Method != nil || action.Headers != nil || action.Body != nil {
				return &internal_errors.ValidationError{Message: "LINK actions carry no method, headers or body"}
			}
		default:
			return &internal_errors.ValidationError{Message: "unknown action type"}
		}
	}
	return nil
}

func (p *Ping) List(ctx context.Context, spaceId domain.SpaceId, topicId domain.TopicId, userId domain.UserId, cursor *string, limit int) (domain.PingPage, error) {
	if _, err := p.access.RequireMember(ctx, spaceId, userId, "list pings"); err != nil {
		return domain.PingPage{}, err
	}
	exists, err := p.storage.TopicExists(ctx, spaceId, topicId)
	if err != nil {
		return domain.PingPage{}, err
	}
	if !exists {
		return domain.PingPage{}, &internal_errors.TopicNotFoundError{Ref: topicId}
	}
	return p.storage.ListPings(ctx, topicId, cursor, limit)
}

// MarkRead advances the member's read state over the pings that exist
// in the topic right now. Pings created later stay unread regardless of
// the supplied timestamp.
func (p *Ping) MarkRead(ctx context.Context, spaceId domain.SpaceId, topicId domain.TopicId, userId domain.UserId, timestamp time.Time) error {
	membership, err := p.access.RequireMember(ctx, spaceId, userId, "mark pings as read")
	if err != nil {
		return err
	}
	exists, err := p.storage.TopicExists(ctx, spaceId, topicId)
	if err != nil {
		return err
	}
	if !exists {
		return &internal_errors.TopicNotFoundError{Ref: topicId}
	}
	return p.storage.MarkPingsRead(ctx, topicId, membership.Id, timestamp)
}
