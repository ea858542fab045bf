package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
)

func (s *Storage) CreateTopic(ctx context.Context, data domain.TopicCreationData) (domain.TopicId, error) {
	topicId := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO topics (id, space_id, name, emoji, slug, short_description, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, topicId, data.SpaceId, data.Name, data.Emoji, data.Slug, data.ShortDescription, data.Description)
	if err != nil {
		if isUniqueViolation(err, "topics_unique_space_slug") {
			return "", &internal_errors.SlugConflictError{Slug: data.Slug}
		}
		return "", fmt.Errorf("failed to insert topic: %w", err)
	}
	return topicId, nil
}

func (s *Storage) DeleteTopic(ctx context.Context, topicId domain.TopicId) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM topics WHERE id = $1", topicId)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.TopicNotFoundError{Ref: topicId}
	}
	return nil
}

// TopicExists is scoped to the space so a topic id from another space
// behaves like a missing topic.
func (s *Storage) TopicExists(ctx context.Context, spaceId domain.SpaceId, topicId domain.TopicId) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM topics WHERE id = $1 AND space_id = $2)", topicId, spaceId,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check topic existence: %w", err)
	}
	return exists, nil
}

func (s *Storage) FindTopicBySlug(ctx context.Context, spaceId domain.SpaceId, slug domain.TopicSlug) (*domain.Topic, error) {
	var t domain.Topic
	var updatedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
        SELECT id, space_id, name, emoji, slug, short_description, description, is_pinned, created_at, updated_at
        FROM topics
        WHERE space_id = $1 AND slug = $2
    `, spaceId, slug).Scan(&t.Id, &t.SpaceId, &t.Name, &t.Emoji, &t.Slug, &t.ShortDescription, &t.Description, &t.IsPinned, &t.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch topic: %w", err)
	}
	if updatedAt.Valid {
		u := updatedAt.Time
		t.UpdatedAt = &u
	}
	return &t, nil
}

// ListTopics returns every topic of the space, pinned first and oldest
// first within each group, annotated with the member's unread count and
// the latest ping time.
func (s *Storage) ListTopics(ctx context.Context, spaceId domain.SpaceId, memberId domain.MemberId) ([]domain.TopicOverview, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT
            t.id,
            t.name,
            t.emoji,
            t.slug,
            t.short_description,
            t.is_pinned,
            (SELECT MAX(p.created_at) FROM pings p WHERE p.topic_id = t.id) AS last_ping_at,
            (
                SELECT COUNT(*)
                FROM pings p
                LEFT JOIN ping_reads r ON r.ping_id = p.id AND r.member_id = $2
                WHERE p.topic_id = t.id AND r.ping_id IS NULL
            ) AS unread_count
        FROM topics t
        WHERE t.space_id = $1
        ORDER BY t.is_pinned DESC, t.created_at ASC
    `, spaceId, memberId)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	var items []domain.TopicOverview
	for rows.Next() {
		var item domain.TopicOverview
		var lastPingAt sql.NullTime
		if err := rows.Scan(&item.Id, &item.Name, &item.Emoji, &item.Slug, &item.ShortDescription, &item.IsPinned, &lastPingAt, &item.UnreadCount); err != nil {
			return nil, fmt.Errorf("failed to scan topic row: %w", err)
		}
		if lastPingAt.Valid {
			t := lastPingAt.Time
			item.LastPingAt = &t
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return items, nil
}

// ToggleTopicPin flips the pin atomically in a single statement and
// returns the new state.
func (s *Storage) ToggleTopicPin(ctx context.Context, topicId domain.TopicId) (bool, error) {
	var pinned bool
	err := s.db.QueryRowContext(ctx, `
        UPDATE topics
        SET is_pinned = NOT is_pinned, updated_at = NOW()
        WHERE id = $1
        RETURNING is_pinned
    `, topicId).Scan(&pinned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, &internal_errors.TopicNotFoundError{Ref: topicId}
		}
		return false, fmt.Errorf("failed to toggle topic pin: %w", err)
	}
	return pinned, nil
}
