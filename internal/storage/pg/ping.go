package pg

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
)

// CreatePing writes the ping with its actions and tags in one
// transaction. Tags are found-or-created per (topic, name); the upsert
// does a no-op update instead of DO NOTHING so RETURNING always yields
// the row, including under concurrent inserts of the same tag.
func (s *Storage) CreatePing(ctx context.Context, data domain.PingCreationData) (*domain.Ping, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	apiKeyId := data.ApiKeyId
	ping := domain.Ping{
		Id:          uuid.NewString(),
		TopicId:     data.TopicId,
		ApiKeyId:    &apiKeyId,
		Title:       data.Title,
		ContentType: data.ContentType,
		Content:     data.Content,
		Tags:        []domain.PingTag{},
		Actions:     []domain.PingAction{},
	}
	err = tx.QueryRowContext(ctx, `
        INSERT INTO pings (id, topic_id, api_key_id, title, content_type, content)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at
    `, ping.Id, ping.TopicId, apiKeyId, ping.Title, ping.ContentType, ping.Content).Scan(&ping.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ping: %w", err)
	}

	for i, action := range data.Actions {
		a := domain.PingAction{
			Id:      uuid.NewString(),
			Type:    action.Type,
			Label:   action.Label,
			Url:     action.Url,
			Method:  action.Method,
			Headers: action.Headers,
			Body:    action.Body,
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO ping_actions (id, ping_id, type, label, url, method, headers, body, ordinal)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        `, a.Id, ping.Id, a.Type, a.Label, a.Url, a.Method, a.Headers, a.Body, i)
		if err != nil {
			return nil, fmt.Errorf("failed to insert ping action: %w", err)
		}
		ping.Actions = append(ping.Actions, a)
	}

	seen := make(map[string]bool, len(data.Tags))
	for _, name := range data.Tags {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag domain.PingTag
		err = tx.QueryRowContext(ctx, `
            INSERT INTO topic_tags (id, topic_id, name)
            VALUES ($1, $2, $3)
            ON CONFLICT (topic_id, name) DO UPDATE SET name = EXCLUDED.name
            RETURNING id, name
        `, uuid.NewString(), data.TopicId, name).Scan(&tag.Id, &tag.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert tag: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO ping_tags (ping_id, tag_id) VALUES ($1, $2)", ping.Id, tag.Id)
		if err != nil {
			return nil, fmt.Errorf("failed to attach tag: %w", err)
		}
		ping.Tags = append(ping.Tags, tag)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &ping, nil
}

// ListPings pages through the topic feed newest first and hydrates tags
// and actions for the whole page in two batch queries.
func (s *Storage) ListPings(ctx context.Context, topicId domain.TopicId, cursor *string, limit int) (domain.PingPage, error) {
	qb := sq.Select("id", "topic_id", "api_key_id", "title", "content_type", "content", "created_at").
		From("pings").
		Where(sq.Eq{"topic_id": topicId}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit + 1)).
		PlaceholderFormat(sq.Dollar)

	if cursor != nil {
		var c timeIdCursor
		if err := decodeCursor(*cursor, &c); err != nil {
			return domain.PingPage{}, &internal_errors.ValidationError{Message: "invalid cursor"}
		}
		qb = qb.Where(sq.Expr("(created_at, id) < (?, ?)", c.CreatedAt, c.Id))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return domain.PingPage{}, fmt.Errorf("failed to build pings query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.PingPage{}, fmt.Errorf("failed to list pings: %w", err)
	}
	defer rows.Close()

	var items []domain.Ping
	for rows.Next() {
		ping := domain.Ping{Tags: []domain.PingTag{}, Actions: []domain.PingAction{}}
		if err := rows.Scan(&ping.Id, &ping.TopicId, &ping.ApiKeyId, &ping.Title, &ping.ContentType, &ping.Content, &ping.CreatedAt); err != nil {
			return domain.PingPage{}, fmt.Errorf("failed to scan ping row: %w", err)
		}
		items = append(items, ping)
	}
	if err := rows.Err(); err != nil {
		return domain.PingPage{}, fmt.Errorf("rows iteration error: %w", err)
	}

	page := domain.PingPage{HasNextPage: len(items) > limit}
	if page.HasNextPage {
		items = items[:limit]
	}
	if err := s.hydratePings(ctx, items); err != nil {
		return domain.PingPage{}, err
	}
	page.Items = items
	if page.HasNextPage && len(items) > 0 {
		last := items[len(items)-1]
		next := encodeCursor(timeIdCursor{CreatedAt: last.CreatedAt, Id: last.Id})
		page.NextCursor = &next
	}
	return page, nil
}

func (s *Storage) hydratePings(ctx context.Context, pings []domain.Ping) error {
	if len(pings) == 0 {
		return nil
	}
	ids := make([]string, len(pings))
	byId := make(map[domain.PingId]*domain.Ping, len(pings))
	for i := range pings {
		ids[i] = pings[i].Id
		byId[pings[i].Id] = &pings[i]
	}

	tagRows, err := s.db.QueryContext(ctx, `
        SELECT pt.ping_id, t.id, t.name
        FROM ping_tags pt
        JOIN topic_tags t ON t.id = pt.tag_id
        WHERE pt.ping_id = ANY($1::uuid[])
        ORDER BY t.name ASC
    `, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch ping tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var pingId domain.PingId
		var tag domain.PingTag
		if err := tagRows.Scan(&pingId, &tag.Id, &tag.Name); err != nil {
			return fmt.Errorf("failed to scan tag row: %w", err)
		}
		if ping, ok := byId[pingId]; ok {
			ping.Tags = append(ping.Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}

	actionRows, err := s.db.QueryContext(ctx, `
        SELECT ping_id, id, type, label, url, method, headers, body
        FROM ping_actions
        WHERE ping_id = ANY($1::uuid[])
        ORDER BY ordinal ASC
    `, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch ping actions: %w", err)
	}
	defer actionRows.Close()
	for actionRows.Next() {
		var pingId domain.PingId
		var a domain.PingAction
		if err := actionRows.Scan(&pingId, &a.Id, &a.Type, &a.Label, &a.Url, &a.Method, &a.Headers, &a.Body); err != nil {
			return fmt.Errorf("failed to scan action row: %w", err)
		}
		if ping, ok := byId[pingId]; ok {
			ping.Actions = append(ping.Actions, a)
		}
	}
	if err := actionRows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	return nil
}

// MarkPingsRead records read receipts for every ping in the topic the
// member has not read yet, in a single statement. The anti-join plus
// ON CONFLICT DO NOTHING makes the call idempotent and safe under
// concurrent invocations.
func (s *Storage) MarkPingsRead(ctx context.Context, topicId domain.TopicId, memberId domain.MemberId, timestamp time.Time) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO ping_reads (ping_id, member_id, read_ts)
        SELECT p.id, $2, $3
        FROM pings p
        WHERE p.topic_id = $1
          AND NOT EXISTS (
              SELECT 1 FROM ping_reads r
              WHERE r.ping_id = p.id AND r.member_id = $2
          )
        ON CONFLICT (ping_id, member_id) DO NOTHING
    `, topicId, memberId, timestamp)
	if err != nil {
		return fmt.Errorf("failed to mark pings read: %w", err)
	}
	return nil
}
