package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
)

func (s *Storage) CreateApiKey(ctx context.Context, data domain.ApiKeyCreationData) (*domain.ApiKey, error) {
	key := domain.ApiKey{
		Id:          uuid.NewString(),
		SpaceId:     data.SpaceId,
		SecretHash:  data.SecretHash,
		Name:        data.Name,
		Description: data.Description,
		Status:      domain.ApiKeyActive,
	}
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO api_keys (id, space_id, secret_hash, name, description, status, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at
    `, key.Id, key.SpaceId, key.SecretHash, key.Name, key.Description, key.Status, data.CreatedBy).Scan(&key.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert api key: %w", err)
	}
	return &key, nil
}

func (s *Storage) FindApiKey(ctx context.Context, keyId domain.ApiKeyId) (*domain.ApiKey, error) {
	var key domain.ApiKey
	var lastUsedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
        SELECT id, space_id, secret_hash, name, description, status, created_at, last_used_at
        FROM api_keys
        WHERE id = $1
    `, keyId).Scan(&key.Id, &key.SpaceId, &key.SecretHash, &key.Name, &key.Description, &key.Status, &key.CreatedAt, &lastUsedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch api key: %w", err)
	}
	if lastUsedAt.Valid {
		t := lastUsedAt.Time
		key.LastUsedAt = &t
	}
	return &key, nil
}

func (s *Storage) ListApiKeys(ctx context.Context, spaceId domain.SpaceId, status *domain.ApiKeyStatus, cursor *string, limit int) (domain.ApiKeyPage, error) {
	qb := sq.Select("id", "space_id", "secret_hash", "name", "description", "status", "created_at", "last_used_at").
		From("api_keys").
		Where(sq.Eq{"space_id": spaceId}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit + 1)).
		PlaceholderFormat(sq.Dollar)

	if status != nil {
		qb = qb.Where(sq.Eq{"status": *status})
	}
	if cursor != nil {
		var c timeIdCursor
		if err := decodeCursor(*cursor, &c); err != nil {
			return domain.ApiKeyPage{}, &internal_errors.ValidationError{Message: "invalid cursor"}
		}
		qb = qb.Where(sq.Expr("(created_at, id) < (?, ?)", c.CreatedAt, c.Id))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return domain.ApiKeyPage{}, fmt.Errorf("failed to build api keys query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.ApiKeyPage{}, fmt.Errorf("failed to list api keys: %w", err)
	}
	defer rows.Close()

	var items []domain.ApiKey
	for rows.Next() {
		var key domain.ApiKey
		var lastUsedAt sql.NullTime
		if err := rows.Scan(&key.Id, &key.SpaceId, &key.SecretHash, &key.Name, &key.Description, &key.Status, &key.CreatedAt, &lastUsedAt); err != nil {
			return domain.ApiKeyPage{}, fmt.Errorf("failed to scan api key row: %w", err)
		}
		if lastUsedAt.Valid {
			t := lastUsedAt.Time
			key.LastUsedAt = &t
		}
		items = append(items, key)
	}
	if err := rows.Err(); err != nil {
		return domain.ApiKeyPage{}, fmt.Errorf("rows iteration error: %w", err)
	}

	page := domain.ApiKeyPage{HasNextPage: len(items) > limit}
	if page.HasNextPage {
		items = items[:limit]
	}
	page.Items = items
	if page.HasNextPage && len(items) > 0 {
		last := items[len(items)-1]
		next := encodeCursor(timeIdCursor{CreatedAt: last.CreatedAt, Id: last.Id})
		page.NextCursor = &next
	}
	return page, nil
}

func (s *Storage) TouchApiKey(ctx context.Context, keyId domain.ApiKeyId) error {
	_, err := s.db.ExecContext(ctx, "UPDATE api_keys SET last_used_at = NOW() WHERE id = $1", keyId)
	if err != nil {
		return fmt.Errorf("failed to update api key last_used_at: %w", err)
	}
	return nil
}
