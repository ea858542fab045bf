package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
)

func (s *Storage) SpaceExists(ctx context.Context, spaceId domain.SpaceId) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM spaces WHERE id = $1)", spaceId,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check space existence: %w", err)
	}
	return exists, nil
}

func (s *Storage) FindMembership(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId) (*domain.Membership, error) {
	var m domain.Membership
	err := s.db.QueryRowContext(ctx, `
        SELECT id, space_id, user_id, role, joined_at
        FROM space_members
        WHERE space_id = $1 AND user_id = $2
    `, spaceId, userId).Scan(&m.Id, &m.SpaceId, &m.UserId, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}
	return &m, nil
}

func (s *Storage) CreateMembership(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, role domain.MemberRole) (domain.MemberId, error) {
	memberId := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO space_members (id, space_id, user_id, role)
        VALUES ($1, $2, $3, $4)
    `, memberId, spaceId, userId, role)
	if err != nil {
		if isUniqueViolation(err, "space_members_unique_space_user") {
			return "", &internal_errors.ErrorWithStatusCode{Message: "Already a member of this space", StatusCode: http.StatusConflict}
		}
		return "", fmt.Errorf("failed to create membership: %w", err)
	}
	return memberId, nil
}

// CreateSpace inserts the space row and its OWNER membership in one
// transaction; either both persist or neither does.
func (s *Storage) CreateSpace(ctx context.Context, data domain.SpaceCreationData) (domain.SpaceId, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	spaceId := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
        INSERT INTO spaces (id, name, slug, short_description, description, owner_id)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, spaceId, data.Name, data.Slug, data.ShortDescription, data.Description, data.OwnerId)
	if err != nil {
		if isUniqueViolation(err, "spaces_unique_slug") {
			return "", &internal_errors.SlugConflictError{Slug: data.Slug}
		}
		return "", fmt.Errorf("failed to insert space: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO space_members (id, space_id, user_id, role)
        VALUES ($1, $2, $3, $4)
    `, uuid.NewString(), spaceId, data.OwnerId, domain.RoleOwner)
	if err != nil {
		return "", fmt.Errorf("failed to insert owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return spaceId, nil
}

func (s *Storage) DeleteSpace(ctx context.Context, spaceId domain.SpaceId) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM spaces WHERE id = $1", spaceId)
	if err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.SpaceNotFoundError{SpaceId: spaceId}
	}
	return nil
}

// ListSpaces returns one page of the member's spaces feed, ordered
// pinned first, then most recent ping activity, then id. The cursor
// encodes the full sort-key tuple of the page boundary.
func (s *Storage) ListSpaces(ctx context.Context, userId domain.UserId, cursor *string, limit int) (domain.SpacePage, error) {
	qb := sq.Select(
		"s.id",
		"s.name",
		"s.short_description",
		"COALESCE(sp.pinned, false) AS is_pinned",
		"lp.last_ping_at",
		"COALESCE(uc.unread_count, 0) AS unread_count",
	).
		From("spaces s").
		Join("space_members sm ON sm.space_id = s.id AND sm.user_id = ?", userId).
		LeftJoin("space_pins sp ON sp.space_id = s.id AND sp.user_id = ?", userId).
		LeftJoin(`(
            SELECT t.space_id, MAX(p.created_at) AS last_ping_at
            FROM pings p
            JOIN topics t ON t.id = p.topic_id
            GROUP BY t.space_id
        ) lp ON lp.space_id = s.id`).
		LeftJoin(`(
            SELECT t.space_id, COUNT(p.id) AS unread_count
            FROM pings p
            JOIN topics t ON t.id = p.topic_id
            JOIN space_members m ON m.space_id = t.space_id AND m.user_id = ?
            LEFT JOIN ping_reads r ON r.ping_id = p.id AND r.member_id = m.id
            WHERE r.ping_id IS NULL
            GROUP BY t.space_id
        ) uc ON uc.space_id = s.id`, userId).
		OrderBy(
			"COALESCE(sp.pinned, false) DESC",
			"lp.last_ping_at DESC NULLS LAST",
			"s.id DESC",
		).
		Limit(uint64(limit + 1)).
		PlaceholderFormat(sq.Dollar)

	if cursor != nil {
		var c spaceCursor
		if err := decodeCursor(*cursor, &c); err != nil {
			return domain.SpacePage{}, &internal_errors.ValidationError{Message: "invalid cursor"}
		}
		// Tuple comparison over all sort keys; NULL activity sorts last
		// under DESC, so it is pinned to -infinity on both sides.
		qb = qb.Where(sq.Expr(`(
            COALESCE(sp.pinned, false),
            COALESCE(lp.last_ping_at, '-infinity'::timestamptz),
            s.id
        ) < (?, COALESCE(?::timestamptz, '-infinity'::timestamptz), ?)`,
			c.Pinned, c.LastPingAt, c.Id))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return domain.SpacePage{}, fmt.Errorf("failed to build spaces query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.SpacePage{}, fmt.Errorf("failed to list spaces: %w", err)
	}
	defer rows.Close()

	var items []domain.SpaceOverview
	for rows.Next() {
		var item domain.SpaceOverview
		var lastPingAt sql.NullTime
		if err := rows.Scan(&item.Id, &item.Name, &item.ShortDescription, &item.IsPinned, &lastPingAt, &item.UnreadCount); err != nil {
			return domain.SpacePage{}, fmt.Errorf("failed to scan space row: %w", err)
		}
		if lastPingAt.Valid {
			t := lastPingAt.Time
			item.LastPingAt = &t
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.SpacePage{}, fmt.Errorf("rows iteration error: %w", err)
	}

	page := domain.SpacePage{HasNextPage: len(items) > limit}
	if page.HasNextPage {
		items = items[:limit]
	}
	page.Items = items
	if page.HasNextPage && len(items) > 0 {
		last := items[len(items)-1]
		next := encodeCursor(spaceCursor{Pinned: last.IsPinned, LastPingAt: last.LastPingAt, Id: last.Id})
		page.NextCursor = &next
	}
	return page, nil
}

func (s *Storage) UpsertSpacePin(ctx context.Context, spaceId domain.SpaceId, userId domain.UserId, pinned bool) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO space_pins (space_id, user_id, pinned)
        VALUES ($1, $2, $3)
        ON CONFLICT (space_id, user_id)
        DO UPDATE SET pinned = EXCLUDED.pinned, updated_at = NOW()
    `, spaceId, userId, pinned)
	if err != nil {
		return fmt.Errorf("failed to upsert space pin: %w", err)
	}
	return nil
}
