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

func (s *Storage) CreateUser(ctx context.Context, data domain.UserCreationData) (domain.UserId, error) {
	userId := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO users (id, nickname, email, password_hash)
        VALUES ($1, $2, $3, $4)
    `, userId, data.Nickname, data.Email, data.PasswordHash)
	if err != nil {
		if isUniqueViolation(err, "users_unique_email") {
			return "", &internal_errors.UserAlreadyExistsError{Email: data.Email}
		}
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return userId, nil
}

func (s *Storage) FindUserByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRowContext(ctx, `
        SELECT id, nickname, email, password_hash, created_at
        FROM users
        WHERE email = $1
    `, email).Scan(&u.Id, &u.Nickname, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &u, nil
}
