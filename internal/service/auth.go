package service

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/crypto/bcrypt"

	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
	"github.com/pingspace-dev/pingspace/internal/utils/jwt"
)

type AuthService interface {
	SignUp(ctx context.Context, email domain.Email, password domain.Password) (string, error)
	SignIn(ctx context.Context, email domain.Email, password domain.Password) (string, error)
}

type AuthStorage interface {
	CreateUser(ctx context.Context, data domain.UserCreationData) (domain.UserId, error)
	FindUserByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
}

type Auth struct {
	storage  AuthStorage
	jwt      jwt.JwtService
	hashCost int
}

func NewAuth(storage AuthStorage, jwtService jwt.JwtService, hashCost int) *Auth {
	return &Auth{storage, jwtService, hashCost}
}

func (a *Auth) SignUp(ctx context.Context, email domain.Email, password domain.Password) (string, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), a.hashCost)
	if err != nil {
		return "", err
	}

	userId, err := a.storage.CreateUser(ctx, domain.UserCreationData{
		Nickname:     generateNickname(),
		Email:        email,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		return "", err
	}

	return a.jwt.NewToken(userId)
}

func (a *Auth) SignIn(ctx context.Context, email domain.Email, password domain.Password) (string, error) {
	user, err := a.storage.FindUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", &internal_errors.InvalidCredentialsError{}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", &internal_errors.InvalidCredentialsError{}
	}

	return a.jwt.NewToken(user.Id)
}

var (
	nicknameColors  = []string{"Amber", "Azure", "Coral", "Crimson", "Indigo", "Ivory", "Jade", "Olive", "Scarlet", "Teal"}
	nicknameAnimals = []string{"Badger", "Falcon", "Heron", "Lynx", "Marmot", "Otter", "Puffin", "Raven", "Stoat", "Wombat"}
)

// generateNickname builds a readable default nickname for new accounts.
func generateNickname() string {
	return fmt.Sprintf("%s%s%d",
		nicknameColors[rand.Intn(len(nicknameColors))],
		nicknameAnimals[rand.Intn(len(nicknameAnimals))],
		rand.Intn(9990)+10,
	)
}
