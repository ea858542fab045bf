package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pingspace-dev/pingspace/internal/domain"
)

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	if _, ok := err.(T); ok {
		return true
	}
	return false
}

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// StatusCoder is implemented by every typed error kind below so the
// transport layer can map each to a distinct response.
type StatusCoder interface {
	Status() int
}

type SpaceNotFoundError struct {
	SpaceId domain.SpaceId
}

func (e *SpaceNotFoundError) Error() string {
	return fmt.Sprintf("space %q not found", e.SpaceId)
}

func (e *SpaceNotFoundError) Status() int { return http.StatusNotFound }

type TopicNotFoundError struct {
	// Ref is the id or slug used for the lookup.
	Ref string
}

func (e *TopicNotFoundError) Error() string {
	return fmt.Sprintf("topic %q not found", e.Ref)
}

func (e *TopicNotFoundError) Status() int { return http.StatusNotFound }

type CredentialNotFoundError struct {
	KeyId domain.ApiKeyId
}

func (e *CredentialNotFoundError) Error() string {
	return "api key not found"
}

func (e *CredentialNotFoundError) Status() int { return http.StatusUnauthorized }

type CredentialInactiveError struct {
	KeyId domain.ApiKeyId
}

func (e *CredentialInactiveError) Error() string {
	return "api key is inactive"
}

func (e *CredentialInactiveError) Status() int { return http.StatusUnauthorized }

// UnauthorizedError means the caller has no membership in the space.
type UnauthorizedError struct {
	SpaceId domain.SpaceId
	Action  string
}

func (e *UnauthorizedError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("not a member of space %q", e.SpaceId)
	}
	return fmt.Sprintf("you must be a member of space %q to %s", e.SpaceId, e.Action)
}

func (e *UnauthorizedError) Status() int { return http.StatusForbidden }

// InsufficientPermissionsError means the caller is a member but their
// role is not in the allowed set for the attempted action.
type InsufficientPermissionsError struct {
	SpaceId  domain.SpaceId
	Required []domain.MemberRole
	Action   string
}

func (e *InsufficientPermissionsError) Error() string {
	roles := make([]string, len(e.Required))
	for i, r := range e.Required {
		roles[i] = string(r)
	}
	return fmt.Sprintf("role %s required to %s", strings.Join(roles, " or "), e.Action)
}

func (e *InsufficientPermissionsError) Status() int { return http.StatusForbidden }

type SlugConflictError struct {
	Slug string
}

func (e *SlugConflictError) Error() string {
	return fmt.Sprintf("slug %q already exists", e.Slug)
}

func (e *SlugConflictError) Status() int { return http.StatusConflict }

type UserAlreadyExistsError struct {
	Email domain.Email
}

func (e *UserAlreadyExistsError) Error() string { return "user already exists" }

func (e *UserAlreadyExistsError) Status() int { return http.StatusConflict }

type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string { return "invalid email or password" }

func (e *InvalidCredentialsError) Status() int { return http.StatusUnauthorized }

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation error: %s", e.Message)
}

func (e *ValidationError) Status() int { return http.StatusBadRequest }
