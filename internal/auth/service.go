// Package auth implements the credential and access-control layer:
// password hashing, bearer-token issuance, and the guard that resolves
// a token to an active principal.
package auth

import (
	"errors"

	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/entities"
)

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInactiveUser       = errors.New("inactive user")
	ErrNotSuperuser       = errors.New("superuser privileges required")
)

// UserStore is the slice of the users repository the guard needs.
type UserStore interface {
	GetByUsername(username string) (*entities.User, error)
}

// Service authenticates credentials and resolves bearer tokens to
// principals.
type Service struct {
	users  UserStore
	tokens *TokenManager
}

// NewService creates a new authentication service.
func NewService(users UserStore, tokens *TokenManager) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

// Authenticate verifies a username/password pair and returns a bearer
// token. Unknown user, wrong password and inactive account all
// collapse to ErrInvalidCredentials so the response does not reveal
// which check failed.
func (s *Service) Authenticate(username, password string) (string, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := CheckPassword(password, user.HashedPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user.Username)
}

// CurrentUser resolves a bearer token to its user. Token validity is
// checked before the lookup, and the activation flag before the
// principal is returned; an invalid token never falls back to an
// anonymous identity.
func (s *Service) CurrentUser(token string) (*entities.User, error) {
	subject, err := s.tokens.Subject(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(subject)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

// RequireSuperuser is the second gate layered on top of a valid active
// principal.
func (s *Service) RequireSuperuser(user *entities.User) error {
	if !user.IsSuperuser {
		return ErrNotSuperuser
	}
	return nil
}
