// Package users provides database operations for user accounts.
//
// # Usage
//
//	repo := users.NewRepository(db, bcryptCost)
//	user, err := repo.Register("alice", "alice@example.com", "password123")
package users

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/entities"
)

var (
	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")
)

// Repository handles all user database operations.
type Repository struct {
	db         *gorm.DB
	bcryptCost int
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB, bcryptCost int) *Repository {
	return &Repository{db: db, bcryptCost: bcryptCost}
}

// Register creates a user with a hashed password. The uniqueness
// pre-checks give friendly errors for the common case; two concurrent
// registrations can still both pass them, so the unique constraint is
// authoritative and its violation maps to the same conflict errors.
func (r *Repository) Register(username, email, password string) (*entities.User, error) {
	if _, err := r.GetByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	if _, err := r.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, r.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, classifyConflict(err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &user, nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &user, nil
}

// List returns users ordered by ID with offset pagination.
func (r *Repository) List(skip, limit int) ([]entities.User, error) {
	var users []entities.User
	err := r.db.Order("id").Offset(skip).Limit(limit).Find(&users).Error
	return users, err
}

// classifyConflict turns an identified unique-constraint violation
// into the matching conflict error, or reports the constraint error
// itself when neither column is identifiable.
func classifyConflict(err error) error {
	classified := database.ClassifyError(err)

	var cerr *database.ConstraintError
	if errors.As(classified, &cerr) {
		switch {
		case cerr.On("users", "username"):
			return ErrUsernameTaken
		case cerr.On("users", "email"):
			return ErrEmailTaken
		}
	}
	return classified
}
