// Package authors provides database operations for catalog authors.
package authors

import (
	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists an author. Author names are not unique, so the only
// failure mode is a store-level integrity rejection, returned
// classified.
func (r *Repository) Create(author *entities.Author) (*entities.Author, error) {
	if author.AuthorType == "" {
		author.AuthorType = entities.AuthorTypePerson
	}
	if err := r.db.Create(author).Error; err != nil {
		return nil, database.ClassifyError(err)
	}
	return author, nil
}

// GetByID retrieves an author by ID, returning database.ErrNotFound
// when absent.
func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.First(&author, id).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &author, nil
}

// List returns authors ordered by ID with offset pagination.
func (r *Repository) List(skip, limit int) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("id").Offset(skip).Limit(limit).Find(&authors).Error
	return authors, err
}
