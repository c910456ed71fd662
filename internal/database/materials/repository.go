// Package materials provides database operations for catalog
// materials, including author-reference validation and partial
// updates.
package materials

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/entities"
)

var (
	ErrAuthorNotFound = errors.New("referenced author not found")
	ErrISBNTaken      = errors.New("isbn already registered")
	ErrDOITaken       = errors.New("doi already registered")
)

// Repository handles all material database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new materials repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a material after verifying the referenced author
// exists. The check and the insert share one transaction, so a failed
// insert leaves nothing behind. uploaderID may be nil for anonymous
// creation paths. The returned material has its Author loaded.
func (r *Repository) Create(material *entities.Material, uploaderID *uint) (*entities.Material, error) {
	if material.Status == "" {
		material.Status = entities.MaterialStatusDraft
	}
	material.UploaderID = uploaderID

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var author entities.Author
		if err := tx.First(&author, material.AuthorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuthorNotFound
			}
			return err
		}
		if err := tx.Omit("Author", "Uploader").Create(material).Error; err != nil {
			return classifyConflict(err)
		}
		material.Author = author
		return nil
	})
	if err != nil {
		return nil, err
	}
	return material, nil
}

// GetByID retrieves a material with its author loaded, returning
// database.ErrNotFound when absent.
func (r *Repository) GetByID(id uint) (*entities.Material, error) {
	var material entities.Material
	err := r.db.Preload("Author").First(&material, id).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &material, nil
}

// List returns materials with authors loaded, ordered by ID for
// stable pagination.
func (r *Repository) List(skip, limit int) ([]entities.Material, error) {
	var materials []entities.Material
	err := r.db.Preload("Author").Order("id").Offset(skip).Limit(limit).Find(&materials).Error
	return materials, err
}

// Update applies a partial update to a material. Only fields present
// in the update overwrite stored values. A new AuthorID is validated
// the same way Create validates it. Returns the updated material with
// its author loaded.
func (r *Repository) Update(id uint, update MaterialUpdate) (*entities.Material, error) {
	var material entities.Material
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&material, id).Error; err != nil {
			return database.ClassifyError(err)
		}

		if update.AuthorID != nil {
			var author entities.Author
			if err := tx.First(&author, *update.AuthorID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrAuthorNotFound
				}
				return err
			}
		}

		update.Apply(&material)

		if err := tx.Omit("Author", "Uploader").Save(&material).Error; err != nil {
			return classifyConflict(err)
		}
		return tx.Preload("Author").First(&material, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// Delete removes a material and returns the deleted snapshot with its
// author loaded, or database.ErrNotFound when absent.
func (r *Repository) Delete(id uint) (*entities.Material, error) {
	var material entities.Material
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Author").First(&material, id).Error; err != nil {
			return database.ClassifyError(err)
		}
		return tx.Delete(&entities.Material{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func classifyConflict(err error) error {
	classified := database.ClassifyError(err)

	var cerr *database.ConstraintError
	if errors.As(classified, &cerr) {
		switch {
		case cerr.On("materials", "isbn"):
			return ErrISBNTaken
		case cerr.On("materials", "doi"):
			return ErrDOITaken
		}
	}
	return classified
}
