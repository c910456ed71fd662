package entities

import (
	"time"
)

type AuthorType string

const (
	AuthorTypePerson      AuthorType = "person"
	AuthorTypeInstitution AuthorType = "institution"
)

type MaterialType string

const (
	MaterialTypeBook    MaterialType = "book"
	MaterialTypeArticle MaterialType = "article"
	MaterialTypeVideo   MaterialType = "video"
)

type MaterialStatus string

const (
	MaterialStatusDraft     MaterialStatus = "draft"
	MaterialStatusPublished MaterialStatus = "published"
	MaterialStatusArchived  MaterialStatus = "archived"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"uniqueIndex;size:100" json:"username"`
	Email          string    `gorm:"uniqueIndex;size:255" json:"email"`
	HashedPassword string    `gorm:"size:100" json:"-"` // bcrypt hash, hidden from JSON
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	IsSuperuser    bool      `gorm:"default:false" json:"is_superuser"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Author struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"index;size:100" json:"name"`
	City       string     `gorm:"size:100" json:"city,omitempty"`
	AuthorType AuthorType `gorm:"size:20;default:'person'" json:"author_type"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Material is a catalog entry: a book, an article or a video. The
// type-specific fields are pointers so absent values stay NULL and the
// unique indexes on ISBN and DOI only apply to rows that carry one.
type Material struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"index;size:200" json:"title"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	MaterialType MaterialType   `gorm:"size:20;index" json:"material_type"`
	Status       MaterialStatus `gorm:"size:20;default:'draft'" json:"status"`

	PublicationDate *time.Time `json:"publication_date,omitempty"`

	// Books
	ISBN  *string `gorm:"uniqueIndex;size:20" json:"isbn,omitempty"`
	Pages *int    `json:"pages,omitempty"`

	// Articles
	DOI         *string `gorm:"uniqueIndex;size:100" json:"doi,omitempty"`
	JournalName *string `gorm:"size:150" json:"journal_name,omitempty"`

	// Videos
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
	VideoURL        *string `gorm:"size:255" json:"video_url,omitempty"`

	AuthorID uint   `gorm:"index;not null" json:"author_id"`
	Author   Author `gorm:"foreignKey:AuthorID" json:"author"`

	UploaderID *uint `gorm:"index" json:"uploader_id,omitempty"`
	Uploader   *User `gorm:"foreignKey:UploaderID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
