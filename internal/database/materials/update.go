package materials

import (
	"time"

	"github.com/mrlokans/biblioteca/internal/entities"
)

// MaterialUpdate carries the fields of a partial material update. A
// nil field means "leave unchanged"; a set field fully overwrites the
// stored value and must satisfy the same constraints Create enforces.
// Keeping the merge as a plain function makes the PATCH semantics
// testable without a serialization layer.
type MaterialUpdate struct {
	Title           *string                  `json:"title" binding:"omitempty,min=1,max=200"`
	Description     *string                  `json:"description"`
	MaterialType    *entities.MaterialType   `json:"material_type" binding:"omitempty,oneof=book article video"`
	Status          *entities.MaterialStatus `json:"status" binding:"omitempty,oneof=draft published archived"`
	PublicationDate *time.Time               `json:"publication_date"`
	ISBN            *string                  `json:"isbn"`
	Pages           *int                     `json:"pages" binding:"omitempty,gt=0"`
	DOI             *string                  `json:"doi"`
	JournalName     *string                  `json:"journal_name"`
	DurationSeconds *int                     `json:"duration_seconds" binding:"omitempty,gt=0"`
	VideoURL        *string                  `json:"video_url"`
	AuthorID        *uint                    `json:"author_id" binding:"omitempty,gt=0"`
}

// Apply merges the update into the material in place.
func (u MaterialUpdate) Apply(m *entities.Material) {
	if u.Title != nil {
		m.Title = *u.Title
	}
	if u.Description != nil {
		m.Description = *u.Description
	}
	if u.MaterialType != nil {
		m.MaterialType = *u.MaterialType
	}
	if u.Status != nil {
		m.Status = *u.Status
	}
	if u.PublicationDate != nil {
		m.PublicationDate = u.PublicationDate
	}
	if u.ISBN != nil {
		m.ISBN = u.ISBN
	}
	if u.Pages != nil {
		m.Pages = u.Pages
	}
	if u.DOI != nil {
		m.DOI = u.DOI
	}
	if u.JournalName != nil {
		m.JournalName = u.JournalName
	}
	if u.DurationSeconds != nil {
		m.DurationSeconds = u.DurationSeconds
	}
	if u.VideoURL != nil {
		m.VideoURL = u.VideoURL
	}
	if u.AuthorID != nil {
		m.AuthorID = *u.AuthorID
	}
}
