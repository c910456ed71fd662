package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/database/materials"
	"github.com/mrlokans/biblioteca/internal/entities"
)

// DefaultMaterialsLimit is the page size for the material listing.
const DefaultMaterialsLimit = 10

type CreateMaterialRequest struct {
	Title           string                  `json:"title" binding:"required,min=1,max=200"`
	Description     string                  `json:"description"`
	MaterialType    entities.MaterialType   `json:"material_type" binding:"required,oneof=book article video"`
	Status          entities.MaterialStatus `json:"status" binding:"omitempty,oneof=draft published archived"`
	PublicationDate *time.Time              `json:"publication_date"`
	ISBN            *string                 `json:"isbn"`
	Pages           *int                    `json:"pages" binding:"omitempty,gt=0"`
	DOI             *string                 `json:"doi"`
	JournalName     *string                 `json:"journal_name"`
	DurationSeconds *int                    `json:"duration_seconds" binding:"omitempty,gt=0"`
	VideoURL        *string                 `json:"video_url"`
	AuthorID        uint                    `json:"author_id" binding:"required"`
}

type MaterialsController struct {
	repo *materials.Repository
}

func NewMaterialsController(repo *materials.Repository) *MaterialsController {
	return &MaterialsController{repo: repo}
}

// Create persists a new material with the authenticated user as
// uploader. Fails with 404 when the referenced author does not exist.
func (controller *MaterialsController) Create(c *gin.Context) {
	var req CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	var uploaderID *uint
	if user, ok := auth.CurrentUser(c); ok {
		uploaderID = &user.ID
	}

	material, err := controller.repo.Create(&entities.Material{
		Title:           req.Title,
		Description:     req.Description,
		MaterialType:    req.MaterialType,
		Status:          req.Status,
		PublicationDate: req.PublicationDate,
		ISBN:            req.ISBN,
		Pages:           req.Pages,
		DOI:             req.DOI,
		JournalName:     req.JournalName,
		DurationSeconds: req.DurationSeconds,
		VideoURL:        req.VideoURL,
		AuthorID:        req.AuthorID,
	}, uploaderID)
	if err != nil {
		respondDomainError(c, err, "create material")
		return
	}

	respondCreated(c, material)
}

// List returns materials with their authors embedded.
func (controller *MaterialsController) List(c *gin.Context) {
	skip, limit := parsePagination(c, DefaultMaterialsLimit)

	list, err := controller.repo.List(skip, limit)
	if err != nil {
		respondInternalError(c, err, "list materials")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns a single material with its author embedded.
func (controller *MaterialsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	material, err := controller.repo.GetByID(id)
	if err != nil {
		respondDomainError(c, err, "get material")
		return
	}
	c.JSON(http.StatusOK, material)
}

// Update applies a partial update: only fields present in the payload
// overwrite stored values.
func (controller *MaterialsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var update materials.MaterialUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	material, err := controller.repo.Update(id, update)
	if err != nil {
		respondDomainError(c, err, "update material")
		return
	}
	c.JSON(http.StatusOK, material)
}

// Delete removes a material and returns the deleted snapshot. The
// route is superuser-only.
func (controller *MaterialsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	material, err := controller.repo.Delete(id)
	if err != nil {
		respondDomainError(c, err, "delete material")
		return
	}
	c.JSON(http.StatusOK, material)
}
