package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblioteca/internal/database/authors"
	"github.com/mrlokans/biblioteca/internal/entities"
)

// DefaultAuthorsLimit is the page size for the author listing.
const DefaultAuthorsLimit = 10

type CreateAuthorRequest struct {
	Name       string              `json:"name" binding:"required,min=1,max=100"`
	City       string              `json:"city" binding:"max=100"`
	AuthorType entities.AuthorType `json:"author_type" binding:"omitempty,oneof=person institution"`
}

type AuthorsController struct {
	repo *authors.Repository
}

func NewAuthorsController(repo *authors.Repository) *AuthorsController {
	return &AuthorsController{repo: repo}
}

// Create persists a new author.
func (controller *AuthorsController) Create(c *gin.Context) {
	var req CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	author, err := controller.repo.Create(&entities.Author{
		Name:       req.Name,
		City:       req.City,
		AuthorType: req.AuthorType,
	})
	if err != nil {
		respondDomainError(c, err, "create author")
		return
	}

	respondCreated(c, author)
}

// List returns authors with skip/limit pagination.
func (controller *AuthorsController) List(c *gin.Context) {
	skip, limit := parsePagination(c, DefaultAuthorsLimit)

	list, err := controller.repo.List(skip, limit)
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns a single author by ID.
func (controller *AuthorsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := controller.repo.GetByID(id)
	if err != nil {
		respondDomainError(c, err, "get author")
		return
	}
	c.JSON(http.StatusOK, author)
}
