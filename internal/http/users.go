package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/database/users"
)

// DefaultUsersLimit is the page size for the user listing.
const DefaultUsersLimit = 100

type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type UsersController struct {
	repo *users.Repository
}

func NewUsersController(repo *users.Repository) *UsersController {
	return &UsersController{repo: repo}
}

// Register creates a new user account.
func (controller *UsersController) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := controller.repo.Register(req.Username, req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err, "register user")
		return
	}

	respondCreated(c, user)
}

// Me returns the authenticated user.
func (controller *UsersController) Me(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondInternalError(c, errors.New("authenticated user missing from context"), "users/me")
		return
	}
	c.JSON(http.StatusOK, user)
}

// List returns all users. The route is superuser-only.
func (controller *UsersController) List(c *gin.Context) {
	skip, limit := parsePagination(c, DefaultUsersLimit)

	list, err := controller.repo.List(skip, limit)
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, list)
}
