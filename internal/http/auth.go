package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblioteca/internal/auth"
)

// TokenResponse is the OAuth2-style password-grant response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AuthController struct {
	service *auth.Service
}

func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

// Token exchanges form-encoded credentials for a bearer token.
func (controller *AuthController) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		respondBadRequest(c, "username and password are required")
		return
	}

	token, err := controller.service.Authenticate(username, password)
	if err != nil {
		respondDomainError(c, err, "authenticate")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
