package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblioteca/internal/entities"
)

// ContextKeyUser is the gin context key holding the authenticated
// *entities.User.
const ContextKeyUser = "auth_user"

// Middleware guards routes with bearer-token authentication.
type Middleware struct {
	service *Service
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireUser resolves the bearer token to an active user and stores
// it in the request context, aborting with 401 (or 400 for an
// inactive account) otherwise.
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := m.authenticate(c)
		if !ok {
			return
		}
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireSuperuser layers the superuser check on top of the same
// token resolution RequireUser performs.
func (m *Middleware) RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := m.authenticate(c)
		if !ok {
			return
		}
		if err := m.service.RequireSuperuser(user); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// authenticate resolves the request's bearer token to an active user,
// aborting the request itself on failure.
func (m *Middleware) authenticate(c *gin.Context) (*entities.User, bool) {
	token, ok := bearerToken(c)
	if !ok {
		abortUnauthorized(c, "not authenticated")
		return nil, false
	}

	user, err := m.service.CurrentUser(token)
	if err != nil {
		if errors.Is(err, ErrInactiveUser) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInactiveUser.Error()})
			return nil, false
		}
		abortUnauthorized(c, ErrInvalidToken.Error())
		return nil, false
	}
	return user, true
}

// CurrentUser extracts the authenticated user stored by RequireUser.
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	value, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*entities.User)
	return user, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
