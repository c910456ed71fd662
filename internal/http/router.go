package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/database/authors"
	"github.com/mrlokans/biblioteca/internal/database/materials"
	"github.com/mrlokans/biblioteca/internal/database/users"
)

// RouterConfig carries everything NewRouter needs, keeping wiring in
// one place and the router testable.
type RouterConfig struct {
	DB          *database.Database
	AuthService *auth.Service
	Users       *users.Repository
	Authors     *authors.Repository
	Materials   *materials.Repository
	GraphQL     nethttp.Handler
	Version     string
}

// NewRouter creates and configures the HTTP router with all
// endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	guard := auth.NewMiddleware(cfg.AuthService)

	healthController := NewHealthController(cfg.DB, cfg.Version)
	router.GET("/", healthController.Index)
	router.GET("/health", healthController.Status)

	authController := NewAuthController(cfg.AuthService)
	router.POST("/auth/token", authController.Token)

	usersController := NewUsersController(cfg.Users)
	router.POST("/users/", usersController.Register)
	router.GET("/users/me", guard.RequireUser(), usersController.Me)
	router.GET("/users/", guard.RequireSuperuser(), usersController.List)

	authorsController := NewAuthorsController(cfg.Authors)
	router.POST("/authors/", guard.RequireUser(), authorsController.Create)
	router.GET("/authors/", authorsController.List)
	router.GET("/authors/:id", authorsController.Get)

	materialsController := NewMaterialsController(cfg.Materials)
	router.POST("/materials/", guard.RequireUser(), materialsController.Create)
	router.GET("/materials/", materialsController.List)
	router.GET("/materials/:id", materialsController.Get)
	router.PUT("/materials/:id", guard.RequireUser(), materialsController.Update)
	router.DELETE("/materials/:id", guard.RequireSuperuser(), materialsController.Delete)

	if cfg.GraphQL != nil {
		router.POST("/graphql", gin.WrapH(cfg.GraphQL))
		router.GET("/graphql", gin.WrapH(cfg.GraphQL))
	}

	return router
}
