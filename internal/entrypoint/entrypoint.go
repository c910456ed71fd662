package entrypoint

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/config"
	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/database/authors"
	"github.com/mrlokans/biblioteca/internal/database/materials"
	"github.com/mrlokans/biblioteca/internal/database/users"
	"github.com/mrlokans/biblioteca/internal/graphql"
	http_controllers "github.com/mrlokans/biblioteca/internal/http"
)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the database, repositories, guard and both API surfaces,
// then serves.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Biblioteca v%s", version)

	secret := cfg.Auth.SecretKey
	if secret == "" {
		log.Printf("WARNING: AUTH_SECRET_KEY is not set; using a random per-process secret. Issued tokens will not survive a restart.")
		secret = randomSecret()
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	usersRepo := users.NewRepository(db.DB, cfg.Auth.BcryptCost)
	authorsRepo := authors.NewRepository(db.DB)
	materialsRepo := materials.NewRepository(db.DB)

	tokens := auth.NewTokenManager(secret, cfg.Auth.TokenExpiry)
	authService := auth.NewService(usersRepo, tokens)

	graphqlHandler, err := graphql.NewHandler(&graphql.Resolver{
		Authors:   authorsRepo,
		Materials: materialsRepo,
		Users:     usersRepo,
	})
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		DB:          db,
		AuthService: authService,
		Users:       usersRepo,
		Authors:     authorsRepo,
		Materials:   materialsRepo,
		GraphQL:     graphqlHandler,
		Version:     version,
	})

	Serve(router, cfg)
}

func randomSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatalf("Failed to generate secret: %v", err)
	}
	return hex.EncodeToString(bytes)
}
