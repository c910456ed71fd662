package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/database/authors"
	"github.com/mrlokans/biblioteca/internal/database/materials"
	"github.com/mrlokans/biblioteca/internal/database/users"
	"github.com/mrlokans/biblioteca/internal/entities"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	users  *users.Repository
}

func setupTestServer(t *testing.T) (*testServer, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.Author{}, &entities.Material{})
	require.NoError(t, err)

	usersRepo := users.NewRepository(db, bcrypt.MinCost)
	authorsRepo := authors.NewRepository(db)
	materialsRepo := materials.NewRepository(db)

	tokens := auth.NewTokenManager("test-secret", time.Minute)
	service := auth.NewService(usersRepo, tokens)

	router := NewRouter(RouterConfig{
		DB:          &database.Database{DB: db},
		AuthService: service,
		Users:       usersRepo,
		Authors:     authorsRepo,
		Materials:   materialsRepo,
		Version:     "test",
	})

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return &testServer{router: router, db: db, users: usersRepo}, cleanup
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the API and returns a bearer
// token obtained from the token endpoint.
func (s *testServer) register(t *testing.T, username, password string) string {
	t.Helper()

	w := s.do(t, "POST", "/users/", "", gin.H{
		"username": username,
		"email":    username + "@x.com",
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return s.login(t, username, password)
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	req, err := http.NewRequest("POST", "/auth/token", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// promote flips the superuser flag directly; there is no API for it.
func (s *testServer) promote(t *testing.T, username string) {
	t.Helper()
	err := s.db.Model(&entities.User{}).
		Where("username = ?", username).
		Update("is_superuser", true).Error
	require.NoError(t, err)
}
