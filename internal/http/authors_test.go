package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/biblioteca/internal/entities"
)

func TestAuthorsController_Create(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token := server.register(t, "alice", "password123")

	w := server.do(t, "POST", "/authors/", token, gin.H{
		"name":        "MIT Press",
		"city":        "Cambridge",
		"author_type": "institution",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var author entities.Author
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &author))
	assert.Equal(t, "MIT Press", author.Name)
	assert.Equal(t, entities.AuthorTypeInstitution, author.AuthorType)
}

func TestAuthorsController_Create_RequiresAuth(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.do(t, "POST", "/authors/", "", gin.H{"name": "Jane Doe"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorsController_Create_InvalidType(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token := server.register(t, "alice", "password123")

	w := server.do(t, "POST", "/authors/", token, gin.H{
		"name":        "Jane Doe",
		"author_type": "robot",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthorsController_GetAndList(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token := server.register(t, "alice", "password123")
	author := createTestAuthor(t, server, token, "Jane Doe")

	w := server.do(t, "GET", "/authors/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched entities.Author
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, author.Name, fetched.Name)

	w = server.do(t, "GET", "/authors/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var list []entities.Author
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestAuthorsController_Get_NotFound(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.do(t, "GET", "/authors/999", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
