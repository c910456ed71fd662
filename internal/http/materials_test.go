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

func createTestAuthor(t *testing.T, server *testServer, token, name string) entities.Author {
	t.Helper()

	w := server.do(t, "POST", "/authors/", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var author entities.Author
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &author))
	return author
}

func TestMaterialsController_Create(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token := server.register(t, "alice", "password123")
	author := createTestAuthor(t, server, token, "Jane Doe")

	w := server.do(t, "POST", "/materials/", token, gin.H{
		"title":         "Book A",
		"material_type": "book",
		"author_id":     author.ID,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var material entities.Material
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &material))
	assert.Equal(t, "Book A", material.Title)
	assert.Equal(t, "Jane Doe", material.Author.Name)
	assert.Equal(t, entities.MaterialStatusDraft, material.Status)
	require.NotNil(t, material.UploaderID)
}

func TestMaterialsController_Create_AuthorMissing(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token := server.register(t, "alice", "password123")

	w := server.do(t, "POST", "/materials/", token, gin.H{
		"title":         "Book A",
		"material_type": "book",
		"author_id":     999,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMaterialsController_Create_RequiresAuth(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.do(t, "POST", "/materials/", "", gin.H{
		"title":         "Book A",
		"material_type": "book",
		"author_id":     1,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMaterialsController_Get_EmbedsAuthor(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token := server.register(t, "alice", "password123")
	author := createTestAuthor(t, server, token, "Jane Doe")

	w := server.do(t, "POST", "/materials/", token, gin.H{
		"title":         "Book A",
		"material_type": "book",
		"author_id":     author.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.Material
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = server.do(t, "GET", "/materials/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched entities.Material
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, author.ID, fetched.Author.ID)
	assert.Equal(t, author.Name, fetched.Author.Name)
}

func TestMaterialsController_Get_NotFound(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.do(t, "GET", "/materials/999", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMaterialsController_Update_Partial(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token := server.register(t, "alice", "password123")
	author := createTestAuthor(t, server, token, "Jane Doe")

	w := server.do(t, "POST", "/materials/", token, gin.H{
		"title":         "Book A",
		"description":   "original",
		"material_type": "book",
		"author_id":     author.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = server.do(t, "PUT", "/materials/1", token, gin.H{
		"status": "published",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var updated entities.Material
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, entities.MaterialStatusPublished, updated.Status)
	assert.Equal(t, "Book A", updated.Title)
	assert.Equal(t, "original", updated.Description)
}

func TestMaterialsController_Update_InvalidPayload(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token := server.register(t, "alice", "password123")
	author := createTestAuthor(t, server, token, "Jane Doe")

	w := server.do(t, "POST", "/materials/", token, gin.H{
		"title":         "Book A",
		"material_type": "book",
		"author_id":     author.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	for name, payload := range map[string]gin.H{
		"out-of-enum type":   {"material_type": "junk"},
		"out-of-enum status": {"status": "bogus"},
		"empty title":        {"title": ""},
		"zero pages":         {"pages": 0},
	} {
		w = server.do(t, "PUT", "/materials/1", token, payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}

	// Nothing was persisted by the rejected payloads
	w = server.do(t, "GET", "/materials/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var material entities.Material
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &material))
	assert.Equal(t, "Book A", material.Title)
	assert.Equal(t, entities.MaterialTypeBook, material.MaterialType)
	assert.Equal(t, entities.MaterialStatusDraft, material.Status)
}

func TestMaterialsController_Update_NewAuthorMissing(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token := server.register(t, "alice", "password123")
	author := createTestAuthor(t, server, token, "Jane Doe")

	w := server.do(t, "POST", "/materials/", token, gin.H{
		"title":         "Book A",
		"material_type": "book",
		"author_id":     author.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = server.do(t, "PUT", "/materials/1", token, gin.H{
		"author_id": 999,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMaterialsController_Delete_RequiresSuperuser(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token := server.register(t, "alice", "password123")
	author := createTestAuthor(t, server, token, "Jane Doe")

	w := server.do(t, "POST", "/materials/", token, gin.H{
		"title":         "Book A",
		"material_type": "book",
		"author_id":     author.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Regular user is rejected
	w = server.do(t, "DELETE", "/materials/1", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Superuser gets the deleted snapshot back
	server.promote(t, "alice")
	token = server.login(t, "alice", "password123")

	w = server.do(t, "DELETE", "/materials/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var deleted entities.Material
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	assert.Equal(t, "Book A", deleted.Title)
	assert.Equal(t, "Jane Doe", deleted.Author.Name)

	w = server.do(t, "GET", "/materials/1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMaterialsController_List_Pagination(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token := server.register(t, "alice", "password123")
	author := createTestAuthor(t, server, token, "Jane Doe")

	for _, title := range []string{"First", "Second", "Third"} {
		w := server.do(t, "POST", "/materials/", token, gin.H{
			"title":         title,
			"material_type": "article",
			"author_id":     author.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := server.do(t, "GET", "/materials/?skip=1&limit=1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var list []entities.Material
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Second", list[0].Title)
	assert.Equal(t, "Jane Doe", list[0].Author.Name)
}
