package authors

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_authors_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Author{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_Create(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	author, err := repo.Create(&entities.Author{Name: "Jane Doe", City: "Lisbon"})

	require.NoError(t, err)
	assert.NotZero(t, author.ID)
	assert.Equal(t, "Jane Doe", author.Name)
	assert.Equal(t, entities.AuthorTypePerson, author.AuthorType)
}

func TestRepository_Create_DuplicateNameAllowed(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Create(&entities.Author{Name: "Jane Doe"})
	require.NoError(t, err)

	second, err := repo.Create(&entities.Author{Name: "Jane Doe"})

	require.NoError(t, err)
	assert.NotZero(t, second.ID)
}

func TestRepository_GetByID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.Create(&entities.Author{
		Name:       "MIT Press",
		AuthorType: entities.AuthorTypeInstitution,
	})
	require.NoError(t, err)

	author, err := repo.GetByID(created.ID)

	require.NoError(t, err)
	assert.Equal(t, "MIT Press", author.Name)
	assert.Equal(t, entities.AuthorTypeInstitution, author.AuthorType)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByID(999)

	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_List_Pagination(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for _, name := range []string{"A", "B", "C"} {
		_, err := repo.Create(&entities.Author{Name: name})
		require.NoError(t, err)
	}

	authors, err := repo.List(1, 2)

	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "B", authors[0].Name)
	assert.Equal(t, "C", authors[1].Name)
}
