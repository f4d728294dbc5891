package session

import (
	"fmt"
	"testing"

	"github.com/forceboard-dev/forceboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Profile{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, user models.User) models.User {
	t.Helper()
	user.PasswordHash = "x"
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestDisplayName_FallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		user     models.User
		expected string
	}{
		{"full name wins", models.User{FullName: "Alex Petrov", Name: "alex", Email: "alex@example.com"}, "Alex Petrov"},
		{"metadata name when no full name", models.User{Name: "Alex", Email: "alex@example.com"}, "Alex"},
		{"email local part when neither", models.User{Email: "alex@example.com"}, "alex"},
		{"whitespace full name is skipped", models.User{FullName: "   ", Email: "alex@example.com"}, "alex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayName(tt.user))
		})
	}
}

func TestEnsureProfile_CreatesOnFirstTouch(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.User{Name: "Alex", Email: "alex@example.com"})

	profile, err := EnsureProfile(db, user)
	require.NoError(t, err)

	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "Alex", profile.FullName)
	assert.Equal(t, "alex@example.com", profile.Email)
	assert.Equal(t, models.DefaultProfileRole, profile.Role)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureProfile_ReturnsExisting(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.User{Name: "Alex", Email: "alex@example.com"})

	first, err := EnsureProfile(db, user)
	require.NoError(t, err)

	second, err := EnsureProfile(db, user)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureProfile_RemovedWithUser(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.User{Name: "Alex", Email: "alex@example.com"})

	profile, err := EnsureProfile(db, user)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("id = ?", profile.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestEnsureProfile_EmailFallback(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.User{Email: "jane.doe@example.com"})

	profile, err := EnsureProfile(db, user)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", profile.FullName)
}
