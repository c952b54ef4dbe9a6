package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-users-api/internal/models"
	"github.com/franciscosanchezn/gin-users-api/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	return db
}

func strPtr(s string) *string {
	return &s
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	user, err := service.CreateUser(models.CreateUserInput{
		Name:     "Ada Lovelace",
		Email:    "Ada@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "Ada Lovelace", user.Name)
	// Emails are stored lowercased
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, models.RoleProfessor, user.Role)
	assert.Nil(t, user.Photo)

	// Stored password is a bcrypt hash of the original
	assert.NotEqual(t, "secret1", user.Password)
	assert.NoError(t, security.CheckPassword(user.Password, "secret1"))

	// A fresh lookup returns the same record
	found, err := service.GetUserByID(int(user.ID))
	require.NoError(t, err)
	assert.Equal(t, user.Name, found.Name)
	assert.Equal(t, user.Email, found.Email)
}

func TestCreateUserMissingFields(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	testCases := []struct {
		name  string
		input models.CreateUserInput
	}{
		{
			name:  "missing name",
			input: models.CreateUserInput{Email: "a@x.com", Password: "secret1"},
		},
		{
			name:  "missing email",
			input: models.CreateUserInput{Name: "A", Password: "secret1"},
		},
		{
			name:  "missing password",
			input: models.CreateUserInput{Name: "A", Email: "a@x.com"},
		},
		{
			name:  "blank name",
			input: models.CreateUserInput{Name: "   ", Email: "a@x.com", Password: "secret1"},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateUser(tt.input)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindMissingFields))
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	_, err := service.CreateUser(models.CreateUserInput{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = service.CreateUser(models.CreateUserInput{
		Name: "B", Email: "a@x.com", Password: "secret2",
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDuplicateEmail))

	// Uniqueness is case-insensitive
	_, err = service.CreateUser(models.CreateUserInput{
		Name: "C", Email: "A@X.COM", Password: "secret3",
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDuplicateEmail))
}

func TestCreateUserInvalidRole(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	_, err := service.CreateUser(models.CreateUserInput{
		Name: "A", Email: "a@x.com", Password: "secret1", Role: "STUDENT",
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidInput))

	user, err := service.CreateUser(models.CreateUserInput{
		Name: "A", Email: "a@x.com", Password: "secret1", Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestGetUserByID(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	// Invalid identifiers are rejected before any lookup
	for _, id := range []int{0, -1} {
		_, err := service.GetUserByID(id)
		require.Error(t, err)
		assert.True(t, IsKind(err, KindInvalidInput))
	}

	// A valid identifier with no row is a distinct outcome
	_, err := service.GetUserByID(999999)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestListUsersOrder(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	older := models.User{
		Name: "Old", Email: "old@x.com", Password: "hash",
		Role: models.RoleProfessor, CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := models.User{
		Name: "New", Email: "new@x.com", Password: "hash",
		Role: models.RoleProfessor, CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	users, err := service.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "New", users[0].Name)
	assert.Equal(t, "Old", users[1].Name)
}

func TestUpdateUserMergesOnlyProvidedFields(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	created, err := service.CreateUser(models.CreateUserInput{
		Name: "A", Email: "a@x.com", Password: "secret1", Photo: strPtr("http://x.com/a.png"),
	})
	require.NoError(t, err)

	updated, err := service.UpdateUser(int(created.ID), models.UpdateUserInput{
		Name: strPtr("B"),
	})
	require.NoError(t, err)

	assert.Equal(t, "B", updated.Name)
	assert.Equal(t, "a@x.com", updated.Email)
	assert.Equal(t, created.Role, updated.Role)
	assert.Equal(t, created.Password, updated.Password)
	require.NotNil(t, updated.Photo)
	assert.Equal(t, "http://x.com/a.png", *updated.Photo)
}

func TestUpdateUserEmptyInput(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	created, err := service.CreateUser(models.CreateUserInput{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	updated, err := service.UpdateUser(int(created.ID), models.UpdateUserInput{})
	require.NoError(t, err)

	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Role, updated.Role)
	assert.Equal(t, created.Password, updated.Password)
	assert.Nil(t, updated.Photo)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateUserEmailChecks(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	first, err := service.CreateUser(models.CreateUserInput{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)
	second, err := service.CreateUser(models.CreateUserInput{
		Name: "B", Email: "b@x.com", Password: "secret2",
	})
	require.NoError(t, err)

	// Keeping your own address is not a conflict
	updated, err := service.UpdateUser(int(first.ID), models.UpdateUserInput{
		Email: strPtr("a@x.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", updated.Email)

	// Taking another user's address is
	_, err = service.UpdateUser(int(second.ID), models.UpdateUserInput{
		Email: strPtr("A@X.com"),
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindEmailInUse))
}

func TestUpdateUserValidationOrder(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	_, err := service.CreateUser(models.CreateUserInput{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	// An invalid id wins over everything else in the payload
	_, err = service.UpdateUser(-1, models.UpdateUserInput{Email: strPtr("a@x.com")})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidInput))

	// Existence is checked before email uniqueness
	_, err = service.UpdateUser(999999, models.UpdateUserInput{Email: strPtr("a@x.com")})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestUpdateUserPhoto(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	created, err := service.CreateUser(models.CreateUserInput{
		Name: "A", Email: "a@x.com", Password: "secret1", Photo: strPtr("http://x.com/a.png"),
	})
	require.NoError(t, err)

	// Absent photo key leaves the photo untouched
	updated, err := service.UpdateUser(int(created.ID), models.UpdateUserInput{
		Name: strPtr("B"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Photo)

	// Explicit null clears it
	updated, err = service.UpdateUser(int(created.ID), models.UpdateUserInput{
		Photo: json.RawMessage("null"),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Photo)

	// A string sets it again
	updated, err = service.UpdateUser(int(created.ID), models.UpdateUserInput{
		Photo: json.RawMessage(`"http://x.com/b.png"`),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Photo)
	assert.Equal(t, "http://x.com/b.png", *updated.Photo)

	// Anything else is rejected
	_, err = service.UpdateUser(int(created.ID), models.UpdateUserInput{
		Photo: json.RawMessage("42"),
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidInput))
}

func TestUpdateUserPassword(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	created, err := service.CreateUser(models.CreateUserInput{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	updated, err := service.UpdateUser(int(created.ID), models.UpdateUserInput{
		Password: strPtr("secret2"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, created.Password, updated.Password)
	assert.NoError(t, security.CheckPassword(updated.Password, "secret2"))
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	created, err := service.CreateUser(models.CreateUserInput{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	snapshot, err := service.DeleteUser(int(created.ID))
	require.NoError(t, err)
	assert.Equal(t, created.ID, snapshot.ID)
	assert.Equal(t, "A", snapshot.Name)
	assert.Equal(t, "a@x.com", snapshot.Email)

	_, err = service.GetUserByID(int(created.ID))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))

	_, err = service.DeleteUser(int(created.ID))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}
