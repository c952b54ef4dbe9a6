package services

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/franciscosanchezn/gin-users-api/internal/models"
	"github.com/franciscosanchezn/gin-users-api/internal/security"
	"gorm.io/gorm"
)

// UserService provides methods to manage user accounts
type UserService interface {
	// ListUsers retrieves all users, newest first
	ListUsers() ([]models.User, error)
	// GetUserByID retrieves a single user by its ID
	GetUserByID(id int) (*models.User, error)
	// CreateUser validates and persists a new user
	CreateUser(input models.CreateUserInput) (*models.User, error)
	// UpdateUser merges the provided fields into an existing user
	UpdateUser(id int, input models.UpdateUserInput) (*models.User, error)
	// DeleteUser removes a user and returns a confirmation snapshot
	DeleteUser(id int) (*models.DeletedUser, error)
}

// userService is the implementation of the UserService interface
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

// normalizeEmail lowercases and trims an address. Emails are stored and
// compared in this form, so uniqueness is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, wrapUnexpected(err)
	}
	return users, nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	user, err := s.findByID(id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) CreateUser(input models.CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		input.Password == "" {
		return nil, newError(KindMissingFields, "name, email and password are required")
	}

	role := input.Role
	if role == "" {
		role = models.RoleProfessor
	}
	if !models.IsValidRole(role) {
		return nil, newError(KindInvalidInput, "role must be ADMIN or PROFESSOR")
	}

	email := normalizeEmail(input.Email)
	taken, err := s.emailTaken(email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, newError(KindDuplicateEmail, "email already registered")
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, wrapUnexpected(err)
	}

	user := models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hash,
		Role:     role,
		Photo:    input.Photo,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// The unique index on email is the real uniqueness guarantee;
		// the pre-check above can lose a race against a concurrent create.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(KindDuplicateEmail, "email already registered")
		}
		return nil, wrapUnexpected(err)
	}
	return &user, nil
}

func (s *userService) UpdateUser(id int, input models.UpdateUserInput) (*models.User, error) {
	user, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			taken, err := s.emailTaken(email, user.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, newError(KindEmailInUse, "email already in use by another user")
			}
		}
		user.Email = email
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password)
		if err != nil {
			return nil, wrapUnexpected(err)
		}
		user.Password = hash
	}
	if input.Role != nil {
		if !models.IsValidRole(*input.Role) {
			return nil, newError(KindInvalidInput, "role must be ADMIN or PROFESSOR")
		}
		user.Role = *input.Role
	}
	if len(input.Photo) > 0 {
		photo, err := decodePhoto(input.Photo)
		if err != nil {
			return nil, err
		}
		user.Photo = photo
	}

	if err := s.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(KindEmailInUse, "email already in use by another user")
		}
		return nil, wrapUnexpected(err)
	}
	return user, nil
}

func (s *userService) DeleteUser(id int) (*models.DeletedUser, error) {
	user, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	snapshot := models.DeletedUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
	if err := s.db.Delete(&models.User{}, user.ID).Error; err != nil {
		return nil, wrapUnexpected(err)
	}
	return &snapshot, nil
}

// findByID validates the identifier and loads the row, mapping a missing
// row to KindNotFound.
func (s *userService) findByID(id int) (*models.User, error) {
	if id <= 0 {
		return nil, newError(KindInvalidInput, "user id must be a positive integer")
	}
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "user not found")
		}
		return nil, wrapUnexpected(err)
	}
	return &user, nil
}

// emailTaken reports whether another row already holds the address.
// excludeID skips the caller's own row on updates.
func (s *userService) emailTaken(email string, excludeID uint) (bool, error) {
	var existing models.User
	query := s.db.Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.First(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, wrapUnexpected(err)
}

// decodePhoto interprets the raw photo field of a partial update:
// JSON null clears the photo, a JSON string sets it.
func decodePhoto(raw json.RawMessage) (*string, error) {
	var photo *string
	if err := json.Unmarshal(raw, &photo); err != nil {
		return nil, newError(KindInvalidInput, "photo must be a string or null")
	}
	return photo, nil
}
