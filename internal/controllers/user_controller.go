package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-users-api/internal/models"
	"github.com/franciscosanchezn/gin-users-api/internal/services"
	"github.com/gin-gonic/gin"
)

// UserController handles HTTP requests related to users
type UserController interface {
	// GetAllUsers retrieves all users
	GetAllUsers(c *gin.Context)
	// GetUserByID retrieves a user by its ID
	GetUserByID(c *gin.Context)
	// CreateUser creates a new user
	CreateUser(c *gin.Context)
	// UpdateUser partially updates an existing user
	UpdateUser(c *gin.Context)
	// DeleteUser deletes a user by its ID
	DeleteUser(c *gin.Context)
}

type controller struct {
	service services.UserService
}

// NewUserController creates a new instance of UserController
func NewUserController(service services.UserService) *controller {
	return &controller{service: service}
}

// GetAllUsers godoc
// @Summary List users
// @Description Get all users, newest first
// @Tags users
// @Produce json
// @Success 200 {object} models.UserListResponse
// @Failure 500 {object} models.APIResponse
// @Router /users [get]
func (c *controller) GetAllUsers(ctx *gin.Context) {
	users, err := c.service.ListUsers()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.UserListResponse{
		Success: true,
		Data:    users,
		Total:   len(users),
	})
}

// GetUserByID godoc
// @Summary Get user by ID
// @Description Get a single user by its ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.APIResponse{data=models.User}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /users/{id} [get]
func (c *controller) GetUserByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	user, err := c.service.GetUserByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.APIResponse{Success: true, Data: user})
}

// CreateUser godoc
// @Summary Create a user
// @Description Create a new user with the input payload
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.CreateUserInput true "User payload"
// @Success 201 {object} models.APIResponse{data=models.User}
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /users [post]
func (c *controller) CreateUser(ctx *gin.Context) {
	var input models.CreateUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, models.APIResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	user, err := c.service.CreateUser(input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Message: "User created successfully",
		Data:    user,
	})
}

// UpdateUser godoc
// @Summary Update a user
// @Description Apply a partial update to an existing user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body models.UpdateUserInput true "Fields to update"
// @Success 200 {object} models.APIResponse{data=models.User}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /users/{id} [put]
func (c *controller) UpdateUser(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	// An empty body is a valid update that touches nothing
	var input models.UpdateUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, models.APIResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	user, err := c.service.UpdateUser(id, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "User updated successfully",
		Data:    user,
	})
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Delete a user and return a confirmation snapshot
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.APIResponse{data=models.DeletedUser}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /users/{id} [delete]
func (c *controller) DeleteUser(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	snapshot, err := c.service.DeleteUser(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "User deleted successfully",
		Data:    snapshot,
	})
}

// parseID reads the :id path parameter. A non-numeric value gets the same
// 400 as an invalid identifier rejected by the service.
func parseID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.APIResponse{
			Success: false,
			Message: "user id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

// respondError maps a service error kind to an HTTP response. Message text
// is never inspected.
func respondError(ctx *gin.Context, err error) {
	switch services.Kind(err) {
	case services.KindNotFound:
		ctx.JSON(http.StatusNotFound, models.APIResponse{
			Success: false,
			Message: err.Error(),
		})
	case services.KindInvalidInput,
		services.KindMissingFields,
		services.KindDuplicateEmail,
		services.KindEmailInUse:
		ctx.JSON(http.StatusBadRequest, models.APIResponse{
			Success: false,
			Message: err.Error(),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, models.APIResponse{
			Success: false,
			Message: "Internal server error",
			Error:   err.Error(),
		})
	}
}
