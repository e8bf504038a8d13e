// Package handler provides the HTTP handlers for the users feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"games_backend/internal/api"
	"games_backend/internal/feature/users/usecase"
	"games_backend/internal/platform/apperror"
	"games_backend/internal/platform/validation"
)

// UserUsecase defines the user operations this handler consumes.
type UserUsecase interface {
	CreateUser(ctx context.Context, payload map[string]any) (map[string]any, error)
	GetUser(ctx context.Context, id string, echo usecase.WishlistEcho) (map[string]any, error)
	GetAllUsers(ctx context.Context) ([]map[string]any, error)
	UpdateUser(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}

// UserHandler handles HTTP requests for user records.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a UserHandler over the given usecase.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Register handles POST /users.
func (h *UserHandler) Register(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.WriteError(c, apperror.NewValidation("Invalid Body", err))
		return
	}
	user, err := h.users.CreateUser(c.Request.Context(), payload)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetOne handles GET /users/:id with an optional wishlist query.
func (h *UserHandler) GetOne(c *gin.Context) {
	echo, err := usecase.ParseWishlistEcho(c.Query("wishlist"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), c.Param("id"), echo)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetAll handles GET /users.
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.users.GetAllUsers(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// FullUpdate handles PUT /users/:id, a full replacement.
func (h *UserHandler) FullUpdate(c *gin.Context) {
	h.update(c, validation.Full)
}

// PartialUpdate handles POST /users/:id, a partial update.
func (h *UserHandler) PartialUpdate(c *gin.Context) {
	h.update(c, validation.Partial)
}

func (h *UserHandler) update(c *gin.Context, group validation.Group) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.WriteError(c, apperror.NewValidation("Invalid Body", err))
		return
	}
	user, err := h.users.UpdateUser(c.Request.Context(), c.Param("id"), payload, group)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Remove handles DELETE /users/:id.
func (h *UserHandler) Remove(c *gin.Context) {
	deleted, err := h.users.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	if !deleted {
		api.WriteError(c, apperror.NewInternal("Delete Failed", nil))
		return
	}
	c.Status(http.StatusNoContent)
}
