// Package handler provides the HTTP handlers for the games feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"games_backend/internal/api"
	"games_backend/internal/feature/games/usecase"
	"games_backend/internal/platform/apperror"
	"games_backend/internal/platform/validation"
)

// GameUsecase defines the game operations this handler consumes.
// Following Go convention, the interface is defined by the consumer
// (handler), not the provider (usecase).
type GameUsecase interface {
	CreateGame(ctx context.Context, payload map[string]any) (map[string]any, error)
	GetGame(ctx context.Context, id string, details usecase.Echo) (map[string]any, error)
	GetAllGames(ctx context.Context, details usecase.Echo) ([]map[string]any, error)
	UpdateGame(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error)
	DeleteGame(ctx context.Context, id string) (bool, error)
}

// GameHandler handles HTTP requests for game records.
type GameHandler struct {
	games GameUsecase
}

// NewGameHandler creates a GameHandler over the given usecase.
func NewGameHandler(games GameUsecase) *GameHandler {
	return &GameHandler{games: games}
}

// Register handles POST /games.
func (h *GameHandler) Register(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.WriteError(c, apperror.NewValidation("Invalid Body", err))
		return
	}
	game, err := h.games.CreateGame(c.Request.Context(), payload)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// GetOne handles GET /games/:id with an optional details query.
func (h *GameHandler) GetOne(c *gin.Context) {
	details, err := usecase.ParseEcho(c.Query("details"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	game, err := h.games.GetGame(c.Request.Context(), c.Param("id"), details)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// GetAll handles GET /games with an optional details query.
func (h *GameHandler) GetAll(c *gin.Context) {
	details, err := usecase.ParseEcho(c.Query("details"))
	if err != nil {
		api.WriteError(c, err)
		return
	}
	games, err := h.games.GetAllGames(c.Request.Context(), details)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// FullUpdate handles PUT /games/:id, a full replacement.
func (h *GameHandler) FullUpdate(c *gin.Context) {
	h.update(c, validation.Full)
}

// PartialUpdate handles POST /games/:id, a partial update.
func (h *GameHandler) PartialUpdate(c *gin.Context) {
	h.update(c, validation.Partial)
}

func (h *GameHandler) update(c *gin.Context, group validation.Group) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.WriteError(c, apperror.NewValidation("Invalid Body", err))
		return
	}
	game, err := h.games.UpdateGame(c.Request.Context(), c.Param("id"), payload, group)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// Remove handles DELETE /games/:id. A delete reported unsuccessful after
// the usecase confirmed existence is surfaced, not swallowed.
func (h *GameHandler) Remove(c *gin.Context) {
	deleted, err := h.games.DeleteGame(c.Request.Context(), c.Param("id"))
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
