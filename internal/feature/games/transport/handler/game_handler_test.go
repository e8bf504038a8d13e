package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"games_backend/internal/feature/games/usecase"
	"games_backend/internal/platform/apperror"
	"games_backend/internal/platform/validation"
)

// gameUsecaseMock implements GameUsecase with pluggable behavior.
type gameUsecaseMock struct {
	CreateGameFunc  func(ctx context.Context, payload map[string]any) (map[string]any, error)
	GetGameFunc     func(ctx context.Context, id string, details usecase.Echo) (map[string]any, error)
	GetAllGamesFunc func(ctx context.Context, details usecase.Echo) ([]map[string]any, error)
	UpdateGameFunc  func(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error)
	DeleteGameFunc  func(ctx context.Context, id string) (bool, error)
}

func (m *gameUsecaseMock) CreateGame(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return m.CreateGameFunc(ctx, payload)
}

func (m *gameUsecaseMock) GetGame(ctx context.Context, id string, details usecase.Echo) (map[string]any, error) {
	return m.GetGameFunc(ctx, id, details)
}

func (m *gameUsecaseMock) GetAllGames(ctx context.Context, details usecase.Echo) ([]map[string]any, error) {
	return m.GetAllGamesFunc(ctx, details)
}

func (m *gameUsecaseMock) UpdateGame(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error) {
	return m.UpdateGameFunc(ctx, id, payload, group)
}

func (m *gameUsecaseMock) DeleteGame(ctx context.Context, id string) (bool, error) {
	return m.DeleteGameFunc(ctx, id)
}

func setupRouter(mock *gameUsecaseMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewGameHandler(mock)
	r := gin.New()
	r.POST("/games", h.Register)
	r.GET("/games", h.GetAll)
	r.GET("/games/:id", h.GetOne)
	r.PUT("/games/:id", h.FullUpdate)
	r.POST("/games/:id", h.PartialUpdate)
	r.DELETE("/games/:id", h.Remove)
	return r
}

func perform(t *testing.T, r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGameRegister(t *testing.T) {
	t.Run("201 with the created game", func(t *testing.T) {
		mock := &gameUsecaseMock{
			CreateGameFunc: func(ctx context.Context, payload map[string]any) (map[string]any, error) {
				assert.Equal(t, "Diablo", payload["title"])
				return map[string]any{"id": "g1", "title": "Diablo"}, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodPost, "/games", `{"title":"Diablo"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "g1", body["id"])
	})

	t.Run("400 on a malformed body", func(t *testing.T) {
		r := setupRouter(&gameUsecaseMock{})

		w := perform(t, r, http.MethodPost, "/games", `{"title":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid Body")
	})

	t.Run("400 on a duplicate", func(t *testing.T) {
		mock := &gameUsecaseMock{
			CreateGameFunc: func(ctx context.Context, payload map[string]any) (map[string]any, error) {
				return nil, apperror.NewConflict("Game Already Exists")
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodPost, "/games", `{"title":"Diablo"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Game Already Exists")
	})
}

func TestGameGetOne(t *testing.T) {
	t.Run("200 passing the parsed details mode", func(t *testing.T) {
		mock := &gameUsecaseMock{
			GetGameFunc: func(ctx context.Context, id string, details usecase.Echo) (map[string]any, error) {
				assert.Equal(t, "g1", id)
				assert.Equal(t, usecase.EchoFull, details)
				return map[string]any{"id": "g1"}, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodGet, "/games/g1?details=full", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("defaults to the basic view", func(t *testing.T) {
		mock := &gameUsecaseMock{
			GetGameFunc: func(ctx context.Context, id string, details usecase.Echo) (map[string]any, error) {
				assert.Equal(t, usecase.EchoBasic, details)
				return map[string]any{"id": "g1"}, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodGet, "/games/g1", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("400 on an unknown details value", func(t *testing.T) {
		r := setupRouter(&gameUsecaseMock{})

		w := perform(t, r, http.MethodGet, "/games/g1?details=everything", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid Query Param")
	})

	t.Run("404 on a missing game", func(t *testing.T) {
		mock := &gameUsecaseMock{
			GetGameFunc: func(ctx context.Context, id string, details usecase.Echo) (map[string]any, error) {
				return nil, apperror.NewNotFound("Game Not Found")
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodGet, "/games/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Game Not Found")
	})
}

func TestGameGetAll(t *testing.T) {
	mock := &gameUsecaseMock{
		GetAllGamesFunc: func(ctx context.Context, details usecase.Echo) ([]map[string]any, error) {
			return []map[string]any{{"id": "g1"}, {"id": "g2"}}, nil
		},
	}
	r := setupRouter(mock)

	w := perform(t, r, http.MethodGet, "/games", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 2)
}

func TestGameUpdateRoutes(t *testing.T) {
	t.Run("PUT validates as a full replacement", func(t *testing.T) {
		mock := &gameUsecaseMock{
			UpdateGameFunc: func(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error) {
				assert.Equal(t, validation.Full, group)
				return map[string]any{"id": id}, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodPut, "/games/g1", `{"title":"Diablo"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("POST on the record path validates as a partial update", func(t *testing.T) {
		mock := &gameUsecaseMock{
			UpdateGameFunc: func(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error) {
				assert.Equal(t, validation.Partial, group)
				return map[string]any{"id": id}, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodPost, "/games/g1", `{"genre":"RPG"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGameRemove(t *testing.T) {
	t.Run("204 on success", func(t *testing.T) {
		mock := &gameUsecaseMock{
			DeleteGameFunc: func(ctx context.Context, id string) (bool, error) {
				return true, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodDelete, "/games/g1", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("404 on a missing game", func(t *testing.T) {
		mock := &gameUsecaseMock{
			DeleteGameFunc: func(ctx context.Context, id string) (bool, error) {
				return false, apperror.NewNotFound("Game Not Found")
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodDelete, "/games/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("500 when nothing was removed despite existing", func(t *testing.T) {
		mock := &gameUsecaseMock{
			DeleteGameFunc: func(ctx context.Context, id string) (bool, error) {
				return false, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodDelete, "/games/g1", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Delete Failed")
	})
}
