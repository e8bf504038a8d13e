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

	"games_backend/internal/feature/users/usecase"
	"games_backend/internal/platform/apperror"
	"games_backend/internal/platform/validation"
)

// userUsecaseMock implements UserUsecase with pluggable behavior.
type userUsecaseMock struct {
	CreateUserFunc  func(ctx context.Context, payload map[string]any) (map[string]any, error)
	GetUserFunc     func(ctx context.Context, id string, echo usecase.WishlistEcho) (map[string]any, error)
	GetAllUsersFunc func(ctx context.Context) ([]map[string]any, error)
	UpdateUserFunc  func(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error)
	DeleteUserFunc  func(ctx context.Context, id string) (bool, error)
}

func (m *userUsecaseMock) CreateUser(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return m.CreateUserFunc(ctx, payload)
}

func (m *userUsecaseMock) GetUser(ctx context.Context, id string, echo usecase.WishlistEcho) (map[string]any, error) {
	return m.GetUserFunc(ctx, id, echo)
}

func (m *userUsecaseMock) GetAllUsers(ctx context.Context) ([]map[string]any, error) {
	return m.GetAllUsersFunc(ctx)
}

func (m *userUsecaseMock) UpdateUser(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error) {
	return m.UpdateUserFunc(ctx, id, payload, group)
}

func (m *userUsecaseMock) DeleteUser(ctx context.Context, id string) (bool, error) {
	return m.DeleteUserFunc(ctx, id)
}

func setupRouter(mock *userUsecaseMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(mock)
	r := gin.New()
	r.POST("/users", h.Register)
	r.GET("/users", h.GetAll)
	r.GET("/users/:id", h.GetOne)
	r.PUT("/users/:id", h.FullUpdate)
	r.POST("/users/:id", h.PartialUpdate)
	r.DELETE("/users/:id", h.Remove)
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

func TestUserRegister(t *testing.T) {
	t.Run("201 with the created user", func(t *testing.T) {
		mock := &userUsecaseMock{
			CreateUserFunc: func(ctx context.Context, payload map[string]any) (map[string]any, error) {
				assert.Equal(t, "Jack", payload["firstName"])
				return map[string]any{"id": "u1", "firstName": "Jack"}, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodPost, "/users", `{"firstName":"Jack"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "u1", body["id"])
	})

	t.Run("400 on a malformed body", func(t *testing.T) {
		r := setupRouter(&userUsecaseMock{})

		w := perform(t, r, http.MethodPost, "/users", `{"firstName":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid Body")
	})

	t.Run("400 on a duplicate email", func(t *testing.T) {
		mock := &userUsecaseMock{
			CreateUserFunc: func(ctx context.Context, payload map[string]any) (map[string]any, error) {
				return nil, apperror.NewConflict("User Already Exists")
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodPost, "/users", `{"email":"jsparrow9@gmail.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "User Already Exists")
	})
}

func TestUserGetOne(t *testing.T) {
	t.Run("200 passing the parsed wishlist mode", func(t *testing.T) {
		mock := &userUsecaseMock{
			GetUserFunc: func(ctx context.Context, id string, echo usecase.WishlistEcho) (map[string]any, error) {
				assert.Equal(t, "u1", id)
				assert.Equal(t, usecase.WishlistEchoDetails, echo)
				return map[string]any{"id": "u1"}, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodGet, "/users/u1?wishlist=details", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("defaults to id stubs", func(t *testing.T) {
		mock := &userUsecaseMock{
			GetUserFunc: func(ctx context.Context, id string, echo usecase.WishlistEcho) (map[string]any, error) {
				assert.Equal(t, usecase.WishlistEchoID, echo)
				return map[string]any{"id": "u1"}, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodGet, "/users/u1", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("400 on an unknown wishlist value", func(t *testing.T) {
		r := setupRouter(&userUsecaseMock{})

		w := perform(t, r, http.MethodGet, "/users/u1?wishlist=everything", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid Query Param")
	})

	t.Run("404 on a missing user", func(t *testing.T) {
		mock := &userUsecaseMock{
			GetUserFunc: func(ctx context.Context, id string, echo usecase.WishlistEcho) (map[string]any, error) {
				return nil, apperror.NewNotFound("User Not Found")
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodGet, "/users/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User Not Found")
	})
}

func TestUserGetAll(t *testing.T) {
	mock := &userUsecaseMock{
		GetAllUsersFunc: func(ctx context.Context) ([]map[string]any, error) {
			return []map[string]any{{"id": "u1"}}, nil
		},
	}
	r := setupRouter(mock)

	w := perform(t, r, http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 1)
}

func TestUserUpdateRoutes(t *testing.T) {
	t.Run("PUT validates as a full replacement", func(t *testing.T) {
		mock := &userUsecaseMock{
			UpdateUserFunc: func(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error) {
				assert.Equal(t, validation.Full, group)
				return map[string]any{"id": id}, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodPut, "/users/u1", `{"firstName":"Jack"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("POST on the record path validates as a partial update", func(t *testing.T) {
		mock := &userUsecaseMock{
			UpdateUserFunc: func(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error) {
				assert.Equal(t, validation.Partial, group)
				return map[string]any{"id": id}, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodPost, "/users/u1", `{"lastName":"Turner"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("400 on a bad wishlist reference", func(t *testing.T) {
		mock := &userUsecaseMock{
			UpdateUserFunc: func(ctx context.Context, id string, payload map[string]any, group validation.Group) (map[string]any, error) {
				return nil, apperror.NewConflict("Bad id ghost")
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodPost, "/users/u1", `{"wishlist":[{"id":"ghost"}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Bad id ghost")
	})
}

func TestUserRemove(t *testing.T) {
	t.Run("204 on success", func(t *testing.T) {
		mock := &userUsecaseMock{
			DeleteUserFunc: func(ctx context.Context, id string) (bool, error) {
				return true, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodDelete, "/users/u1", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("404 on a missing user", func(t *testing.T) {
		mock := &userUsecaseMock{
			DeleteUserFunc: func(ctx context.Context, id string) (bool, error) {
				return false, apperror.NewNotFound("User Not Found")
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodDelete, "/users/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("500 when nothing was removed despite existing", func(t *testing.T) {
		mock := &userUsecaseMock{
			DeleteUserFunc: func(ctx context.Context, id string) (bool, error) {
				return false, nil
			},
		}
		r := setupRouter(mock)

		w := perform(t, r, http.MethodDelete, "/users/u1", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Delete Failed")
	})
}
