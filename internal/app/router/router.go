// Package router assembles the HTTP route table.
package router

import (
	"github.com/gin-gonic/gin"

	"games_backend/internal/api"
	gamehandler "games_backend/internal/feature/games/transport/handler"
	userhandler "games_backend/internal/feature/users/transport/handler"
)

// NewRouter wires every handler into a gin engine. Partial updates use POST
// on the record path, full replacements use PUT.
func NewRouter(games *gamehandler.GameHandler, users *userhandler.UserHandler) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", api.Health)

	r.POST("/games", games.Register)
	r.GET("/games", games.GetAll)
	r.GET("/games/:id", games.GetOne)
	r.PUT("/games/:id", games.FullUpdate)
	r.POST("/games/:id", games.PartialUpdate)
	r.DELETE("/games/:id", games.Remove)

	r.POST("/users", users.Register)
	r.GET("/users", users.GetAll)
	r.GET("/users/:id", users.GetOne)
	r.PUT("/users/:id", users.FullUpdate)
	r.POST("/users/:id", users.PartialUpdate)
	r.DELETE("/users/:id", users.Remove)

	return r
}
