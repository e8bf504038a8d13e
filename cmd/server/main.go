package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"games_backend/internal/app/router"
	gameentity "games_backend/internal/feature/games/domain/entity"
	gamehandler "games_backend/internal/feature/games/transport/handler"
	gamesusecase "games_backend/internal/feature/games/usecase"
	userentity "games_backend/internal/feature/users/domain/entity"
	userhandler "games_backend/internal/feature/users/transport/handler"
	usersusecase "games_backend/internal/feature/users/usecase"
	"games_backend/internal/platform/cache"
	"games_backend/internal/platform/config"
	"games_backend/internal/platform/db"
	"games_backend/internal/platform/redis"
	"games_backend/internal/platform/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	conn := db.OpenDB(cfg.Database)

	rdb, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	gameDB := storage.NewGormDatabase[gameentity.Game, *gameentity.Game](conn)
	gameRepo := storage.NewRepository(gameDB)
	cachedGames := cache.NewCachingGameRepository(rdb, cfg.Cache.TTL, gameRepo, "games")

	userDB := storage.NewGormDatabase[userentity.User, *userentity.User](conn)
	userRepo := storage.NewRepository(userDB)

	gamesUC := gamesusecase.NewGameUsecase(cachedGames)
	usersUC := usersusecase.NewUserUsecase(userRepo, gamesUC)

	gamesHandler := gamehandler.NewGameHandler(gamesUC)
	usersHandler := userhandler.NewUserHandler(usersUC)

	r := router.NewRouter(gamesHandler, usersHandler)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
