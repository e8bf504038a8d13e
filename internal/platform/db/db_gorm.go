package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	gameentity "games_backend/internal/feature/games/domain/entity"
	userentity "games_backend/internal/feature/users/domain/entity"
	"games_backend/internal/platform/config"
)

// OpenDB connects to postgres, retrying while the database comes up, and
// optionally runs schema auto-migration for the stored record types.
func OpenDB(cfg config.DatabaseConfig) *gorm.DB {
	var (
		conn *gorm.DB
		err  error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		conn, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := conn.AutoMigrate(
			&gameentity.Game{},
			&userentity.User{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return conn
}
