package main

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/streamnest/streamnest/backend/internal/auth"
	"github.com/streamnest/streamnest/backend/internal/comment"
	"github.com/streamnest/streamnest/backend/internal/config"
	"github.com/streamnest/streamnest/backend/internal/playlist"
	"github.com/streamnest/streamnest/backend/internal/subscription"
	"github.com/streamnest/streamnest/backend/internal/video"
)

// initDatabase opens the Postgres connection pool and migrates the schema.
func initDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Dbname, cfg.Port, cfg.Sslmode, cfg.Timezone)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&auth.User{},
		&auth.RefreshToken{},
		&video.Video{},
		&comment.Comment{},
		&comment.Reaction{},
		&subscription.Subscription{},
		&playlist.Playlist{},
		&playlist.Item{},
	); err != nil {
		return nil, fmt.Errorf("auto migration failed: %v", err)
	}

	return db, nil
}
