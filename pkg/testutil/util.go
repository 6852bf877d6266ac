package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/atoz-lab/backend/config"
	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/pkg/logger"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	cfg := config.Default()
	cfg.Auth.AccessToken = config.TokenConfigs{
		Secret:     "secret",
		Expiration: time.Minute,
	}
	cfg.Realtime.SessionBuffer = 16
	return cfg
}

// MockContext returns a context carrying an empty, migrated in-memory sqlite
// database. Every call creates a distinct database.
func MockContext() context.Context {
	dsn := fmt.Sprintf("file:%s?mode=memory&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// An in-memory database lives as long as its connection.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, MockConfigs())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUsername(username string) context.Context {
	return xcontext.WithRequestUsername(MockContext(), username)
}
