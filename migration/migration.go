package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed mysql/*.sql
var mysqlFS embed.FS

// Migrate brings the database schema of ctx to the latest version. Mysql
// databases run the versioned sql files, sqlite databases are created from the
// models.
func Migrate(ctx context.Context) error {
	cfg := xcontext.Configs(ctx).Database
	switch cfg.Driver {
	case "sqlite":
		return entity.MigrateTable(ctx)
	case "mysql":
		return migrateMySQL(ctx, cfg.Database)
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func migrateMySQL(ctx context.Context, database string) error {
	db, err := xcontext.DB(ctx).DB()
	if err != nil {
		return err
	}

	source, err := iofs.New(mysqlFS, "mysql")
	if err != nil {
		return err
	}

	driver, err := mysql.WithInstance(db, &mysql.Config{DatabaseName: database})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, database, driver)
	if err != nil {
		return err
	}

	m.Log = &migrateLogger{ctx: ctx}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Database is at version %d (dirty=%v)", version, dirty)
	return nil
}

type migrateLogger struct {
	ctx context.Context
}

func (l *migrateLogger) Printf(format string, v ...any) {
	xcontext.Logger(l.ctx).Infof(format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
