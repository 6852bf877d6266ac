package main

import (
	"github.com/atoz-lab/backend/migration"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadDatabase()
	return s.migrateDB()
}

func (s *srv) migrateDB() error {
	if err := migration.Migrate(s.ctx); err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot migrate database: %v", err)
		return err
	}

	xcontext.Logger(s.ctx).Infof("Migrate database successfully")
	return nil
}
