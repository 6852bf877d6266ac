package entity

import (
	"context"

	"github.com/atoz-lab/backend/pkg/xcontext"
)

// MigrateTable creates the schema from the models. It is used for sqlite
// databases, mysql databases are migrated with versioned sql files.
func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Activity{},
		&Attendance{},
		&Following{},
		&Comment{},
	)
}
