package postgres

import (
	"hawkerflow/internal/adapters/out/postgres/activityrepo"
	"hawkerflow/internal/adapters/out/postgres/orderrepo"
	"hawkerflow/internal/adapters/out/postgres/stallrepo"
	"hawkerflow/internal/adapters/out/postgres/suborderrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the repositories, parents before children.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&stallrepo.StallDTO{},
		&suborderrepo.SubOrderDTO{},
		&suborderrepo.DishLineDTO{},
		&activityrepo.EntryDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
