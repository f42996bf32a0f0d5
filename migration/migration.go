package migration

import (
	"context"
	"errors"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// latestVersion is bumped whenever a migrator below is added.
const latestVersion = 1

var migrators = map[int]func(context.Context) error{
	1: migrate0001,
}

// Migrate brings the persisted schema to the latest version. The recorded
// version decides which migrators run; data shapes are never inspected.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	var current entity.Migration
	err := xcontext.DB(ctx).Order("version DESC").Take(&current).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// A fresh database gets the latest schema directly.
		if err := AutoMigrate(ctx); err != nil {
			return err
		}

		return setVersion(ctx, latestVersion)
	}

	for version := current.Version + 1; version <= latestVersion; version++ {
		xcontext.Logger(ctx).Infof("Migrating database to version %d", version)
		if err := migrators[version](ctx); err != nil {
			return err
		}

		if err := setVersion(ctx, version); err != nil {
			return err
		}
	}

	return AutoMigrate(ctx)
}

func setVersion(ctx context.Context, version int) error {
	return xcontext.DB(ctx).Save(&entity.Migration{Version: version}).Error
}
