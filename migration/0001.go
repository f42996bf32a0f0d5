package migration

import (
	"context"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/pkg/xcontext"
)

// migrate0001 drops the legacy entries column. Version 0 kept entrants as a
// JSON list on the event row, without enough information to rebuild per-user
// rows, so open giveaways lose their entrants and users must enter again.
func migrate0001(ctx context.Context) error {
	migrator := xcontext.DB(ctx).Migrator()

	if migrator.HasColumn(&entity.GiveawayEvent{}, "entries") {
		xcontext.Logger(ctx).Warnf(
			"Discarding legacy entry lists; entrants of open giveaways must enter again")

		if err := migrator.DropColumn(&entity.GiveawayEvent{}, "entries"); err != nil {
			return err
		}
	}

	return AutoMigrate(ctx)
}
