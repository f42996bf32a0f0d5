package migration

import (
	"context"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/pkg/xcontext"
)

// AutoMigrate creates the full schema at the latest version. When this
// migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Community{},
		&entity.Follower{},
		&entity.GiveawayEvent{},
		&entity.GiveawayEntry{},
		&entity.Migration{},
	)
}
