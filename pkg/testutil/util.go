package testutil

import (
	"context"
	"time"

	"github.com/giveawayhub/backend/config"
	"github.com/giveawayhub/backend/migration"
	"github.com/giveawayhub/backend/pkg/logger"
	"github.com/giveawayhub/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}

	// A second pooled connection to :memory: would open a second, empty
	// database; one connection serializes concurrent test goroutines instead.
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Configs{
		Env: "testing",
		Giveaway: config.GiveawayConfigs{
			MaxExtraTickets:    5,
			RoleBonus:          1,
			BonusRoleID:        "bonus-role",
			MaxWinners:         10,
			MaxDeadlineHorizon: 30 * 24 * time.Hour,
		},
		Kafka: config.KafkaConfigs{
			MemberEventTopic:  "member-events",
			AnnouncementTopic: "giveaway-announcements",
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.DEBUG))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
