package repository

import (
	"context"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type EntryRepository interface {
	// Create inserts the entry and reports whether it already existed.
	// Concurrent inserts of the same entry are resolved by the primary key:
	// at most one caller observes created=true.
	Create(ctx context.Context, entry *entity.GiveawayEntry) (created bool, err error)
	Exist(ctx context.Context, eventID, userID string) (bool, error)
	GetByEventID(ctx context.Context, eventID string) ([]entity.GiveawayEntry, error)
	CountByEventID(ctx context.Context, eventID string) (int64, error)
	DeleteByCommunityID(ctx context.Context, communityID string) error
}

type entryRepository struct{}

func NewEntryRepository() *entryRepository {
	return &entryRepository{}
}

func (r *entryRepository) Create(ctx context.Context, entry *entity.GiveawayEntry) (bool, error) {
	tx := xcontext.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *entryRepository) Exist(ctx context.Context, eventID, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.GiveawayEntry{}).
		Where("giveaway_event_id=? AND user_id=?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *entryRepository) GetByEventID(ctx context.Context, eventID string) ([]entity.GiveawayEntry, error) {
	var result []entity.GiveawayEntry
	if err := xcontext.DB(ctx).Find(&result, "giveaway_event_id=?", eventID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *entryRepository) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.GiveawayEntry{}).
		Where("giveaway_event_id=?", eventID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *entryRepository) DeleteByCommunityID(ctx context.Context, communityID string) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).Delete(&entity.GiveawayEntry{}).Error
}
