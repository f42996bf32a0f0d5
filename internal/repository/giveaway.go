package repository

import (
	"context"
	"time"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GiveawayRepository interface {
	CreateEvent(ctx context.Context, event *entity.GiveawayEvent) error
	GetEventByID(ctx context.Context, eventID string) (*entity.GiveawayEvent, error)
	GetLastOpenByCommunityID(ctx context.Context, communityID string) (*entity.GiveawayEvent, error)
	GetOpenByCommunityID(ctx context.Context, communityID string) ([]entity.GiveawayEvent, error)
	GetOpenEventsWithDeadline(ctx context.Context) ([]entity.GiveawayEvent, error)
	LockOpenEvent(ctx context.Context, eventID string) error
	CheckAndCloseEvent(ctx context.Context, event *entity.GiveawayEvent) error
	DeleteByCommunityID(ctx context.Context, communityID string) error
}

type giveawayRepository struct{}

func NewGiveawayRepository() *giveawayRepository {
	return &giveawayRepository{}
}

func (r *giveawayRepository) CreateEvent(ctx context.Context, event *entity.GiveawayEvent) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *giveawayRepository) GetEventByID(ctx context.Context, eventID string) (*entity.GiveawayEvent, error) {
	var result entity.GiveawayEvent
	if err := xcontext.DB(ctx).Take(&result, "id=?", eventID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *giveawayRepository) GetLastOpenByCommunityID(ctx context.Context, communityID string) (*entity.GiveawayEvent, error) {
	var result entity.GiveawayEvent
	err := xcontext.DB(ctx).Where("community_id=? AND status=?", communityID, entity.GiveawayOpen).
		Order("created_at DESC").Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *giveawayRepository) GetOpenByCommunityID(ctx context.Context, communityID string) ([]entity.GiveawayEvent, error) {
	var result []entity.GiveawayEvent
	err := xcontext.DB(ctx).
		Find(&result, "community_id=? AND status=?", communityID, entity.GiveawayOpen).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *giveawayRepository) GetOpenEventsWithDeadline(ctx context.Context) ([]entity.GiveawayEvent, error) {
	var result []entity.GiveawayEvent
	err := xcontext.DB(ctx).
		Find(&result, "status=? AND deadline IS NOT NULL", entity.GiveawayOpen).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// LockOpenEvent asserts inside the current transaction that the event is
// still open. The guarded update takes the row write lock, so a concurrent
// close waits for this transaction to finish, and anything running after a
// committed close gets gorm.ErrRecordNotFound.
func (r *giveawayRepository) LockOpenEvent(ctx context.Context, eventID string) error {
	tx := xcontext.DB(ctx).Model(&entity.GiveawayEvent{}).
		Where("id=? AND status=?", eventID, entity.GiveawayOpen).
		Update("updated_at", time.Now())
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// CheckAndCloseEvent transitions the event to closed and records the draw
// result. The update is guarded on the open status, so of all concurrent
// close attempts exactly one succeeds; the others get gorm.ErrRecordNotFound.
func (r *giveawayRepository) CheckAndCloseEvent(ctx context.Context, event *entity.GiveawayEvent) error {
	tx := xcontext.DB(ctx).Model(&entity.GiveawayEvent{}).
		Where("id=? AND status=?", event.ID, entity.GiveawayOpen).
		Updates(map[string]any{
			"status":           event.Status,
			"closed_at":        event.ClosedAt,
			"winners":          event.Winners,
			"winner_tickets":   event.WinnerTickets,
			"total_entrants":   event.TotalEntrants,
			"total_tickets":    event.TotalTickets,
			"no_valid_entries": event.NoValidEntries,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *giveawayRepository) DeleteByCommunityID(ctx context.Context, communityID string) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).Delete(&entity.GiveawayEvent{}).Error
}
