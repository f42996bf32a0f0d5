package repository

import (
	"context"
	"errors"

	"github.com/giveawayhub/backend/internal/entity"
	"github.com/giveawayhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowerRepository interface {
	Get(ctx context.Context, userID, communityID string) (*entity.Follower, error)
	Create(ctx context.Context, data *entity.Follower) error
	IncreaseInviteCount(ctx context.Context, userID, communityID string) error

	// DecreaseInviteCount is a no-op when the count is already zero.
	DecreaseInviteCount(ctx context.Context, userID, communityID string) error
	AddManualBonus(ctx context.Context, userID, communityID string, delta int64) error
	SetInvitedBy(ctx context.Context, userID, communityID, inviterID string) error
	ClearInvitedBy(ctx context.Context, userID, communityID string) error
	ResetByCommunityID(ctx context.Context, communityID string) error
}

type followerRepository struct{}

func NewFollowerRepository() *followerRepository {
	return &followerRepository{}
}

func (r *followerRepository) Get(ctx context.Context, userID, communityID string) (*entity.Follower, error) {
	var result entity.Follower
	err := xcontext.DB(ctx).Where("user_id=? AND community_id=?", userID, communityID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followerRepository) Create(ctx context.Context, data *entity.Follower) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *followerRepository) IncreaseInviteCount(ctx context.Context, userID, communityID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("user_id=? AND community_id=?", userID, communityID).
		Update("invite_count", gorm.Expr("invite_count+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *followerRepository) DecreaseInviteCount(ctx context.Context, userID, communityID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("user_id=? AND community_id=? AND invite_count > 0", userID, communityID).
		Update("invite_count", gorm.Expr("invite_count-1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	return nil
}

func (r *followerRepository) AddManualBonus(ctx context.Context, userID, communityID string, delta int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("user_id=? AND community_id=?", userID, communityID).
		Update("manual_bonus", gorm.Expr("manual_bonus+?", delta))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// SetInvitedBy only records the attribution when none is recorded yet.
func (r *followerRepository) SetInvitedBy(ctx context.Context, userID, communityID, inviterID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("user_id=? AND community_id=? AND invited_by IS NULL", userID, communityID).
		Update("invited_by", inviterID).Error
}

func (r *followerRepository) ClearInvitedBy(ctx context.Context, userID, communityID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("user_id=? AND community_id=?", userID, communityID).
		Update("invited_by", nil).Error
}

// ResetByCommunityID deletes the rows for real. A soft delete would keep the
// (user_id, community_id) primary key occupied and break the next insert for
// the same pair.
func (r *followerRepository) ResetByCommunityID(ctx context.Context, communityID string) error {
	return xcontext.DB(ctx).Unscoped().
		Where("community_id=?", communityID).Delete(&entity.Follower{}).Error
}
