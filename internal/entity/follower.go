package entity

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Follower is the per-community bonus record of a user. Invite counts and
// manual bonuses live here; they are written by the member-feed domain and
// only read by the ticket calculator.
type Follower struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CommunityID string    `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`

	// InviteCount is net of joins minus leaves attributed to this user.
	InviteCount uint64

	// ManualBonus is administrator-adjustable and may go negative. The ticket
	// calculator clamps the final weight at zero.
	ManualBonus int64

	InviteCode    string `gorm:"unique"`
	InvitedBy     sql.NullString
	InvitedByUser User `gorm:"foreignKey:InvitedBy"`
}
