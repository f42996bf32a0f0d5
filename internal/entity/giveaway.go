package entity

import (
	"database/sql"
	"time"

	"github.com/giveawayhub/backend/pkg/enum"
)

type GiveawayStatusType string

var (
	GiveawayOpen   = enum.New(GiveawayStatusType("open"))
	GiveawayClosed = enum.New(GiveawayStatusType("closed"))
)

type GiveawayEvent struct {
	Base

	CommunityID string
	Community   Community `gorm:"foreignKey:CommunityID"`

	Prize string

	// PrizeDistribution holds one prize string per winner rank. When empty,
	// every winner receives Prize. When non-empty, its length equals
	// WinnerCount.
	PrizeDistribution Array[string]

	WinnerCount int
	Status      GiveawayStatusType
	CreatedBy   string

	// Deadline is unset for manual-close-only giveaways.
	Deadline sql.NullTime
	ClosedAt sql.NullTime

	// Winners are stored in draw order. WinnerTickets holds each winner's
	// ticket count at close time, index-aligned with Winners. Both stay empty
	// until the giveaway closes.
	Winners       Array[string]
	WinnerTickets Array[int]

	// Snapshots recorded at close for reporting.
	TotalEntrants  int
	TotalTickets   int
	NoValidEntries bool
}

func (e *GiveawayEvent) IsOpen() bool {
	return e.Status == GiveawayOpen
}

func (e *GiveawayEvent) DeadlineElapsed(now time.Time) bool {
	return e.Deadline.Valid && !e.Deadline.Time.After(now)
}

type GiveawayEntry struct {
	CreatedAt time.Time

	CommunityID string `gorm:"primaryKey"`

	GiveawayEventID string        `gorm:"primaryKey"`
	GiveawayEvent   GiveawayEvent `gorm:"foreignKey:GiveawayEventID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}
