package model

import "time"

type CreateGiveawayRequest struct {
	CommunityHandle   string   `json:"community_handle"`
	Prize             string   `json:"prize"`
	PrizeDistribution []string `json:"prize_distribution"`
	WinnerCount       int      `json:"winner_count"`

	// Deadline is optional; the zero value means the giveaway only closes
	// manually.
	Deadline time.Time `json:"deadline"`
}

type CreateGiveawayResponse struct {
	Giveaway GiveawayEvent `json:"giveaway"`
}

type EnterGiveawayRequest struct {
	CommunityHandle string `json:"community_handle"`
	GiveawayID      string `json:"giveaway_id"`
}

type EnterGiveawayResponse struct {
	Tickets        int    `json:"tickets"`
	AlreadyEntered bool   `json:"already_entered"`
	Prize          string `json:"prize"`
}

type CloseGiveawayRequest struct {
	CommunityHandle string `json:"community_handle"`
	GiveawayID      string `json:"giveaway_id"`
}

type CloseGiveawayResponse struct {
	Result DrawResult `json:"result"`
}

type GetGiveawayRequest struct {
	CommunityHandle string `json:"community_handle"`

	// GiveawayID is optional; empty selects the most recent open giveaway.
	GiveawayID string `json:"giveaway_id"`
}

type GetGiveawayResponse struct {
	Giveaway      GiveawayEvent `json:"giveaway"`
	TotalEntrants int64         `json:"total_entrants"`
	TotalTickets  int           `json:"total_tickets"`
	UserEntered   bool          `json:"user_entered"`
	UserTickets   int           `json:"user_tickets"`
	Result        *DrawResult   `json:"result,omitempty"`
}

type GetLeaderboardRequest struct {
	CommunityHandle string `json:"community_handle"`
	GiveawayID      string `json:"giveaway_id"`
	Limit           int    `json:"limit"`
}

type GetLeaderboardResponse struct {
	Entries       []LeaderboardEntry `json:"entries"`
	TotalEntrants int                `json:"total_entrants"`
	TotalTickets  int                `json:"total_tickets"`
}

type GetMyTicketsRequest struct {
	CommunityHandle string `json:"community_handle"`
	GiveawayID      string `json:"giveaway_id"`

	// UserID is optional; empty means the requesting user.
	UserID string `json:"user_id"`
}

type GetMyTicketsResponse struct {
	TicketBreakdown
}

type AdjustBonusRequest struct {
	CommunityHandle string `json:"community_handle"`
	UserID          string `json:"user_id"`
	Delta           int64  `json:"delta"`
}

type AdjustBonusResponse struct {
	ManualBonus int64 `json:"manual_bonus"`
}

type ClearGiveawaysRequest struct {
	CommunityHandle string `json:"community_handle"`
}

type ClearGiveawaysResponse struct{}
