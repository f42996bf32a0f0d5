package model

import "time"

type GiveawayEvent struct {
	ID                string    `json:"id"`
	CommunityHandle   string    `json:"community_handle"`
	Prize             string    `json:"prize"`
	PrizeDistribution []string  `json:"prize_distribution,omitempty"`
	WinnerCount       int       `json:"winner_count"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	Deadline          time.Time `json:"deadline,omitempty"`
	ClosedAt          time.Time `json:"closed_at,omitempty"`
}

type Winner struct {
	UserID  string `json:"user_id"`
	Rank    int    `json:"rank"`
	Prize   string `json:"prize"`
	Tickets int    `json:"tickets"`
}

type DrawResult struct {
	Winners        []Winner `json:"winners"`
	TotalEntrants  int      `json:"total_entrants"`
	TotalTickets   int      `json:"total_tickets"`
	NoValidEntries bool     `json:"no_valid_entries"`
}

type LeaderboardEntry struct {
	UserID      string  `json:"user_id"`
	Tickets     int     `json:"tickets"`
	InviteCount uint64  `json:"invite_count"`
	WinChance   float64 `json:"win_chance"`
}

type TicketBreakdown struct {
	Entered          bool  `json:"entered"`
	Total            int   `json:"total"`
	Base             int   `json:"base"`
	InviteCount      uint64 `json:"invite_count"`
	ExtraFromInvites int   `json:"extra_from_invites"`
	RoleBonus        int   `json:"role_bonus"`
	ManualBonus      int64 `json:"manual_bonus"`
}
