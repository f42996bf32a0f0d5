package model

import (
	"time"

	"github.com/giveawayhub/backend/internal/entity"
)

func ConvertGiveawayEvent(event *entity.GiveawayEvent, communityHandle string) GiveawayEvent {
	if event == nil {
		return GiveawayEvent{}
	}

	var deadline, closedAt time.Time
	if event.Deadline.Valid {
		deadline = event.Deadline.Time
	}
	if event.ClosedAt.Valid {
		closedAt = event.ClosedAt.Time
	}

	return GiveawayEvent{
		ID:                event.ID,
		CommunityHandle:   communityHandle,
		Prize:             event.Prize,
		PrizeDistribution: event.PrizeDistribution,
		WinnerCount:       event.WinnerCount,
		Status:            string(event.Status),
		CreatedAt:         event.CreatedAt,
		Deadline:          deadline,
		ClosedAt:          closedAt,
	}
}

// ConvertDrawResult rebuilds the draw outcome from the snapshot columns of a
// closed giveaway.
func ConvertDrawResult(event *entity.GiveawayEvent) DrawResult {
	result := DrawResult{
		TotalEntrants:  event.TotalEntrants,
		TotalTickets:   event.TotalTickets,
		NoValidEntries: event.NoValidEntries,
	}

	for i, userID := range event.Winners {
		tickets := 0
		if i < len(event.WinnerTickets) {
			tickets = event.WinnerTickets[i]
		}

		result.Winners = append(result.Winners, Winner{
			UserID:  userID,
			Rank:    i + 1,
			Prize:   prizeForRank(event, i),
			Tickets: tickets,
		})
	}

	return result
}

func prizeForRank(event *entity.GiveawayEvent, rank int) string {
	if rank < len(event.PrizeDistribution) {
		return event.PrizeDistribution[rank]
	}

	return event.Prize
}
