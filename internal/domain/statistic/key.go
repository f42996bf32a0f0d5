package statistic

import "fmt"

func redisKeyTicketLeaderboard(eventID string) string {
	return fmt.Sprintf("giveaway:%s:tickets", eventID)
}
