package domain

import (
	"github.com/giveawayhub/backend/pkg/crypto"
)

// Candidate is one entrant in a draw with a precomputed ticket weight.
type Candidate struct {
	UserID  string
	Tickets int
}

// DrawnWinner is a winner selected by Draw, in draw order.
type DrawnWinner struct {
	UserID  string
	Tickets int
}

// Draw selects up to winnerCount distinct users, weighted by tickets and
// without replacement. Each pick removes every slot of the selected user, so
// one user never wins twice. Candidates with zero tickets never win. Fewer
// winners than requested are returned when not enough users carry weight.
func Draw(candidates []Candidate, winnerCount int) []DrawnWinner {
	pool := make([]string, 0)
	tickets := make(map[string]int, len(candidates))
	for _, c := range candidates {
		if c.Tickets <= 0 {
			continue
		}

		tickets[c.UserID] = c.Tickets
		for i := 0; i < c.Tickets; i++ {
			pool = append(pool, c.UserID)
		}
	}

	winners := make([]DrawnWinner, 0, winnerCount)
	for len(winners) < winnerCount && len(pool) > 0 {
		winner := pool[crypto.RandIntn(len(pool))]
		winners = append(winners, DrawnWinner{UserID: winner, Tickets: tickets[winner]})

		remaining := pool[:0]
		for _, userID := range pool {
			if userID != winner {
				remaining = append(remaining, userID)
			}
		}

		pool = remaining
	}

	return winners
}
