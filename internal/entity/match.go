package entity

import "time"

const StatusOngoing = "ongoing"

// Match is the registry view of a running session.
type Match struct {
	ID        string    `json:"id"`
	Players   []string  `json:"players"`
	Turns     int       `json:"turns"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

func NewMatch(id string, players []string) *Match {
	return &Match{
		ID:        id,
		Players:   players,
		Status:    StatusOngoing,
		StartedAt: time.Now().UTC(),
	}
}
