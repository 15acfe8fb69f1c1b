package entity

// Reason is the termination code sent to both players.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonScoreFinal
	ReasonTimeout
	ReasonInvalid
)

func (that Reason) String() string {
	switch that {
	case ReasonScoreFinal:
		return "score_final"
	case ReasonTimeout:
		return "timeout"
	case ReasonInvalid:
		return "invalid"
	default:
		return "none"
	}
}

const (
	PlayerCount = 2
	NoWinner    = -1
)

// Outcome is what a finished session reports.
type Outcome struct {
	Winner int              `json:"winner"`
	Reason Reason           `json:"reason"`
	Turns  int              `json:"turns"`
	Scores [PlayerCount]int `json:"scores"`
}

func (that Outcome) IsWinner(player int) bool {
	return that.Winner == player
}
