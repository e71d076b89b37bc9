package blackjack

// Snapshot is the public table state every seat can see. Field names match
// the table server's wire format; every field is optional so partial
// snapshots still decode.
type Snapshot struct {
	HandNumber      int        `json:"handNumber,omitempty"`
	ShoePenetration float64    `json:"shoePenetration,omitempty"`
	RunningCount    *int       `json:"runningCount,omitempty"`
	Players         []SeatView `json:"players,omitempty"`
	DealerUpcard    int        `json:"dealerUpcard,omitempty"` // rank 1-10, ace = 1
	Chat            []ChatLine `json:"chat,omitempty"`
}

// SeatView is one player's publicly visible state.
type SeatView struct {
	ID           string `json:"id,omitempty"`
	Seat         int    `json:"seat,omitempty"`
	VisibleCards []int  `json:"visibleCards,omitempty"`
	LastAction   string `json:"lastAction,omitempty"`
	Bet          *int   `json:"bet,omitempty"`
	Balance      *int   `json:"balance,omitempty"`
}

type ChatLine struct {
	From string `json:"from,omitempty"`
	Text string `json:"text,omitempty"`
}

// PrivateInfo is the part of the deal only this agent sees.
type PrivateInfo struct {
	HoleCards []int `json:"myHoleCards,omitempty"` // ranks 1-10, ace = 1
	Seat      int   `json:"mySeat,omitempty"`
	Bankroll  int   `json:"bankroll,omitempty"`
}
