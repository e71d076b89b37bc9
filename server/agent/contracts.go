package agent

import (
	"context"
	"errors"

	"blackjack-ace/server/blackjack"
)

const (
	MinBet = 5
	MaxBet = 100

	ActionHit   = "hit"
	ActionStand = "stand"

	RoleTalk     = "table-talk"
	RoleDecision = "decision"

	maxBetRationale      = 160
	maxTalkLen           = 160
	maxDecisionRationale = 240
)

// ErrProviderDisabled marks the steady state where no provider is
// configured. Callers treat it like any other miss; it only changes
// how loudly the orchestrator logs.
var ErrProviderDisabled = errors.New("provider disabled")

type BetRequest struct {
	Bankroll   int `json:"bankroll"`
	HandNumber int `json:"handNumber"`
}

// TableRequest carries the shared payload of the talk and decide calls.
// Role is checked against the endpoint; an unexpected value is a caller
// bug and gets the safe response.
type TableRequest struct {
	Role   string                `json:"role"`
	Public blackjack.Snapshot    `json:"public"`
	Me     blackjack.PrivateInfo `json:"me"`
}

type BetResult struct {
	Amount    int    `json:"bet_amount"`
	Rationale string `json:"rationale"`
}

type TalkResult struct {
	Say string `json:"say"`
}

type DecisionResult struct {
	Action     string  `json:"action"` // hit|stand
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Provider is the generative backend. Implementations return an error for
// every flavor of miss (disabled, timeout, bad JSON); they never panic.
type Provider interface {
	GenerateBet(ctx context.Context, bankroll, handNumber int) (*BetResult, error)
	GenerateTalk(ctx context.Context, snap blackjack.Snapshot, me blackjack.PrivateInfo) (*TalkResult, error)
	GenerateDecision(ctx context.Context, snap blackjack.Snapshot, me blackjack.PrivateInfo) (*DecisionResult, error)
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
