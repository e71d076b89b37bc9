package agent

import (
	"fmt"
	"strings"
)

// ClampBet forces amount into [MinBet, min(MaxBet, bankroll)]. The lower
// bound is applied last so it wins when the bankroll is under the table
// minimum.
func ClampBet(amount, bankroll int) int {
	hi := MaxBet
	if bankroll < hi {
		hi = bankroll
	}
	if amount > hi {
		amount = hi
	}
	if amount < MinBet {
		amount = MinBet
	}
	return amount
}

// ValidateBet normalizes a bet candidate in place. A candidate without a
// rationale is rejected; defaults are the fallback policy's job, not ours.
func ValidateBet(r *BetResult, bankroll int) error {
	if r == nil {
		return fmt.Errorf("no bet candidate")
	}
	if strings.TrimSpace(r.Rationale) == "" {
		return fmt.Errorf("bet candidate missing rationale")
	}
	r.Amount = ClampBet(r.Amount, bankroll)
	r.Rationale = clip(r.Rationale, maxBetRationale)
	return nil
}

func ValidateTalk(r *TalkResult) error {
	if r == nil {
		return fmt.Errorf("no talk candidate")
	}
	r.Say = strings.TrimSpace(r.Say)
	if r.Say == "" {
		return fmt.Errorf("talk candidate empty")
	}
	r.Say = clip(r.Say, maxTalkLen)
	return nil
}

// ValidateDecision rejects any candidate missing a field or naming an
// action outside hit/stand. Confidence is clamped into [0,1].
func ValidateDecision(r *DecisionResult) error {
	if r == nil {
		return fmt.Errorf("no decision candidate")
	}
	r.Action = strings.ToLower(strings.TrimSpace(r.Action))
	if r.Action != ActionHit && r.Action != ActionStand {
		return fmt.Errorf("illegal action %q (want %s|%s)", r.Action, ActionHit, ActionStand)
	}
	if strings.TrimSpace(r.Rationale) == "" {
		return fmt.Errorf("decision candidate missing rationale")
	}
	if r.Confidence < 0 {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}
	r.Rationale = clip(r.Rationale, maxDecisionRationale)
	return nil
}
