package agent

import (
	"fmt"
	"math"

	"blackjack-ace/server/blackjack"
)

// FallbackPolicy supplies Ace's deterministic answers whenever the
// provider is disabled, misses, or returns junk.
type FallbackPolicy struct{}

// Bet wagers roughly 20% of the bankroll, clamped to table limits.
func (FallbackPolicy) Bet(bankroll int) BetResult {
	target := int(math.Round(float64(bankroll) * 0.20))
	amount := ClampBet(target, bankroll)
	return BetResult{
		Amount:    amount,
		Rationale: fmt.Sprintf("$%d it is! My lucky algorithm says go for it!", amount),
	}
}

func (FallbackPolicy) Talk(snap blackjack.Snapshot, me blackjack.PrivateInfo) TalkResult {
	value := blackjack.HandValue(me.HoleCards)
	say := fmt.Sprintf("Dealer's got a %d? My %d is ready!", snap.DealerUpcard, value)
	return TalkResult{Say: clip(say, maxTalkLen)}
}

// Decide plays basic-strategy-ish: hit under 17, stand otherwise.
func (FallbackPolicy) Decide(snap blackjack.Snapshot, me blackjack.PrivateInfo) DecisionResult {
	if blackjack.HandValue(me.HoleCards) < 17 {
		return DecisionResult{
			Action:     ActionHit,
			Confidence: 0.6,
			Rationale:  "Under 17? Hit me! That's the Ace way!",
		}
	}
	return DecisionResult{
		Action:     ActionStand,
		Confidence: 0.6,
		Rationale:  "I'm staying put - let's see what the dealer's got!",
	}
}

// SafeBet is the catastrophic answer when even the fallback path blew up.
// It must never fail, so it is a plain function with no dependencies.
func SafeBet(bankroll int) BetResult {
	amount := bankroll / 10
	if amount > MaxBet {
		amount = MaxBet
	}
	if amount < MinBet {
		amount = MinBet
	}
	return BetResult{Amount: amount, Rationale: "System crashed - betting on pure gut instinct!"}
}

func SafeTalk() TalkResult {
	return TalkResult{Say: "Oops, my comedy circuits short-circuited!"}
}

func SafeDecision() DecisionResult {
	return DecisionResult{
		Action:     ActionStand,
		Confidence: 0.4,
		Rationale:  "My circuits are sparking - better play it safe!",
	}
}
