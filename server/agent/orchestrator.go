package agent

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// Orchestrator runs the try-provider / validate / fall-back pipeline for
// each action. Its contract: never panics, never errors, every result
// satisfies the table invariants.
type Orchestrator struct {
	provider Provider
	fallback FallbackPolicy
	log      *log.Logger
}

// NewOrchestrator wires a provider (nil means always fall back) to the
// deterministic policy.
func NewOrchestrator(p Provider, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Orchestrator{provider: p, log: logger}
}

// PlaceBet produces a wager for the coming hand.
func (o *Orchestrator) PlaceBet(ctx context.Context, req BetRequest) (res BetResult) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("bet path panicked", "recovered", r)
			res = SafeBet(req.Bankroll)
		}
	}()

	if cand, ok := o.tryBet(ctx, req); ok {
		return cand
	}
	res = o.fallback.Bet(req.Bankroll)
	if err := ValidateBet(&res, req.Bankroll); err != nil {
		o.log.Error("fallback bet invalid", "err", err)
		res = SafeBet(req.Bankroll)
	}
	return res
}

// TableTalk produces a short in-character remark.
func (o *Orchestrator) TableTalk(ctx context.Context, req TableRequest) (res TalkResult) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("talk path panicked", "recovered", r)
			res = SafeTalk()
		}
	}()

	if req.Role != "" && req.Role != RoleTalk {
		o.log.Error("wrong role on talk request", "role", req.Role)
		return SafeTalk()
	}
	if cand, ok := o.tryTalk(ctx, req); ok {
		return cand
	}
	res = o.fallback.Talk(req.Public, req.Me)
	if err := ValidateTalk(&res); err != nil {
		o.log.Error("fallback talk invalid", "err", err)
		res = SafeTalk()
	}
	return res
}

// Decide produces a hit/stand call for the current hand.
func (o *Orchestrator) Decide(ctx context.Context, req TableRequest) (res DecisionResult) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("decide path panicked", "recovered", r)
			res = SafeDecision()
		}
	}()

	if req.Role != "" && req.Role != RoleDecision {
		o.log.Error("wrong role on decide request", "role", req.Role)
		return SafeDecision()
	}
	if cand, ok := o.tryDecision(ctx, req); ok {
		return cand
	}
	res = o.fallback.Decide(req.Public, req.Me)
	if err := ValidateDecision(&res); err != nil {
		o.log.Error("fallback decision invalid", "err", err)
		res = SafeDecision()
	}
	return res
}

func (o *Orchestrator) tryBet(ctx context.Context, req BetRequest) (BetResult, bool) {
	if o.provider == nil {
		return BetResult{}, false
	}
	cand, err := o.provider.GenerateBet(ctx, req.Bankroll, req.HandNumber)
	if err != nil {
		o.logMiss("bet", err)
		return BetResult{}, false
	}
	if err := ValidateBet(cand, req.Bankroll); err != nil {
		o.log.Warn("rejected bet candidate", "err", err)
		return BetResult{}, false
	}
	return *cand, true
}

func (o *Orchestrator) tryTalk(ctx context.Context, req TableRequest) (TalkResult, bool) {
	if o.provider == nil {
		return TalkResult{}, false
	}
	cand, err := o.provider.GenerateTalk(ctx, req.Public, req.Me)
	if err != nil {
		o.logMiss("talk", err)
		return TalkResult{}, false
	}
	if err := ValidateTalk(cand); err != nil {
		o.log.Warn("rejected talk candidate", "err", err)
		return TalkResult{}, false
	}
	return *cand, true
}

func (o *Orchestrator) tryDecision(ctx context.Context, req TableRequest) (DecisionResult, bool) {
	if o.provider == nil {
		return DecisionResult{}, false
	}
	cand, err := o.provider.GenerateDecision(ctx, req.Public, req.Me)
	if err != nil {
		o.logMiss("decide", err)
		return DecisionResult{}, false
	}
	if err := ValidateDecision(cand); err != nil {
		o.log.Warn("rejected decision candidate", "err", err)
		return DecisionResult{}, false
	}
	return *cand, true
}

func (o *Orchestrator) logMiss(action string, err error) {
	if errors.Is(err, ErrProviderDisabled) {
		o.log.Debug("provider disabled, using fallback", "action", action)
		return
	}
	o.log.Warn("provider call failed", "action", action, "err", err)
}
