package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"blackjack-ace/server/agent"
	"blackjack-ace/server/blackjack"

	"github.com/charmbracelet/log"
)

// Per-action generation budgets. Talk is free text on a short leash;
// bet and decision ask for a small JSON object.
const (
	talkMaxTokens     = 50
	betMaxTokens      = 80
	decisionMaxTokens = 120

	talkTemperature     = 0.8
	betTemperature      = 0.8
	decisionTemperature = 0.7
)

// Adapter implements agent.Provider against a chat-completions endpoint.
// Every failure mode comes back as an error; the orchestrator turns those
// into fallback answers.
type Adapter struct {
	cfg    Config
	client *Client
	log    *log.Logger
}

func NewAdapter(cfg Config, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{cfg: cfg, client: NewClient(cfg), log: logger}
}

func (a *Adapter) Enabled() bool { return a.cfg.Enabled() }

func (a *Adapter) GenerateBet(ctx context.Context, bankroll, handNumber int) (*agent.BetResult, error) {
	if !a.cfg.Enabled() {
		return nil, agent.ErrProviderDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	text, err := a.client.chat(ctx, betSystem, betPrompt(bankroll, handNumber, agent.MinBet, agent.MaxBet), betMaxTokens, betTemperature)
	if err != nil {
		return nil, err
	}
	a.log.Debug("bet reply", "raw", truncate(text, 200))

	parsed, err := parseJSONMap(text)
	if err != nil {
		return nil, err
	}
	amount, ok := intField(parsed, "bet_amount")
	if !ok {
		return nil, errors.New("bet candidate missing bet_amount")
	}
	rationale := strings.TrimSpace(stringField(parsed, "rationale"))
	if rationale == "" {
		rationale = "LLM reasoning failed - going with vibes!"
	}
	return &agent.BetResult{Amount: amount, Rationale: rationale}, nil
}

func (a *Adapter) GenerateTalk(ctx context.Context, snap blackjack.Snapshot, me blackjack.PrivateInfo) (*agent.TalkResult, error) {
	if !a.cfg.Enabled() {
		return nil, agent.ErrProviderDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	text, err := a.client.chat(ctx, talkSystem, talkPrompt(snap, me), talkMaxTokens, talkTemperature)
	if err != nil {
		return nil, err
	}
	say := strings.TrimSpace(text)
	if say == "" {
		return nil, errors.New("empty talk reply")
	}
	if len(say) > 160 {
		say = say[:160]
	}
	return &agent.TalkResult{Say: say}, nil
}

func (a *Adapter) GenerateDecision(ctx context.Context, snap blackjack.Snapshot, me blackjack.PrivateInfo) (*agent.DecisionResult, error) {
	if !a.cfg.Enabled() {
		return nil, agent.ErrProviderDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	text, err := a.client.chat(ctx, decisionSystem, decisionPrompt(snap, me), decisionMaxTokens, decisionTemperature)
	if err != nil {
		return nil, err
	}
	a.log.Debug("decision reply", "raw", truncate(text, 200))

	parsed, err := parseJSONMap(text)
	if err != nil {
		return nil, err
	}
	action := strings.ToLower(strings.TrimSpace(stringField(parsed, "action")))
	if action == "" {
		return nil, errors.New("decision candidate missing action")
	}
	if action != agent.ActionHit && action != agent.ActionStand {
		return nil, fmt.Errorf("illegal action %q", action)
	}
	confidence, ok := floatField(parsed, "confidence")
	if !ok {
		return nil, errors.New("decision candidate missing confidence")
	}
	rationale := strings.TrimSpace(stringField(parsed, "rationale"))
	if rationale == "" {
		return nil, errors.New("decision candidate missing rationale")
	}
	return &agent.DecisionResult{Action: action, Confidence: confidence, Rationale: rationale}, nil
}
