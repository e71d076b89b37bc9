package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"blackjack-ace/server/agent"
)

const serviceName = "blackjack-ace"

// betWire mirrors the bet request body on both facades; the jsonschema
// tags feed the MCP tool schema. Fields are pointers so absent keys fall
// back to table defaults; hand_number is accepted as an alias some table
// hosts still send.
type betWire struct {
	Bankroll   *int `json:"bankroll,omitempty" jsonschema:"current bankroll in dollars"`
	HandNumber *int `json:"handNumber,omitempty" jsonschema:"1-based hand number in the session"`
	HandAlias  *int `json:"hand_number,omitempty" jsonschema:"snake_case alias for handNumber"`
}

func (b betWire) toRequest() agent.BetRequest {
	req := agent.BetRequest{Bankroll: 100, HandNumber: 1}
	if b.Bankroll != nil {
		req.Bankroll = *b.Bankroll
	}
	switch {
	case b.HandNumber != nil:
		req.HandNumber = *b.HandNumber
	case b.HandAlias != nil:
		req.HandNumber = *b.HandAlias
	}
	return req
}

func Router(orch *agent.Orchestrator, logger *log.Logger, llmEnabled bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// decodeInto tolerates bad bodies: the action endpoints always
	// answer with a playable response, so a broken payload just means
	// zero values and the fallback path.
	decodeInto := func(r *http.Request, v any) {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			logger.Warn("ignoring malformed request body", "path", r.URL.Path, "err", err)
		}
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"service":     serviceName,
			"persona":     "Ace",
			"llm_enabled": llmEnabled,
			"endpoints": map[string]string{
				"place_bet":  "POST /place_bet",
				"table_talk": "POST /table_talk",
				"decide":     "POST /decide",
				"health":     "GET /health",
			},
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "service": serviceName, "status": "ready"})
	})

	r.Post("/place_bet", func(w http.ResponseWriter, r *http.Request) {
		var body betWire
		decodeInto(r, &body)
		writeJSON(w, orch.PlaceBet(r.Context(), body.toRequest()))
	})

	r.Post("/table_talk", func(w http.ResponseWriter, r *http.Request) {
		var req agent.TableRequest
		decodeInto(r, &req)
		writeJSON(w, orch.TableTalk(r.Context(), req))
	})

	r.Post("/decide", func(w http.ResponseWriter, r *http.Request) {
		var req agent.TableRequest
		decodeInto(r, &req)
		writeJSON(w, orch.Decide(r.Context(), req))
	})

	return r
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"dur", time.Since(start).Round(time.Millisecond),
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
