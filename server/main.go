package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"blackjack-ace/server/agent"
	"blackjack-ace/server/llm"
)

func main() {
	_ = godotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          serviceName,
	})

	cfg, err := loadAppConfig()
	if err != nil {
		logger.Fatal("bad configuration", "err", err)
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	llmCfg, err := llm.ResolveConfig()
	if err != nil {
		logger.Fatal("resolve llm config", "err", err)
	}
	adapter := llm.NewAdapter(llmCfg, logger.WithPrefix("llm"))
	if !adapter.Enabled() {
		logger.Warn("no LLM endpoint configured, running on table heuristics only")
	}
	orch := agent.NewOrchestrator(adapter, logger.WithPrefix("agent"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		"mode", cfg.RunMode,
		"port", cfg.Port,
		"llm_enabled", adapter.Enabled(),
		"deployment", llmCfg.Deployment,
	)

	switch cfg.RunMode {
	case modeMCP:
		if err := runMCP(ctx, orch, logger); err != nil {
			logger.Fatal("mcp server failed", "err", err)
		}
	default:
		if err := runHTTP(ctx, cfg, orch, adapter.Enabled(), logger); err != nil {
			logger.Fatal("http server failed", "err", err)
		}
	}
}

func runHTTP(ctx context.Context, cfg appConfig, orch *agent.Orchestrator, llmEnabled bool, logger *log.Logger) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      Router(orch, logger, llmEnabled),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
