package main

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"blackjack-ace/server/agent"
	"blackjack-ace/server/blackjack"
)

const serverVersion = "1.0.0"

// tableArgs is the MCP-side shape of the talk and decide tools. It
// matches the HTTP body byte for byte, so a caller can switch
// transports without re-encoding anything.
type tableArgs struct {
	Role   string                `json:"role,omitempty" jsonschema:"caller-declared purpose of the request"`
	Public blackjack.Snapshot    `json:"public,omitempty" jsonschema:"public table snapshot visible to every seat"`
	Me     blackjack.PrivateInfo `json:"me,omitempty" jsonschema:"private cards and bankroll for this seat"`
}

func (a tableArgs) toRequest() agent.TableRequest {
	return agent.TableRequest{Role: a.Role, Public: a.Public, Me: a.Me}
}

func newMCPServer(orch *agent.Orchestrator) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serviceName, Version: serverVersion}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "place_bet",
		Description: "Choose a bet amount for the coming blackjack hand. Always answers within table limits.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in betWire) (*mcp.CallToolResult, agent.BetResult, error) {
		return nil, orch.PlaceBet(ctx, in.toRequest()), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "table_talk",
		Description: "Produce one short in-character remark for the current table situation.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in tableArgs) (*mcp.CallToolResult, agent.TalkResult, error) {
		return nil, orch.TableTalk(ctx, in.toRequest()), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "decide",
		Description: "Pick hit or stand for the current hand, with confidence and a one-line rationale.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in tableArgs) (*mcp.CallToolResult, agent.DecisionResult, error) {
		return nil, orch.Decide(ctx, in.toRequest()), nil
	})

	return server
}

func runMCP(ctx context.Context, orch *agent.Orchestrator, logger *log.Logger) error {
	server := newMCPServer(orch)
	logger.Info("mcp server on stdio", "service", serviceName, "version", serverVersion)
	return serveMCP(ctx, server, &mcp.StdioTransport{})
}

// serveMCP runs the server until the transport closes or the context is
// done. A cancelled context is a normal shutdown, not an error.
func serveMCP(ctx context.Context, server *mcp.Server, transport mcp.Transport) error {
	err := server.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
