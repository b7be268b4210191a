package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/tern-works/refit/internal/engine"
	"github.com/tern-works/refit/internal/logging"
	"github.com/tern-works/refit/internal/mcptools"
)

func runServe(eng *engine.Engine, logger *log.Logger, flags cliFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := mcptools.NewService(eng)
	svc.SetProjectRoot(flags.ProjectRoot)

	logger.Info("serving MCP tools", logging.FieldAddr, flags.Addr)
	return mcptools.RunMCPServer(ctx, svc, flags.Addr)
}
