package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/IAmThe2ndHuman/interra-api/pkg/app"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device/schema"
	interramcp "github.com/IAmThe2ndHuman/interra-api/pkg/mcp"
)

func main() {
	flags := app.RegisterFlags(flag.CommandLine)
	flag.Parse()

	// Logging must go to stderr; stdout is the MCP transport
	logFile := app.SetupLogging(flags.LogFile, flags.Debug)
	defer logFile.Close()

	app.LoadEnv(flags.EnvFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, flags, os.LookupEnv)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	defer a.Close()

	if err := a.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("Invalid hub configuration")
	}
	go a.RunWatchdog(ctx)

	mcpServer := interramcp.NewServer(a.Controller, schema.NewValidator())

	log.Info().Msg("Starting MCP server on stdio")
	if err := mcpServer.ServeStdio(); err != nil {
		log.Error().Err(err).Msg("MCP server failed")
	}
}
