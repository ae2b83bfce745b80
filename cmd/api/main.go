package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/IAmThe2ndHuman/interra-api/pkg/api"
	"github.com/IAmThe2ndHuman/interra-api/pkg/app"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device/schema"

	_ "github.com/IAmThe2ndHuman/interra-api/docs"
)

//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../docs

// @title           Interra API
// @version         1.0
// @description     REST API for the lights and AC behind an Interra hub

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

func main() {
	flags := app.RegisterFlags(flag.CommandLine)
	flag.Parse()

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

	metrics := promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{Registry: a.Registry})
	router := api.NewRouter(a.Controller, schema.NewValidator(), a.AuthToken, metrics)

	srv := &http.Server{
		Addr:              a.Config.APIAddress(),
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	log.Info().Str("address", srv.Addr).Msg("Starting API server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Server failed")
	}
}
