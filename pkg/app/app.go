// Package app holds the startup wiring shared by the API and MCP binaries.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/IAmThe2ndHuman/interra-api/pkg/db"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
	"github.com/IAmThe2ndHuman/interra-api/pkg/interra"
)

// EnvAuthToken overrides the stored API bearer token.
const EnvAuthToken = "AUTH_TOKEN"

// connectTimeout bounds the initial handshake at startup.
const connectTimeout = 30 * time.Second

// Flags are the command line options common to both binaries.
type Flags struct {
	DBPath  string
	EnvFile string
	LogFile string
	Profile string
	Debug   bool
	Save    bool
}

// RegisterFlags defines the common flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.DBPath, "db", "", "Path to database file (default: <config dir>/interra-api/interra.db)")
	fs.StringVar(&f.EnvFile, "env", ".env", "Path to a .env file with hub settings")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write JSON logs to this rotating file")
	fs.StringVar(&f.Profile, "profile", "", "Activate (and create if needed) this profile")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.Save, "save", false, "Persist environment hub settings into the active profile")
	return f
}

// LoadEnv loads path into the process environment. A missing file is not
// an error; variables already set win.
func LoadEnv(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", path).Msg("No env file")
			return
		}
		log.Warn().Err(err).Str("path", path).Msg("Failed to load env file")
	}
}

// App is the configured runtime: database, hub settings, metrics and the
// device controller.
type App struct {
	DB        *db.DB
	Config    *db.Config
	Hub       interra.Config
	AuthToken string
	Registry  *prometheus.Registry
	Metrics   *interra.Metrics

	Controller device.Controller
	client     *interra.Client
}

// Open loads configuration from the database and environment.
func Open(ctx context.Context, flags *Flags, lookup func(string) (string, bool)) (*App, error) {
	database, err := db.Open(flags.DBPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", database.Path()).Msg("Database opened")

	a := &App{DB: database}
	if err := a.load(ctx, flags, lookup); err != nil {
		_ = database.Close()
		return nil, err
	}

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = interra.NewMetrics(a.Registry)
	a.Controller = device.NewNullController()

	return a, nil
}

func (a *App) load(ctx context.Context, flags *Flags, lookup func(string) (string, bool)) error {
	bootstrapped, err := a.DB.Prepare(ctx)
	if err != nil {
		return err
	}
	if bootstrapped {
		log.Info().Msg("First run detected, database bootstrapped")
	}

	if flags.Profile != "" {
		if _, err := a.DB.UseProfile(ctx, flags.Profile); err != nil {
			return err
		}
	}

	cfg, err := a.DB.ActiveConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.Config = cfg
	a.Hub = HubConfig(cfg, lookup)
	a.AuthToken = cfg.AuthToken()
	if token, ok := lookup(EnvAuthToken); ok && token != "" {
		a.AuthToken = token
	}

	if flags.Save {
		if err := a.save(ctx); err != nil {
			return err
		}
	}

	log.Info().
		Str("profile", cfg.Profile.Name).
		Str("hub", a.Hub.Host).
		Str("api_address", cfg.APIAddress()).
		Msg("Configuration loaded")
	return nil
}

// HubConfig builds hub settings from the stored profile, overridden by the
// environment.
func HubConfig(cfg *db.Config, lookup func(string) (string, bool)) interra.Config {
	var hub interra.Config
	if cfg.Hub != nil {
		hub = interra.Config{
			Host:     cfg.Hub.Host,
			Port:     cfg.HubPort(),
			Username: cfg.Hub.Username,
			Password: cfg.Hub.Password,
		}
	}
	return hub.WithEnv(lookup)
}

// save writes the effective hub settings and token back to the profile.
func (a *App) save(ctx context.Context) error {
	if err := a.Hub.Validate(); err != nil {
		return fmt.Errorf("refusing to save hub settings: %w", err)
	}
	port, _ := strconv.Atoi(a.Hub.Port)

	hub := a.Config.Hub
	if hub == nil {
		return fmt.Errorf("profile %q has no hub connection row", a.Config.Profile.Name)
	}
	hub.Host, hub.Port = a.Hub.Host, port
	hub.Username, hub.Password = a.Hub.Username, a.Hub.Password
	if err := a.DB.HubConnections().Update(ctx, hub); err != nil {
		return err
	}

	if srv := a.Config.APIServer; srv != nil && a.AuthToken != srv.AuthToken {
		srv.AuthToken = a.AuthToken
		if err := a.DB.APIServers().Update(ctx, srv); err != nil {
			return err
		}
	}

	log.Info().Str("profile", a.Config.Profile.Name).Msg("Hub settings saved")
	return nil
}

// Connect logs in to the hub. Configuration errors are returned; transport
// failures leave the NullController in place so the surfaces still serve
// health and docs.
func (a *App) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := interra.Connect(ctx, a.Hub, interra.WithMetrics(a.Metrics))
	switch {
	case err == nil:
		a.client = client
		a.Controller = client
		return nil
	case errors.Is(err, device.ErrConfiguration):
		return err
	default:
		log.Warn().Err(err).Str("hub", a.Hub.Address()).Msg("Hub unreachable, using null controller")
		return nil
	}
}

// RunWatchdog probes the hub until ctx is cancelled. It returns at once in
// degraded mode.
func (a *App) RunWatchdog(ctx context.Context) {
	if a.client == nil {
		return
	}
	interra.NewWatchdog(a.client, interra.KeepaliveInterval).Run(ctx)
}

// Close disconnects from the hub and closes the database.
func (a *App) Close() {
	a.Controller.Close()
	if err := a.DB.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
	}
}
