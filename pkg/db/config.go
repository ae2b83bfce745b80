package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

var ErrNoActiveProfile = errors.New("no active profile found")

// DefaultAuthToken guards the API when no token is configured.
const DefaultAuthToken = "backup token thingy"

// Config is the runtime configuration of the active profile.
type Config struct {
	Profile   *Profile
	APIServer *APIServer
	Hub       *HubConnection
}

// APIAddress returns the API server listen address.
func (c *Config) APIAddress() string {
	if c.APIServer == nil {
		return "0.0.0.0:8080"
	}
	return c.APIServer.Address()
}

// AuthToken returns the bearer token, falling back to DefaultAuthToken.
func (c *Config) AuthToken() string {
	if c.APIServer == nil || c.APIServer.AuthToken == "" {
		return DefaultAuthToken
	}
	return c.APIServer.AuthToken
}

// HubPort returns the stored hub port as text, or "" if none is stored.
func (c *Config) HubPort() string {
	if c.Hub == nil || c.Hub.Port == 0 {
		return ""
	}
	return strconv.Itoa(c.Hub.Port)
}

// ActiveConfig loads the complete configuration for the active profile.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrNoActiveProfile
		}
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}

	config := &Config{
		Profile: profile,
	}

	apiServer, err := db.APIServers().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrAPIServerNotFound) {
		return nil, fmt.Errorf("failed to get API server config: %w", err)
	}
	config.APIServer = apiServer

	hub, err := db.HubConnections().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrHubConnectionNotFound) {
		return nil, fmt.Errorf("failed to get hub connection: %w", err)
	}
	config.Hub = hub

	return config, nil
}
