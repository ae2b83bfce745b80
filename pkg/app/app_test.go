package app

import (
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IAmThe2ndHuman/interra-api/pkg/db"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func testFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	if flags.DBPath == "" {
		flags.DBPath = filepath.Join(t.TempDir(), "interra.db")
	}
	return flags
}

func TestHubConfig_EnvOverridesStore(t *testing.T) {
	cfg := &db.Config{Hub: &db.HubConnection{Host: "10.0.0.2", Port: 8899, Username: "stored", Password: "pw"}}

	hub := HubConfig(cfg, lookupFrom(map[string]string{
		"TCP_IP":   "10.0.0.9",
		"USERNAME": "env-user",
	}))

	assert.Equal(t, "10.0.0.9", hub.Host)
	assert.Equal(t, "8899", hub.Port)
	assert.Equal(t, "env-user", hub.Username)
	assert.Equal(t, "pw", hub.Password)
}

func TestOpen_DefaultsAndTokenOverride(t *testing.T) {
	ctx := context.Background()

	a, err := Open(ctx, testFlags(t), lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, db.DefaultAuthToken, a.AuthToken)
	assert.False(t, a.Controller.IsConnected())
	a.Close()

	a, err = Open(ctx, testFlags(t), lookupFrom(map[string]string{EnvAuthToken: "tok"}))
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, "tok", a.AuthToken)
}

func TestOpen_SaveAndProfile(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "interra.db")
	env := lookupFrom(map[string]string{
		"TCP_IP":   "192.168.1.50",
		"PORT":     "8899",
		"USERNAME": "home",
		"PASSWORD": "pw",
	})

	a, err := Open(ctx, testFlags(t, "-db", dbPath, "-profile", "cabin", "-save"), env)
	require.NoError(t, err)
	a.Close()

	a, err = Open(ctx, testFlags(t, "-db", dbPath), lookupFrom(nil))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "cabin", a.Config.Profile.Name)
	assert.Equal(t, "192.168.1.50", a.Hub.Host)
	assert.Equal(t, "8899", a.Hub.Port)
	assert.Equal(t, "home", a.Hub.Username)
}

func TestOpen_SaveRejectsIncompleteSettings(t *testing.T) {
	_, err := Open(context.Background(), testFlags(t, "-save"), lookupFrom(nil))
	assert.ErrorIs(t, err, device.ErrConfiguration)
}

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("missing settings are fatal", func(t *testing.T) {
		a, err := Open(ctx, testFlags(t), lookupFrom(nil))
		require.NoError(t, err)
		defer a.Close()

		assert.ErrorIs(t, a.Connect(ctx), device.ErrConfiguration)
	})

	t.Run("unreachable hub degrades", func(t *testing.T) {
		a, err := Open(ctx, testFlags(t), lookupFrom(map[string]string{
			"TCP_IP":   "127.0.0.1",
			"PORT":     "1",
			"USERNAME": "u",
			"PASSWORD": "p",
		}))
		require.NoError(t, err)
		defer a.Close()

		require.NoError(t, a.Connect(ctx))
		assert.IsType(t, &device.NullController{}, a.Controller)

		// Returns immediately without a client.
		a.RunWatchdog(ctx)
	})
}
