package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "nested", "interra.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestPrepare_BootstrapsOnce(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	bootstrapped, err := database.Prepare(ctx)
	require.NoError(t, err)
	assert.True(t, bootstrapped)

	bootstrapped, err = database.Prepare(ctx)
	require.NoError(t, err)
	assert.False(t, bootstrapped)

	version, err := database.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, version)
}

func TestActiveConfig_Defaults(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	_, err := database.Prepare(ctx)
	require.NoError(t, err)

	cfg, err := database.ActiveConfig(ctx)
	require.NoError(t, err)

	assert.Equal(t, DefaultProfile, cfg.Profile.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.APIAddress())
	assert.Equal(t, DefaultAuthToken, cfg.AuthToken())
	require.NotNil(t, cfg.Hub)
	assert.Empty(t, cfg.Hub.Host)
	assert.Empty(t, cfg.HubPort())
}

func TestActiveConfig_NoProfile(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx))

	_, err := database.ActiveConfig(ctx)
	assert.ErrorIs(t, err, ErrNoActiveProfile)
}

func TestUpdateStoredSettings(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	_, err := database.Prepare(ctx)
	require.NoError(t, err)

	cfg, err := database.ActiveConfig(ctx)
	require.NoError(t, err)

	cfg.Hub.Host = "192.168.1.50"
	cfg.Hub.Port = 8899
	cfg.Hub.Username = "home"
	cfg.Hub.Password = "pw"
	require.NoError(t, database.HubConnections().Update(ctx, cfg.Hub))

	cfg.APIServer.Port = 80
	cfg.APIServer.AuthToken = "s3cret"
	require.NoError(t, database.APIServers().Update(ctx, cfg.APIServer))

	reloaded, err := database.ActiveConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.50", reloaded.Hub.Host)
	assert.Equal(t, "8899", reloaded.HubPort())
	assert.Equal(t, "home", reloaded.Hub.Username)
	assert.Equal(t, "0.0.0.0:80", reloaded.APIAddress())
	assert.Equal(t, "s3cret", reloaded.AuthToken())
}

func TestUseProfile(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	_, err := database.Prepare(ctx)
	require.NoError(t, err)

	p, err := database.UseProfile(ctx, "cabin")
	require.NoError(t, err)
	assert.True(t, p.IsActive)

	cfg, err := database.ActiveConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cabin", cfg.Profile.Name)
	assert.NotNil(t, cfg.APIServer, "new profiles get an API server row")
	assert.NotNil(t, cfg.Hub, "new profiles get a hub row")

	_, err = database.UseProfile(ctx, DefaultProfile)
	require.NoError(t, err)
	cfg, err = database.ActiveConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile, cfg.Profile.Name)
}

func TestHubConnections_UpdateMissing(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx))

	err := database.HubConnections().Update(ctx, &HubConnection{ProfileID: 42})
	assert.ErrorIs(t, err, ErrHubConnectionNotFound)
}
