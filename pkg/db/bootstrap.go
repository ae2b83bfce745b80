package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DefaultProfile is the profile created on first run.
const DefaultProfile = "default"

// Bootstrap creates the default profile with its API server and an empty
// hub connection. Hub settings are expected from the environment until they
// are stored.
func (db *DB) Bootstrap(ctx context.Context) error {
	return db.Tx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (name, is_active) VALUES (?, 1)
		`, DefaultProfile)
		if err != nil {
			return fmt.Errorf("failed to create default profile: %w", err)
		}

		profileID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get profile ID: %w", err)
		}

		return createProfileDefaults(ctx, tx, profileID)
	})
}

// createProfileDefaults inserts the API server and hub rows for a new profile.
func createProfileDefaults(ctx context.Context, tx *sql.Tx, profileID int64) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO api_servers (profile_id, host, port) VALUES (?, '0.0.0.0', 8080)
	`, profileID); err != nil {
		return fmt.Errorf("failed to create default API server: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO hub_connections (profile_id) VALUES (?)
	`, profileID); err != nil {
		return fmt.Errorf("failed to create default hub connection: %w", err)
	}
	return nil
}

// NeedsBootstrap returns true if the database needs initial setup.
func (db *DB) NeedsBootstrap(ctx context.Context) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
