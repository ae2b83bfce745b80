package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrHubConnectionNotFound = errors.New("hub connection not found")

// HubConnection is the stored Interra hub endpoint and login of a profile.
type HubConnection struct {
	ID        int64
	ProfileID int64
	Host      string
	Port      int
	Username  string
	Password  string
	UpdatedAt time.Time
}

// HubConnectionStore provides hub connection operations.
type HubConnectionStore interface {
	Get(ctx context.Context, profileID int64) (*HubConnection, error)
	Update(ctx context.Context, h *HubConnection) error
}

// HubConnections returns a HubConnectionStore for this database.
func (db *DB) HubConnections() HubConnectionStore {
	return &hubConnectionStore{db: db}
}

type hubConnectionStore struct {
	db *DB
}

func (s *hubConnectionStore) Get(ctx context.Context, profileID int64) (*HubConnection, error) {
	h := &HubConnection{}
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, host, port, username, password, updated_at
		FROM hub_connections WHERE profile_id = ?
	`, profileID).Scan(&h.ID, &h.ProfileID, &h.Host, &h.Port, &h.Username, &h.Password, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHubConnectionNotFound
	}
	if err != nil {
		return nil, err
	}
	h.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return h, nil
}

func (s *hubConnectionStore) Update(ctx context.Context, h *HubConnection) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE hub_connections
		SET host = ?, port = ?, username = ?, password = ?, updated_at = datetime('now')
		WHERE profile_id = ?
	`, h.Host, h.Port, h.Username, h.Password, h.ProfileID)
	if err != nil {
		return fmt.Errorf("failed to update hub connection: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrHubConnectionNotFound
	}
	return nil
}
