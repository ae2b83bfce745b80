package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile is one hub installation's configuration set.
type Profile struct {
	ID        int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileStore provides profile operations.
type ProfileStore interface {
	GetByName(ctx context.Context, name string) (*Profile, error)
	GetActive(ctx context.Context) (*Profile, error)
	Create(ctx context.Context, p *Profile) error
	SetActive(ctx context.Context, id int64) error
}

// Profiles returns a ProfileStore for this database.
func (db *DB) Profiles() ProfileStore {
	return &profileStore{db: db}
}

type profileStore struct {
	db *DB
}

const profileColumns = `id, name, is_active, created_at, updated_at`

func scanProfile(row *sql.Row) (*Profile, error) {
	p := &Profile{}
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Name, &p.IsActive, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	p.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return p, nil
}

func (s *profileStore) GetByName(ctx context.Context, name string) (*Profile, error) {
	return scanProfile(s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name))
}

func (s *profileStore) GetActive(ctx context.Context) (*Profile, error) {
	return scanProfile(s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE is_active = 1 LIMIT 1`))
}

// Create inserts the profile together with its default API server and hub
// connection rows.
func (s *profileStore) Create(ctx context.Context, p *Profile) error {
	return s.db.Tx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (name, is_active) VALUES (?, ?)
		`, p.Name, p.IsActive)
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		if err := createProfileDefaults(ctx, tx, id); err != nil {
			return err
		}
		p.ID = id
		return nil
	})
}

func (s *profileStore) SetActive(ctx context.Context, id int64) error {
	return s.db.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE profiles SET is_active = 0`); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `
			UPDATE profiles SET is_active = 1, updated_at = datetime('now') WHERE id = ?
		`, id)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrProfileNotFound
		}
		return nil
	})
}

// UseProfile activates the named profile, creating it first if needed.
func (db *DB) UseProfile(ctx context.Context, name string) (*Profile, error) {
	profiles := db.Profiles()

	p, err := profiles.GetByName(ctx, name)
	if errors.Is(err, ErrProfileNotFound) {
		p = &Profile{Name: name}
		err = profiles.Create(ctx, p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %q: %w", name, err)
	}

	if err := profiles.SetActive(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("failed to activate profile %q: %w", name, err)
	}
	p.IsActive = true
	return p, nil
}
