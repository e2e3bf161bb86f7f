package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Profile is a named set of pipeline tuning values stored in the database.
// Settings holds the serialized configuration (smoothing factor, bend
// threshold, zoom ranges, highlight delays and so on) as JSON.
type Profile struct {
	ID        string
	Name      string
	Settings  json.RawMessage
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileRepository provides CRUD operations for tuning profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

// Create inserts a new profile into the database.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if len(p.Settings) == 0 {
		p.Settings = json.RawMessage("{}")
	}

	_, err := r.db.Exec(
		`INSERT INTO profiles (id, name, settings, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.Settings), p.Active, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	return r.get(`SELECT id, name, settings, active, created_at, updated_at
		 FROM profiles WHERE id = ?`, id)
}

// GetByName retrieves a profile by its unique name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	return r.get(`SELECT id, name, settings, active, created_at, updated_at
		 FROM profiles WHERE name = ?`, name)
}

// GetActive retrieves the profile currently marked active, if any.
func (r *ProfileRepository) GetActive() (*Profile, error) {
	return r.get(`SELECT id, name, settings, active, created_at, updated_at
		 FROM profiles WHERE active = 1 LIMIT 1`)
}

func (r *ProfileRepository) get(query string, args ...any) (*Profile, error) {
	p := &Profile{}
	var settings string

	err := r.db.QueryRow(query, args...).
		Scan(&p.ID, &p.Name, &settings, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Settings = json.RawMessage(settings)
	return p, nil
}

// List retrieves all profiles ordered by name.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(
		`SELECT id, name, settings, active, created_at, updated_at
		 FROM profiles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p := &Profile{}
		var settings string
		if err := rows.Scan(&p.ID, &p.Name, &settings, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Settings = json.RawMessage(settings)
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// Update modifies an existing profile's name and settings.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE profiles SET name = ?, settings = ?, updated_at = ? WHERE id = ?`,
		p.Name, string(p.Settings), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive marks the given profile active and deactivates all others in a
// single transaction.
func (r *ProfileRepository) SetActive(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE profiles SET active = 0`); err != nil {
		return err
	}

	result, err := tx.Exec(`UPDATE profiles SET active = 1, updated_at = ? WHERE id = ?`,
		time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// Delete removes a profile by its ID.
func (r *ProfileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
