package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/chhaya/internal/render"
)

// ErrProfileNotFound is returned when a profile with the given ID does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is a named, persisted render settings snapshot.
type Profile struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Settings  render.Settings `json:"settings"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Profiles returns the profile repository.
func (s *Store) Profiles() *ProfileRepo {
	return &ProfileRepo{db: s.db}
}

// ProfileRepo provides CRUD operations for render settings profiles.
type ProfileRepo struct {
	db *sql.DB
}

const profileColumns = `id, name, enable_ghost_style, show_landmarks,
	show_handedness_label, body_opacity, halo_opacity, blur_sigma,
	landmark_size, smoothing_alpha, active, created_at, updated_at`

// Create inserts a new profile and returns it with a generated ID.
func (r *ProfileRepo) Create(name string, settings render.Settings) (*Profile, error) {
	p := &Profile{
		ID:       uuid.NewString(),
		Name:     name,
		Settings: settings,
	}

	_, err := r.db.Exec(`INSERT INTO profiles (id, name, enable_ghost_style,
		show_landmarks, show_handedness_label, body_opacity, halo_opacity,
		blur_sigma, landmark_size, smoothing_alpha, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		p.ID, p.Name,
		settings.EnableGhostStyle, settings.ShowLandmarks, settings.ShowHandednessLabel,
		settings.BodyOpacity, settings.HaloOpacity, settings.BlurSigma,
		settings.LandmarkSize, settings.SmoothingAlpha)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return r.Get(p.ID)
}

// Get returns the profile with the given ID.
func (r *ProfileRepo) Get(id string) (*Profile, error) {
	row := r.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

// List returns all profiles ordered by name.
func (r *ProfileRepo) List() ([]*Profile, error) {
	rows, err := r.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// Update replaces the name and settings of an existing profile.
func (r *ProfileRepo) Update(id, name string, settings render.Settings) (*Profile, error) {
	res, err := r.db.Exec(`UPDATE profiles SET name = ?, enable_ghost_style = ?,
		show_landmarks = ?, show_handedness_label = ?, body_opacity = ?,
		halo_opacity = ?, blur_sigma = ?, landmark_size = ?,
		smoothing_alpha = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name,
		settings.EnableGhostStyle, settings.ShowLandmarks, settings.ShowHandednessLabel,
		settings.BodyOpacity, settings.HaloOpacity, settings.BlurSigma,
		settings.LandmarkSize, settings.SmoothingAlpha, id)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrProfileNotFound
	}

	return r.Get(id)
}

// Delete removes a profile by ID.
func (r *ProfileRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// Activate marks the given profile active and deactivates all others in a
// single transaction, preserving the at-most-one-active invariant.
func (r *ProfileRepo) Activate(id string) (*Profile, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("activate profile: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE profiles SET active = 0 WHERE active = 1`); err != nil {
		return nil, fmt.Errorf("deactivate profiles: %w", err)
	}

	res, err := tx.Exec(`UPDATE profiles SET active = 1,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("activate profile: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrProfileNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("activate profile: %w", err)
	}

	return r.Get(id)
}

// Active returns the currently active profile, or ErrProfileNotFound when
// no profile is active.
func (r *ProfileRepo) Active() (*Profile, error) {
	row := r.db.QueryRow(`SELECT ` + profileColumns + ` FROM profiles WHERE active = 1`)
	return scanProfile(row)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Name,
		&p.Settings.EnableGhostStyle, &p.Settings.ShowLandmarks,
		&p.Settings.ShowHandednessLabel, &p.Settings.BodyOpacity,
		&p.Settings.HaloOpacity, &p.Settings.BlurSigma,
		&p.Settings.LandmarkSize, &p.Settings.SmoothingAlpha,
		&p.Active, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	return &p, nil
}
