package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Profiles table - named render settings snapshots. At most one
		// profile is active at a time (enforced transactionally, not by
		// schema, since SQLite partial unique indexes complicate upserts).
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			enable_ghost_style INTEGER NOT NULL DEFAULT 1,
			show_landmarks INTEGER NOT NULL DEFAULT 0,
			show_handedness_label INTEGER NOT NULL DEFAULT 0,
			body_opacity REAL NOT NULL DEFAULT 0.55,
			halo_opacity REAL NOT NULL DEFAULT 0.2,
			blur_sigma REAL NOT NULL DEFAULT 4.0,
			landmark_size INTEGER NOT NULL DEFAULT 3,
			smoothing_alpha REAL NOT NULL DEFAULT 0.5,
			active INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - application settings as key-value pairs.
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_profiles_active ON profiles(active)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
