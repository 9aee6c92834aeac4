package store

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Settings are the persisted tunables for the capture and detection stages.
type Settings struct {
	CameraID               int
	MaxHands               int
	MinDetectionConfidence float64
	MinTrackingConfidence  float64
}

// DefaultSettings returns the stock configuration: default webcam, at most
// two hands, moderate confidence thresholds.
func DefaultSettings() Settings {
	return Settings{
		CameraID:               0,
		MaxHands:               2,
		MinDetectionConfidence: 0.5,
		MinTrackingConfidence:  0.5,
	}
}

// Setting keys.
const (
	keyCameraID               = "camera_id"
	keyMaxHands               = "max_hands"
	keyMinDetectionConfidence = "min_detection_confidence"
	keyMinTrackingConfidence  = "min_tracking_confidence"
)

// SettingsRepository provides access to the persisted settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// SeedDefaults inserts default values for any setting key that is not yet
// present. Existing values are left untouched.
func (r *SettingsRepository) SeedDefaults() error {
	defaults := DefaultSettings()
	rows := map[string]string{
		keyCameraID:               strconv.Itoa(defaults.CameraID),
		keyMaxHands:               strconv.Itoa(defaults.MaxHands),
		keyMinDetectionConfidence: strconv.FormatFloat(defaults.MinDetectionConfidence, 'f', -1, 64),
		keyMinTrackingConfidence:  strconv.FormatFloat(defaults.MinTrackingConfidence, 'f', -1, 64),
	}

	for key, value := range rows {
		if _, err := r.db.Exec(
			`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
			key, value,
		); err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}

	return nil
}

// Load reads the persisted settings. Missing keys fall back to defaults.
func (r *SettingsRepository) Load() (Settings, error) {
	settings := DefaultSettings()

	rows, err := r.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return settings, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("scan setting: %w", err)
		}

		switch key {
		case keyCameraID:
			if v, err := strconv.Atoi(value); err == nil {
				settings.CameraID = v
			}
		case keyMaxHands:
			if v, err := strconv.Atoi(value); err == nil && v >= 1 {
				settings.MaxHands = v
			}
		case keyMinDetectionConfidence:
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				settings.MinDetectionConfidence = v
			}
		case keyMinTrackingConfidence:
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				settings.MinTrackingConfidence = v
			}
		}
	}

	return settings, rows.Err()
}

// Save writes all settings, replacing existing values.
func (r *SettingsRepository) Save(settings Settings) error {
	rows := map[string]string{
		keyCameraID:               strconv.Itoa(settings.CameraID),
		keyMaxHands:               strconv.Itoa(settings.MaxHands),
		keyMinDetectionConfidence: strconv.FormatFloat(settings.MinDetectionConfidence, 'f', -1, 64),
		keyMinTrackingConfidence:  strconv.FormatFloat(settings.MinTrackingConfidence, 'f', -1, 64),
	}

	for key, value := range rows {
		if _, err := r.db.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		); err != nil {
			return fmt.Errorf("save setting %s: %w", key, err)
		}
	}

	return nil
}
