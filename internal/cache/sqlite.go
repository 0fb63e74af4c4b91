package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tunetype/tunetype/internal/models"
)

const personalSlot = "personal"

const (
	kindLyrics  = "lyrics"
	kindInsight = "insight"
)

const (
	metaCredential = "credential"
	metaLocation   = "location"
)

// SQLiteStore implements [Store] on top of the cache tables created by the
// shared migrations (report_cache, track_cache, meta).
//
// Every write is a single INSERT OR REPLACE / DELETE statement, so reads
// during a concurrent logout see either the old entry or nothing, never a
// torn row.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store backed by the given database connection.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Report reads the personal-report slot. Corrupt payloads read as absent.
func (s *SQLiteStore) Report() (*models.Report, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM report_cache WHERE slot = ?", personalSlot).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report cache: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		// Corrupt entry: treat as cache-absent rather than failing the run.
		return nil, nil
	}
	return &report, nil
}

// SetReport overwrites the personal-report slot wholesale.
func (s *SQLiteStore) SetReport(report *models.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO report_cache (slot, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		personalSlot, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to write report cache: %w", err)
	}
	return nil
}

// ClearReport empties the personal-report slot.
func (s *SQLiteStore) ClearReport() error {
	if _, err := s.db.Exec("DELETE FROM report_cache WHERE slot = ?", personalSlot); err != nil {
		return fmt.Errorf("failed to clear report cache: %w", err)
	}
	return nil
}

func (s *SQLiteStore) trackEntry(kind, trackID string, target any) (bool, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM track_cache WHERE kind = ? AND track_id = ?", kind, trackID).Scan(&payload)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read track cache: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *SQLiteStore) setTrackEntry(kind, trackID string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal track entry: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO track_cache (kind, track_id, payload, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
		kind, trackID, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to write track cache: %w", err)
	}
	return nil
}

func (s *SQLiteStore) clearTrackEntry(kind, trackID string) error {
	if _, err := s.db.Exec("DELETE FROM track_cache WHERE kind = ? AND track_id = ?", kind, trackID); err != nil {
		return fmt.Errorf("failed to clear track cache: %w", err)
	}
	return nil
}

// Lyrics reads the lyrics slot for a track.
func (s *SQLiteStore) Lyrics(trackID string) (*models.Lyrics, error) {
	var lyrics models.Lyrics
	ok, err := s.trackEntry(kindLyrics, trackID, &lyrics)
	if err != nil || !ok {
		return nil, err
	}
	return &lyrics, nil
}

func (s *SQLiteStore) SetLyrics(trackID string, lyrics *models.Lyrics) error {
	return s.setTrackEntry(kindLyrics, trackID, lyrics)
}

func (s *SQLiteStore) ClearLyrics(trackID string) error {
	return s.clearTrackEntry(kindLyrics, trackID)
}

// Insight reads the artist-insight slot for a track.
func (s *SQLiteStore) Insight(trackID string) (*models.ArtistInsight, error) {
	var insight models.ArtistInsight
	ok, err := s.trackEntry(kindInsight, trackID, &insight)
	if err != nil || !ok {
		return nil, err
	}
	return &insight, nil
}

func (s *SQLiteStore) SetInsight(trackID string, insight *models.ArtistInsight) error {
	return s.setTrackEntry(kindInsight, trackID, insight)
}

func (s *SQLiteStore) ClearInsight(trackID string) error {
	return s.clearTrackEntry(kindInsight, trackID)
}

func (s *SQLiteStore) metaValue(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read meta entry: %w", err)
	}
	return value, nil
}

func (s *SQLiteStore) setMetaValue(key, value string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO meta (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write meta entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) clearMetaValue(key string) error {
	if _, err := s.db.Exec("DELETE FROM meta WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to clear meta entry: %w", err)
	}
	return nil
}

// Credential reads the stored bearer credential.
func (s *SQLiteStore) Credential() (string, error) {
	return s.metaValue(metaCredential)
}

func (s *SQLiteStore) SetCredential(credential string) error {
	return s.setMetaValue(metaCredential, credential)
}

func (s *SQLiteStore) ClearCredential() error {
	return s.clearMetaValue(metaCredential)
}

// Location reads the recorded result path.
func (s *SQLiteStore) Location() (string, error) {
	return s.metaValue(metaLocation)
}

// ReplaceLocation overwrites the recorded result path.
func (s *SQLiteStore) ReplaceLocation(path string) error {
	return s.setMetaValue(metaLocation, path)
}

func (s *SQLiteStore) ClearLocation() error {
	return s.clearMetaValue(metaLocation)
}

// Clear removes every cached entry: report, track entries, credential, location.
func (s *SQLiteStore) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin clear transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM report_cache",
		"DELETE FROM track_cache",
		"DELETE FROM meta",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	return tx.Commit()
}
