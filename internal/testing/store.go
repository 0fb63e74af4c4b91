package testing

import (
	"sync"

	"github.com/tunetype/tunetype/internal/models"
)

// MemoryStore is an in-memory [cache.Store] for tests.
//
// It mirrors the durability semantics of the SQLite store (wholesale
// replacement, absent reads as nil) and counts writes so tests can assert
// the cache was, or was not, touched.
type MemoryStore struct {
	mu sync.Mutex

	report     *models.Report
	lyrics     map[string]*models.Lyrics
	insights   map[string]*models.ArtistInsight
	credential string
	location   string

	SetReportCalls   int
	ClearReportCalls int
	LocationCalls    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lyrics:   make(map[string]*models.Lyrics),
		insights: make(map[string]*models.ArtistInsight),
	}
}

func (m *MemoryStore) Report() (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.report == nil {
		return nil, nil
	}
	copied := *m.report
	return &copied, nil
}

func (m *MemoryStore) SetReport(report *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *report
	m.report = &copied
	m.SetReportCalls++
	return nil
}

func (m *MemoryStore) ClearReport() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.report = nil
	m.ClearReportCalls++
	return nil
}

func (m *MemoryStore) Lyrics(trackID string) (*models.Lyrics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lyrics[trackID], nil
}

func (m *MemoryStore) SetLyrics(trackID string, lyrics *models.Lyrics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lyrics[trackID] = lyrics
	return nil
}

func (m *MemoryStore) ClearLyrics(trackID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lyrics, trackID)
	return nil
}

func (m *MemoryStore) Insight(trackID string) (*models.ArtistInsight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insights[trackID], nil
}

func (m *MemoryStore) SetInsight(trackID string, insight *models.ArtistInsight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insights[trackID] = insight
	return nil
}

func (m *MemoryStore) ClearInsight(trackID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.insights, trackID)
	return nil
}

func (m *MemoryStore) Credential() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential, nil
}

func (m *MemoryStore) SetCredential(credential string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = credential
	return nil
}

func (m *MemoryStore) ClearCredential() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = ""
	return nil
}

func (m *MemoryStore) Location() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.location, nil
}

func (m *MemoryStore) ReplaceLocation(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.location = path
	m.LocationCalls++
	return nil
}

func (m *MemoryStore) ClearLocation() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.location = ""
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.report = nil
	m.lyrics = make(map[string]*models.Lyrics)
	m.insights = make(map[string]*models.ArtistInsight)
	m.credential = ""
	m.location = ""
	return nil
}
