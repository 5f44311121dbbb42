package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"vehicle-forecast-api/models"
)

// MemoryStore keeps records and data sources in process memory. It is used
// for local runs without PostgreSQL and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[int]models.HistoricalRecord
	sources []models.DataSource
}

func NewMemoryStore(recs ...models.HistoricalRecord) *MemoryStore {
	s := &MemoryStore{records: make(map[int]models.HistoricalRecord, len(recs))}
	for _, r := range recs {
		s.records[r.Tahun] = r
	}
	return s
}

func (s *MemoryStore) ListRecords(_ context.Context) ([]models.HistoricalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]models.HistoricalRecord, 0, len(s.records))
	for _, r := range s.records {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Tahun < rows[j].Tahun })
	return rows, nil
}

func (s *MemoryStore) GetRecord(_ context.Context, tahun int) (*models.HistoricalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[tahun]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemoryStore) CreateRecord(_ context.Context, rec *models.HistoricalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.Tahun]; ok {
		return &DuplicateYearError{Year: rec.Tahun}
	}
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	s.records[rec.Tahun] = *rec
	return nil
}

func (s *MemoryStore) UpdateRecord(_ context.Context, tahun int, mobil, motor int64) (*models.HistoricalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[tahun]
	if !ok {
		return nil, ErrNotFound
	}
	r.Mobil, r.Motor, r.UpdatedAt = mobil, motor, time.Now().UTC()
	s.records[tahun] = r
	return &r, nil
}

func (s *MemoryStore) DeleteRecord(_ context.Context, tahun int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[tahun]; !ok {
		return ErrNotFound
	}
	delete(s.records, tahun)
	return nil
}

func (s *MemoryStore) ListDataSources(_ context.Context) ([]models.DataSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DataSource, len(s.sources))
	copy(out, s.sources)
	return out, nil
}

func (s *MemoryStore) ActiveDataSource(_ context.Context) (*models.DataSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, src := range s.sources {
		if src.IsActive {
			return &src, nil
		}
	}
	return nil, ErrNoActiveSource
}

func (s *MemoryStore) ActivateDataSource(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activateLocked(name)
}

func (s *MemoryStore) EnsureDataSource(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	anyActive := false
	for _, src := range s.sources {
		found = found || src.Name == name
		anyActive = anyActive || src.IsActive
	}
	if !found {
		s.sources = append(s.sources, models.DataSource{ID: uint(len(s.sources) + 1), Name: name})
	}
	if !anyActive {
		return s.activateLocked(name)
	}
	return nil
}

func (s *MemoryStore) activateLocked(name string) error {
	idx := -1
	for i, src := range s.sources {
		if src.Name == name {
			idx = i
		}
	}
	if idx < 0 {
		return ErrDataSourceNotFound
	}
	for i := range s.sources {
		s.sources[i].IsActive = i == idx
	}
	return nil
}
