package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vehicle-forecast-api/metrics"
	"vehicle-forecast-api/models"
)

// HistoricalService is the CRUD surface over historical records. Writes
// invalidate the cached list and publish a change event.
type HistoricalService struct {
	store RecordStore
	cache *CacheService
}

func NewHistoricalService(store RecordStore, cache *CacheService) *HistoricalService {
	return &HistoricalService{store: store, cache: cache}
}

// List returns records ordered by year, served from cache when possible.
func (s *HistoricalService) List(ctx context.Context) ([]models.HistoricalRecord, error) {
	if rows, ok := s.cache.CachedRecords(ctx); ok {
		return rows, nil
	}
	rows, err := s.store.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.StoreRecords(ctx, rows)
	return rows, nil
}

func (s *HistoricalService) Create(ctx context.Context, rec models.HistoricalRecord) (*models.HistoricalRecord, error) {
	if err := ValidateRecord(rec.Tahun, rec.Mobil, rec.Motor); err != nil {
		return nil, err
	}
	if err := s.store.CreateRecord(ctx, &rec); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, models.ActionCreated, rec.Tahun, &rec)
	return &rec, nil
}

func (s *HistoricalService) Update(ctx context.Context, tahun int, mobil, motor int64) (*models.HistoricalRecord, error) {
	if err := ValidateRecord(tahun, mobil, motor); err != nil {
		return nil, err
	}
	rec, err := s.store.UpdateRecord(ctx, tahun, mobil, motor)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, models.ActionUpdated, tahun, rec)
	return rec, nil
}

func (s *HistoricalService) Delete(ctx context.Context, tahun int) error {
	if err := s.store.DeleteRecord(ctx, tahun); err != nil {
		return err
	}
	s.afterWrite(ctx, models.ActionDeleted, tahun, nil)
	return nil
}

// Upsert updates the year when it exists and creates it otherwise.
func (s *HistoricalService) Upsert(ctx context.Context, rec models.HistoricalRecord) (*models.HistoricalRecord, error) {
	updated, err := s.Update(ctx, rec.Tahun, rec.Mobil, rec.Motor)
	if !errors.Is(err, ErrNotFound) {
		return updated, err
	}
	created, err := s.Create(ctx, rec)
	var dup *DuplicateYearError
	if errors.As(err, &dup) {
		// created concurrently between the two calls
		return s.Update(ctx, rec.Tahun, rec.Mobil, rec.Motor)
	}
	return created, err
}

func (s *HistoricalService) afterWrite(ctx context.Context, action string, tahun int, rec *models.HistoricalRecord) {
	metrics.RecordMutations.WithLabelValues(action).Inc()
	s.cache.InvalidateRecords(ctx)
	s.cache.PublishChange(ctx, models.ChangeEvent{
		TS:     time.Now().UTC(),
		Action: action,
		Tahun:  tahun,
		Record: rec,
	})
}

// ValidateRecord rejects non-positive years and negative counts.
func ValidateRecord(tahun int, mobil, motor int64) error {
	if tahun <= 0 {
		return fmt.Errorf("%w: tahun must be a positive year", ErrInvalidRecord)
	}
	if mobil < 0 || motor < 0 {
		return fmt.Errorf("%w: mobil and motor must not be negative", ErrInvalidRecord)
	}
	return nil
}
