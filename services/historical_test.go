package services

import (
	"context"
	"errors"
	"testing"

	"vehicle-forecast-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoricalService(recs ...models.HistoricalRecord) (*HistoricalService, *MemoryStore) {
	store := NewMemoryStore(recs...)
	return NewHistoricalService(store, NewCacheServiceWithClient(nil)), store
}

func TestHistoricalService_ListOrderedByYear(t *testing.T) {
	svc, _ := newHistoricalService(
		models.HistoricalRecord{Tahun: 2021, Mobil: 3, Motor: 30},
		models.HistoricalRecord{Tahun: 2019, Mobil: 1, Motor: 10},
		models.HistoricalRecord{Tahun: 2020, Mobil: 2, Motor: 20},
	)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []int{2019, 2020, 2021}, []int{rows[0].Tahun, rows[1].Tahun, rows[2].Tahun})
}

func TestHistoricalService_CreateRejectsDuplicateYear(t *testing.T) {
	svc, _ := newHistoricalService(models.DefaultHistoricalData()...)

	_, err := svc.Create(context.Background(), models.HistoricalRecord{Tahun: 2020, Mobil: 1, Motor: 1})

	var dup *DuplicateYearError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "data for year 2020 already exists", err.Error())
}

func TestHistoricalService_CreateVisibleImmediately(t *testing.T) {
	svc, _ := newHistoricalService(models.DefaultHistoricalData()...)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.HistoricalRecord{Tahun: 2024, Mobil: 4000000, Motor: 19000000})
	require.NoError(t, err)
	assert.Equal(t, 2024, created.Tahun)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, 2024, rows[5].Tahun)
	assert.Equal(t, int64(4000000), rows[5].Mobil)
}

func TestHistoricalService_CreateValidation(t *testing.T) {
	svc, _ := newHistoricalService()
	tests := []models.HistoricalRecord{
		{Tahun: 0, Mobil: 1, Motor: 1},
		{Tahun: -2020, Mobil: 1, Motor: 1},
		{Tahun: 2020, Mobil: -1, Motor: 1},
		{Tahun: 2020, Mobil: 1, Motor: -1},
	}
	for _, rec := range tests {
		_, err := svc.Create(context.Background(), rec)
		assert.ErrorIs(t, err, ErrInvalidRecord, "record %+v", rec)
	}
}

func TestHistoricalService_UpdateAndDelete(t *testing.T) {
	svc, store := newHistoricalService(models.DefaultHistoricalData()...)
	ctx := context.Background()

	updated, err := svc.Update(ctx, 2021, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Mobil)
	assert.Equal(t, int64(2), updated.Motor)

	_, err = svc.Update(ctx, 1999, 1, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, 2021))
	_, err = store.GetRecord(ctx, 2021)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 2021), ErrNotFound)
}

func TestHistoricalService_Upsert(t *testing.T) {
	svc, store := newHistoricalService(models.DefaultHistoricalData()...)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, models.HistoricalRecord{Tahun: 2023, Mobil: 7, Motor: 8})
	require.NoError(t, err)
	rec, err := store.GetRecord(ctx, 2023)
	require.NoError(t, err)
	assert.Equal(t, int64(7), rec.Mobil)

	_, err = svc.Upsert(ctx, models.HistoricalRecord{Tahun: 2030, Mobil: 9, Motor: 10})
	require.NoError(t, err)
	rec, err = store.GetRecord(ctx, 2030)
	require.NoError(t, err)
	assert.Equal(t, int64(10), rec.Motor)

	_, err = svc.Upsert(ctx, models.HistoricalRecord{Tahun: 2031, Mobil: -1, Motor: 10})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestValidateRecord(t *testing.T) {
	assert.NoError(t, ValidateRecord(2019, 0, 0))
	assert.ErrorIs(t, ValidateRecord(0, 0, 0), ErrInvalidRecord)
	assert.ErrorIs(t, ValidateRecord(2019, -5, 0), ErrInvalidRecord)
}
