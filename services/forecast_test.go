package services

import (
	"context"
	"errors"
	"testing"

	"vehicle-forecast-api/models"
	"vehicle-forecast-api/regression"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForecastFixture(t *testing.T, recs ...models.HistoricalRecord) (*ForecastService, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(recs...)
	require.NoError(t, store.EnsureDataSource(context.Background(), models.DatabaseSource))
	return NewForecastService(store, NewDataSourceService(store)), store
}

func TestForecastService_PredictReferenceData(t *testing.T) {
	svc, _ := newForecastFixture(t, models.DefaultHistoricalData()...)

	res, err := svc.Predict(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, 2024, res.Year)
	assert.Equal(t, int64(4003959), res.Mobil)
	assert.Equal(t, int64(18638187), res.Motor)
	assert.Equal(t, int64(22642146), res.Total)
	assert.InDelta(t, 145991.3, res.Details.Mobil.Slope, 1e-6)
	assert.InDelta(t, 3128011.3, res.Details.Mobil.Intercept, 1e-6)
	assert.InDelta(t, 592845.6, res.Details.Motor.Slope, 1e-6)
	assert.InDelta(t, 15081113.4, res.Details.Motor.Intercept, 1e-6)
	assert.Equal(t, "y = 145991.30 × (tahun ke-6) + 3128011.30", res.Details.Mobil.Equation)
	assert.Equal(t, "y = 592845.60 × (tahun ke-6) + 15081113.40", res.Details.Motor.Equation)
}

func TestForecastService_NoData(t *testing.T) {
	svc, _ := newForecastFixture(t)

	_, err := svc.Predict(context.Background(), 2024)
	assert.ErrorIs(t, err, ErrNoHistoricalData)
}

func TestForecastService_SingleRecordIsComputeError(t *testing.T) {
	svc, _ := newForecastFixture(t, models.HistoricalRecord{Tahun: 2019, Mobil: 10, Motor: 20})

	_, err := svc.Predict(context.Background(), 2024)
	assert.ErrorIs(t, err, regression.ErrInsufficientData)
}

func TestForecastService_WrongSource(t *testing.T) {
	store := NewMemoryStore(models.DefaultHistoricalData()...)
	ctx := context.Background()
	require.NoError(t, store.EnsureDataSource(ctx, models.DatabaseSource))
	require.NoError(t, store.EnsureDataSource(ctx, "static"))
	require.NoError(t, store.ActivateDataSource(ctx, "static"))
	svc := NewForecastService(store, NewDataSourceService(store))

	_, err := svc.Predict(ctx, 2024)
	assert.ErrorIs(t, err, ErrWrongDataSource)
}

func TestForecastService_NoActiveSource(t *testing.T) {
	store := NewMemoryStore(models.DefaultHistoricalData()...)
	svc := NewForecastService(store, NewDataSourceService(store))

	_, err := svc.Predict(context.Background(), 2024)
	assert.ErrorIs(t, err, ErrWrongDataSource)
}

func TestForecastService_SeesNewRecordsImmediately(t *testing.T) {
	svc, store := newForecastFixture(t, models.DefaultHistoricalData()...)
	ctx := context.Background()

	before, err := svc.Predict(ctx, 2025)
	require.NoError(t, err)

	require.NoError(t, store.CreateRecord(ctx, &models.HistoricalRecord{Tahun: 2024, Mobil: 9000000, Motor: 30000000}))

	after, err := svc.Predict(ctx, 2025)
	require.NoError(t, err)
	assert.NotEqual(t, before.Details.Mobil.Slope, after.Details.Mobil.Slope)
	assert.Contains(t, after.Details.Mobil.Equation, "(tahun ke-7)")
}

func TestPredictFromRecords_UsesEarliestYearAsIndexOne(t *testing.T) {
	rows := []models.HistoricalRecord{
		{Tahun: 2001, Mobil: 10, Motor: 100},
		{Tahun: 2002, Mobil: 20, Motor: 110},
		{Tahun: 2003, Mobil: 30, Motor: 120},
	}

	res, err := PredictFromRecords(rows, 2001)
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.Mobil)
	assert.Equal(t, int64(100), res.Motor)
	assert.Equal(t, int64(110), res.Total)
	assert.Contains(t, res.Details.Mobil.Equation, "(tahun ke-1)")

	res, err = PredictFromRecords(rows, 1999)
	require.NoError(t, err)
	assert.Equal(t, int64(-10), res.Mobil)
	assert.Equal(t, int64(80), res.Motor)
	assert.Contains(t, res.Details.Motor.Equation, "(tahun ke--1)")
}

func TestPredictFromRecords_TotalRoundsRawSum(t *testing.T) {
	// Both series fit y = 1/3: each rounds to 0 but the raw sum rounds to 1.
	rows := []models.HistoricalRecord{
		{Tahun: 2000, Mobil: 0, Motor: 0},
		{Tahun: 2001, Mobil: 1, Motor: 1},
		{Tahun: 2002, Mobil: 0, Motor: 0},
	}
	res, err := PredictFromRecords(rows, 2003)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Mobil)
	assert.Equal(t, int64(0), res.Motor)
	assert.Equal(t, int64(1), res.Total)
}

type failingRecordStore struct {
	*MemoryStore
	err error
}

func (f failingRecordStore) ListRecords(context.Context) ([]models.HistoricalRecord, error) {
	return nil, f.err
}

func TestForecastService_StoreError(t *testing.T) {
	mem := NewMemoryStore()
	require.NoError(t, mem.EnsureDataSource(context.Background(), models.DatabaseSource))
	boom := errors.New("connection refused")
	svc := NewForecastService(failingRecordStore{MemoryStore: mem, err: boom}, NewDataSourceService(mem))

	_, err := svc.Predict(context.Background(), 2024)
	assert.ErrorIs(t, err, boom)
}
