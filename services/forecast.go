package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vehicle-forecast-api/metrics"
	"vehicle-forecast-api/models"
	"vehicle-forecast-api/regression"
)

// ForecastService fits both vehicle series on every request. Nothing about a
// fit is kept between calls.
type ForecastService struct {
	records RecordStore
	sources *DataSourceService
}

func NewForecastService(records RecordStore, sources *DataSourceService) *ForecastService {
	return &ForecastService{records: records, sources: sources}
}

func (s *ForecastService) Predict(ctx context.Context, year int) (*models.PredictionResult, error) {
	start := time.Now()
	defer func() {
		metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	}()

	if err := s.sources.RequireDatabase(ctx); err != nil {
		if errors.Is(err, ErrWrongDataSource) {
			metrics.PredictionsFailed.WithLabelValues(metrics.ReasonWrongSource).Inc()
		} else {
			metrics.PredictionsFailed.WithLabelValues(metrics.ReasonStore).Inc()
		}
		return nil, err
	}

	rows, err := s.records.ListRecords(ctx)
	if err != nil {
		metrics.PredictionsFailed.WithLabelValues(metrics.ReasonStore).Inc()
		return nil, err
	}
	if len(rows) == 0 {
		metrics.PredictionsFailed.WithLabelValues(metrics.ReasonNoData).Inc()
		return nil, ErrNoHistoricalData
	}

	result, err := PredictFromRecords(rows, year)
	if err != nil {
		metrics.PredictionsFailed.WithLabelValues(metrics.ReasonCompute).Inc()
		return nil, err
	}
	metrics.PredictionsServed.Inc()
	return result, nil
}

// PredictFromRecords fits the mobil and motor series of rows, which must be
// ordered by year, and evaluates both at year.
func PredictFromRecords(rows []models.HistoricalRecord, year int) (*models.PredictionResult, error) {
	if len(rows) == 0 {
		return nil, ErrNoHistoricalData
	}

	mobilSeries := make([]float64, len(rows))
	motorSeries := make([]float64, len(rows))
	for i, r := range rows {
		mobilSeries[i] = float64(r.Mobil)
		motorSeries[i] = float64(r.Motor)
	}

	mobilLine, err := regression.Fit(mobilSeries)
	if err != nil {
		return nil, fmt.Errorf("fit mobil series: %w", err)
	}
	motorLine, err := regression.Fit(motorSeries)
	if err != nil {
		return nil, fmt.Errorf("fit motor series: %w", err)
	}

	earliest := rows[0].Tahun
	mobil := regression.Predict(mobilLine, year, earliest)
	motor := regression.Predict(motorLine, year, earliest)

	return &models.PredictionResult{
		Year:  year,
		Mobil: mobil.Rounded(),
		Motor: motor.Rounded(),
		Total: regression.RoundedTotal(mobil, motor),
		Details: models.PredictionDetails{
			Mobil: seriesDetail(mobil),
			Motor: seriesDetail(motor),
		},
	}, nil
}

func seriesDetail(f regression.Forecast) models.SeriesDetail {
	return models.SeriesDetail{
		Slope:     f.Line.Slope,
		Intercept: f.Line.Intercept,
		Equation:  f.Equation,
	}
}
