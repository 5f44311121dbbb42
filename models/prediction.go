package models

// SeriesDetail describes the line fitted to one vehicle series.
type SeriesDetail struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Equation  string  `json:"equation"`
}

type PredictionDetails struct {
	Mobil SeriesDetail `json:"mobil"`
	Motor SeriesDetail `json:"motor"`
}

// PredictionResult is returned directly to the caller and never persisted.
type PredictionResult struct {
	Year    int               `json:"year"`
	Mobil   int64             `json:"mobil"`
	Motor   int64             `json:"motor"`
	Total   int64             `json:"total"`
	Details PredictionDetails `json:"details"`
}
