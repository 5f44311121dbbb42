package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrNoHistoricalData   = errors.New("no historical data available")
	ErrWrongDataSource    = errors.New("data source is not set to database")
	ErrNoActiveSource     = errors.New("no active data source")
	ErrDataSourceNotFound = errors.New("data source not found")
	ErrInvalidSourceName  = errors.New("sourceName is required")
	ErrInvalidRecord      = errors.New("invalid historical record")
)

// DuplicateYearError is returned when creating a record for a year that
// already has one.
type DuplicateYearError struct {
	Year int
}

func (e *DuplicateYearError) Error() string {
	return fmt.Sprintf("data for year %d already exists", e.Year)
}
