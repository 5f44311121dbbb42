package services

import (
	"context"
	"errors"
	"strings"

	"vehicle-forecast-api/models"
)

// DataSourceService selects which backing source answers reads.
type DataSourceService struct {
	store DataSourceStore
}

func NewDataSourceService(store DataSourceStore) *DataSourceService {
	return &DataSourceService{store: store}
}

func (s *DataSourceService) List(ctx context.Context) ([]models.DataSource, error) {
	return s.store.ListDataSources(ctx)
}

func (s *DataSourceService) Active(ctx context.Context) (string, error) {
	src, err := s.store.ActiveDataSource(ctx)
	if err != nil {
		return "", err
	}
	return src.Name, nil
}

// RequireDatabase returns ErrWrongDataSource unless the database source is
// active. Having no active source counts as the wrong source.
func (s *DataSourceService) RequireDatabase(ctx context.Context) error {
	name, err := s.Active(ctx)
	if errors.Is(err, ErrNoActiveSource) {
		return ErrWrongDataSource
	}
	if err != nil {
		return err
	}
	if name != models.DatabaseSource {
		return ErrWrongDataSource
	}
	return nil
}

// Switch activates name. A blank name fails with ErrInvalidSourceName and an
// unknown one with ErrDataSourceNotFound; either way the current selection is
// left as it was.
func (s *DataSourceService) Switch(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidSourceName
	}
	if err := s.store.ActivateDataSource(ctx, name); err != nil {
		return "", err
	}
	return name, nil
}

func (s *DataSourceService) Ensure(ctx context.Context, name string) error {
	return s.store.EnsureDataSource(ctx, name)
}
