package services

import (
	"context"
	"errors"
	"fmt"

	"vehicle-forecast-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordStore persists historical records keyed by year.
type RecordStore interface {
	ListRecords(ctx context.Context) ([]models.HistoricalRecord, error)
	GetRecord(ctx context.Context, tahun int) (*models.HistoricalRecord, error)
	CreateRecord(ctx context.Context, rec *models.HistoricalRecord) error
	UpdateRecord(ctx context.Context, tahun int, mobil, motor int64) (*models.HistoricalRecord, error)
	DeleteRecord(ctx context.Context, tahun int) error
}

// DataSourceStore persists the data source selection.
type DataSourceStore interface {
	ListDataSources(ctx context.Context) ([]models.DataSource, error)
	ActiveDataSource(ctx context.Context) (*models.DataSource, error)
	ActivateDataSource(ctx context.Context, name string) error
	EnsureDataSource(ctx context.Context, name string) error
}

const pgUniqueViolation = "23505"

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&models.HistoricalRecord{}, &models.DataSource{})
}

// SeedRecords inserts recs only when the table is empty.
func (s *GormStore) SeedRecords(ctx context.Context, recs []models.HistoricalRecord) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.HistoricalRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count historical data: %w", err)
	}
	if count > 0 || len(recs) == 0 {
		return 0, nil
	}
	if err := s.db.WithContext(ctx).Create(&recs).Error; err != nil {
		return 0, fmt.Errorf("seed historical data: %w", err)
	}
	return len(recs), nil
}

func (s *GormStore) ListRecords(ctx context.Context) ([]models.HistoricalRecord, error) {
	var rows []models.HistoricalRecord
	if err := s.db.WithContext(ctx).Order("tahun ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list historical data: %w", err)
	}
	return rows, nil
}

func (s *GormStore) GetRecord(ctx context.Context, tahun int) (*models.HistoricalRecord, error) {
	var rec models.HistoricalRecord
	err := s.db.WithContext(ctx).Where("tahun = ?", tahun).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get historical data %d: %w", tahun, err)
	}
	return &rec, nil
}

// CreateRecord checks for an existing year before inserting; a unique
// violation from a concurrent insert maps to the same DuplicateYearError.
func (s *GormStore) CreateRecord(ctx context.Context, rec *models.HistoricalRecord) error {
	_, err := s.GetRecord(ctx, rec.Tahun)
	switch {
	case err == nil:
		return &DuplicateYearError{Year: rec.Tahun}
	case !errors.Is(err, ErrNotFound):
		return err
	}

	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return &DuplicateYearError{Year: rec.Tahun}
		}
		return fmt.Errorf("create historical data %d: %w", rec.Tahun, err)
	}
	return nil
}

func (s *GormStore) UpdateRecord(ctx context.Context, tahun int, mobil, motor int64) (*models.HistoricalRecord, error) {
	res := s.db.WithContext(ctx).
		Model(&models.HistoricalRecord{}).
		Where("tahun = ?", tahun).
		Updates(map[string]interface{}{"mobil": mobil, "motor": motor})
	if res.Error != nil {
		return nil, fmt.Errorf("update historical data %d: %w", tahun, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetRecord(ctx, tahun)
}

func (s *GormStore) DeleteRecord(ctx context.Context, tahun int) error {
	res := s.db.WithContext(ctx).Where("tahun = ?", tahun).Delete(&models.HistoricalRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete historical data %d: %w", tahun, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListDataSources(ctx context.Context) ([]models.DataSource, error) {
	var rows []models.DataSource
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list data sources: %w", err)
	}
	return rows, nil
}

func (s *GormStore) ActiveDataSource(ctx context.Context) (*models.DataSource, error) {
	var src models.DataSource
	err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").First(&src).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveSource
	}
	if err != nil {
		return nil, fmt.Errorf("get active data source: %w", err)
	}
	return &src, nil
}

// ActivateDataSource deactivates every source and activates name in one
// transaction, so readers never see zero active sources.
func (s *GormStore) ActivateDataSource(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src models.DataSource
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ?", name).First(&src).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDataSourceNotFound
		}
		if err != nil {
			return fmt.Errorf("find data source %q: %w", name, err)
		}

		if err := tx.Model(&models.DataSource{}).
			Where("is_active = ? AND id <> ?", true, src.ID).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("deactivate data sources: %w", err)
		}
		if err := tx.Model(&src).Update("is_active", true).Error; err != nil {
			return fmt.Errorf("activate data source %q: %w", name, err)
		}
		return nil
	})
}

// EnsureDataSource upserts name and activates it when no source is active.
func (s *GormStore) EnsureDataSource(ctx context.Context, name string) error {
	src := models.DataSource{Name: name}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&src).Error
	if err != nil {
		return fmt.Errorf("upsert data source %q: %w", name, err)
	}

	if _, err := s.ActiveDataSource(ctx); errors.Is(err, ErrNoActiveSource) {
		return s.ActivateDataSource(ctx, name)
	} else if err != nil {
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
