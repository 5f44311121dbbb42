package models

import "time"

// HistoricalRecord is one year of registered vehicle counts. Tahun is the
// natural key.
type HistoricalRecord struct {
	Tahun     int       `gorm:"column:tahun;primaryKey;autoIncrement:false" json:"tahun"`
	Mobil     int64     `gorm:"column:mobil;not null;check:mobil >= 0" json:"mobil"`
	Motor     int64     `gorm:"column:motor;not null;check:motor >= 0" json:"motor"`
	CreatedAt time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"-"`
}

func (HistoricalRecord) TableName() string { return "historical_data" }

// DefaultHistoricalData is seeded into an empty table on startup.
func DefaultHistoricalData() []HistoricalRecord {
	return []HistoricalRecord{
		{Tahun: 2019, Mobil: 3310426, Motor: 15868191},
		{Tahun: 2020, Mobil: 3365467, Motor: 16141380},
		{Tahun: 2021, Mobil: 3544492, Motor: 16711638},
		{Tahun: 2022, Mobil: 3772850, Motor: 17347866},
		{Tahun: 2023, Mobil: 3836691, Motor: 18229176},
	}
}
