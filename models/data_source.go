package models

// DatabaseSource is the only source the read paths accept.
const DatabaseSource = "database"

type DataSource struct {
	ID       uint   `gorm:"column:id;primaryKey" json:"id"`
	Name     string `gorm:"column:name;uniqueIndex;not null" json:"name"`
	IsActive bool   `gorm:"column:is_active;not null;default:false" json:"isActive"`
}

func (DataSource) TableName() string { return "data_sources" }
