package models

import "time"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeEvent is published whenever a historical record is written.
type ChangeEvent struct {
	TS     time.Time         `json:"ts"`
	Action string            `json:"action"`
	Tahun  int               `json:"tahun"`
	Record *HistoricalRecord `json:"record,omitempty"`
}
