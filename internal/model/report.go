package model

import "time"

// Report is a persisted income snapshot. Rows are only ever appended.
// Stock alerts are not stored; they are recomputed from the live catalog.
type Report struct {
	ReportID     uint      `json:"report_id" gorm:"primaryKey"`
	Month        string    `json:"month" gorm:"size:20;not null"`
	Income       float64   `json:"income" gorm:"not null"`
	MinThreshold int       `json:"min_threshold" gorm:"not null"`
	MaxThreshold int       `json:"max_threshold" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}
