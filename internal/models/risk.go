package models

import (
	"time"

	"risk-assessor/internal/risk"
)

// Risk is one stored assessment. Rows are append-only; FilePath was added in
// schema version 2 and stays NULL on older rows.
type Risk struct {
	ID uint `gorm:"primaryKey"`

	Likelihood int `gorm:"not null"`
	Impact     int `gorm:"not null"`
	Severity   int `gorm:"not null"`
	Frequency  int `gorm:"not null"`

	Score            float64   `gorm:"not null"`
	Level            risk.Band `gorm:"type:varchar(10);not null;index"`
	Color            string    `gorm:"size:10;not null"`
	LevelDescription string    `gorm:"size:255"`
	Mitigation       string    `gorm:"type:text"`

	Notes       string    `gorm:"type:text"` // free text from the submitter
	SubmittedAt time.Time `gorm:"not null;index"`
	FilePath    *string   `gorm:"size:200"`
}

func (Risk) TableName() string { return "risk" }

func NewRisk(a risk.Assessment, notes string, filePath *string, submittedAt time.Time) Risk {
	return Risk{
		Likelihood:       a.Likelihood,
		Impact:           a.Impact,
		Severity:         a.Severity,
		Frequency:        a.Frequency,
		Score:            a.Score,
		Level:            a.Band,
		Color:            a.Color,
		LevelDescription: a.Description,
		Mitigation:       a.Mitigation,
		Notes:            notes,
		SubmittedAt:      submittedAt,
		FilePath:         filePath,
	}
}

// Attachment returns the stored file name, or "" when there is none.
func (r Risk) Attachment() string {
	if r.FilePath == nil {
		return ""
	}
	return *r.FilePath
}
