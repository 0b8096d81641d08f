package models

import "time"

const (
	AuditEntityRisk   = "risk"
	AuditEntityExport = "export"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID uint
	User   User

	Entity   string `gorm:"size:50;not null"` // "risk", "export"
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "create", "csv", "pdf"
	Details  string `gorm:"type:text"`
}
