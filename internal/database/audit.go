package database

import (
	"log/slog"

	"risk-assessor/internal/models"
)

// CreateAuditLog records an action; failures are logged, never returned.
func CreateAuditLog(userID uint, entity string, entityID uint, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := DB.Create(&record).Error; err != nil {
		slog.Warn("failed to write audit log", "entity", entity, "action", action, "error", err)
	}
}

func RecentAuditLogs(limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := DB.
		Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
