package database

import (
	"log/slog"
	"time"

	"risk-assessor/internal/models"

	"github.com/m-mizutani/goerr/v2"
	"gorm.io/gorm"
)

// SchemaMigration records an applied schema version.
type SchemaMigration struct {
	Version   int    `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"size:200;not null"`
	AppliedAt time.Time
}

type migration struct {
	version int
	name    string
	up      func(tx *gorm.DB) error
}

// riskV1 is the risk table as first released, before attachments.
type riskV1 struct {
	ID               uint      `gorm:"primaryKey"`
	Likelihood       int       `gorm:"not null"`
	Impact           int       `gorm:"not null"`
	Severity         int       `gorm:"not null"`
	Frequency        int       `gorm:"not null"`
	Score            float64   `gorm:"not null"`
	Level            string    `gorm:"type:varchar(10);not null;index"`
	Color            string    `gorm:"size:10;not null"`
	LevelDescription string    `gorm:"size:255"`
	Mitigation       string    `gorm:"type:text"`
	Notes            string    `gorm:"type:text"`
	SubmittedAt      time.Time `gorm:"not null;index"`
}

func (riskV1) TableName() string { return "risk" }

// migrations must stay ordered by version; never edit an applied entry, append a new one.
var migrations = []migration{
	{
		version: 1,
		name:    "create users, audit_logs and risk tables",
		up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.User{}, &models.AuditLog{}, &riskV1{})
		},
	},
	{
		version: 2,
		name:    "add file_path column to risk table",
		up: func(tx *gorm.DB) error {
			if tx.Migrator().HasColumn(&models.Risk{}, "FilePath") {
				return nil
			}
			return tx.Migrator().AddColumn(&models.Risk{}, "FilePath")
		},
	},
}

// LatestVersion is the schema version this build expects.
func LatestVersion() int {
	return migrations[len(migrations)-1].version
}

// Migrate applies pending migrations, each in its own transaction, and
// returns the versions it applied.
func Migrate(db *gorm.DB) ([]int, error) {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return nil, goerr.Wrap(err, "failed to create schema_migrations table")
	}

	applied, err := AppliedVersions(db)
	if err != nil {
		return nil, err
	}
	done := make(map[int]struct{}, len(applied))
	for _, v := range applied {
		done[v] = struct{}{}
	}

	var ran []int
	for _, m := range migrations {
		if _, ok := done[m.version]; ok {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.up(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{
				Version:   m.version,
				Name:      m.name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return ran, goerr.Wrap(err, "failed to apply migration",
				goerr.V("version", m.version), goerr.V("name", m.name))
		}

		slog.Info("applied migration", "version", m.version, "name", m.name)
		ran = append(ran, m.version)
	}

	return ran, nil
}

func AppliedVersions(db *gorm.DB) ([]int, error) {
	var versions []int
	if err := db.Model(&SchemaMigration{}).Order("version asc").Pluck("version", &versions).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to read applied migrations")
	}
	return versions, nil
}
