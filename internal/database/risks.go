package database

import (
	"context"
	"errors"
	"time"

	"risk-assessor/internal/models"
	"risk-assessor/internal/risk"

	"github.com/m-mizutani/goerr/v2"
	"gorm.io/gorm"
)

var ErrRiskNotFound = errors.New("risk not found")

// RiskFilter narrows risk queries. Zero values mean "no filter".
type RiskFilter struct {
	Band  risk.Band
	Since time.Time
	Limit int
}

func (f RiskFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Band != "" {
		q = q.Where("level = ?", f.Band)
	}
	if !f.Since.IsZero() {
		q = q.Where("submitted_at >= ?", f.Since)
	}
	return q
}

func CreateRisk(ctx context.Context, r *models.Risk) error {
	if err := DB.WithContext(ctx).Create(r).Error; err != nil {
		return goerr.Wrap(err, "failed to save risk assessment", goerr.V("band", r.Level))
	}
	return nil
}

func GetRisk(ctx context.Context, id uint) (*models.Risk, error) {
	var r models.Risk
	err := DB.WithContext(ctx).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, goerr.Wrap(ErrRiskNotFound, "risk not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load risk", goerr.V("id", id))
	}
	return &r, nil
}

// FindRisks returns matching risks, newest first.
func FindRisks(ctx context.Context, f RiskFilter) ([]models.Risk, error) {
	q := f.apply(DB.WithContext(ctx).Model(&models.Risk{})).
		Order("submitted_at desc, id desc")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var risks []models.Risk
	if err := q.Find(&risks).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to list risks", goerr.V("band", f.Band), goerr.V("since", f.Since))
	}
	return risks, nil
}

// CountByBand counts matching risks per band; every band is present in the result.
func CountByBand(ctx context.Context, f RiskFilter) (map[risk.Band]int64, error) {
	var rows []struct {
		Level string
		Total int64
	}
	err := f.apply(DB.WithContext(ctx).Model(&models.Risk{})).
		Select("level, count(*) as total").
		Group("level").
		Scan(&rows).Error
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count risks by band")
	}

	counts := make(map[risk.Band]int64, len(risk.Bands()))
	for _, b := range risk.Bands() {
		counts[b] = 0
	}
	for _, row := range rows {
		counts[risk.Band(row.Level)] = row.Total
	}
	return counts, nil
}

// AttachmentExists reports whether a stored risk references the file name.
func AttachmentExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&models.Risk{}).
		Where("file_path = ?", name).
		Count(&count).Error; err != nil {
		return false, goerr.Wrap(err, "failed to look up attachment", goerr.V("name", name))
	}
	return count > 0, nil
}
