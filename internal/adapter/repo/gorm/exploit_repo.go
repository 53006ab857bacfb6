package gormrepo

import (
	"context"
	"encoding/json"
	"time"

	"npcmind/internal/adapter/repo/gorm/model"
	"npcmind/internal/domain/analytics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExploitRepo struct {
	db *gorm.DB
}

func NewExploitRepo(db *gorm.DB) ExploitRepo {
	return ExploitRepo{db: db}
}

func (r ExploitRepo) Save(ctx context.Context, detection analytics.ExploitDetection) error {
	evidence, _ := json.Marshal(detection.Evidence)
	row := model.ExploitDetection{
		ID:          detection.ID,
		Pattern:     detection.Pattern,
		Severity:    string(detection.Severity),
		PlayerID:    detection.PlayerID,
		NPCID:       detection.NPCID,
		Description: detection.Description,
		Evidence:    evidence,
		DetectedAt:  detection.DetectedAt,
		Status:      string(detection.Status),
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

func (r ExploitRepo) ListBetween(ctx context.Context, from, to time.Time) ([]analytics.ExploitDetection, error) {
	query := getDBFromCtx(ctx, r.db).Model(&model.ExploitDetection{})
	if !from.IsZero() {
		query = query.Where("detected_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("detected_at < ?", to)
	}
	rows := []model.ExploitDetection{}
	err := query.Clauses(clause.OrderBy{
		Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "detected_at"}}},
	}).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]analytics.ExploitDetection, 0, len(rows))
	for _, row := range rows {
		var evidence analytics.Evidence
		if len(row.Evidence) > 0 {
			_ = json.Unmarshal(row.Evidence, &evidence)
		}
		out = append(out, analytics.ExploitDetection{
			ID:          row.ID,
			Pattern:     row.Pattern,
			Severity:    analytics.Severity(row.Severity),
			PlayerID:    row.PlayerID,
			NPCID:       row.NPCID,
			Description: row.Description,
			Evidence:    evidence,
			DetectedAt:  row.DetectedAt,
			Status:      analytics.DetectionStatus(row.Status),
		})
	}
	return out, nil
}
