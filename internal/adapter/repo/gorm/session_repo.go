package gormrepo

import (
	"context"
	"time"

	"npcmind/internal/adapter/repo/gorm/model"
	"npcmind/internal/domain/analytics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return SessionRepo{db: db}
}

func (r SessionRepo) EnsureActive(ctx context.Context, sessionID, playerID string, startedAt time.Time) error {
	m := model.GameSession{
		SessionID: sessionID,
		PlayerID:  playerID,
		StartedAt: startedAt,
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error
}

func (r SessionRepo) Close(ctx context.Context, sessionID string, endedAt time.Time) error {
	res := getDBFromCtx(ctx, r.db).
		Model(&model.GameSession{}).
		Where("session_id = ? AND ended_at IS NULL", sessionID).
		Update("ended_at", endedAt)
	return res.Error
}

func (r SessionRepo) ListBetween(ctx context.Context, from, to time.Time) ([]analytics.SessionRecord, error) {
	query := getDBFromCtx(ctx, r.db).Model(&model.GameSession{})
	if !from.IsZero() {
		query = query.Where("started_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("started_at < ?", to)
	}
	rows := []model.GameSession{}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]analytics.SessionRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, analytics.SessionRecord{
			ID:        row.SessionID,
			PlayerID:  row.PlayerID,
			StartedAt: row.StartedAt,
			EndedAt:   row.EndedAt,
		})
	}
	return out, nil
}
