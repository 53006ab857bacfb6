package gormrepo

import (
	"context"
	"encoding/json"
	"time"

	"npcmind/internal/adapter/repo/gorm/model"
	"npcmind/internal/domain/emotion"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransitionRepo struct {
	db *gorm.DB
}

func NewTransitionRepo(db *gorm.DB) TransitionRepo {
	return TransitionRepo{db: db}
}

func (r TransitionRepo) Append(ctx context.Context, tr emotion.Transition) error {
	from, _ := json.Marshal(tr.From)
	to, _ := json.Marshal(tr.To)
	row := model.EmotionTransition{
		ID:         tr.ID,
		NPCID:      tr.NPCID,
		PlayerID:   tr.PlayerID,
		FromState:  from,
		ToState:    to,
		Event:      tr.Event,
		Intensity:  int32(tr.Intensity),
		Context:    tr.Context,
		OccurredAt: tr.OccurredAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

func (r TransitionRepo) ListByNPCID(ctx context.Context, npcID string, limit int) ([]emotion.Transition, error) {
	rows := []model.EmotionTransition{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.EmotionTransition{NPCID: npcID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "occurred_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]emotion.Transition, 0, len(rows))
	for _, row := range rows {
		var from, to emotion.State
		_ = json.Unmarshal(row.FromState, &from)
		_ = json.Unmarshal(row.ToState, &to)
		out = append(out, emotion.Transition{
			ID:         row.ID,
			NPCID:      row.NPCID,
			PlayerID:   row.PlayerID,
			From:       from,
			To:         to,
			Event:      row.Event,
			Intensity:  int(row.Intensity),
			Context:    row.Context,
			OccurredAt: row.OccurredAt,
		})
	}
	return out, nil
}

func (r TransitionRepo) PruneBefore(ctx context.Context, horizon time.Time) (int64, error) {
	res := getDBFromCtx(ctx, r.db).
		Where("occurred_at < ?", horizon).
		Delete(&model.EmotionTransition{})
	return res.RowsAffected, res.Error
}
