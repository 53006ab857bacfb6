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

type ActionLogRepo struct {
	db *gorm.DB
}

func NewActionLogRepo(db *gorm.DB) ActionLogRepo {
	return ActionLogRepo{db: db}
}

func (r ActionLogRepo) Append(ctx context.Context, action analytics.GameAction) error {
	params, _ := json.Marshal(action.Params)
	result, _ := json.Marshal(action.Result)
	row := model.GameAction{
		ID:          action.ID,
		SessionID:   action.SessionID,
		PlayerID:    action.PlayerID,
		NPCID:       action.NPCID,
		Type:        action.Type,
		OccurredAt:  action.OccurredAt,
		Params:      params,
		Result:      result,
		Success:     action.Success,
		ExecutionMS: action.ExecutionMS,
		Cost:        action.Cost,
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

func (r ActionLogRepo) ListByPlayerID(ctx context.Context, playerID string) ([]analytics.GameAction, error) {
	rows := []model.GameAction{}
	err := getDBFromCtx(ctx, r.db).
		Where(&model.GameAction{PlayerID: playerID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "occurred_at"}}},
		}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromActionRows(rows), nil
}

func (r ActionLogRepo) ListBetween(ctx context.Context, from, to time.Time) ([]analytics.GameAction, error) {
	query := getDBFromCtx(ctx, r.db).Model(&model.GameAction{})
	if !from.IsZero() {
		query = query.Where("occurred_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("occurred_at < ?", to)
	}
	rows := []model.GameAction{}
	err := query.Clauses(clause.OrderBy{
		Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "occurred_at"}}},
	}).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromActionRows(rows), nil
}

func (r ActionLogRepo) PruneBefore(ctx context.Context, horizon time.Time) (int64, error) {
	res := getDBFromCtx(ctx, r.db).
		Where("occurred_at < ?", horizon).
		Delete(&model.GameAction{})
	return res.RowsAffected, res.Error
}

func fromActionRows(rows []model.GameAction) []analytics.GameAction {
	out := make([]analytics.GameAction, 0, len(rows))
	for _, row := range rows {
		var params, result map[string]any
		if len(row.Params) > 0 {
			_ = json.Unmarshal(row.Params, &params)
		}
		if len(row.Result) > 0 {
			_ = json.Unmarshal(row.Result, &result)
		}
		out = append(out, analytics.GameAction{
			ID:          row.ID,
			SessionID:   row.SessionID,
			PlayerID:    row.PlayerID,
			NPCID:       row.NPCID,
			Type:        row.Type,
			OccurredAt:  row.OccurredAt,
			Params:      params,
			Result:      result,
			Success:     row.Success,
			ExecutionMS: row.ExecutionMS,
			Cost:        row.Cost,
		})
	}
	return out
}
