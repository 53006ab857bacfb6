package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"npcmind/internal/adapter/repo/gorm/model"
	"npcmind/internal/app/ports"
	"npcmind/internal/domain/reputation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReputationRepo struct {
	db *gorm.DB
}

func NewReputationRepo(db *gorm.DB) ReputationRepo {
	return ReputationRepo{db: db}
}

func (r ReputationRepo) GetByPlayerID(ctx context.Context, playerID string) (reputation.PlayerReputation, error) {
	var m model.PlayerReputation
	if err := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reputation.PlayerReputation{}, ports.ErrNotFound
		}
		return reputation.PlayerReputation{}, err
	}

	perNPC := map[string]int{}
	if len(m.PerNPC) > 0 {
		_ = json.Unmarshal(m.PerNPC, &perNPC)
	}
	return reputation.PlayerReputation{
		PlayerID:    m.PlayerID,
		GlobalScore: int(m.GlobalScore),
		PerNPC:      perNPC,
		Traits: reputation.Traits{
			Trustworthiness: int(m.Trustworthiness),
			Aggression:      int(m.Aggression),
			Generosity:      int(m.Generosity),
			Reliability:     int(m.Reliability),
			Respect:         int(m.Respect),
		},
		Interactions: m.Interactions,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func (r ReputationRepo) Save(ctx context.Context, rep reputation.PlayerReputation) error {
	perNPC, _ := json.Marshal(rep.PerNPC)
	m := model.PlayerReputation{
		PlayerID:        rep.PlayerID,
		GlobalScore:     int32(rep.GlobalScore),
		PerNPC:          perNPC,
		Trustworthiness: int32(rep.Traits.Trustworthiness),
		Aggression:      int32(rep.Traits.Aggression),
		Generosity:      int32(rep.Traits.Generosity),
		Reliability:     int32(rep.Traits.Reliability),
		Respect:         int32(rep.Traits.Respect),
		Interactions:    rep.Interactions,
		UpdatedAt:       rep.UpdatedAt,
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "player_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"global_score", "per_npc", "trustworthiness", "aggression",
			"generosity", "reliability", "respect", "interactions", "updated_at",
		}),
	}).Create(&m).Error
}
