package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"npcmind/internal/adapter/repo/gorm/model"
	"npcmind/internal/app/ports"
	"npcmind/internal/domain/emotion"

	"gorm.io/gorm"
)

type NPCStateRepo struct {
	db *gorm.DB
}

func NewNPCStateRepo(db *gorm.DB) NPCStateRepo {
	return NPCStateRepo{db: db}
}

func (r NPCStateRepo) GetByNPCID(ctx context.Context, npcID string) (ports.NPCStateRecord, error) {
	var m model.NPCState
	if err := getDBFromCtx(ctx, r.db).Where("npc_id = ?", npcID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.NPCStateRecord{}, ports.ErrNotFound
		}
		return ports.NPCStateRecord{}, err
	}

	var quirks []string
	if len(m.Quirks) > 0 {
		_ = json.Unmarshal(m.Quirks, &quirks)
	}
	return ports.NPCStateRecord{
		NPCID:     m.NPCID,
		Archetype: m.Archetype,
		Backstory: m.Backstory,
		Quirks:    quirks,
		State: emotion.State{
			Happiness:  int(m.Happiness),
			Anger:      int(m.Anger),
			Fear:       int(m.Fear),
			Trust:      int(m.Trust),
			Excitement: int(m.Excitement),
			Sadness:    int(m.Sadness),
			Disgust:    int(m.Disgust),
			Surprise:   int(m.Surprise),
		},
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r NPCStateRepo) SaveWithVersion(ctx context.Context, rec ports.NPCStateRecord, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	quirks, _ := json.Marshal(rec.Quirks)

	if expectedVersion == 0 {
		m := model.NPCState{
			NPCID:      rec.NPCID,
			Archetype:  rec.Archetype,
			Backstory:  rec.Backstory,
			Quirks:     quirks,
			Happiness:  int32(rec.State.Happiness),
			Anger:      int32(rec.State.Anger),
			Fear:       int32(rec.State.Fear),
			Trust:      int32(rec.State.Trust),
			Excitement: int32(rec.State.Excitement),
			Sadness:    int32(rec.State.Sadness),
			Disgust:    int32(rec.State.Disgust),
			Surprise:   int32(rec.State.Surprise),
			Version:    rec.Version,
			UpdatedAt:  rec.UpdatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"happiness":  int32(rec.State.Happiness),
		"anger":      int32(rec.State.Anger),
		"fear":       int32(rec.State.Fear),
		"trust":      int32(rec.State.Trust),
		"excitement": int32(rec.State.Excitement),
		"sadness":    int32(rec.State.Sadness),
		"disgust":    int32(rec.State.Disgust),
		"surprise":   int32(rec.State.Surprise),
		"version":    rec.Version,
		"updated_at": rec.UpdatedAt,
	}

	res := db.Model(&model.NPCState{}).
		Where("npc_id = ? AND version = ?", rec.NPCID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
