package gormrepo

import (
	"context"
	"encoding/json"
	"time"

	"npcmind/internal/adapter/repo/gorm/model"
	"npcmind/internal/app/ports"

	"gorm.io/gorm"
)

type NPCMemoryStore struct {
	db *gorm.DB
}

func NewNPCMemoryStore(db *gorm.DB) NPCMemoryStore {
	return NPCMemoryStore{db: db}
}

func (s NPCMemoryStore) AddMemory(ctx context.Context, record ports.MemoryRecord) error {
	tags, _ := json.Marshal(record.Tags)
	row := model.NPCMemory{
		NPCID:           record.NPCID,
		RelatedAddress:  record.RelatedAddress,
		MemoryType:      record.MemoryType,
		Content:         record.Content,
		EmotionalWeight: int32(record.EmotionalWeight),
		Tags:            tags,
		IsPositive:      record.IsPositive,
		CreatedAt:       time.Now().UTC(),
	}
	return getDBFromCtx(ctx, s.db).Create(&row).Error
}
