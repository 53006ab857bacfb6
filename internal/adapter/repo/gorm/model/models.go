// Package model holds the persistence rows for the Postgres adapter. Columns
// mirror the SQL files under migrations/.
package model

import "time"

type NPCState struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	NPCID      string `gorm:"column:npc_id;uniqueIndex"`
	Archetype  string
	Backstory  string
	Quirks     []byte `gorm:"type:jsonb"`
	Happiness  int32
	Anger      int32
	Fear       int32
	Trust      int32
	Excitement int32
	Sadness    int32
	Disgust    int32
	Surprise   int32
	Version    int64
	UpdatedAt  time.Time
}

func (NPCState) TableName() string { return "npc_states" }

type EmotionTransition struct {
	ID         string `gorm:"primaryKey"`
	NPCID      string `gorm:"column:npc_id;index"`
	PlayerID   string `gorm:"column:player_id"`
	FromState  []byte `gorm:"type:jsonb"`
	ToState    []byte `gorm:"type:jsonb"`
	Event      string
	Intensity  int32
	Context    string
	OccurredAt time.Time `gorm:"index"`
}

func (EmotionTransition) TableName() string { return "emotion_transitions" }

type PlayerReputation struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	PlayerID        string `gorm:"column:player_id;uniqueIndex"`
	GlobalScore     int32
	PerNPC          []byte `gorm:"column:per_npc;type:jsonb"`
	Trustworthiness int32
	Aggression      int32
	Generosity      int32
	Reliability     int32
	Respect         int32
	Interactions    int64
	UpdatedAt       time.Time
}

func (PlayerReputation) TableName() string { return "player_reputations" }

type GameAction struct {
	ID          string `gorm:"primaryKey"`
	SessionID   string `gorm:"column:session_id;index"`
	PlayerID    string `gorm:"column:player_id;index"`
	NPCID       string `gorm:"column:npc_id"`
	Type        string
	OccurredAt  time.Time `gorm:"index"`
	Params      []byte    `gorm:"type:jsonb"`
	Result      []byte    `gorm:"type:jsonb"`
	Success     bool
	ExecutionMS int64 `gorm:"column:execution_ms"`
	Cost        float64
}

func (GameAction) TableName() string { return "game_actions" }

type GameSession struct {
	SessionID string `gorm:"column:session_id;primaryKey"`
	PlayerID  string `gorm:"column:player_id;index"`
	StartedAt time.Time
	EndedAt   *time.Time
}

func (GameSession) TableName() string { return "game_sessions" }

type ExploitDetection struct {
	ID          string `gorm:"primaryKey"`
	Pattern     string
	Severity    string
	PlayerID    string `gorm:"column:player_id;index"`
	NPCID       string `gorm:"column:npc_id"`
	Description string
	Evidence    []byte    `gorm:"type:jsonb"`
	DetectedAt  time.Time `gorm:"index"`
	Status      string
}

func (ExploitDetection) TableName() string { return "exploit_detections" }

type PlayerCredential struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	PlayerAddress string `gorm:"column:player_address;uniqueIndex"`
	KeySalt       []byte
	KeyHash       []byte
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PlayerCredential) TableName() string { return "player_credentials" }

type NPCMemory struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	NPCID           string `gorm:"column:npc_id;index"`
	RelatedAddress  string `gorm:"column:related_address"`
	MemoryType      string
	Content         string
	EmotionalWeight int32
	Tags            []byte `gorm:"type:jsonb"`
	IsPositive      bool
	CreatedAt       time.Time
}

func (NPCMemory) TableName() string { return "npc_memories" }
