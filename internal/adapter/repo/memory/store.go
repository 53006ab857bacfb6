// Package memory provides in-process repositories backing tests and
// DSN-less demo runs. Each repository method locks the shared store on its
// own; the tx manager provides no atomicity across repositories.
package memory

import (
	"sync"

	"npcmind/internal/app/ports"
	"npcmind/internal/domain/analytics"
	"npcmind/internal/domain/reputation"

	"npcmind/internal/domain/emotion"
)

type Store struct {
	mu          sync.RWMutex
	states      map[string]ports.NPCStateRecord
	reputations map[string]reputation.PlayerReputation
	transitions []emotion.Transition
	actions     []analytics.GameAction
	sessions    map[string]analytics.SessionRecord
	exploits    []analytics.ExploitDetection
	credentials map[string]ports.PlayerCredentialRecord
	memories    []ports.MemoryRecord
}

func NewStore() *Store {
	return &Store{
		states:      map[string]ports.NPCStateRecord{},
		reputations: map[string]reputation.PlayerReputation{},
		sessions:    map[string]analytics.SessionRecord{},
		credentials: map[string]ports.PlayerCredentialRecord{},
	}
}

// SeedState installs an NPC record directly, bypassing version checks.
func (s *Store) SeedState(rec ports.NPCStateRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[rec.NPCID] = rec
}

// Memories returns a copy of every memory record written so far.
func (s *Store) Memories() []ports.MemoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.MemoryRecord, len(s.memories))
	copy(out, s.memories)
	return out
}
