// Package reputation tracks a player's standing: a global score, a score per
// NPC relationship, and five derived behavioral traits.
package reputation

import "time"

const (
	GlobalMin = -1000
	GlobalMax = 1000
	PerNPCMin = -500
	PerNPCMax = 500
	TraitMin  = 0
	TraitMax  = 100

	// TraitNeutral is the starting value for every derived trait.
	TraitNeutral = 50

	// traitScaleDivisor converts a reputation impact into a trait delta.
	traitScaleDivisor = 10
)

// Traits are the five derived behavioral scores, each in [0,100].
type Traits struct {
	Trustworthiness int `json:"trustworthiness"`
	Aggression      int `json:"aggression"`
	Generosity      int `json:"generosity"`
	Reliability     int `json:"reliability"`
	Respect         int `json:"respect"`
}

// PlayerReputation is one player's full standing. Created lazily on first
// interaction; mutated only through ApplyImpact.
type PlayerReputation struct {
	PlayerID     string         `json:"player_id"`
	GlobalScore  int            `json:"global_score"`
	PerNPC       map[string]int `json:"per_npc"`
	Traits       Traits         `json:"traits"`
	Interactions int64          `json:"interactions"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// New returns a fresh reputation for a player with neutral traits.
func New(playerID string) PlayerReputation {
	return PlayerReputation{
		PlayerID: playerID,
		PerNPC:   map[string]int{},
		Traits: Traits{
			Trustworthiness: TraitNeutral,
			Aggression:      TraitNeutral,
			Generosity:      TraitNeutral,
			Reliability:     TraitNeutral,
			Respect:         TraitNeutral,
		},
	}
}

// ApplyImpact mutates the reputation for one interaction with npcID.
// Global and per-NPC scores shift by impact within their bounds; traits shift
// by |impact|/10: positive impact raises trustworthiness, respect, and
// reliability, negative impact raises aggression and lowers trustworthiness
// and respect. The interaction counter and timestamp update on every call.
func (r *PlayerReputation) ApplyImpact(npcID string, impact int, now time.Time) {
	r.GlobalScore = clampInt(r.GlobalScore+impact, GlobalMin, GlobalMax)
	if r.PerNPC == nil {
		r.PerNPC = map[string]int{}
	}
	r.PerNPC[npcID] = clampInt(r.PerNPC[npcID]+impact, PerNPCMin, PerNPCMax)

	scale := impact / traitScaleDivisor
	if scale < 0 {
		scale = -scale
	}
	if impact > 0 {
		r.Traits.Trustworthiness = clampInt(r.Traits.Trustworthiness+scale, TraitMin, TraitMax)
		r.Traits.Respect = clampInt(r.Traits.Respect+scale, TraitMin, TraitMax)
		r.Traits.Reliability = clampInt(r.Traits.Reliability+scale, TraitMin, TraitMax)
	} else if impact < 0 {
		r.Traits.Aggression = clampInt(r.Traits.Aggression+scale, TraitMin, TraitMax)
		r.Traits.Trustworthiness = clampInt(r.Traits.Trustworthiness-scale, TraitMin, TraitMax)
		r.Traits.Respect = clampInt(r.Traits.Respect-scale, TraitMin, TraitMax)
	}

	r.Interactions++
	r.UpdatedAt = now
}

// ScoreFor returns the relationship score with one NPC (0 when none exists).
func (r PlayerReputation) ScoreFor(npcID string) int {
	return r.PerNPC[npcID]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
