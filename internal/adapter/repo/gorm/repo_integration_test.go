package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"npcmind/internal/app/ports"
	"npcmind/internal/domain/emotion"
	"npcmind/internal/domain/reputation"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("NPCMIND_DB_DSN")
	if dsn == "" {
		t.Skip("NPCMIND_DB_DSN is required for integration test")
	}
	return dsn
}

func TestNPCStateRepo_RoundTripAndVersioning(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	npcID := "it-state-roundtrip"
	ctx := context.Background()
	_ = db.Exec("DELETE FROM npc_states WHERE npc_id = ?", npcID).Error

	repo := NewNPCStateRepo(db)
	seed := ports.NPCStateRecord{
		NPCID:     npcID,
		Archetype: "merchant",
		Quirks:    []string{"cheerful"},
		State:     emotion.NewState("merchant", []string{"cheerful"}),
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.SaveWithVersion(ctx, seed, 0); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetByNPCID(ctx, npcID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != seed.State {
		t.Fatalf("state round trip mismatch: %+v vs %+v", got.State, seed.State)
	}
	if len(got.Quirks) != 1 || got.Quirks[0] != "cheerful" {
		t.Fatalf("quirks round trip mismatch: %v", got.Quirks)
	}

	seed.Version = 2
	seed.State.Happiness = 90
	if err := repo.SaveWithVersion(ctx, seed, 1); err != nil {
		t.Fatalf("versioned update: %v", err)
	}
	if err := repo.SaveWithVersion(ctx, seed, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("stale version must conflict, got %v", err)
	}
}

func TestReputationRepo_Upsert(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	playerID := "it-rep-upsert"
	ctx := context.Background()
	_ = db.Exec("DELETE FROM player_reputations WHERE player_id = ?", playerID).Error

	repo := NewReputationRepo(db)
	rep := reputation.New(playerID)
	rep.ApplyImpact("npc-1", 30, time.Now().UTC())
	if err := repo.Save(ctx, rep); err != nil {
		t.Fatalf("save: %v", err)
	}
	rep.ApplyImpact("npc-1", -50, time.Now().UTC())
	if err := repo.Save(ctx, rep); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.GetByPlayerID(ctx, playerID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Interactions != 2 {
		t.Fatalf("interactions = %d, want 2", got.Interactions)
	}
	if got.PerNPC["npc-1"] != rep.PerNPC["npc-1"] {
		t.Fatalf("per-NPC score mismatch: %d vs %d", got.PerNPC["npc-1"], rep.PerNPC["npc-1"])
	}
}

func TestTransitionRepo_AppendListPrune(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	npcID := "it-transitions"
	ctx := context.Background()
	_ = db.Exec("DELETE FROM emotion_transitions WHERE npc_id = ?", npcID).Error

	repo := NewTransitionRepo(db)
	base := time.Now().UTC().Add(-48 * time.Hour)
	for i := 0; i < 3; i++ {
		err := repo.Append(ctx, emotion.Transition{
			ID:         npcID + "-" + string(rune('a'+i)),
			NPCID:      npcID,
			PlayerID:   "0xabc",
			From:       emotion.NeutralState(),
			To:         emotion.NeutralState().WithDeltas(map[emotion.Dimension]int{emotion.DimHappiness: 10 * i}),
			Event:      "helped",
			Intensity:  15,
			OccurredAt: base.Add(time.Duration(i) * 12 * time.Hour),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	listed, err := repo.ListByNPCID(ctx, npcID, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].OccurredAt.Before(listed[1].OccurredAt) {
		t.Fatalf("list must be newest first and limited: %+v", listed)
	}

	dropped, err := repo.PruneBefore(ctx, base.Add(13*time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if dropped != 2 {
		t.Fatalf("pruned %d, want 2", dropped)
	}
}
