package interaction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"npcmind/internal/app/ports"
	"npcmind/internal/app/shared/keylock"
	"npcmind/internal/domain/emotion"
)

func newTestUseCase(stateRepo *stubStateRepo, repRepo *stubReputationRepo, trRepo *stubTransitionRepo) UseCase {
	return UseCase{
		TxManager:   stubTxManager{},
		StateRepo:   stateRepo,
		Reputations: repRepo,
		Transitions: trRepo,
		Catalog:     emotion.DefaultCatalog(),
		Locks:       keylock.New(),
		Now:         func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func seedNPC(repo *stubStateRepo, npcID string) {
	repo.byNPC[npcID] = ports.NPCStateRecord{
		NPCID:     npcID,
		Archetype: "neutral",
		State:     emotion.NeutralState(),
		Version:   1,
	}
}

func TestProcessInteractionUnknownNPC(t *testing.T) {
	uc := newTestUseCase(newStubStateRepo(), newStubReputationRepo(), &stubTransitionRepo{})
	_, err := uc.ProcessInteraction(context.Background(), Request{
		NPCID: "ghost", PlayerID: "p1", ActionName: "gift_received",
		Context: map[string]any{"value": 10},
	})
	if !errors.Is(err, ports.ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}

func TestProcessInteractionGiftScenario(t *testing.T) {
	stateRepo := newStubStateRepo()
	repRepo := newStubReputationRepo()
	trRepo := &stubTransitionRepo{}
	seedNPC(stateRepo, "npc-1")
	uc := newTestUseCase(stateRepo, repRepo, trRepo)

	out, err := uc.ProcessInteraction(context.Background(), Request{
		NPCID: "npc-1", PlayerID: "p1", ActionName: "gift_received",
		Context: map[string]any{"value": 10},
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if out.State.Happiness != 70 || out.State.Trust != 65 || out.State.Excitement != 60 {
		t.Fatalf("state = %+v, want happiness 70 / trust 65 / excitement 60", out.State)
	}
	if out.ReputationDelta != 30 {
		t.Fatalf("reputation delta = %d, want 30", out.ReputationDelta)
	}
	if out.Transition == nil || out.Transition.Intensity != 30 {
		t.Fatalf("transition = %+v, want intensity 30", out.Transition)
	}

	rec := stateRepo.byNPC["npc-1"]
	if rec.Version != 2 {
		t.Fatalf("state version = %d, want 2", rec.Version)
	}
	rep := repRepo.byPlayer["p1"]
	if rep.GlobalScore != 30 || rep.ScoreFor("npc-1") != 30 {
		t.Fatalf("reputation not persisted: %+v", rep)
	}
	if len(trRepo.entries) != 1 {
		t.Fatalf("transitions appended = %d, want 1", len(trRepo.entries))
	}
}

func TestProcessInteractionNoMatchIsIdempotentNoOp(t *testing.T) {
	stateRepo := newStubStateRepo()
	trRepo := &stubTransitionRepo{}
	seedNPC(stateRepo, "npc-1")
	uc := newTestUseCase(stateRepo, newStubReputationRepo(), trRepo)

	req := Request{NPCID: "npc-1", PlayerID: "p1", ActionName: "unmapped_event"}
	for i := 0; i < 2; i++ {
		out, err := uc.ProcessInteraction(context.Background(), req)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if out.State != emotion.NeutralState() {
			t.Fatalf("call %d mutated state: %+v", i, out.State)
		}
		if out.ReputationDelta != 0 || out.Transition != nil {
			t.Fatalf("call %d produced side output: %+v", i, out)
		}
	}
	if stateRepo.byNPC["npc-1"].Version != 1 {
		t.Fatal("no-op interaction must not write state")
	}
	if len(trRepo.entries) != 0 {
		t.Fatal("no-op interaction must not append a transition")
	}
}

func TestSignificantTransitionWritesMemoryAndNotifies(t *testing.T) {
	stateRepo := newStubStateRepo()
	seedNPC(stateRepo, "npc-1")
	mem := &stubMemory{}
	notifier := &stubNotifier{}
	uc := newTestUseCase(stateRepo, newStubReputationRepo(), &stubTransitionRepo{})
	uc.Memory = mem
	uc.Notifier = notifier

	// +30 impact stays below the significance threshold.
	_, err := uc.ProcessInteraction(context.Background(), Request{
		NPCID: "npc-1", PlayerID: "p1", ActionName: "gift_received",
		Context: map[string]any{"value": 10},
	})
	if err != nil {
		t.Fatalf("plain gift: %v", err)
	}
	if len(mem.records) != 0 || len(notifier.calls) != 0 {
		t.Fatal("intensity 30 must not trigger the significance hooks")
	}

	// +60 impact crosses it.
	_, err = uc.ProcessInteraction(context.Background(), Request{
		NPCID: "npc-1", PlayerID: "p1", ActionName: "gift_received",
		Context: map[string]any{"value": 500},
	})
	if err != nil {
		t.Fatalf("lavish gift: %v", err)
	}
	if len(mem.records) != 1 {
		t.Fatalf("memory writes = %d, want 1", len(mem.records))
	}
	if mem.records[0].EmotionalWeight != 60 || !mem.records[0].IsPositive {
		t.Fatalf("memory record = %+v", mem.records[0])
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("notifier calls = %d, want 1", len(notifier.calls))
	}
}

func TestNotifierFailureDoesNotFailInteraction(t *testing.T) {
	stateRepo := newStubStateRepo()
	seedNPC(stateRepo, "npc-1")
	uc := newTestUseCase(stateRepo, newStubReputationRepo(), &stubTransitionRepo{})
	uc.Memory = &stubMemory{fail: errors.New("memory down")}
	uc.Notifier = &stubNotifier{fail: errors.New("chain down")}

	out, err := uc.ProcessInteraction(context.Background(), Request{
		NPCID: "npc-1", PlayerID: "p1", ActionName: "gift_received",
		Context: map[string]any{"value": 500},
	})
	if err != nil {
		t.Fatalf("hook failures must be swallowed, got %v", err)
	}
	if out.ReputationDelta != 60 {
		t.Fatalf("delta = %d, want 60", out.ReputationDelta)
	}
}

func TestApplyDecay(t *testing.T) {
	stateRepo := newStubStateRepo()
	stateRepo.byNPC["npc-1"] = ports.NPCStateRecord{
		NPCID:   "npc-1",
		State:   emotion.State{Happiness: 90, Anger: 10, Fear: 50, Trust: 50, Excitement: 50, Sadness: 50, Disgust: 50, Surprise: 50},
		Version: 1,
	}
	uc := newTestUseCase(stateRepo, newStubReputationRepo(), &stubTransitionRepo{})

	out, err := uc.ApplyDecay(context.Background(), "npc-1", 2)
	if err != nil {
		t.Fatalf("decay: %v", err)
	}
	if out.Happiness != 82 || out.Anger != 18 {
		t.Fatalf("decayed state = %+v", out)
	}
	if stateRepo.byNPC["npc-1"].Version != 2 {
		t.Fatal("decay must persist a new version")
	}
}

func TestApplyDecayNeutralStateSkipsWrite(t *testing.T) {
	stateRepo := newStubStateRepo()
	seedNPC(stateRepo, "npc-1")
	uc := newTestUseCase(stateRepo, newStubReputationRepo(), &stubTransitionRepo{})

	out, err := uc.ApplyDecay(context.Background(), "npc-1", 100)
	if err != nil {
		t.Fatalf("decay: %v", err)
	}
	if out != emotion.NeutralState() {
		t.Fatalf("neutral state must be a decay fixed point: %+v", out)
	}
	if stateRepo.byNPC["npc-1"].Version != 1 {
		t.Fatal("unchanged state must not be rewritten")
	}
}

func TestInitializeNPCConflict(t *testing.T) {
	stateRepo := newStubStateRepo()
	uc := newTestUseCase(stateRepo, newStubReputationRepo(), &stubTransitionRepo{})

	rec, err := uc.InitializeNPC(context.Background(), InitRequest{
		NPCID: "npc-1", Archetype: "merchant", Quirks: []string{"cheerful"},
	})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if rec.State.Happiness != 70 {
		t.Fatalf("merchant+cheerful happiness = %d, want 70", rec.State.Happiness)
	}

	_, err = uc.InitializeNPC(context.Background(), InitRequest{NPCID: "npc-1", Archetype: "guard"})
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict on re-init, got %v", err)
	}
}

func TestConcurrentInteractionsLoseNoUpdates(t *testing.T) {
	stateRepo := newStubStateRepo()
	repRepo := newStubReputationRepo()
	seedNPC(stateRepo, "npc-1")
	uc := newTestUseCase(stateRepo, repRepo, &stubTransitionRepo{})
	// Small deltas keep every dimension away from the clamp bounds so a lost
	// update cannot hide behind saturation.
	uc.Catalog = []emotion.Trigger{{
		Event:            "nudge",
		Deltas:           map[emotion.Dimension]int{emotion.DimHappiness: 1},
		ReputationImpact: 2,
	}}

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ProcessInteraction(context.Background(), Request{
				NPCID: "npc-1", PlayerID: "p1", ActionName: "nudge",
			})
			if err != nil {
				t.Errorf("concurrent interaction failed: %v", err)
			}
		}()
	}
	wg.Wait()

	rec := stateRepo.byNPC["npc-1"]
	if rec.State.Happiness != 50+n {
		t.Fatalf("happiness = %d, want %d (update lost)", rec.State.Happiness, 50+n)
	}
	if rec.Version != 1+n {
		t.Fatalf("version = %d, want %d", rec.Version, 1+n)
	}
	rep := repRepo.byPlayer["p1"]
	if rep.GlobalScore != 2*n || rep.Interactions != n {
		t.Fatalf("reputation = %+v, want global %d over %d interactions", rep, 2*n, n)
	}
}

func TestMoodHistoryUnknownNPC(t *testing.T) {
	uc := newTestUseCase(newStubStateRepo(), newStubReputationRepo(), &stubTransitionRepo{})
	_, err := uc.MoodHistory(context.Background(), "ghost", 10)
	if !errors.Is(err, ports.ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}
