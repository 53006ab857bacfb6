package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"npcmind/internal/domain/emotion"
)

func TestNotifyTransitionPostsJSON(t *testing.T) {
	var got emotion.Transition
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr := emotion.Transition{
		ID:         "tr-1",
		NPCID:      "npc-1",
		PlayerID:   "0xabc",
		Event:      "betrayed",
		Intensity:  60,
		OccurredAt: time.Unix(1700000000, 0).UTC(),
	}
	if err := NewNotifier(srv.URL).NotifyTransition(context.Background(), tr); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if got.ID != "tr-1" || got.Event != "betrayed" || got.Intensity != 60 {
		t.Fatalf("delivered transition mismatch: %+v", got)
	}
}

func TestNotifyTransitionErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewNotifier(srv.URL).NotifyTransition(context.Background(), emotion.Transition{ID: "tr-1"})
	if err == nil {
		t.Fatal("expected an error on 500")
	}
}
