//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type credentials struct {
	address string
	key     string
}

func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(os.Getenv("E2E_BASE_URL"), "/")
	if baseURL == "" {
		t.Skip("E2E_BASE_URL is required for remote e2e")
	}
	npcID := envOr("E2E_NPC_ID", "demo-npc")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("task requires player headers", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/task", credentials{}, map[string]any{})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})

	status, registerBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/player/register", credentials{}, nil)
	if status != http.StatusCreated {
		t.Fatalf("register status=%d body=%s", status, string(registerBody))
	}
	var registered struct {
		PlayerAddress string `json:"player_address"`
		PlayerKey     string `json:"player_key"`
	}
	if err := json.Unmarshal(registerBody, &registered); err != nil {
		t.Fatalf("unmarshal register response: %v body=%s", err, string(registerBody))
	}
	creds := credentials{address: registered.PlayerAddress, key: registered.PlayerKey}

	t.Run("task state reputation ops", func(t *testing.T) {
		taskReq := map[string]any{
			"type":   "give_gift",
			"npc_id": npcID,
			"params": map[string]any{"value": 50},
		}
		status, taskBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/task", creds, taskReq)
		if status != http.StatusOK {
			t.Fatalf("task status=%d body=%s", status, string(taskBody))
		}
		var taskResp map[string]any
		if err := json.Unmarshal(taskBody, &taskResp); err != nil {
			t.Fatalf("unmarshal task response: %v body=%s", err, string(taskBody))
		}
		if taskResp["status"] != "completed" {
			t.Fatalf("task did not complete: %v", taskResp)
		}

		status, stateBody, err := doRequest(client, http.MethodGet, baseURL+"/api/npc/"+npcID+"/state", creds, nil)
		if err != nil {
			t.Fatalf("state request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("state status=%d body=%s", status, string(stateBody))
		}
		var stateResp map[string]any
		if err := json.Unmarshal(stateBody, &stateResp); err != nil {
			t.Fatalf("unmarshal state: %v body=%s", err, string(stateBody))
		}
		if asMap(stateResp["state"])["happiness"] == nil {
			t.Fatalf("expected happiness in state response, got=%v", stateResp)
		}

		status, moodsBody, err := doRequest(client, http.MethodGet, baseURL+"/api/npc/"+npcID+"/moods?limit=20", creds, nil)
		if err != nil {
			t.Fatalf("moods request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("moods status=%d body=%s", status, string(moodsBody))
		}
		var moods map[string]any
		if err := json.Unmarshal(moodsBody, &moods); err != nil {
			t.Fatalf("unmarshal moods: %v body=%s", err, string(moodsBody))
		}
		if len(asSlice(moods["transitions"])) == 0 {
			t.Fatalf("expected transitions after a matched task")
		}

		status, repBody, err := doRequest(client, http.MethodGet, baseURL+"/api/player/reputation", creds, nil)
		if err != nil {
			t.Fatalf("reputation request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("reputation status=%d body=%s", status, string(repBody))
		}
		var rep map[string]any
		if err := json.Unmarshal(repBody, &rep); err != nil {
			t.Fatalf("unmarshal reputation: %v body=%s", err, string(repBody))
		}
		if rep["interactions"] == nil {
			t.Fatalf("expected interactions in reputation response, got=%v", rep)
		}

		status, kpiBody, err := doRequest(client, http.MethodGet, baseURL+"/ops/kpi", credentials{}, nil)
		if err != nil {
			t.Fatalf("kpi request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(kpiBody))
		}
		var kpi map[string]any
		if err := json.Unmarshal(kpiBody, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(kpiBody))
		}
		if _, ok := kpi["task_total"]; !ok {
			t.Fatalf("expected task_total in kpi response")
		}

		status, fairBody, err := doRequest(client, http.MethodGet, baseURL+"/ops/fairness", credentials{}, nil)
		if err != nil {
			t.Fatalf("fairness request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("fairness status=%d body=%s", status, string(fairBody))
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, creds credentials, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, creds, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, creds credentials, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if creds.address != "" {
			req.Header.Set("X-Player-Address", creds.address)
			req.Header.Set("X-Player-Key", creds.key)
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
