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

func TestRemoteAPI_ProgressionFlow(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	sessionID := envOr("E2E_SESSION_ID", "e2e-"+time.Now().UTC().Format("20060102150405"))
	token := os.Getenv("E2E_TOKEN")
	client := &http.Client{Timeout: 20 * time.Second}
	auth := requestAuth{sessionID: sessionID, token: token}

	t.Run("game routes require a session", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/api/game/state", requestAuth{}, nil)
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d body=%s", status, string(body))
		}
	})

	t.Run("public catalog data", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/api/data/monster-types", requestAuth{}, nil)
		if status != http.StatusOK {
			t.Fatalf("monster types status=%d body=%s", status, string(body))
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal monster types: %v body=%s", err, string(body))
		}
		if len(asMap(resp["monsterTypes"])) == 0 {
			t.Fatalf("expected monster types, got %v", resp)
		}
	})

	t.Run("initialize unlock gain reset", func(t *testing.T) {
		_, initBody := mustJSON(t, client, http.MethodGet, baseURL+"/api/game/initialize", auth, nil)
		var init map[string]any
		if err := json.Unmarshal(initBody, &init); err != nil {
			t.Fatalf("unmarshal initialize: %v body=%s", err, string(initBody))
		}
		if init["success"] != true {
			t.Fatalf("initialize failed: %v", init)
		}

		_, unlockBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/unlock-species", auth, map[string]any{"speciesName": "Undead"})
		var unlock map[string]any
		if err := json.Unmarshal(unlockBody, &unlock); err != nil {
			t.Fatalf("unmarshal unlock: %v body=%s", err, string(unlockBody))
		}
		if unlock["success"] != true && unlock["code"] != "AlreadyUnlocked" {
			t.Fatalf("unexpected unlock response: %v", unlock)
		}

		_, gainBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/gain-experience", auth, map[string]any{"monsterName": "Skeleton", "experience": 500})
		var gain map[string]any
		if err := json.Unmarshal(gainBody, &gain); err != nil {
			t.Fatalf("unmarshal gain: %v body=%s", err, string(gainBody))
		}
		if gain["success"] != true {
			t.Fatalf("gain experience failed: %v", gain)
		}

		status, resetBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/reset", auth, map[string]any{})
		if status != http.StatusOK {
			t.Fatalf("reset status=%d body=%s", status, string(resetBody))
		}
		var reset map[string]any
		if err := json.Unmarshal(resetBody, &reset); err != nil {
			t.Fatalf("unmarshal reset: %v body=%s", err, string(resetBody))
		}
		if len(asSlice(asMap(reset["game"])["unlockedMonsterSpecies"])) != 0 {
			t.Fatalf("expected no species after reset, got %v", reset["game"])
		}

		status, kpiBody := mustJSON(t, client, http.MethodGet, baseURL+"/ops/kpi", requestAuth{}, nil)
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(kpiBody))
		}
		var kpi map[string]any
		if err := json.Unmarshal(kpiBody, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(kpiBody))
		}
		if _, ok := kpi["command_total"]; !ok {
			t.Fatalf("expected command_total in kpi response")
		}
	})
}

type requestAuth struct {
	sessionID string
	token     string
}

func mustJSON(t *testing.T, client *http.Client, method, url string, auth requestAuth, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, auth, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, auth requestAuth, body map[string]any) (int, []byte, error) {
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
		if auth.token != "" {
			req.Header.Set("Authorization", "Bearer "+auth.token)
		} else if auth.sessionID != "" {
			req.Header.Set("X-Session-ID", auth.sessionID)
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
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}
