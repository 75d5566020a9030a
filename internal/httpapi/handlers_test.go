package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Gabrielb-Webdev/smash-ban-server/internal/catalog"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/engine"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/hub"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := zap.NewNop()
	h := hub.NewHub(ctx, logger)
	rules := engine.StandardRuleset(catalog.StarterStageIDs(), catalog.CounterpickStageIDs())

	srv := httptest.NewServer(SetupRoutes(h, rules, logger))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeSession(t *testing.T, resp *http.Response) engine.Session {
	t.Helper()
	defer resp.Body.Close()
	var out sessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Session
}

func TestCreateAndGetSession(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/sessions/weekly-1", map[string]string{
		"player1": "Gabi", "player2": "Ikki", "format": "BO3",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeSession(t, resp)
	require.Equal(t, "weekly-1", created.ID)
	require.Equal(t, engine.PhaseRPS, created.Phase)

	resp = doJSON(t, http.MethodGet, srv.URL+"/sessions/weekly-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeSession(t, resp)
	require.Equal(t, "Gabi", got.Player1.Name)
	require.Equal(t, engine.FormatBO3, got.Format)
}

func TestCreateSession_GeneratesID(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/sessions", map[string]string{
		"player1": "Gabi", "player2": "Ikki", "format": "BO5",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeSession(t, resp)
	require.NotEmpty(t, created.ID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/sessions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateSession_InvalidFormat(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/sessions", map[string]string{
		"player1": "Gabi", "player2": "Ikki", "format": "BO7",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateAtExistingID_Resets(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/sessions/weekly-1", map[string]string{
		"player1": "Gabi", "player2": "Ikki", "format": "BO3",
	})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/sessions/weekly-1", map[string]string{
		"player1": "Leo", "player2": "Ken", "format": "BO5",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/sessions/weekly-1", nil)
	got := decodeSession(t, resp)
	require.Equal(t, "Leo", got.Player1.Name)
	require.Equal(t, engine.FormatBO5, got.Format)
	require.Zero(t, got.Player1.Score)
}

func TestGetSession_NotFound(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodGet, srv.URL+"/sessions/missing", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateSession_RenamesPlayers(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/sessions/weekly-1", map[string]string{
		"player1": "Gabi", "player2": "Ikki", "format": "BO3",
	})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, srv.URL+"/sessions/weekly-1", map[string]string{
		"player1": "Gabi | FGC",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeSession(t, resp)
	require.Equal(t, "Gabi | FGC", got.Player1.Name)
	require.Equal(t, "Ikki", got.Player2.Name)
}

func TestUpdateSession_NotFound(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPut, srv.URL+"/sessions/missing", map[string]string{"player1": "X"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteSession(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/sessions/weekly-1", map[string]string{
		"player1": "Gabi", "player2": "Ikki", "format": "BO3",
	})
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, srv.URL+"/sessions/weekly-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/sessions/weekly-1", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "ok", payload["status"])
	require.Contains(t, payload, "sessions")
	require.Contains(t, payload, "uptime")
}

func TestStagesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/stages", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var game1 struct {
		Stages []catalog.Stage `json:"stages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&game1))
	resp.Body.Close()
	require.Len(t, game1.Stages, 5)

	resp = doJSON(t, http.MethodGet, srv.URL+"/stages?game=2", nil)
	var game2 struct {
		Stages []catalog.Stage `json:"stages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&game2))
	resp.Body.Close()
	require.Len(t, game2.Stages, 8)
}

func TestCharactersEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodGet, srv.URL+"/characters", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Characters []catalog.Character `json:"characters"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.Characters)
}
