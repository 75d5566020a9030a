package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gabrielb-Webdev/smash-ban-server/internal/catalog"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/engine"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/hub"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/room"
)

type API struct {
	hub    *hub.Hub
	rules  engine.Ruleset
	logger *zap.Logger
}

type createSessionRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
	Format    string `json:"format"`
}

type updateSessionRequest struct {
	Player1 string `json:"player1,omitempty"`
	Player2 string `json:"player2,omitempty"`
	Format  string `json:"format,omitempty"`
}

type sessionResponse struct {
	Session engine.Session `json:"session"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateSession handles POST /sessions: create at the caller's id, or mint a
// uuid when none is given. Creating at an existing id resets it in place.
func (a *API) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	a.create(w, req)
}

// CreateSessionAt handles POST /sessions/{sessionID}: the fixed shareable
// link flow, where tablet/stream URLs never change between matches.
func (a *API) CreateSessionAt(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.SessionID = chi.URLParam(r, "sessionID")
	a.create(w, req)
}

func (a *API) create(w http.ResponseWriter, req createSessionRequest) {
	format := engine.Format(req.Format)
	if !format.Valid() {
		writeError(w, http.StatusBadRequest, "format must be BO3 or BO5")
		return
	}
	id := req.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	sess := engine.NewSession(id, req.Player1, req.Player2, format, a.rules)
	reply := make(chan *room.Room, 1)
	a.hub.Inbox() <- hub.CreateSession{ID: id, Session: sess, Reply: reply}
	if <-reply == nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Session: sess})
}

func (a *API) GetSession(w http.ResponseWriter, r *http.Request) {
	rm := a.room(chi.URLParam(r, "sessionID"))
	if rm == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	view := make(chan room.View, 1)
	rm.Inbox() <- room.GetState{Reply: view}
	v := <-view
	writeJSON(w, http.StatusOK, sessionResponse{Session: v.Session})
}

func (a *API) UpdateSession(w http.ResponseWriter, r *http.Request) {
	rm := a.room(chi.URLParam(r, "sessionID"))
	if rm == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Format != "" && !engine.Format(req.Format).Valid() {
		writeError(w, http.StatusBadRequest, "format must be BO3 or BO5")
		return
	}

	errs := make(chan error, 1)
	rm.Inbox() <- room.FromClient{
		Cmd: engine.Command{
			Type:    engine.CmdUpdatePlayers,
			Player1: req.Player1,
			Player2: req.Player2,
			Format:  engine.Format(req.Format),
		},
		Reply: errs,
	}
	if err := <-errs; err != nil {
		if errors.Is(err, engine.ErrFormatLocked) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := make(chan room.View, 1)
	rm.Inbox() <- room.GetState{Reply: view}
	v := <-view
	writeJSON(w, http.StatusOK, sessionResponse{Session: v.Session})
}

func (a *API) DeleteSession(w http.ResponseWriter, r *http.Request) {
	a.hub.Inbox() <- hub.RemoveSession{ID: chi.URLParam(r, "sessionID")}
	writeJSON(w, http.StatusOK, map[string]string{"message": "session deleted"})
}

// Healthz reports uptime and the live session count.
func (a *API) Healthz() http.HandlerFunc {
	start := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		count := make(chan int, 1)
		a.hub.Inbox() <- hub.CountSessions{Reply: count}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"uptime":   time.Since(start).Seconds(),
			"sessions": <-count,
		})
	}
}

// Stages serves the candidate pool descriptors; ?game=N picks the pool.
func (a *API) Stages(w http.ResponseWriter, r *http.Request) {
	game := 1
	if g := r.URL.Query().Get("game"); g != "" {
		n, err := strconv.Atoi(g)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid game number")
			return
		}
		game = n
	}
	writeJSON(w, http.StatusOK, map[string]any{"stages": catalog.StagesForGame(game)})
}

func (a *API) Characters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"characters": catalog.Characters})
}

func (a *API) room(id string) *room.Room {
	reply := make(chan *room.Room, 1)
	a.hub.Inbox() <- hub.GetSession{ID: id, Reply: reply}
	return <-reply
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
