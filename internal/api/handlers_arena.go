package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/arena"
	"github.com/eigerco/bramble/internal/engine"
)

type ArenaHandler struct {
	engine *engine.Engine
}

func NewArenaHandler(eng *engine.Engine) *ArenaHandler {
	return &ArenaHandler{engine: eng}
}

type depositRequest struct {
	Player account.Address `json:"player"`
	Amount int64           `json:"amount"`
}

// Deposit handles POST /v1/deposit
func (h *ArenaHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Player.IsZero() {
		writeError(w, http.StatusBadRequest, "player is required")
		return
	}

	if err := h.engine.Deposit(req.Player, req.Amount); err != nil {
		writeEngineError(w, err)
		return
	}
	p, err := h.engine.Player(req.Player)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type selectFactionRequest struct {
	Player  account.Address `json:"player"`
	Faction uint8           `json:"faction"`
}

// SelectFaction handles POST /v1/faction
func (h *ArenaHandler) SelectFaction(w http.ResponseWriter, r *http.Request) {
	var req selectFactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Player.IsZero() {
		writeError(w, http.StatusBadRequest, "player is required")
		return
	}
	faction, err := arena.FactionFromID(req.Faction)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if err := h.engine.SelectFaction(req.Player, faction); err != nil {
		writeEngineError(w, err)
		return
	}
	p, err := h.engine.Player(req.Player)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetPlayer handles GET /v1/players/{addr}
func (h *ArenaHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	addr, err := account.ParseAddress(chi.URLParam(r, "addr"))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	p, err := h.engine.Player(addr)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type factionTotalsResponse struct {
	WholeNoodle int64 `json:"whole_noodle"`
	PointyStick int64 `json:"pointy_stick"`
}

// FactionTotals handles GET /v1/factions/totals
func (h *ArenaHandler) FactionTotals(w http.ResponseWriter, r *http.Request) {
	totals := h.engine.FactionTotals()
	writeJSON(w, http.StatusOK, factionTotalsResponse{
		WholeNoodle: totals[arena.FactionWholeNoodle],
		PointyStick: totals[arena.FactionPointyStick],
	})
}

type registerGameRequest struct {
	Game account.Address `json:"game"`
}

// RegisterGame handles POST /v1/games
func (h *ArenaHandler) RegisterGame(w http.ResponseWriter, r *http.Request) {
	var req registerGameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Game.IsZero() {
		writeError(w, http.StatusBadRequest, "game is required")
		return
	}

	if err := h.engine.AddGame(h.engine.Admin(), req.Game); err != nil {
		writeEngineError(w, err)
		return
	}
	g, err := h.engine.Game(req.Game)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

// ListGames handles GET /v1/games
func (h *ArenaHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Games())
}

type startSessionRequest struct {
	Game    account.Address `json:"game"`
	Session arena.SessionID `json:"session"`
	PlayerA account.Address `json:"player_a"`
	PlayerB account.Address `json:"player_b"`
	WagerA  int64           `json:"wager_a"`
	WagerB  int64           `json:"wager_b"`
}

// StartSession handles POST /v1/sessions
func (h *ArenaHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Game.IsZero() || req.Session == (arena.SessionID{}) {
		writeError(w, http.StatusBadRequest, "game and session are required")
		return
	}

	err := h.engine.StartGame(req.Game, req.Session, req.PlayerA, req.PlayerB, req.WagerA, req.WagerB)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	s, err := h.engine.Session(req.Session)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// GetSession handles GET /v1/sessions/{id}
func (h *ArenaHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := arena.ParseSessionID(chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s, err := h.engine.Session(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type resolveSessionRequest struct {
	Game   account.Address `json:"game"`
	Winner uint8           `json:"winner"`
}

// ResolveSession handles POST /v1/sessions/{id}/resolve
func (h *ArenaHandler) ResolveSession(w http.ResponseWriter, r *http.Request) {
	id, err := arena.ParseSessionID(chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	var req resolveSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	winner, err := arena.FactionFromID(req.Winner)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if err := h.engine.ResolveGame(req.Game, id, winner); err != nil {
		writeEngineError(w, err)
		return
	}
	s, err := h.engine.Session(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
