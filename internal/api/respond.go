package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/arena"
	"github.com/eigerco/bramble/internal/engine"
	"github.com/eigerco/bramble/internal/epoch"
	"github.com/eigerco/bramble/internal/exchange"
	"github.com/eigerco/bramble/internal/store"
	"github.com/eigerco/bramble/internal/vault"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeEngineError maps an engine error to its HTTP status.
func writeEngineError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, arena.ErrInvalidAmount),
		errors.Is(err, arena.ErrBadFaction),
		errors.Is(err, arena.ErrInvalidSessionID),
		errors.Is(err, account.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrUnauthorized),
		errors.Is(err, arena.ErrUnauthorizedGame):
		return http.StatusForbidden
	case errors.Is(err, arena.ErrUnknownPlayer),
		errors.Is(err, arena.ErrSessionNotFound),
		errors.Is(err, store.ErrGameNotFound),
		errors.Is(err, epoch.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, epoch.ErrNotReady),
		errors.Is(err, arena.ErrInsufficientBalance),
		errors.Is(err, arena.ErrBalanceOverflow),
		errors.Is(err, arena.ErrFactionNotSelected),
		errors.Is(err, arena.ErrFactionLocked),
		errors.Is(err, arena.ErrGameExists),
		errors.Is(err, arena.ErrSessionExists),
		errors.Is(err, arena.ErrSessionResolved):
		return http.StatusConflict
	case errors.Is(err, vault.ErrCollection),
		errors.Is(err, exchange.ErrSwap),
		errors.Is(err, exchange.ErrSlippage):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
