package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/engine"
)

type EpochHandler struct {
	engine *engine.Engine
}

func NewEpochHandler(eng *engine.Engine) *EpochHandler {
	return &EpochHandler{engine: eng}
}

// Cycle handles POST /v1/cycle
//
// Anonymous callers cycle as the zero address; requests that presented
// valid admin credentials cycle as the admin, which is what the
// admin-only policy requires.
func (h *EpochHandler) Cycle(w http.ResponseWriter, r *http.Request) {
	var caller account.Address
	if IsAdmin(r.Context()) {
		caller = h.engine.Admin()
	}

	sealed, err := h.engine.CycleEpoch(r.Context(), caller)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sealed)
}

// Current handles GET /v1/epochs/current
func (h *EpochHandler) Current(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.CurrentEpoch())
}

// At handles GET /v1/epochs/{index}
func (h *EpochHandler) At(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.ParseUint(chi.URLParam(r, "index"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid epoch index")
		return
	}

	e, err := h.engine.EpochAt(uint32(index))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Journal handles GET /v1/journal?from=N&limit=N
func (h *EpochHandler) Journal(w http.ResponseWriter, r *http.Request) {
	var from uint64
	if s := r.URL.Query().Get("from"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from sequence")
			return
		}
		from = v
	}
	var limit int
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	entries, err := h.engine.JournalEntries(from, limit)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type verifyJournalResponse struct {
	OK bool `json:"ok"`
}

// VerifyJournal handles GET /v1/journal/verify
func (h *EpochHandler) VerifyJournal(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.VerifyJournal(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, verifyJournalResponse{OK: true})
}

type claimEmissionsRequest struct {
	Reserves  []uint32        `json:"reserves"`
	Recipient account.Address `json:"recipient"`
}

type claimEmissionsResponse struct {
	Claimed int64 `json:"claimed"`
}

// ClaimEmissions handles POST /v1/emissions/claim
func (h *EpochHandler) ClaimEmissions(w http.ResponseWriter, r *http.Request) {
	var req claimEmissionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Reserves) == 0 {
		writeError(w, http.StatusBadRequest, "reserves are required")
		return
	}
	if req.Recipient.IsZero() {
		writeError(w, http.StatusBadRequest, "recipient is required")
		return
	}

	claimed, err := h.engine.ClaimEmissions(r.Context(), h.engine.Admin(), req.Reserves, req.Recipient)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claimEmissionsResponse{Claimed: claimed})
}
