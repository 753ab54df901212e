package api

import (
	"net/http"

	"github.com/eigerco/bramble/internal/engine"
)

type HealthHandler struct {
	engine *engine.Engine
}

func NewHealthHandler(eng *engine.Engine) *HealthHandler {
	return &HealthHandler{engine: eng}
}

type healthResponse struct {
	Status string `json:"status"`
	Epoch  uint32 `json:"epoch"`
	Carry  int64  `json:"carry"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Epoch:  h.engine.CurrentEpoch().Index,
		Carry:  h.engine.Carry(),
	})
}
