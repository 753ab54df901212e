package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/eigerco/bramble/internal/engine"
)

// NewRouter creates the chi router with all routes and middleware.
// adminToken guards the admin routes; an empty token disables auth,
// which is only sensible on a local devnet.
func NewRouter(eng *engine.Engine, adminToken string, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	arenaH := NewArenaHandler(eng)
	epochH := NewEpochHandler(eng)
	healthH := NewHealthHandler(eng)

	r.Get("/health", healthH.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/deposit", arenaH.Deposit)
		r.Post("/faction", arenaH.SelectFaction)
		r.Get("/factions/totals", arenaH.FactionTotals)
		r.Get("/players/{addr}", arenaH.GetPlayer)

		r.Get("/games", arenaH.ListGames)
		r.Post("/sessions", arenaH.StartSession)
		r.Get("/sessions/{id}", arenaH.GetSession)
		r.Post("/sessions/{id}/resolve", arenaH.ResolveSession)

		// Cycling is open to anyone by default; under the admin-only
		// policy the engine rejects callers the token did not vouch for.
		r.With(OptionalAdmin(adminToken)).Post("/cycle", epochH.Cycle)
		r.Get("/epochs/current", epochH.Current)
		r.Get("/epochs/{index}", epochH.At)
		r.Get("/journal", epochH.Journal)
		r.Get("/journal/verify", epochH.VerifyJournal)

		// Admin routes.
		r.Group(func(r chi.Router) {
			r.Use(AdminAuth(adminToken))
			r.Post("/games", arenaH.RegisterGame)
			r.Post("/emissions/claim", epochH.ClaimEmissions)
		})
	})

	return r
}
