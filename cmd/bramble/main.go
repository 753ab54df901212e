package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/eigerco/bramble/internal/api"
	"github.com/eigerco/bramble/internal/engine"
	"github.com/eigerco/bramble/internal/epoch"
	"github.com/eigerco/bramble/internal/ledgertime"
	"github.com/eigerco/bramble/internal/store"
	"github.com/eigerco/bramble/pkg/db/pebble"
	"github.com/eigerco/bramble/pkg/log"
)

type config struct {
	ListenAddr string `env:"BRAMBLE_LISTEN_ADDR" envDefault:":8080"`
	DataDir    string `env:"BRAMBLE_DATA_DIR" envDefault:"bramble-data"`
	LogLevel   string `env:"BRAMBLE_LOG_LEVEL" envDefault:"info"`
	LogJSON    bool   `env:"BRAMBLE_LOG_JSON" envDefault:"false"`

	// AdminToken guards the admin HTTP routes. Empty disables auth,
	// devnet only.
	AdminToken string `env:"BRAMBLE_ADMIN_TOKEN"`

	EpochDuration time.Duration `env:"BRAMBLE_EPOCH_DURATION" envDefault:"1h"`
	CyclePolicy   string        `env:"BRAMBLE_CYCLE_POLICY" envDefault:"permissionless"`
	// CycleInterval is how often the daemon probes the epoch gate.
	CycleInterval time.Duration `env:"BRAMBLE_CYCLE_INTERVAL" envDefault:"30s"`
	SwapMinOut    int64         `env:"BRAMBLE_SWAP_MIN_OUT" envDefault:"0"`
	SwapDeadline  time.Duration `env:"BRAMBLE_SWAP_DEADLINE" envDefault:"30s"`
	ReserveIDs    []uint32      `env:"BRAMBLE_RESERVE_IDS" envDefault:"1"`

	// Devnet simulation knobs, 7 decimal fixed point.
	SimEmissionRate  int64 `env:"BRAMBLE_SIM_EMISSION_RATE" envDefault:"10000000"`
	SimAdminBalance  int64 `env:"BRAMBLE_SIM_ADMIN_BALANCE" envDefault:"0"`
	SimPoolLiquidity int64 `env:"BRAMBLE_SIM_POOL_LIQUIDITY" envDefault:"1000000000000000"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "parse env: %v\n", err)
		os.Exit(1)
	}

	level, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse log level %q: %v\n", cfg.LogLevel, err)
		os.Exit(1)
	}
	logType := log.ConsoleLogger
	if cfg.LogJSON {
		logType = log.JSONLogger
	}
	log.Init(log.Options{LogLevel: level, Type: logType})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Root.Fatal().Err(err).Msg("bramble exited")
	}
}

func run(ctx context.Context, cfg config) error {
	policy, err := engine.ParseCyclePolicy(cfg.CyclePolicy)
	if err != nil {
		return err
	}

	clock := ledgertime.System{}
	world, err := buildDevnet(cfg, clock)
	if err != nil {
		return fmt.Errorf("build devnet: %w", err)
	}

	kv, err := pebble.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open database at %s: %w", cfg.DataDir, err)
	}

	eng, err := engine.New(engine.Config{
		Admin:           world.admin,
		Self:            world.self,
		YieldToken:      world.blnd.Addr(),
		SettlementToken: world.usdc.Addr(),
		ReserveIDs:      cfg.ReserveIDs,
		EpochDuration:   cfg.EpochDuration,
		CyclePolicy:     policy,
		SwapMinOut:      cfg.SwapMinOut,
		SwapDeadline:    cfg.SwapDeadline,
	}, engine.Deps{
		Ledger: store.NewLedger(kv),
		Clock:  clock,
		Vault:  world.vault,
		Router: world.amm,
		Logger: log.Engine,
	})
	if err != nil {
		kv.Close()
		return fmt.Errorf("start engine: %w", err)
	}
	defer eng.Close()

	go cycleLoop(ctx, eng, cfg.CycleInterval)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewRouter(eng, cfg.AdminToken, log.API),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Root.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Root.Info().
		Str("listen", cfg.ListenAddr).
		Str("data_dir", cfg.DataDir).
		Stringer("policy", policy).
		Dur("epoch_duration", cfg.EpochDuration).
		Msg("bramble started")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// cycleLoop probes the epoch gate periodically and settles the epoch
// as soon as it is due. The daemon cycles as the admin, so the loop
// works under either cycle policy.
func cycleLoop(ctx context.Context, eng *engine.Engine, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sealed, err := eng.CycleEpoch(ctx, eng.Admin())
			switch {
			case errors.Is(err, epoch.ErrNotReady):
				log.Engine.Debug().Msg("epoch not due yet")
			case err != nil:
				log.Engine.Error().Err(err).Msg("cycle failed")
			default:
				log.Engine.Info().
					Uint32("epoch", sealed.Index).
					Int64("reward_pool", sealed.RewardPool).
					Msg("epoch cycled")
			}
		}
	}
}
