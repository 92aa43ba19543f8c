// Command collect runs batches of random self-play episodes and persists
// the resulting trajectories to disk for later training use.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/cardgym/internal/agent"
	"github.com/mitchelldurbincs/cardgym/internal/common"
	"github.com/mitchelldurbincs/cardgym/internal/config"
	"github.com/mitchelldurbincs/cardgym/internal/env"
	"github.com/mitchelldurbincs/cardgym/internal/events"
	"github.com/mitchelldurbincs/cardgym/internal/events/subscribers"
	"github.com/mitchelldurbincs/cardgym/internal/replay"

	_ "github.com/mitchelldurbincs/cardgym/internal/game/blackjack"
	_ "github.com/mitchelldurbincs/cardgym/internal/game/leduc"
	_ "github.com/mitchelldurbincs/cardgym/internal/game/limitholdem"
	_ "github.com/mitchelldurbincs/cardgym/internal/game/uno"
)

func main() {
	// Command line flags
	envName := flag.String("env", "", "Environment to collect from (empty to use config default)")
	episodes := flag.Int("episodes", 100, "Number of episodes to run")
	outDir := flag.String("out", "", "Output directory (empty to use config default)")
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	seed := flag.Int64("seed", -1, "Base seed (-1 to use config default)")
	flag.Parse()

	if *envName != "" {
		mustBeRegistered(*envName)
	}

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *envName == "" {
		*envName = cfg.Episode.Env
		mustBeRegistered(*envName)
	}
	if *outDir == "" {
		*outDir = cfg.Replay.Dir
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *seed == -1 {
		*seed = cfg.Episode.Seed
	}
	if *episodes < 1 {
		log.Fatal().Int("episodes", *episodes).Msg("Episode count must be positive")
	}

	setupLogging(*logLevel, cfg.Logging.Format)
	common.SetSeed(*seed)

	store, err := replay.NewFileStore(*outDir, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *outDir).Msg("Failed to open replay store")
	}
	defer store.Close()

	buffer := replay.NewBuffer(cfg.Replay.BufferCapacity, log.Logger)
	defer buffer.Close()

	bus := events.NewBus()
	bus.Subscribe(subscribers.NewLoggerSubscriber("collect-logger", log.Logger, zerolog.DebugLevel))

	ctx := context.Background()
	for i := 0; i < *episodes; i++ {
		// Each episode gets its own derived seed so runs stay reproducible
		// but episodes differ.
		episodeSeed := *seed + int64(i)
		e, err := env.Make(*envName, env.Config{
			Seed:       episodeSeed,
			NumPlayers: cfg.Episode.NumPlayers,
		})
		if err != nil {
			log.Fatal().Err(err).Str("env", *envName).Msg("Failed to build environment")
		}
		if withBus, ok := e.(interface{ AttachBus(*events.Bus) }); ok {
			withBus.AttachBus(bus)
		}

		agents := make([]env.Agent, e.NumPlayers())
		for seat := range agents {
			agents[seat] = agent.NewRandomAgent(e.NumActions(), common.NewRNG(episodeSeed+int64(seat)))
		}
		if err := e.SetAgents(agents); err != nil {
			log.Fatal().Err(err).Msg("Failed to bind agents")
		}

		trajectories, payoffs, err := e.Run(true)
		if err != nil {
			log.Fatal().Err(err).Int("episode", i).Msg("Episode failed")
		}
		if err := buffer.AddAll(replay.NewRecords(*envName, trajectories, payoffs)); err != nil {
			log.Fatal().Err(err).Msg("Failed to buffer records")
		}

		if buffer.Len() >= cfg.Replay.BatchSize {
			if err := store.Write(ctx, buffer.Drain(cfg.Replay.BatchSize)); err != nil {
				log.Fatal().Err(err).Msg("Failed to persist records")
			}
		}
	}

	// Flush whatever is left in the buffer.
	if err := store.Write(ctx, buffer.Drain(0)); err != nil {
		log.Fatal().Err(err).Msg("Failed to persist records")
	}

	added, dropped := buffer.Stats()
	log.Info().
		Str("env", *envName).
		Int("episodes", *episodes).
		Int64("records", added).
		Int64("dropped", dropped).
		Str("dir", *outDir).
		Msg("Collection finished")
}

func mustBeRegistered(name string) {
	for _, known := range env.Names() {
		if known == name {
			return
		}
	}
	fmt.Fprintf(os.Stderr, "unknown environment %q (choices: %s)\n", name, strings.Join(env.Names(), ", "))
	os.Exit(2)
}

func setupLogging(level, format string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
