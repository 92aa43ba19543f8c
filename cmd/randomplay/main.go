// Command randomplay builds a card-game environment, binds two random
// agents to it, runs a single evaluation episode and prints the recorded
// trajectories.
package main

import (
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

	_ "github.com/mitchelldurbincs/cardgym/internal/game/blackjack"
	_ "github.com/mitchelldurbincs/cardgym/internal/game/leduc"
	_ "github.com/mitchelldurbincs/cardgym/internal/game/limitholdem"
	_ "github.com/mitchelldurbincs/cardgym/internal/game/uno"
)

func main() {
	// Command line flags
	envName := flag.String("env", "", "Environment to play (empty to use config default)")
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	seed := flag.Int64("seed", -1, "Episode seed (-1 to use config default)")
	flag.Parse()

	// Reject an unknown environment choice before anything is constructed.
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
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *seed == -1 {
		*seed = cfg.Episode.Seed
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	// Seed the process-wide generator for reproducibility; every component
	// below derives its own generator from the same seed.
	common.SetSeed(*seed)

	e, err := env.Make(*envName, env.Config{
		Seed:       *seed,
		NumPlayers: cfg.Episode.NumPlayers,
	})
	if err != nil {
		log.Fatal().Err(err).Str("env", *envName).Msg("Failed to build environment")
	}

	agents := []env.Agent{
		agent.NewRandomAgent(e.NumActions(), common.NewRNG(*seed)),
		agent.NewRandomAgent(e.NumActions(), common.NewRNG(*seed+1)),
	}
	if err := e.SetAgents(agents); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind agents")
	}

	log.Info().
		Str("env", *envName).
		Int64("seed", *seed).
		Int("num_actions", e.NumActions()).
		Int("num_players", e.NumPlayers()).
		Msg("Running one evaluation episode")

	trajectories, payoffs, err := e.Run(false)
	if err != nil {
		log.Fatal().Err(err).Msg("Episode failed")
	}

	fmt.Println("\nTrajectories:")
	for player, trajectory := range trajectories {
		fmt.Printf("Player %d:\n", player)
		for _, ts := range trajectory {
			if ts.Action == env.NoAction {
				fmt.Printf("  final: %s\n", ts.State.RawObs)
			} else {
				fmt.Printf("  %s | chose %q\n", ts.State.RawObs, label(ts.State, ts.Action))
			}
		}
	}

	fmt.Println("\nSample raw observation:")
	fmt.Println(trajectories[0][0].State.RawObs)
	fmt.Println("\nSample raw legal actions:")
	fmt.Println(trajectories[0][0].State.RawLegalActions)
	fmt.Println(len(trajectories[0]))
	fmt.Println(len(trajectories[1]))
	fmt.Println("\nPayoffs:", payoffs)
}

// label resolves the readable name of an action within a state.
func label(state *env.State, action int) string {
	for i, a := range state.LegalActions {
		if a == action && i < len(state.RawLegalActions) {
			return state.RawLegalActions[i]
		}
	}
	return fmt.Sprintf("%d", action)
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
