package env

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/cardgym/internal/events"
)

// BaseEnv is the shared episode runner. Game packages embed it and hand it
// their rules engine; the runner owns agent dispatch, trajectory recording
// and event publishing.
type BaseEnv struct {
	name   string
	game   Game
	agents []Agent
	bus    *events.Bus
	logger zerolog.Logger
}

// NewBase wraps a rules engine into a runnable environment.
func NewBase(name string, game Game) *BaseEnv {
	return &BaseEnv{
		name:   name,
		game:   game,
		logger: log.With().Str("component", "env").Str("env", name).Logger(),
	}
}

// Name returns the registered environment identifier.
func (e *BaseEnv) Name() string { return e.name }

// NumActions returns the size of the action space.
func (e *BaseEnv) NumActions() int { return e.game.NumActions() }

// NumPlayers returns the number of seats.
func (e *BaseEnv) NumPlayers() int { return e.game.NumPlayers() }

// Game exposes the underlying rules engine, mainly for tests.
func (e *BaseEnv) Game() Game { return e.game }

// SetAgents binds one agent per seat. The count must match the seat count
// exactly; a short or long slice is rejected rather than silently filling
// seats with a default policy.
func (e *BaseEnv) SetAgents(agents []Agent) error {
	if len(agents) != e.game.NumPlayers() {
		return fmt.Errorf("%w: got %d agents for %d seats", ErrAgentCount, len(agents), e.game.NumPlayers())
	}
	e.agents = agents
	return nil
}

// AttachBus registers an event bus that receives episode lifecycle events.
func (e *BaseEnv) AttachBus(bus *events.Bus) {
	e.bus = bus
}

func (e *BaseEnv) publish(ev events.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

// Run plays one complete episode. Every decision point is recorded into the
// acting seat's trajectory, and after the terminal state each seat receives
// one final timestep carrying the terminal observation and NoAction. The
// returned payoffs are the per-seat results reported by the rules engine.
func (e *BaseEnv) Run(training bool) ([][]Timestep, []float32, error) {
	if e.agents == nil {
		return nil, nil, ErrNoAgents
	}

	episodeID := uuid.New().String()
	start := time.Now()
	logger := e.logger.With().Str("episode_id", episodeID).Logger()

	if err := e.game.Reset(); err != nil {
		return nil, nil, fmt.Errorf("reset %s: %w", e.name, err)
	}

	numPlayers := e.game.NumPlayers()
	trajectories := make([][]Timestep, numPlayers)
	record := make([]ActionRecord, 0, 32)

	e.publish(events.NewEpisodeStarted(episodeID, e.name, numPlayers))
	logger.Debug().Int("num_players", numPlayers).Bool("training", training).Msg("Episode started")

	for !e.game.IsOver() {
		seat := e.game.CurrentPlayer()
		state := e.game.State(seat)
		state.ActionRecord = append([]ActionRecord(nil), record...)

		var (
			action int
			err    error
		)
		if training {
			action, err = e.agents[seat].Step(state)
		} else {
			action, err = e.agents[seat].EvalStep(state)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("agent for seat %d: %w", seat, err)
		}
		if !state.Legal(action) {
			return nil, nil, fmt.Errorf("%w: seat %d chose %d, legal %v", ErrIllegalAction, seat, action, state.LegalActions)
		}

		trajectories[seat] = append(trajectories[seat], Timestep{State: state, Action: action})
		record = append(record, ActionRecord{Player: seat, Action: action})

		if err := e.game.Apply(action); err != nil {
			return nil, nil, fmt.Errorf("apply action %d for seat %d: %w", action, seat, err)
		}
		e.publish(events.NewActionTaken(episodeID, seat, action, len(record)))
	}

	// Stamp the terminal observation onto every trajectory so each seat sees
	// how the episode ended, even seats that never acted.
	for seat := 0; seat < numPlayers; seat++ {
		state := e.game.State(seat)
		state.ActionRecord = append([]ActionRecord(nil), record...)
		trajectories[seat] = append(trajectories[seat], Timestep{State: state, Action: NoAction})
	}

	payoffs := e.game.Payoffs()
	e.publish(events.NewEpisodeFinished(episodeID, payoffs, len(record), time.Since(start)))
	logger.Debug().
		Int("steps", len(record)).
		Floats32("payoffs", payoffs).
		Dur("duration", time.Since(start)).
		Msg("Episode finished")

	return trajectories, payoffs, nil
}
