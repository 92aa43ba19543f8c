// Package env hosts the simulation environments: the agent-facing state
// types, the episode runner and the environment registry. Concrete games
// register themselves from internal/game/* at init time, mirroring how
// database/sql drivers plug in.
package env

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEnv is returned by Make for an unregistered environment name.
	ErrUnknownEnv = errors.New("unknown environment")
	// ErrNoAgents is returned by Run when no agents have been bound.
	ErrNoAgents = errors.New("no agents bound to environment")
	// ErrAgentCount is returned by SetAgents when the number of agents does
	// not match the number of seats.
	ErrAgentCount = errors.New("agent count does not match player count")
	// ErrIllegalAction is returned when an agent picks an action outside the
	// legal set for the current state.
	ErrIllegalAction = errors.New("illegal action")
)

// NoAction marks the action slot of a terminal timestep, where no decision
// was taken.
const NoAction = -1

// Config carries the options an environment is constructed with.
type Config struct {
	// Seed drives every random draw inside the environment. A fixed seed
	// reproduces an identical episode given the same agents.
	Seed int64
	// NumPlayers is the number of seats. Games with a fixed seat count
	// reject other values at construction.
	NumPlayers int
}

// RawObservation is the game-specific, human-readable view of a state. Each
// game exposes its own struct with exported fields so trajectories can be
// serialized as-is.
type RawObservation interface {
	fmt.Stringer
}

// ActionRecord is one entry of the public action history of an episode.
type ActionRecord struct {
	Player int `json:"player"`
	Action int `json:"action"`
}

// State is the decision-point observation handed to an agent.
type State struct {
	// Obs is the numeric feature encoding of the observation.
	Obs []float32 `json:"obs"`
	// LegalActions are the action ids available to the acting player,
	// ascending.
	LegalActions []int `json:"legal_actions"`
	// RawObs is the readable observation for the acting player.
	RawObs RawObservation `json:"raw_obs"`
	// RawLegalActions are the readable labels of LegalActions, same order.
	RawLegalActions []string `json:"raw_legal_actions"`
	// CurrentPlayer is the seat this state was extracted for.
	CurrentPlayer int `json:"current_player"`
	// ActionRecord is the public action history up to this state.
	ActionRecord []ActionRecord `json:"action_record"`
}

// Legal reports whether action is in the legal set of this state.
func (s *State) Legal(action int) bool {
	for _, a := range s.LegalActions {
		if a == action {
			return true
		}
	}
	return false
}

// Timestep is one recorded (state, action) pair of a trajectory. Terminal
// timesteps carry NoAction.
type Timestep struct {
	State  *State `json:"state"`
	Action int    `json:"action"`
}

// Agent is a decision policy bound to one seat. Step is consulted during
// training episodes, EvalStep during evaluation; stateless policies
// implement both identically.
type Agent interface {
	Step(state *State) (int, error)
	EvalStep(state *State) (int, error)
}

// Game is the rules engine behind an environment. Implementations are
// deterministic for a fixed RNG and single-threaded; the runner owns the
// call order.
type Game interface {
	// Reset deals a fresh episode.
	Reset() error
	// CurrentPlayer is the seat to act next. Undefined once IsOver.
	CurrentPlayer() int
	// LegalActions lists the action ids available to the acting seat.
	LegalActions() []int
	// Apply plays one action for the acting seat.
	Apply(action int) error
	// IsOver reports whether the episode reached a terminal state.
	IsOver() bool
	// Payoffs returns the per-seat result of a finished episode.
	Payoffs() []float32
	// State extracts the observation for the given seat.
	State(seat int) *State
	// NumPlayers is the seat count.
	NumPlayers() int
	// NumActions is the size of the action space.
	NumActions() int
}

// Env is one playable environment instance.
type Env interface {
	// Name is the registered environment identifier.
	Name() string
	// NumActions is the size of the action space.
	NumActions() int
	// NumPlayers is the number of seats.
	NumPlayers() int
	// SetAgents binds one agent per seat.
	SetAgents(agents []Agent) error
	// Run plays one complete episode and returns the per-player
	// trajectories and payoffs.
	Run(training bool) ([][]Timestep, []float32, error)
}
