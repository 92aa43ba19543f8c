// Package agent provides the decision policies that can be bound to
// environment seats.
package agent

import (
	"errors"
	"math/rand"

	"github.com/mitchelldurbincs/cardgym/internal/common"
	"github.com/mitchelldurbincs/cardgym/internal/env"
)

// ErrNoLegalActions is returned when an agent is asked to act on a state
// with an empty legal action set.
var ErrNoLegalActions = errors.New("state has no legal actions")

// RandomAgent picks uniformly among the legal actions of a state. It keeps
// no memory between steps and behaves identically in training and
// evaluation mode.
type RandomAgent struct {
	numActions int
	rng        *rand.Rand
}

// NewRandomAgent creates a random policy over an action space of the given
// size. If rng is nil the process-wide default generator is used.
func NewRandomAgent(numActions int, rng *rand.Rand) *RandomAgent {
	if rng == nil {
		rng = common.DefaultRNG()
	}
	return &RandomAgent{numActions: numActions, rng: rng}
}

// NumActions returns the action space size the agent was built for.
func (a *RandomAgent) NumActions() int {
	return a.numActions
}

// Step implements env.Agent.
func (a *RandomAgent) Step(state *env.State) (int, error) {
	if len(state.LegalActions) == 0 {
		return env.NoAction, ErrNoLegalActions
	}
	return state.LegalActions[a.rng.Intn(len(state.LegalActions))], nil
}

// EvalStep implements env.Agent. A random policy has no exploration to turn
// off, so evaluation steps are plain steps.
func (a *RandomAgent) EvalStep(state *env.State) (int, error) {
	return a.Step(state)
}
