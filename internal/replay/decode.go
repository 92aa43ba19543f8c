package replay

import (
	"encoding/json"
	"time"

	"github.com/mitchelldurbincs/cardgym/internal/env"
)

// JSONObservation is the untyped form a raw observation takes after a disk
// round trip; the original game struct is not recoverable from JSON alone.
type JSONObservation json.RawMessage

// String implements env.RawObservation.
func (o JSONObservation) String() string {
	return string(o)
}

// MarshalJSON keeps the observation byte-stable across round trips.
func (o JSONObservation) MarshalJSON() ([]byte, error) {
	return json.RawMessage(o).MarshalJSON()
}

// rawState mirrors env.State with the interface field left as raw JSON.
type rawState struct {
	Obs             []float32          `json:"obs"`
	LegalActions    []int              `json:"legal_actions"`
	RawObs          json.RawMessage    `json:"raw_obs"`
	RawLegalActions []string           `json:"raw_legal_actions"`
	CurrentPlayer   int                `json:"current_player"`
	ActionRecord    []env.ActionRecord `json:"action_record"`
}

type rawTimestep struct {
	State  *rawState `json:"state"`
	Action int       `json:"action"`
}

type rawRecord struct {
	RecordID    string        `json:"record_id"`
	EpisodeID   string        `json:"episode_id"`
	Env         string        `json:"env"`
	Player      int           `json:"player"`
	Timesteps   []rawTimestep `json:"timesteps"`
	Payoff      float32       `json:"payoff"`
	CollectedAt time.Time     `json:"collected_at"`
}

func (r rawRecord) record() *Record {
	timesteps := make([]env.Timestep, len(r.Timesteps))
	for i, ts := range r.Timesteps {
		var state *env.State
		if ts.State != nil {
			state = &env.State{
				Obs:             ts.State.Obs,
				LegalActions:    ts.State.LegalActions,
				RawObs:          JSONObservation(ts.State.RawObs),
				RawLegalActions: ts.State.RawLegalActions,
				CurrentPlayer:   ts.State.CurrentPlayer,
				ActionRecord:    ts.State.ActionRecord,
			}
		}
		timesteps[i] = env.Timestep{State: state, Action: ts.Action}
	}
	return &Record{
		RecordID:    r.RecordID,
		EpisodeID:   r.EpisodeID,
		Env:         r.Env,
		Player:      r.Player,
		Timesteps:   timesteps,
		Payoff:      r.Payoff,
		CollectedAt: r.CollectedAt,
	}
}
