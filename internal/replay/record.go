// Package replay provides in-memory buffering and file persistence for
// self-play trajectories.
package replay

import (
	"time"

	"github.com/google/uuid"

	"github.com/mitchelldurbincs/cardgym/internal/env"
)

// Record is one player's trajectory through one episode.
type Record struct {
	RecordID    string         `json:"record_id"`
	EpisodeID   string         `json:"episode_id"`
	Env         string         `json:"env"`
	Player      int            `json:"player"`
	Timesteps   []env.Timestep `json:"timesteps"`
	Payoff      float32        `json:"payoff"`
	CollectedAt time.Time      `json:"collected_at"`
}

// NewRecords splits the per-player trajectories of one episode into buffer
// records, stamping a shared episode id.
func NewRecords(envName string, trajectories [][]env.Timestep, payoffs []float32) []*Record {
	episodeID := uuid.New().String()
	now := time.Now()
	records := make([]*Record, 0, len(trajectories))
	for player, traj := range trajectories {
		records = append(records, &Record{
			RecordID:    uuid.New().String(),
			EpisodeID:   episodeID,
			Env:         envName,
			Player:      player,
			Timesteps:   traj,
			Payoff:      payoffs[player],
			CollectedAt: now,
		})
	}
	return records
}
