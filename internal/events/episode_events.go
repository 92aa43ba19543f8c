package events

import (
	"time"
)

// Event type constants
const (
	TypeEpisodeStarted  = "episode.started"
	TypeActionTaken     = "episode.action"
	TypeEpisodeFinished = "episode.finished"
)

// EpisodeStartedEvent is published when an episode begins
type EpisodeStartedEvent struct {
	BaseEvent
	Env        string `json:"env"`
	NumPlayers int    `json:"num_players"`
}

// NewEpisodeStarted creates a new EpisodeStartedEvent
func NewEpisodeStarted(episodeID, env string, numPlayers int) *EpisodeStartedEvent {
	return &EpisodeStartedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeEpisodeStarted,
			Time:      time.Now(),
			Episode:   episodeID,
		},
		Env:        env,
		NumPlayers: numPlayers,
	}
}

// ActionTakenEvent is published after each applied action
type ActionTakenEvent struct {
	BaseEvent
	Player int `json:"player"`
	Action int `json:"action"`
	Step   int `json:"step"`
}

// NewActionTaken creates a new ActionTakenEvent
func NewActionTaken(episodeID string, player, action, step int) *ActionTakenEvent {
	return &ActionTakenEvent{
		BaseEvent: BaseEvent{
			EventType: TypeActionTaken,
			Time:      time.Now(),
			Episode:   episodeID,
		},
		Player: player,
		Action: action,
		Step:   step,
	}
}

// EpisodeFinishedEvent is published when an episode reaches a terminal state
type EpisodeFinishedEvent struct {
	BaseEvent
	Payoffs  []float32     `json:"payoffs"`
	Steps    int           `json:"steps"`
	Duration time.Duration `json:"duration"`
}

// NewEpisodeFinished creates a new EpisodeFinishedEvent
func NewEpisodeFinished(episodeID string, payoffs []float32, steps int, duration time.Duration) *EpisodeFinishedEvent {
	return &EpisodeFinishedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeEpisodeFinished,
			Time:      time.Now(),
			Episode:   episodeID,
		},
		Payoffs:  payoffs,
		Steps:    steps,
		Duration: duration,
	}
}
