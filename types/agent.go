package types

import (
	"context"
	"fmt"
)

// EpisodeStats summarizes one training episode
type EpisodeStats struct {
	Episode        int     `json:"episode"`
	Steps          int     `json:"steps"`
	Reward         float64 `json:"reward"`
	ReachedGoal    bool    `json:"reached_goal"`
	HorizonReached bool    `json:"horizon_reached"`
	States         int     `json:"states"`
}

// Learner is a tabular agent that improves by running episodes
// and produces a solution path afterwards
type Learner interface {
	// RunEpisode runs one full training episode against the environment
	RunEpisode(int, Environment) (*Trace, EpisodeStats, error)
	// Solve follows the learned policy without updating it
	Solve(Environment) (*Path, error)
	// Reset forgets everything that was learned
	Reset()
}

type AgentConfig struct {
	Episodes    int
	Learner     Learner
	Environment Environment
}

// Agent drives a Learner for a fixed number of episodes
type Agent struct {
	config *AgentConfig
	// collects the stats of the run
	// Only populated if the Run function is invoked
	stats       []EpisodeStats
	learner     Learner
	environment Environment
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		stats:       make([]EpisodeStats, 0, config.Episodes),
		learner:     config.Learner,
		environment: config.Environment,
	}
}

// Run the agent for the configured number of episodes.
// The context is only checked between episodes.
func (a *Agent) Run(ctx context.Context) ([]EpisodeStats, error) {
	for i := 0; i < a.config.Episodes; i++ {
		select {
		case <-ctx.Done():
			return a.stats, ctx.Err()
		default:
		}
		_, stats, err := a.learner.RunEpisode(i, a.environment)
		if err != nil {
			return a.stats, fmt.Errorf("episode %d: %w", i, err)
		}
		a.stats = append(a.stats, stats)
	}
	return a.stats, nil
}
