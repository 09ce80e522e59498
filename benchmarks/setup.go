package benchmarks

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/zeu5/pathfinder-rl/grid"
	"github.com/zeu5/pathfinder-rl/policies"
	"github.com/zeu5/pathfinder-rl/report"
)

// learningParams collects the learning flags
func learningParams() (policies.Params, error) {
	params := policies.Params{
		Alpha:       alpha,
		Gamma:       gamma,
		Epsilon:     epsilon,
		Temperature: temperature,
		Exploration: policies.Exploration(exploration),
		StepCost:    stepCost,
		GoalBonus:   goalBonus,
		StepBudget:  stepBudget,
		Horizon:     horizon,
		Seed:        seed,
	}
	if err := params.Validate(); err != nil {
		return params, err
	}
	if err := params.CheckGoalDominance(treasureReward, hazardReward); err != nil {
		return params, err
	}
	return params, nil
}

func mazeConfig() grid.Config {
	return grid.Config{
		Dimension:           dimension,
		TreasureProbability: treasureProb,
		HazardProbability:   hazardProb,
		TreasureReward:      treasureReward,
		HazardReward:        hazardReward,
		Seed:                seed,
	}
}

// buildMaze reads the layout file when one is given and generates a maze otherwise
func buildMaze() (*grid.GridEnvironment, error) {
	if layoutFile != "" {
		return grid.ReadLayout(layoutFile, treasureReward, hazardReward)
	}
	return grid.Generate(mazeConfig())
}

// recorders of the run summaries: the save folder and redis when configured.
// The redis recorder is nil when no redis address is set.
func recorders() (report.MultiRecorder, *report.RedisRecorder, func()) {
	recs := report.MultiRecorder{report.NewFileRecorder(saveFile)}
	if envs.RedisAddr == "" {
		return recs, nil, func() {}
	}
	redisRec := report.NewRedisRecorder(envs.RedisAddr, envs.RedisKey)
	recs = append(recs, redisRec)
	return recs, redisRec, func() {
		if err := redisRec.Close(); err != nil {
			log.Printf("[APP] [ERROR] closing redis client: %v", err)
		}
	}
}

// interruptContext is cancelled on an interrupt signal
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
