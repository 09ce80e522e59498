package benchmarks

import (
	"context"
	"fmt"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/pathfinder-rl/grid"
	"github.com/zeu5/pathfinder-rl/policies"
	"github.com/zeu5/pathfinder-rl/report"
	"github.com/zeu5/pathfinder-rl/types"
)

// Train runs the Q-learning agent on the maze, prints the learned path and records the summaries
func Train(ctx context.Context, env *grid.GridEnvironment, params policies.Params, episodes, runs int, saveFile string, recordPolicy bool) error {
	learner, err := policies.NewQLearning(params)
	if err != nil {
		return err
	}

	c, err := types.NewComparison(&types.ComparisonConfig{
		Runs:       runs,
		Episodes:   episodes,
		RecordPath: saveFile,
		// record flags
		RecordTraces: false,
		RecordPolicy: recordPolicy,
	})
	if err != nil {
		return err
	}
	plotPath := path.Join(saveFile, "plots")
	c.AddAnalysis("Reward", types.EpisodeReward(), types.SeriesPlotter(plotPath, "reward", "Episode reward", 50))
	c.AddAnalysis("Length", types.EpisodeLength(), types.SeriesPlotter(plotPath, "length", "Steps", 50))
	c.AddAnalysis("Visits", grid.NewVisitAnalyzer(env), grid.GridPlotComparator(plotPath))

	c.AddExperiment(types.NewExperiment("QLearning", learner, env))

	runErr := c.Run(ctx)
	recordResults(ctx, env, params, c.Results())
	return runErr
}

// recordResults prints the learned path of every run and records its summary
func recordResults(ctx context.Context, env *grid.GridEnvironment, params policies.Params, results []*types.ExperimentResult) {
	recs, _, closeRecs := recorders()
	defer closeRecs()

	for _, result := range results {
		if result.IsError() {
			fmt.Printf("Exp: %s, Run: %d, failed: %s\n", result.Name, result.Run, result.Err)
			continue
		}
		fmt.Printf("\nExp: %s, Run: %d, Steps: %d, Score: %.2f, Reached goal: %t\n",
			result.Name, result.Run, result.Path.Steps, result.Path.Score, result.Path.ReachedGoal)
		fmt.Print(env.Render(result.Path))

		summary := report.Summarize(result.Name, params, result.Stats, result.Path)
		if err := recs.Record(ctx, summary); err != nil {
			fmt.Printf("Could not record the summary of %s: %s\n", result.Name, err)
		}
	}
}

func TrainCommand() *cobra.Command {
	var recordPolicy bool
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train on one maze and print the learned path",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := learningParams()
			if err != nil {
				return err
			}
			env, err := buildMaze()
			if err != nil {
				return err
			}
			stopProfiling := startProfiling()
			defer stopProfiling()

			ctx, cancel := interruptContext()
			defer cancel()
			return Train(ctx, env, params, episodes, runs, saveFile, recordPolicy)
		},
	}
	cmd.Flags().BoolVar(&recordPolicy, "record-policy", false, "Dump the learned table of every run")
	return cmd
}
