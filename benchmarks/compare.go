package benchmarks

import (
	"context"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/pathfinder-rl/grid"
	"github.com/zeu5/pathfinder-rl/policies"
	"github.com/zeu5/pathfinder-rl/types"
)

// Compare trains an epsilon-greedy and a softmax agent on the same maze
func Compare(ctx context.Context, env *grid.GridEnvironment, params policies.Params, episodes, runs int, saveFile string, recordTraces bool) error {
	epsParams := params
	epsParams.Exploration = policies.EpsilonGreedyExploration
	epsLearner, err := policies.NewQLearning(epsParams)
	if err != nil {
		return err
	}

	softParams := params
	softParams.Exploration = policies.SoftMaxExploration
	softLearner, err := policies.NewQLearning(softParams)
	if err != nil {
		return err
	}

	c, err := types.NewComparison(&types.ComparisonConfig{
		Runs:       runs,
		Episodes:   episodes,
		RecordPath: saveFile,
		// record flags
		RecordTraces: recordTraces,
		RecordPolicy: false,
	})
	if err != nil {
		return err
	}
	plotPath := path.Join(saveFile, "plots")
	c.AddAnalysis("Reward", types.EpisodeReward(), types.SeriesPlotter(plotPath, "reward", "Episode reward", 50))
	c.AddAnalysis("Length", types.EpisodeLength(), types.SeriesPlotter(plotPath, "length", "Steps", 50))
	c.AddAnalysis("States", types.StateSpace(), types.SeriesPlotter(plotPath, "states", "Learning states", 1))
	c.AddAnalysis("Goal", types.NewPredicateAnalyzer(grid.ReachedGoal(env)), types.SeriesPlotter(plotPath, "goal", "Episodes reaching the goal", 1))
	c.AddAnalysis("HazardFree", types.NewPredicateAnalyzer(grid.HazardFree()), types.SeriesPlotter(plotPath, "hazard_free", "Episodes without hazards", 1))
	c.AddAnalysis("Visits", grid.NewVisitAnalyzer(env), grid.GridPlotComparator(plotPath))

	c.AddExperiment(types.NewExperiment("EpsilonGreedy", epsLearner, env))
	c.AddExperiment(types.NewExperiment("SoftMax", softLearner, env))

	runErr := c.Run(ctx)
	recordResults(ctx, env, params, c.Results())
	return runErr
}

func CompareCommand() *cobra.Command {
	var recordTraces bool
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the exploration strategies on one maze",
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
			return Compare(ctx, env, params, episodes, runs, saveFile, recordTraces)
		},
	}
	cmd.Flags().BoolVar(&recordTraces, "record-traces", false, "Record the trace of every episode")
	return cmd
}
