package benchmarks

import (
	"github.com/spf13/cobra"
	"github.com/zeu5/pathfinder-rl/config"
	"github.com/zeu5/pathfinder-rl/grid"
	"github.com/zeu5/pathfinder-rl/policies"
)

var (
	episodes int
	horizon  int
	saveFile string
	runs     int
	seed     uint64

	// learning
	alpha       float64
	gamma       float64
	epsilon     float64
	temperature float64
	exploration string
	stepCost    float64
	goalBonus   float64
	stepBudget  int

	// maze
	dimension      int
	layoutFile     string
	treasureProb   float64
	hazardProb     float64
	treasureReward float64
	hazardReward   float64

	// profiling
	cpuprofile string
	memprofile string

	envs config.Config
)

func GetRootCommand() *cobra.Command {
	envs = config.Load()
	params := policies.DefaultParams()
	maze := grid.DefaultConfig()

	rootCommand := &cobra.Command{
		Use:          "pathfinder",
		Short:        "Train a tabular Q-learning agent to solve mazes with treasures and hazards",
		SilenceUsage: true,
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", envs.Episodes, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", params.Horizon, "Horizon of each episode, 0 for unbounded")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", envs.ResultsDir, "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", params.Seed, "Seed of the maze and of the exploration")

	rootCommand.PersistentFlags().Float64Var(&alpha, "alpha", params.Alpha, "Learning rate")
	rootCommand.PersistentFlags().Float64Var(&gamma, "gamma", params.Gamma, "Discount factor")
	rootCommand.PersistentFlags().Float64Var(&epsilon, "epsilon", params.Epsilon, "Exploration rate of the epsilon-greedy selector")
	rootCommand.PersistentFlags().Float64Var(&temperature, "temperature", params.Temperature, "Temperature of the softmax selector")
	rootCommand.PersistentFlags().StringVar(&exploration, "exploration", string(params.Exploration), "Exploration strategy: epsilon-greedy or softmax")
	rootCommand.PersistentFlags().Float64Var(&stepCost, "step-cost", params.StepCost, "Reward of every move, zero or negative")
	rootCommand.PersistentFlags().Float64Var(&goalBonus, "goal-bonus", params.GoalBonus, "Reward for reaching the end")
	rootCommand.PersistentFlags().IntVar(&stepBudget, "step-budget", params.StepBudget, "Maximum number of moves of the solution path")

	rootCommand.PersistentFlags().IntVar(&dimension, "dimension", maze.Dimension, "Number of node rows and columns of the generated maze, odd")
	rootCommand.PersistentFlags().StringVar(&layoutFile, "layout", "", "Read the maze from a layout file instead of generating it")
	rootCommand.PersistentFlags().Float64Var(&treasureProb, "treasure-prob", maze.TreasureProbability, "Probability of a node holding a treasure")
	rootCommand.PersistentFlags().Float64Var(&hazardProb, "hazard-prob", maze.HazardProbability, "Probability of a node holding a hazard")
	rootCommand.PersistentFlags().Float64Var(&treasureReward, "treasure", maze.TreasureReward, "Reward of a treasure")
	rootCommand.PersistentFlags().Float64Var(&hazardReward, "hazard", maze.HazardReward, "Reward of a hazard")

	rootCommand.PersistentFlags().StringVar(&cpuprofile, "cpuprofile", "", "Write a cpu profile to this file in the save folder")
	rootCommand.PersistentFlags().StringVar(&memprofile, "memprofile", "", "Write a memory profile to this file in the save folder")

	// adding the subcommands here
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(CompareCommand())
	rootCommand.AddCommand(MazeCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}
