package benchmarks

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeu5/pathfinder-rl/types"
	"github.com/zeu5/pathfinder-rl/util"
)

func MazeCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "maze",
		Short: "Print the maze, optionally saving it as a layout file",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildMaze()
			if err != nil {
				return err
			}
			fmt.Print(env.String())
			fmt.Printf("Open: %d, Treasures: %d, Hazards: %d\n",
				len(env.Cells()), len(env.Rewards(types.Treasure)), len(env.Rewards(types.Hazard)))
			if out != "" {
				return util.WriteToFile(out, env.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the layout to this file")
	return cmd
}
