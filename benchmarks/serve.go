package benchmarks

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/zeu5/pathfinder-rl/report"
	"github.com/zeu5/pathfinder-rl/server"
)

func ServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve training and solving of one maze over http",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := learningParams()
			if err != nil {
				return err
			}
			env, err := buildMaze()
			if err != nil {
				return err
			}
			recs, redisRec, closeRecs := recorders()
			defer closeRecs()
			var history report.History
			if redisRec != nil {
				history = redisRec
			}

			session, err := server.NewSession("QLearning", env, params, recs, history)
			if err != nil {
				return err
			}

			ctx, cancel := interruptContext()
			defer cancel()
			s := server.NewServer(ctx, addr, envs.GinMode, session)
			s.Start()
			log.Printf("[APP] [INFO] serving on %s", addr)
			<-ctx.Done()
			log.Printf("[APP] [INFO] shutting down")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envs.ServerAddr, "Listen address")
	return cmd
}
