package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runAllPending bool

var runCmd = &cobra.Command{
	Use:   "run [job-id]",
	Short: "Process a job, or all pending jobs with --pending",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		if runAllPending {
			return env.Orchestrator.ProcessPending(cmd.Context())
		}
		if len(args) == 0 {
			return cmd.Usage()
		}

		zap.L().Info("processing job", zap.String("job_id", args[0]))
		return env.Orchestrator.Process(cmd.Context(), args[0])
	},
}

func init() {
	runCmd.Flags().BoolVar(&runAllPending, "pending", false, "process every pending job")
	rootCmd.AddCommand(runCmd)
}
