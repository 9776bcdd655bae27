package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/criteria"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/store"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Create and inspect lead-generation jobs",
}

var (
	createTargetCount   int
	createQuality       float64
	createIndustry      string
	createLocation      string
	createRoles         []string
	createExclusions    []string
	createCustomQueries []string
	createProcessNow    bool
)

var jobsCreateCmd = &cobra.Command{
	Use:   "create <brief>",
	Short: "Create a job from a free-text targeting brief",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		prompt := strings.Join(args, " ")
		job, err := env.Orchestrator.CreateJob(cmd.Context(), prompt, criteria.Overrides{
			Industry:          createIndustry,
			Location:          createLocation,
			TargetRoles:       createRoles,
			ExclusionKeywords: createExclusions,
			CustomQueries:     createCustomQueries,
		}, createTargetCount, createQuality)
		if err != nil {
			return err
		}

		fmt.Printf("created job %s\n", job.ID)
		fmt.Printf("  keywords: %s\n", strings.Join(job.Criteria.Keywords, ", "))

		if createProcessNow {
			return env.Orchestrator.Process(cmd.Context(), job.ID)
		}
		return nil
	},
}

var jobsListStatus string

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		jobs, err := env.Orchestrator.ListJobs(cmd.Context(), store.JobFilter{
			Status: model.JobStatus(jobsListStatus),
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tTARGET\tCREATED\tPROMPT")
		for _, j := range jobs {
			prompt := j.Prompt
			if len(prompt) > 60 {
				prompt = prompt[:57] + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				j.ID, j.Status, j.TargetCount,
				j.CreatedAt.Format("2006-01-02 15:04"), prompt)
		}
		return w.Flush()
	},
}

var jobsStatusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show a job's status and results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		job, err := env.Orchestrator.GetJob(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("job %s\n", job.ID)
		fmt.Printf("  status:  %s\n", job.Status)
		fmt.Printf("  created: %s\n", job.CreatedAt.Format("2006-01-02 15:04:05"))
		if job.CompletedAt != nil {
			fmt.Printf("  ended:   %s\n", job.CompletedAt.Format("2006-01-02 15:04:05"))
		}
		if job.Error != "" {
			fmt.Printf("  error:   %s\n", job.Error)
		}

		companies, err := env.Store.ListCompanies(cmd.Context(), job.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  companies: %d\n", len(companies))
		for _, c := range companies {
			contacts, err := env.Store.ListContacts(cmd.Context(), c.ID)
			if err != nil {
				return err
			}
			fmt.Printf("    %-30s %5.1f  %d contacts  %s\n",
				c.Name, c.FitScore, len(contacts), strings.Join(c.DiscoveryReasons, "; "))
		}
		return nil
	},
}

var jobsCancelCmd = &cobra.Command{
	Use:   "cancel <job-id>",
	Short: "Cancel a pending or running job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Orchestrator.Cancel(cmd.Context(), args[0]); err != nil {
			return err
		}
		zap.L().Info("job cancelled", zap.String("job_id", args[0]))
		fmt.Printf("cancelled job %s\n", args[0])
		return nil
	},
}

func init() {
	jobsCreateCmd.Flags().IntVar(&createTargetCount, "target-count", 0, "companies to discover (default from config)")
	jobsCreateCmd.Flags().Float64Var(&createQuality, "quality-threshold", 0, "minimum acceptable quality score")
	jobsCreateCmd.Flags().StringVar(&createIndustry, "industry", "", "industry override")
	jobsCreateCmd.Flags().StringVar(&createLocation, "location", "", "location override")
	jobsCreateCmd.Flags().StringSliceVar(&createRoles, "roles", nil, "target role keywords")
	jobsCreateCmd.Flags().StringSliceVar(&createExclusions, "exclude", nil, "exclusion keywords")
	jobsCreateCmd.Flags().StringSliceVar(&createCustomQueries, "query", nil, "custom search queries")
	jobsCreateCmd.Flags().BoolVar(&createProcessNow, "process", false, "process the job immediately")

	jobsListCmd.Flags().StringVar(&jobsListStatus, "status", "", "filter by status")

	jobsCmd.AddCommand(jobsCreateCmd, jobsListCmd, jobsStatusCmd, jobsCancelCmd)
	rootCmd.AddCommand(jobsCmd)
}
