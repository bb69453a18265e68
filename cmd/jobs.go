package cmd

import (
	"os"
	"os/signal"

	"github.com/emrgen/bioref/internal/config"
	"github.com/emrgen/bioref/internal/jobs"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "background job commands",
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	jobsCmd.AddCommand(runJobsCmd())
	jobsCmd.AddCommand(auditCmd())
}

func runJobsCmd() *cobra.Command {
	var once bool

	command := &cobra.Command{
		Use:     "run",
		Short:   "run the integrity audit and cache warm jobs on their schedule",
		Example: "bioref jobs run",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				color.Red("config: %v", err)
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			executor := jobs.NewTaskExecutor(
				jobs.NewIntegrityAudit(cfg.AuditSchedule, client.Store()),
				jobs.NewCacheWarmTask(cfg.CacheWarmSchedule, client.Store(), client.Cache()),
			)

			if once {
				executor.RunOnce()
				return
			}

			if err := executor.Run(); err != nil {
				logrus.Error(err)
				return
			}
			defer executor.Stop()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, unix.SIGINT, unix.SIGTERM)
			s := <-sig
			logrus.Infof("received %s", s)
		},
	}

	command.Flags().BoolVar(&once, "once", false, "run every job once and exit")

	return command
}

func auditCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "audit",
		Short: "report genes with several or no canonical isoforms and misplaced annotations",
		Run: func(cmd *cobra.Command, args []string) {
			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			report, err := jobs.NewIntegrityAudit("", client.Store()).Audit(ctx())
			if err != nil {
				printError(err)
				return
			}

			if report.Clean() {
				color.Green("no problems found")
				return
			}

			table := newTable("Problem", "Gene / Table", "Detail")
			for _, c := range report.MultipleCanonical {
				table.Append([]string{"several canonical isoforms", c.GeneID, itoa(c.Canonical)})
			}
			for _, c := range report.NoCanonical {
				table.Append([]string{"no canonical isoform", c.GeneID, itoa(c.Proteins) + " proteins"})
			}
			for _, m := range report.Misplaced {
				table.Append([]string{"misplaced annotation", m.Table, m.EntityID + " " + m.TermID})
			}
			table.Render()
		},
	}

	return command
}
