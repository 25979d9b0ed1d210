package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"chatshop.GO/config"
	"chatshop.GO/cron"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	Run: func(cmd *cobra.Command, args []string) {
		logger := config.InitLogger(config.LoadAppConfig().LogLevel)
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if jobName != "" {
			name := strings.ToLower(jobName)
			fmt.Printf("Running cron job: %s\n", name)
			found, err := cron.RunOnce(ctx, name)
			if !found {
				fmt.Printf("Unknown job: %s\n", jobName)
				os.Exit(1)
			}
			if err != nil {
				fmt.Printf("Job %s failed: %v\n", name, err)
				os.Exit(1)
			}
			return
		}
		fmt.Println("Starting cron scheduler...")
		c, err := cron.StartCron(ctx, logger)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		defer func() { <-c.Stop().Done() }()
		fmt.Println("Cron scheduler started. Press Ctrl+C to exit.")
		<-ctx.Done()
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
