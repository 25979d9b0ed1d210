package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatshop",
	Short: "chatshop conversational product search",
	Long:  "Command line tools for the chatshop product-search assistant: catalog seeding, migrations, scheduled jobs and a local chat console.",
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
