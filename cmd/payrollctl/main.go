package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "payrollctl"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Offline payroll tools",
		Long: `payrollctl runs the payroll engine without the API server.

It can preview cash advance schedules, compute a payroll period from a YAML
dataset and mint admin access tokens for the API.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(scheduleCmd(), computeCmd(), tokenCmd())
	return cmd
}
