package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wayline",
	Short: "Wayline is a journey plan and traversal engine",
	Long:  `Wayline serves multi-step data-collection journeys defined as guarded waypoint graphs in YAML plan files.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("plan", "plan.yaml", "Path to the plan file")
}
