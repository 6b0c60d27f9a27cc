package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waylinehq/wayline/internal/lint"
	"github.com/waylinehq/wayline/pkg/planfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the plan for consistency",
	Long:  `Compiles the plan file and reports waypoints no origin can reach and origins with no path to a terminal waypoint.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Plan is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) error {
	planPath, _ := cmd.Flags().GetString("plan")

	_, p, _, err := planfile.Load(planPath)
	if err != nil {
		return err
	}

	problems := lint.Check(p)
	if len(problems) > 0 {
		for _, problem := range problems {
			fmt.Printf("- %s\n", problem)
		}
		return fmt.Errorf("found %d problems", len(problems))
	}
	return nil
}
