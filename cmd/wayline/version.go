package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waylinehq/wayline"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of wayline",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wayline version %s\n", strings.TrimSpace(wayline.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
