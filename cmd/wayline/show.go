package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/waylinehq/wayline/pkg/planfile"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render a summary of the plan",
	Long:  `Compiles the plan file and prints its waypoints, edges and origins as formatted markdown.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runShow(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command) error {
	planPath, _ := cmd.Flags().GetString("plan")

	doc, p, _, err := planfile.Load(planPath)
	if err != nil {
		return err
	}

	var md strings.Builder
	title := doc.Name
	if title == "" {
		title = planPath
	}
	fmt.Fprintf(&md, "# %s\n\n", title)
	if doc.Description != "" {
		fmt.Fprintf(&md, "%s\n\n", doc.Description)
	}

	md.WriteString("## Origins\n\n")
	for _, o := range p.Origins() {
		md.WriteString(fmt.Sprintf("- **%s** → `%s`\n", o.Name, o.Entry))
	}

	md.WriteString("\n## Waypoints\n\n")
	for _, wp := range p.Waypoints() {
		edges := p.OutEdges(wp)
		if len(edges) == 0 {
			md.WriteString(fmt.Sprintf("- `%s` (terminal)\n", wp))
			continue
		}
		md.WriteString(fmt.Sprintf("- `%s`\n", wp))
		for _, e := range edges {
			md.WriteString(fmt.Sprintf("  - → `%s`\n", e.Target))
		}
	}

	// Plain output when the terminal can't color; glamour otherwise.
	if termenv.ColorProfile() == termenv.Ascii {
		fmt.Println(md.String())
		return nil
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Println(md.String())
		return nil
	}
	out, err := r.Render(md.String())
	if err != nil {
		fmt.Println(md.String())
		return nil
	}
	fmt.Print(out)
	return nil
}
