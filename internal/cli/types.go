package cli

import (
	"fmt"

	"github.com/shipgen-labs/shipgen/internal/plan"
	"github.com/shipgen-labs/shipgen/internal/project"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(typesCmd)
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List supported project types and their artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range project.ValidTypes {
			fmt.Println(t)
			for _, kind := range plan.SupportedKinds(t) {
				fmt.Printf("  %s\n", kind)
			}
		}
		return nil
	},
}
