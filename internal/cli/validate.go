package cli

import (
	"errors"
	"fmt"

	"github.com/shipgen-labs/shipgen/internal/project"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [project-dir]",
	Short: "Validate a project configuration",
	Long: `Validate a project's shipgen.yaml without generating anything. Every
violation is reported at once.

Example:
  shipgen validate ./myapi`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		dir, err := ResolveProjectDir(arg)
		if err != nil {
			return err
		}

		cfg, err := project.Load(dir)
		if err != nil {
			return err
		}

		warnings, err := project.Validate(cfg, project.Options{ToolVersion: buildVersion})
		for _, w := range warnings {
			fmt.Printf("Warning: %s\n", w)
		}

		var verr *project.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("Configuration for %s is invalid:\n", cfg.Name)
			for _, f := range verr.Fields {
				fmt.Printf("  - %s\n", f)
			}
			return fmt.Errorf("%d validation problems", len(verr.Fields))
		}
		if err != nil {
			return err
		}

		fmt.Printf("Configuration for %s is valid.\n", cfg.Name)
		return nil
	},
}
