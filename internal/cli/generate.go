package cli

import (
	"fmt"

	"github.com/shipgen-labs/shipgen/internal/config"
	"github.com/shipgen-labs/shipgen/internal/generate"
	"github.com/shipgen-labs/shipgen/internal/project"
	"github.com/spf13/cobra"
)

var (
	generateOutputDir string
	generateDryRun    bool
)

func init() {
	generateCmd.Flags().StringVar(&generateOutputDir, "output-dir", "", "Output directory (default: the project directory)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Show what would be generated without writing files")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [project-dir]",
	Short: "Generate CI/CD artifacts for a project",
	Long: `Generate all artifacts for a project: deployment workflows, Dockerfile,
build script, release script, and the gh CLI secrets snippet.

The project directory defaults to the current directory, or the first child
of the configured projects_dir containing a shipgen.yaml.

Examples:
  shipgen generate
  shipgen generate ./myapi
  shipgen generate ./myapi --output-dir ./out --dry-run`,
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

		outDir := dir
		if generateOutputDir != "" {
			outDir = generateOutputDir
		}

		result, err := generate.Run(cfg, outDir, generate.Options{
			ToolVersion:     buildVersion,
			DryRun:          generateDryRun,
			DefaultPlatform: config.Get(config.KeyDefaultPlatform),
		})
		if err != nil {
			return err
		}

		for _, w := range result.Warnings {
			fmt.Printf("Warning: %s\n", w)
		}

		if generateDryRun {
			fmt.Printf("Would generate %d artifacts for %s:\n", len(result.Files), cfg.Name)
		} else {
			fmt.Printf("Generated %d artifacts for %s at %s/\n", len(result.Files), cfg.Name, result.OutputDir)
		}
		for _, f := range result.Files {
			fmt.Printf("  %s\n", f)
		}
		return nil
	},
}
