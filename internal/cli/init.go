package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/shipgen-labs/shipgen/internal/config"
	"github.com/shipgen-labs/shipgen/internal/project"
	"github.com/spf13/cobra"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var (
	initType      string
	initOutputDir string
)

func init() {
	initCmd.Flags().StringVar(&initType, "type", "", "Project type: nodejs-server, nextjs-webapp, or knex-migration (required)")
	initCmd.Flags().StringVar(&initOutputDir, "output-dir", "", "Directory to write shipgen.yaml into (default: ./<name>)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Bootstrap a new project configuration",
	Long: `Write a starter shipgen.yaml for a new project. Edit the generated file,
then run 'shipgen generate'.

Examples:
  shipgen init myapi --type nodejs-server
  shipgen init mysite --type nextjs-webapp --output-dir .`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !namePattern.MatchString(name) {
			return fmt.Errorf("invalid name %q: must match pattern [a-z0-9][a-z0-9-]*", name)
		}
		if initType == "" {
			return fmt.Errorf("--type is required (one of %v)", project.ValidTypes)
		}

		cfg, err := project.Starter(name, initType)
		if err != nil {
			return err
		}
		if p := config.Get(config.KeyDefaultPlatform); p != "" {
			cfg.Docker.Platform = p
		}

		dir := initOutputDir
		if dir == "" {
			dir = filepath.Join(".", name)
		}
		target := filepath.Join(dir, project.ConfigFileName)

		// Never clobber an existing configuration.
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("%s already exists; edit it or remove it first", target)
		}

		data, err := project.Marshal(cfg)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}

		fmt.Printf("Created %s\n", target)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Edit shipgen.yaml with your AWS and GitHub coordinates")
		fmt.Println("  2. Run 'shipgen validate' to check the configuration")
		fmt.Println("  3. Run 'shipgen generate' to produce the artifacts")
		return nil
	},
}
