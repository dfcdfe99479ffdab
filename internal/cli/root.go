package cli

import (
	"fmt"
	"os"

	"github.com/shipgen-labs/shipgen/internal/branding"
	"github.com/shipgen-labs/shipgen/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` generates CI/CD scaffolding for containerized projects: GitHub
Actions deployment workflows, Dockerfiles, build scripts, and release scripts,
driven by a per-project shipgen.yaml configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
