package generate

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/shipgen-labs/shipgen/internal/plan"
	"github.com/shipgen-labs/shipgen/internal/project"
	"github.com/shipgen-labs/shipgen/internal/render"
	"github.com/shipgen-labs/shipgen/internal/writer"
)

// Options adjusts a generation run.
type Options struct {
	// ToolVersion is forwarded to the validator's requires check.
	ToolVersion string

	// DryRun renders everything but writes nothing.
	DryRun bool

	// DefaultPlatform fills docker.platform when the configuration leaves
	// it empty. The CLI feeds it from the user-level default_platform
	// setting.
	DefaultPlatform string
}

// Result holds the outcome of a generation run.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// Run generates all artifacts for cfg under outputDir. The pipeline is
// all-or-nothing: every artifact renders before the first byte is written,
// so a failure never leaves a half-updated output directory.
func Run(cfg *project.Config, outputDir string, opts Options) (*Result, error) {
	// An explicit docker.platform always wins over the user-level default.
	if cfg.Docker.Platform == "" && opts.DefaultPlatform != "" {
		patched := *cfg
		patched.Docker.Platform = opts.DefaultPlatform
		cfg = &patched
	}

	warnings, err := project.Validate(cfg, project.Options{ToolVersion: opts.ToolVersion})
	if err != nil {
		return nil, err
	}

	specs, err := plan.Plan(cfg)
	if err != nil {
		return nil, err
	}

	var batch writer.Batch
	for _, spec := range specs {
		tmpl, err := plan.ReadTemplate(spec.TemplatePath)
		if err != nil {
			return nil, err
		}

		content, err := render.Render(spec.TemplatePath, tmpl, spec.Vars)
		if err != nil {
			return nil, err
		}

		// Workflows feed a CI system that parses YAML strictly; reject a
		// render that does not survive a parse round.
		if strings.HasSuffix(spec.OutputPath, ".yml") {
			if err := checkYAML(content); err != nil {
				return nil, &render.Error{
					Template: spec.TemplatePath,
					Message:  fmt.Sprintf("rendered output is not valid YAML: %v", err),
				}
			}
		}

		batch.Add(spec.OutputPath, content, spec.Executable)
	}

	result := &Result{OutputDir: outputDir, Warnings: warnings}
	for _, f := range batch.Files() {
		result.Files = append(result.Files, f.Path)
	}

	if opts.DryRun {
		return result, nil
	}

	if err := batch.Commit(outputDir); err != nil {
		return nil, err
	}
	return result, nil
}

func checkYAML(content string) error {
	var doc any
	return yaml.Unmarshal([]byte(content), &doc)
}
