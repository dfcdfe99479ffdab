package plan

import (
	"fmt"

	"github.com/shipgen-labs/shipgen/internal/project"
	"github.com/shipgen-labs/shipgen/internal/render"
)

// Plan decides which artifacts apply to cfg and builds a Spec for each, in
// the fixed kind order. A missing required field for an applicable artifact
// aborts the whole plan: generation is all-or-nothing per invocation.
func Plan(cfg *project.Config) ([]Spec, error) {
	supported, ok := typeKinds[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unrecognized project type %q", cfg.Type)
	}

	var specs []Spec
	for _, kind := range kindOrder {
		if !containsKind(supported, kind) {
			continue
		}
		if !applicable(cfg, kind) {
			continue
		}

		vars, err := buildVars(cfg, kind)
		if err != nil {
			return nil, err
		}

		tmpl, err := templateName(cfg.Type, kind)
		if err != nil {
			return nil, err
		}

		specs = append(specs, Spec{
			Kind:         kind,
			TemplatePath: tmpl,
			OutputPath:   outputPaths[kind],
			Vars:         vars,
			Executable:   executableKinds[kind],
		})
	}
	return specs, nil
}

// applicable checks the config flag gating an artifact kind.
func applicable(cfg *project.Config, kind Kind) bool {
	switch kind {
	case KindWorkflowDevelopment:
		env, ok := cfg.Environments[project.EnvDevelopment]
		return ok && env.Enabled
	case KindWorkflowProduction:
		env, ok := cfg.Environments[project.EnvProduction]
		return ok && env.Enabled
	case KindDockerfile:
		return cfg.Docker.GenerateDockerfile
	case KindBuildScript:
		return cfg.Docker.GenerateBuildScript
	case KindReleaseScript:
		return releasePolicy(cfg).GenerateScript
	case KindSecretsSnippet:
		return len(cfg.Environments) > 0
	}
	return false
}

// buildVars builds the variable map for one artifact kind, re-checking
// required upstream fields defensively. The validator should have caught
// gaps already, but a partial plan must never be emitted.
func buildVars(cfg *project.Config, kind Kind) (render.Vars, error) {
	switch kind {
	case KindWorkflowDevelopment, KindWorkflowProduction:
		envName := project.EnvDevelopment
		if kind == KindWorkflowProduction {
			envName = project.EnvProduction
		}
		env := cfg.Environments[envName]
		if env.Trigger.Type == "" {
			return nil, fmt.Errorf("planning %s: environments.%s.trigger.type is missing", kind, envName)
		}
		return workflowVars(cfg, envName, env), nil

	case KindDockerfile:
		if cfg.DockerSection() == nil {
			return nil, fmt.Errorf("planning %s: docker section for type %q is missing", kind, cfg.Type)
		}
		return dockerfileVars(cfg), nil

	case KindBuildScript:
		if cfg.AWS.ECRRepository == "" {
			return nil, fmt.Errorf("planning %s: aws.ecr_repository is missing", kind)
		}
		return buildScriptVars(cfg), nil

	case KindReleaseScript:
		if cfg.GitHub.MainBranch == "" {
			return nil, fmt.Errorf("planning %s: github.main_branch is missing", kind)
		}
		return releaseScriptVars(cfg), nil

	case KindSecretsSnippet:
		if cfg.GitHub.Org == "" || cfg.GitHub.Repo == "" {
			return nil, fmt.Errorf("planning %s: github coordinates are missing", kind)
		}
		return secretsSnippetVars(cfg), nil
	}
	return nil, fmt.Errorf("unknown artifact kind %q", kind)
}

func containsKind(kinds []Kind, kind Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
