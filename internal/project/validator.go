package project

import (
	"fmt"
	"os"
	"slices"

	"github.com/Masterminds/semver/v3"
)

// Options adjusts validation behavior.
type Options struct {
	// ToolVersion is the running generator's build version, checked against
	// the config's requires constraint. "dev" builds skip the check.
	ToolVersion string

	// SkipPathChecks disables filesystem lookups (repository_path). Used by
	// tests that validate configs with fictional paths.
	SkipPathChecks bool
}

// typeProfile declares the shape each project type expects. Adding a new
// project type means adding a constant, a profile entry, and a docker
// sub-object.
type typeProfile struct {
	dockerField     string // yaml key of the matching docker sub-object
	hasEnvironments bool
	hasRelease      bool
}

var typeProfiles = map[string]typeProfile{
	TypeNodejsServer:  {dockerField: "nodejs_server", hasEnvironments: true, hasRelease: true},
	TypeNextjsWebapp:  {dockerField: "nextjs_webapp", hasEnvironments: true, hasRelease: true},
	TypeKnexMigration: {dockerField: "knex_migration"},
}

// Validate checks cfg for completeness. It accumulates every violation in
// one pass and returns them all as a *ValidationError, plus any non-blocking
// warnings. It reads the configuration only; no side effects.
func Validate(cfg *Config, opts Options) (warnings []string, err error) {
	v := &validator{}

	// Schema layer: structural violations from the source document.
	if len(cfg.raw) > 0 {
		issues, err := schemaIssues(cfg.raw)
		if err != nil {
			return nil, err
		}
		v.fields = append(v.fields, issues...)
	}

	v.checkCommon(cfg)

	profile, known := typeProfiles[cfg.Type]
	if !known {
		v.addf("type", "unrecognized project type %q (expected one of %v)", cfg.Type, ValidTypes)
	} else {
		v.checkDocker(cfg, profile)
		v.checkEnvironments(cfg, profile)
		if !profile.hasRelease && cfg.Release != nil {
			v.addf("release", "release section does not apply to type %q", cfg.Type)
		}
	}

	v.checkRequires(cfg, opts.ToolVersion)

	if !opts.SkipPathChecks && cfg.RepositoryPath != "" {
		if _, err := os.Stat(cfg.RepositoryPath); err != nil {
			warnings = append(warnings,
				fmt.Sprintf("repository_path %q does not exist", cfg.RepositoryPath))
		}
	}

	if len(v.fields) > 0 {
		return warnings, &ValidationError{Fields: deduplicateFields(v.fields)}
	}
	return warnings, nil
}

type validator struct {
	fields []FieldError
}

func (v *validator) addf(path, format string, args ...any) {
	v.fields = append(v.fields, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) require(path, value string) {
	if value == "" {
		v.addf(path, "required field is missing")
	}
}

func (v *validator) checkCommon(cfg *Config) {
	v.require("name", cfg.Name)
	v.require("type", cfg.Type)
	v.require("aws.region", cfg.AWS.Region)
	v.require("aws.ecr_repository", cfg.AWS.ECRRepository)
	v.require("github.org", cfg.GitHub.Org)
	v.require("github.repo", cfg.GitHub.Repo)
	v.require("github.main_branch", cfg.GitHub.MainBranch)
}

func (v *validator) checkDocker(cfg *Config, profile typeProfile) {
	d := cfg.Docker

	// A sub-object for a different type indicates a config copied across
	// projects without updating the type-shaped sections.
	sections := []struct {
		field   string
		present bool
	}{
		{"nodejs_server", d.NodejsServer != nil},
		{"nextjs_webapp", d.NextjsWebapp != nil},
		{"knex_migration", d.KnexMigration != nil},
	}
	for _, s := range sections {
		if s.present && s.field != profile.dockerField {
			v.addf("docker."+s.field, "does not apply to type %q", cfg.Type)
		}
	}

	prefix := "docker." + profile.dockerField
	switch cfg.Type {
	case TypeNodejsServer:
		if d.NodejsServer == nil {
			v.addf(prefix, "required section is missing for type %q", cfg.Type)
			return
		}
		v.require(prefix+".base_image", d.NodejsServer.BaseImage)
		v.require(prefix+".work_dir", d.NodejsServer.WorkDir)
		if d.NodejsServer.Port == 0 {
			v.addf(prefix+".port", "required field is missing")
		}
	case TypeNextjsWebapp:
		if d.NextjsWebapp == nil {
			v.addf(prefix, "required section is missing for type %q", cfg.Type)
			return
		}
		v.require(prefix+".base_image", d.NextjsWebapp.BaseImage)
		v.require(prefix+".work_dir", d.NextjsWebapp.WorkDir)
		if d.NextjsWebapp.Port == 0 {
			v.addf(prefix+".port", "required field is missing")
		}
	case TypeKnexMigration:
		if d.KnexMigration == nil {
			v.addf(prefix, "required section is missing for type %q", cfg.Type)
			return
		}
		v.require(prefix+".base_image", d.KnexMigration.BaseImage)
		v.require(prefix+".work_dir", d.KnexMigration.WorkDir)
	}
}

func (v *validator) checkEnvironments(cfg *Config, profile typeProfile) {
	if !profile.hasEnvironments {
		if len(cfg.Environments) > 0 {
			v.addf("environments", "environments do not apply to type %q", cfg.Type)
		}
		return
	}

	if len(cfg.Environments) == 0 {
		v.addf("environments", "required section is missing for type %q", cfg.Type)
		return
	}

	for _, key := range []string{EnvDevelopment, EnvProduction} {
		env, ok := cfg.Environments[key]
		if !ok {
			v.addf("environments."+key, "required environment is missing")
			continue
		}
		v.checkEnvironment(cfg, key, env)
	}

	keys := make([]string, 0, len(cfg.Environments))
	for key := range cfg.Environments {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if key != EnvDevelopment && key != EnvProduction {
			v.addf("environments."+key, "unknown environment (expected development or production)")
		}
	}
}

func (v *validator) checkEnvironment(cfg *Config, key string, env EnvironmentConfig) {
	prefix := "environments." + key

	if env.Enabled {
		switch env.Trigger.Type {
		case TriggerPush:
			v.require(prefix+".trigger.branch", env.Trigger.Branch)
		case TriggerTag:
			v.require(prefix+".trigger.tag_pattern", env.Trigger.TagPattern)
		case "":
			v.addf(prefix+".trigger.type", "required field is missing")
		default:
			v.addf(prefix+".trigger.type", "must be %q or %q, got %q",
				TriggerPush, TriggerTag, env.Trigger.Type)
		}
	}

	if env.Deployment.Enabled {
		v.require(prefix+".deployment.ecs_cluster", env.Deployment.ECSCluster)
		v.require(prefix+".deployment.ecs_service", env.Deployment.ECSService)
		v.require(prefix+".deployment.ecs_task_definition", env.Deployment.ECSTaskDefinition)
		v.require(prefix+".deployment.container_name", env.Deployment.ContainerName)
	}

	if env.Migrations != nil {
		if cfg.Type != TypeNodejsServer {
			v.addf(prefix+".migrations", "migrations only apply to type %q", TypeNodejsServer)
		} else if env.Migrations.Enabled {
			v.require(prefix+".migrations.container_name", env.Migrations.ContainerName)
			v.require(prefix+".migrations.versions_file", env.Migrations.VersionsFile)
		}
	}

	if env.Validations != nil && key != EnvProduction {
		v.addf(prefix+".validations", "validations only apply to the production environment")
	}
}

// checkRequires verifies the optional requires constraint against the
// running tool version.
func (v *validator) checkRequires(cfg *Config, toolVersion string) {
	if cfg.Requires == "" {
		return
	}

	constraint, err := semver.NewConstraint(cfg.Requires)
	if err != nil {
		v.addf("requires", "invalid version constraint %q: %v", cfg.Requires, err)
		return
	}

	if toolVersion == "" || toolVersion == "dev" {
		return
	}
	current, err := semver.NewVersion(toolVersion)
	if err != nil {
		// Unparseable build version; treat like a dev build.
		return
	}
	if !constraint.Check(current) {
		v.addf("requires", "generator version %s does not satisfy constraint %q",
			toolVersion, cfg.Requires)
	}
}
