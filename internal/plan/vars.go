package plan

import (
	"strings"

	"github.com/shipgen-labs/shipgen/internal/project"
	"github.com/shipgen-labs/shipgen/internal/render"
)

// baseVars holds the keys every artifact's template can reference.
func baseVars(cfg *project.Config) render.Vars {
	return render.Vars{
		"PROJECT_NAME":   cfg.Name,
		"PROJECT_TYPE":   cfg.Type,
		"AWS_REGION":     cfg.AWS.Region,
		"ECR_REPOSITORY": cfg.AWS.ECRRepository,
		"GITHUB_ORG":     cfg.GitHub.Org,
		"GITHUB_REPO":    cfg.GitHub.Repo,
		"MAIN_BRANCH":    cfg.GitHub.MainBranch,
		"PLATFORM":       cfg.Docker.Platform,
	}
}

// workflowVars flattens one environment into the variable map for its
// deployment workflow. Disabled optional sections force their dependent
// string fields empty so stale text cannot leak into output.
func workflowVars(cfg *project.Config, envName string, env project.EnvironmentConfig) render.Vars {
	vars := baseVars(cfg)

	vars["ENV_NAME"] = envName
	vars["ENV_SHORT"] = project.ShortEnvName(envName)
	vars["GITHUB_ENVIRONMENT"] = env.GitHubEnvironment

	vars["TRIGGER_PUSH"] = env.Trigger.Type == project.TriggerPush
	vars["TRIGGER_TAG"] = env.Trigger.Type == project.TriggerTag
	vars["TRIGGER_BRANCH"] = env.Trigger.Branch
	vars["TRIGGER_TAG_PATTERN"] = env.Trigger.TagPattern
	vars["TAG_PREFIX"] = tagPrefix(env.Trigger.TagPattern)

	vars["DEPLOY_ENABLED"] = env.Deployment.Enabled
	if env.Deployment.Enabled {
		vars["ECS_CLUSTER"] = env.Deployment.ECSCluster
		vars["ECS_SERVICE"] = env.Deployment.ECSService
		vars["ECS_TASK_DEFINITION"] = env.Deployment.ECSTaskDefinition
		vars["CONTAINER_NAME"] = env.Deployment.ContainerName
	} else {
		vars["ECS_CLUSTER"] = ""
		vars["ECS_SERVICE"] = ""
		vars["ECS_TASK_DEFINITION"] = ""
		vars["CONTAINER_NAME"] = ""
	}

	migrationsEnabled := env.Migrations != nil && env.Migrations.Enabled
	vars["MIGRATIONS_ENABLED"] = migrationsEnabled
	if migrationsEnabled {
		vars["MIGRATIONS_CONTAINER"] = env.Migrations.ContainerName
		vars["VERSIONS_FILE"] = env.Migrations.VersionsFile
	} else {
		vars["MIGRATIONS_CONTAINER"] = ""
		vars["VERSIONS_FILE"] = ""
	}

	vars["BUILD_ARGS"] = append([]string(nil), env.BuildArgs...)
	vars["HAS_BUILD_ARGS"] = len(env.BuildArgs) > 0

	verifyVersion, verifyBranch, verifyImage := false, false, false
	if envName == project.EnvProduction && env.Validations != nil {
		verifyVersion = env.Validations.VerifyVersion
		verifyBranch = env.Validations.VerifyBranch
		verifyImage = env.Validations.VerifyImageExists
	}
	vars["VERIFY_VERSION"] = verifyVersion
	vars["VERIFY_BRANCH"] = verifyBranch
	vars["VERIFY_IMAGE_EXISTS"] = verifyImage

	return vars
}

// dockerfileVars builds the variable map for the type-specific Dockerfile.
func dockerfileVars(cfg *project.Config) render.Vars {
	vars := baseVars(cfg)

	switch cfg.Type {
	case project.TypeNodejsServer:
		d := cfg.Docker.NodejsServer
		vars["BASE_IMAGE"] = d.BaseImage
		vars["WORK_DIR"] = d.WorkDir
		vars["PORT"] = d.Port
		vars["HEALTH_CHECK_PATH"] = d.HealthCheckPath
		vars["HAS_HEALTH_CHECK"] = d.HealthCheckPath != ""
		vars["HAS_BLOCKCHAIN"] = d.HasBlockchain
	case project.TypeNextjsWebapp:
		d := cfg.Docker.NextjsWebapp
		vars["BASE_IMAGE"] = d.BaseImage
		vars["WORK_DIR"] = d.WorkDir
		vars["PORT"] = d.Port
	case project.TypeKnexMigration:
		d := cfg.Docker.KnexMigration
		vars["BASE_IMAGE"] = d.BaseImage
		vars["WORK_DIR"] = d.WorkDir
	}

	return vars
}

// buildScriptVars builds the variable map for build-image.sh. Build args
// come from every environment in fixed order (development first), since the
// image is built once and promoted.
func buildScriptVars(cfg *project.Config) render.Vars {
	vars := baseVars(cfg)

	var args []string
	seen := map[string]bool{}
	for _, envName := range []string{project.EnvDevelopment, project.EnvProduction} {
		env, ok := cfg.Environments[envName]
		if !ok {
			continue
		}
		for _, a := range env.BuildArgs {
			if !seen[a] {
				seen[a] = true
				args = append(args, a)
			}
		}
	}
	vars["BUILD_ARGS"] = args
	vars["HAS_BUILD_ARGS"] = len(args) > 0

	return vars
}

// releaseScriptVars builds the variable map for scripts/release-prod.sh.
func releaseScriptVars(cfg *project.Config) render.Vars {
	vars := baseVars(cfg)
	policy := releasePolicy(cfg)

	prefix := "v"
	if env, ok := cfg.Environments[project.EnvProduction]; ok {
		if p := tagPrefix(env.Trigger.TagPattern); p != "" {
			prefix = p
		}
	}

	vars["TAG_PREFIX"] = prefix
	vars["REQUIRE_CLEAN_TREE"] = policy.RequireCleanTree
	vars["REQUIRE_MAIN_BRANCH"] = policy.RequireMainBranch
	vars["VERIFY_PACKAGE_VERSION"] = policy.VerifyPackageVersion
	vars["PREVENT_DOWNGRADES"] = policy.PreventDowngrades
	vars["CREATE_GITHUB_RELEASE"] = policy.CreateGitHubRelease

	return vars
}

// secretsSnippetVars builds the variable map for gh-cli-snippets.sh, with
// one entry per configured environment in fixed order.
func secretsSnippetVars(cfg *project.Config) render.Vars {
	vars := baseVars(cfg)

	var envs []any
	for _, envName := range []string{project.EnvDevelopment, project.EnvProduction} {
		env, ok := cfg.Environments[envName]
		if !ok {
			continue
		}
		envs = append(envs, map[string]any{
			"NAME":               envName,
			"SHORT":              project.ShortEnvName(envName),
			"GITHUB_ENVIRONMENT": env.GitHubEnvironment,
			"BUILD_ARGS":         append([]string(nil), env.BuildArgs...),
			"HAS_BUILD_ARGS":     len(env.BuildArgs) > 0,
		})
	}
	vars["ENVIRONMENTS"] = envs

	return vars
}

// tagPrefix derives the literal prefix of a glob-style tag pattern, e.g.
// "v*" yields "v". An empty pattern yields "".
func tagPrefix(pattern string) string {
	if i := strings.IndexAny(pattern, "*?["); i >= 0 {
		return pattern[:i]
	}
	return pattern
}

// releasePolicy returns the effective release policy: an absent release
// section means every toggle defaults to true.
func releasePolicy(cfg *project.Config) project.ReleaseConfig {
	if cfg.Release != nil {
		return *cfg.Release
	}
	return project.ReleaseConfig{
		GenerateScript:       true,
		RequireCleanTree:     true,
		RequireMainBranch:    true,
		VerifyPackageVersion: true,
		PreventDowngrades:    true,
		CreateGitHubRelease:  true,
	}
}
