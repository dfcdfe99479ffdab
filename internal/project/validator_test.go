package project

import (
	"errors"
	"strings"
	"testing"
)

// testConfig builds a complete, valid in-memory configuration of the given
// type. Tests mutate the result to produce the violation under test.
func testConfig(projectType string) *Config {
	cfg, err := Starter("myapi", projectType)
	if err != nil {
		panic(err)
	}
	return cfg
}

func validate(t *testing.T, cfg *Config) error {
	t.Helper()
	_, err := Validate(cfg, Options{ToolVersion: "dev", SkipPathChecks: true})
	return err
}

// fieldPaths extracts the violation paths from a validation error.
func fieldPaths(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	paths := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		paths[i] = f.Path
	}
	return paths
}

func assertHasPath(t *testing.T, paths []string, want string) {
	t.Helper()
	for _, p := range paths {
		if p == want {
			return
		}
	}
	t.Errorf("expected a violation at %q, got %v", want, paths)
}

func TestValidate_AcceptsValidConfigs(t *testing.T) {
	for _, typ := range ValidTypes {
		t.Run(typ, func(t *testing.T) {
			if err := validate(t, testConfig(typ)); err != nil {
				t.Errorf("valid %s config rejected: %v", typ, err)
			}
		})
	}
}

func TestValidate_MissingCommonFields(t *testing.T) {
	cfg := testConfig(TypeNodejsServer)
	cfg.Name = ""
	cfg.AWS.Region = ""
	cfg.GitHub.MainBranch = ""

	paths := fieldPaths(t, validate(t, cfg))
	assertHasPath(t, paths, "name")
	assertHasPath(t, paths, "aws.region")
	assertHasPath(t, paths, "github.main_branch")
	if len(paths) != 3 {
		t.Errorf("expected exactly 3 violations, got %v", paths)
	}
}

func TestValidate_UnknownType(t *testing.T) {
	cfg := testConfig(TypeNodejsServer)
	cfg.Type = "rails-app"

	paths := fieldPaths(t, validate(t, cfg))
	assertHasPath(t, paths, "type")
}

func TestValidate_Docker(t *testing.T) {
	t.Run("missing section for type", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		cfg.Docker.NodejsServer = nil

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "docker.nodejs_server")
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		cfg.Docker.NodejsServer.Port = 0

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "docker.nodejs_server.port")
		if len(paths) != 1 {
			t.Errorf("expected exactly 1 violation, got %v", paths)
		}
	})

	t.Run("sub-object for another type", func(t *testing.T) {
		cfg := testConfig(TypeNextjsWebapp)
		cfg.Docker.KnexMigration = &KnexDocker{BaseImage: "node:20-alpine", WorkDir: "/app"}

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "docker.knex_migration")
	})

	t.Run("knex requires base image and work dir only", func(t *testing.T) {
		cfg := testConfig(TypeKnexMigration)
		cfg.Docker.KnexMigration.BaseImage = ""

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "docker.knex_migration.base_image")
		if len(paths) != 1 {
			t.Errorf("expected exactly 1 violation, got %v", paths)
		}
	})
}

func TestValidate_Environments(t *testing.T) {
	t.Run("required for server types", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		cfg.Environments = nil

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "environments")
	})

	t.Run("forbidden for knex", func(t *testing.T) {
		cfg := testConfig(TypeKnexMigration)
		cfg.Environments = map[string]EnvironmentConfig{EnvDevelopment: {}}

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "environments")
	})

	t.Run("missing production", func(t *testing.T) {
		cfg := testConfig(TypeNextjsWebapp)
		delete(cfg.Environments, EnvProduction)

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "environments.production")
	})

	t.Run("unknown environment key", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		cfg.Environments["staging"] = EnvironmentConfig{}

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "environments.staging")
	})
}

func TestValidate_Triggers(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*TriggerConfig)
		wantPath string
	}{
		{
			"push without branch",
			func(tr *TriggerConfig) { tr.Branch = "" },
			"environments.development.trigger.branch",
		},
		{
			"missing type",
			func(tr *TriggerConfig) { *tr = TriggerConfig{} },
			"environments.development.trigger.type",
		},
		{
			"unknown type",
			func(tr *TriggerConfig) { tr.Type = "cron" },
			"environments.development.trigger.type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(TypeNodejsServer)
			env := cfg.Environments[EnvDevelopment]
			tt.mutate(&env.Trigger)
			cfg.Environments[EnvDevelopment] = env

			paths := fieldPaths(t, validate(t, cfg))
			assertHasPath(t, paths, tt.wantPath)
		})
	}

	t.Run("tag without pattern", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		env := cfg.Environments[EnvProduction]
		env.Trigger.TagPattern = ""
		cfg.Environments[EnvProduction] = env

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "environments.production.trigger.tag_pattern")
	})

	t.Run("disabled environment skips trigger checks", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		env := cfg.Environments[EnvDevelopment]
		env.Enabled = false
		env.Trigger = TriggerConfig{}
		cfg.Environments[EnvDevelopment] = env

		if err := validate(t, cfg); err != nil {
			t.Errorf("disabled environment should not require a trigger: %v", err)
		}
	})
}

func TestValidate_Deployment(t *testing.T) {
	cfg := testConfig(TypeNodejsServer)
	env := cfg.Environments[EnvDevelopment]
	env.Deployment.ECSCluster = ""
	env.Deployment.ECSService = ""
	cfg.Environments[EnvDevelopment] = env

	paths := fieldPaths(t, validate(t, cfg))
	assertHasPath(t, paths, "environments.development.deployment.ecs_cluster")
	assertHasPath(t, paths, "environments.development.deployment.ecs_service")

	t.Run("disabled deployment skips target checks", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		env := cfg.Environments[EnvDevelopment]
		env.Deployment = DeploymentConfig{Enabled: false}
		cfg.Environments[EnvDevelopment] = env

		if err := validate(t, cfg); err != nil {
			t.Errorf("disabled deployment should not require a target: %v", err)
		}
	})
}

func TestValidate_Migrations(t *testing.T) {
	t.Run("only for nodejs-server", func(t *testing.T) {
		cfg := testConfig(TypeNextjsWebapp)
		env := cfg.Environments[EnvDevelopment]
		env.Migrations = &MigrationsConfig{Enabled: true}
		cfg.Environments[EnvDevelopment] = env

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "environments.development.migrations")
	})

	t.Run("enabled requires container and versions file", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		env := cfg.Environments[EnvDevelopment]
		env.Migrations = &MigrationsConfig{Enabled: true}
		cfg.Environments[EnvDevelopment] = env

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "environments.development.migrations.container_name")
		assertHasPath(t, paths, "environments.development.migrations.versions_file")
	})

	t.Run("disabled stub is fine", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		env := cfg.Environments[EnvDevelopment]
		env.Migrations = &MigrationsConfig{Enabled: false}
		cfg.Environments[EnvDevelopment] = env

		if err := validate(t, cfg); err != nil {
			t.Errorf("disabled migrations stub rejected: %v", err)
		}
	})
}

func TestValidate_ValidationsOnlyInProduction(t *testing.T) {
	cfg := testConfig(TypeNodejsServer)
	env := cfg.Environments[EnvDevelopment]
	env.Validations = &ValidationsConfig{VerifyVersion: true}
	cfg.Environments[EnvDevelopment] = env

	paths := fieldPaths(t, validate(t, cfg))
	assertHasPath(t, paths, "environments.development.validations")
}

func TestValidate_ReleaseForbiddenForKnex(t *testing.T) {
	cfg := testConfig(TypeKnexMigration)
	cfg.Release = starterRelease()

	paths := fieldPaths(t, validate(t, cfg))
	assertHasPath(t, paths, "release")
}

func TestValidate_Requires(t *testing.T) {
	t.Run("invalid constraint", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		cfg.Requires = "not a constraint"

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "requires")
	})

	t.Run("unsatisfied constraint", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		cfg.Requires = ">= 2.0.0"

		_, err := Validate(cfg, Options{ToolVersion: "1.4.0", SkipPathChecks: true})
		paths := fieldPaths(t, err)
		assertHasPath(t, paths, "requires")
	})

	t.Run("satisfied constraint", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		cfg.Requires = ">= 1.2.0"

		if _, err := Validate(cfg, Options{ToolVersion: "1.4.0", SkipPathChecks: true}); err != nil {
			t.Errorf("satisfied constraint rejected: %v", err)
		}
	})

	t.Run("dev build skips the check", func(t *testing.T) {
		cfg := testConfig(TypeNodejsServer)
		cfg.Requires = ">= 99.0.0"

		if err := validate(t, cfg); err != nil {
			t.Errorf("dev build should skip the requires check: %v", err)
		}
	})
}

func TestValidate_RepositoryPathWarning(t *testing.T) {
	cfg := testConfig(TypeNodejsServer)
	cfg.RepositoryPath = "/nonexistent/path/to/repo"

	warnings, err := Validate(cfg, Options{ToolVersion: "dev"})
	if err != nil {
		t.Fatalf("missing repository_path must warn, not fail: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "repository_path") {
		t.Errorf("expected one repository_path warning, got %v", warnings)
	}
}

func TestValidate_AccumulatesAllViolations(t *testing.T) {
	cfg := testConfig(TypeNodejsServer)
	cfg.Name = ""
	cfg.Docker.NodejsServer.Port = 0
	env := cfg.Environments[EnvDevelopment]
	env.Trigger.Branch = ""
	cfg.Environments[EnvDevelopment] = env

	err := validate(t, cfg)
	paths := fieldPaths(t, err)
	assertHasPath(t, paths, "name")
	assertHasPath(t, paths, "docker.nodejs_server.port")
	assertHasPath(t, paths, "environments.development.trigger.branch")

	msg := err.Error()
	if !strings.Contains(msg, "3 problems") {
		t.Errorf("error should count the problems, got: %s", msg)
	}
}

func TestValidate_SchemaLayer(t *testing.T) {
	t.Run("bad name pattern", func(t *testing.T) {
		doc := strings.Replace(validNodejsYAML, "name: myapi", "name: My API", 1)
		cfg, err := Parse([]byte(doc))
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "name")
	})

	t.Run("port out of range", func(t *testing.T) {
		doc := strings.Replace(validNodejsYAML, "port: 3020", "port: 70000", 1)
		cfg, err := Parse([]byte(doc))
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}

		paths := fieldPaths(t, validate(t, cfg))
		assertHasPath(t, paths, "docker.nodejs_server.port")
	})

	t.Run("missing port reported once", func(t *testing.T) {
		doc := strings.Replace(validNodejsYAML, "    port: 3020\n", "", 1)
		cfg, err := Parse([]byte(doc))
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}

		paths := fieldPaths(t, validate(t, cfg))
		count := 0
		for _, p := range paths {
			if p == "docker.nodejs_server.port" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("missing port reported %d times, want 1 (%v)", count, paths)
		}
	})
}
