package project

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Starter builds a default configuration for a new project of the given
// type, suitable for writing as the initial shipgen.yaml.
func Starter(name, projectType string) (*Config, error) {
	cfg := &Config{
		Name: name,
		Type: projectType,
		AWS: AWSConfig{
			Region:        "us-east-1",
			ECRRepository: name,
		},
		GitHub: GitHubConfig{
			Org:        "my-org",
			Repo:       name,
			MainBranch: "main",
		},
	}

	switch projectType {
	case TypeNodejsServer:
		cfg.Docker = DockerConfig{
			GenerateDockerfile:  true,
			GenerateBuildScript: true,
			Platform:            "linux/amd64",
			NodejsServer: &NodeServerDocker{
				BaseImage:       "node:20-alpine",
				WorkDir:         "/app",
				Port:            3000,
				HealthCheckPath: "/health",
			},
		}
		cfg.Environments = starterEnvironments(name)
		cfg.Environments[EnvDevelopment] = withMigrations(cfg.Environments[EnvDevelopment], name)
		cfg.Environments[EnvProduction] = withMigrations(cfg.Environments[EnvProduction], name)
		cfg.Release = starterRelease()

	case TypeNextjsWebapp:
		cfg.Docker = DockerConfig{
			GenerateDockerfile:  true,
			GenerateBuildScript: true,
			Platform:            "linux/amd64",
			NextjsWebapp: &NextjsDocker{
				BaseImage: "node:20-alpine",
				WorkDir:   "/app",
				Port:      3000,
			},
		}
		cfg.Environments = starterEnvironments(name)
		cfg.Release = starterRelease()

	case TypeKnexMigration:
		cfg.Docker = DockerConfig{
			GenerateDockerfile:  true,
			GenerateBuildScript: true,
			Platform:            "linux/amd64",
			KnexMigration: &KnexDocker{
				BaseImage: "node:20-alpine",
				WorkDir:   "/app",
			},
		}

	default:
		return nil, fmt.Errorf("unrecognized project type %q (expected one of %v)", projectType, ValidTypes)
	}

	return cfg, nil
}

// Marshal serializes a configuration as shipgen.yaml content.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling configuration: %w", err)
	}
	return data, nil
}

func starterEnvironments(name string) map[string]EnvironmentConfig {
	return map[string]EnvironmentConfig{
		EnvDevelopment: {
			Enabled: true,
			Trigger: TriggerConfig{
				Type:   TriggerPush,
				Branch: "develop",
			},
			GitHubEnvironment: "development",
			Deployment: DeploymentConfig{
				Enabled:           true,
				ECSCluster:        name + "-dev",
				ECSService:        name,
				ECSTaskDefinition: name + "-dev",
				ContainerName:     name,
			},
		},
		EnvProduction: {
			Enabled: true,
			Trigger: TriggerConfig{
				Type:       TriggerTag,
				TagPattern: "v*",
			},
			GitHubEnvironment: "production",
			Deployment: DeploymentConfig{
				Enabled:           true,
				ECSCluster:        name + "-prod",
				ECSService:        name,
				ECSTaskDefinition: name + "-prod",
				ContainerName:     name,
			},
			Validations: &ValidationsConfig{
				VerifyVersion:     true,
				VerifyBranch:      true,
				VerifyImageExists: true,
			},
		},
	}
}

func withMigrations(env EnvironmentConfig, name string) EnvironmentConfig {
	env.Migrations = &MigrationsConfig{
		Enabled:       false,
		ContainerName: name + "-migrations",
		VersionsFile:  "migrations/versions.json",
	}
	return env
}

func starterRelease() *ReleaseConfig {
	return &ReleaseConfig{
		GenerateScript:       true,
		RequireCleanTree:     true,
		RequireMainBranch:    true,
		VerifyPackageVersion: true,
		PreventDowngrades:    true,
		CreateGitHubRelease:  true,
	}
}
