package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validNodejsYAML = `name: myapi
type: nodejs-server
aws:
  region: us-east-1
  ecr_repository: myapi
github:
  org: acme
  repo: myapi
  main_branch: main
environments:
  development:
    enabled: true
    trigger:
      type: push
      branch: develop
    github_environment: development
    deployment:
      enabled: true
      ecs_cluster: myapi-dev
      ecs_service: myapi
      ecs_task_definition: myapi-dev
      container_name: myapi
  production:
    enabled: true
    trigger:
      type: tag
      tag_pattern: "v*"
    deployment:
      enabled: true
      ecs_cluster: myapi-prod
      ecs_service: myapi
      ecs_task_definition: myapi-prod
      container_name: myapi
docker:
  platform: linux/amd64
  nodejs_server:
    base_image: node:20-alpine
    work_dir: /app
    port: 3020
`

func TestParse_ValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(validNodejsYAML))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Name != "myapi" {
		t.Errorf("Name = %q, want %q", cfg.Name, "myapi")
	}
	if cfg.Type != TypeNodejsServer {
		t.Errorf("Type = %q, want %q", cfg.Type, TypeNodejsServer)
	}
	if cfg.AWS.Region != "us-east-1" {
		t.Errorf("AWS.Region = %q, want %q", cfg.AWS.Region, "us-east-1")
	}
	if got := cfg.Environments[EnvDevelopment].Trigger.Branch; got != "develop" {
		t.Errorf("development trigger branch = %q, want %q", got, "develop")
	}
	if got := cfg.Environments[EnvProduction].Trigger.TagPattern; got != "v*" {
		t.Errorf("production tag pattern = %q, want %q", got, "v*")
	}
	if cfg.Docker.NodejsServer == nil {
		t.Fatal("Docker.NodejsServer is nil")
	}
	if cfg.Docker.NodejsServer.Port != 3020 {
		t.Errorf("Port = %d, want 3020", cfg.Docker.NodejsServer.Port)
	}
}

func TestParse_GenerationFlagsDefaultTrue(t *testing.T) {
	cfg, err := Parse([]byte(validNodejsYAML))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if !cfg.Docker.GenerateDockerfile {
		t.Error("GenerateDockerfile should default to true when omitted")
	}
	if !cfg.Docker.GenerateBuildScript {
		t.Error("GenerateBuildScript should default to true when omitted")
	}
}

func TestParse_GenerationFlagsExplicitFalse(t *testing.T) {
	doc := strings.Replace(validNodejsYAML,
		"docker:\n", "docker:\n  generate_dockerfile: false\n", 1)

	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Docker.GenerateDockerfile {
		t.Error("explicit generate_dockerfile: false should be honored")
	}
	if !cfg.Docker.GenerateBuildScript {
		t.Error("omitted generate_build_script should still default to true")
	}
}

func TestParse_ReleaseDefaultsTrue(t *testing.T) {
	doc := validNodejsYAML + "release:\n  prevent_downgrades: false\n"

	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Release == nil {
		t.Fatal("Release is nil")
	}
	if cfg.Release.PreventDowngrades {
		t.Error("explicit prevent_downgrades: false should be honored")
	}
	if !cfg.Release.GenerateScript || !cfg.Release.RequireCleanTree ||
		!cfg.Release.RequireMainBranch || !cfg.Release.VerifyPackageVersion ||
		!cfg.Release.CreateGitHubRelease {
		t.Error("omitted release toggles should default to true")
	}
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	doc := validNodejsYAML + "enviroments: {}\n"

	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("expected error for unknown top-level key, got nil")
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	if _, err := Parse([]byte("")); err == nil {
		t.Fatal("expected error for empty document, got nil")
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		dir := t.TempDir()

		_, err := Load(dir)
		if err == nil {
			t.Fatal("expected error for missing config, got nil")
		}
		var missing *ConfigMissingError
		if !errors.As(err, &missing) {
			t.Fatalf("expected *ConfigMissingError, got %T: %v", err, err)
		}
		if missing.Dir != dir {
			t.Errorf("Dir = %q, want %q", missing.Dir, dir)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ConfigFileName)
		if err := os.WriteFile(path, []byte(validNodejsYAML), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Name != "myapi" {
			t.Errorf("Name = %q, want %q", cfg.Name, "myapi")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ConfigFileName)
		if err := os.WriteFile(path, []byte("name: [unclosed"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := Load(dir); err == nil {
			t.Fatal("expected error for malformed YAML, got nil")
		}
	})
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(dir) {
		t.Error("Exists() = true for empty dir")
	}

	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(dir) {
		t.Error("Exists() = false after writing config")
	}
}
