package project

// ConfigFileName is the well-known per-project configuration file name.
const ConfigFileName = "shipgen.yaml"

// Project type constants for the type discriminator field.
const (
	TypeNodejsServer  = "nodejs-server"
	TypeNextjsWebapp  = "nextjs-webapp"
	TypeKnexMigration = "knex-migration"
)

// ValidTypes contains all valid project type values.
var ValidTypes = []string{
	TypeNodejsServer,
	TypeNextjsWebapp,
	TypeKnexMigration,
}

// Environment keys recognized in the environments section, and their short
// names used in generated artifact text.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// ShortEnvName maps an environment key to its short form (dev/prod).
func ShortEnvName(env string) string {
	switch env {
	case EnvDevelopment:
		return "dev"
	case EnvProduction:
		return "prod"
	}
	return env
}

// Config is the root configuration for one project. It is read from
// shipgen.yaml and never mutated by the generation pipeline.
type Config struct {
	Name           string `yaml:"name" json:"name"`
	Type           string `yaml:"type" json:"type"`
	RepositoryPath string `yaml:"repository_path,omitempty" json:"repository_path,omitempty"`

	// Requires is an optional semver constraint on the generator's own
	// version, e.g. ">= 1.2.0".
	Requires string `yaml:"requires,omitempty" json:"requires,omitempty"`

	AWS    AWSConfig    `yaml:"aws" json:"aws"`
	GitHub GitHubConfig `yaml:"github" json:"github"`

	// Environments is keyed by "development"/"production". Absent for
	// knex-migration projects, which have no environment split.
	Environments map[string]EnvironmentConfig `yaml:"environments,omitempty" json:"environments,omitempty"`

	Docker  DockerConfig   `yaml:"docker" json:"docker"`
	Release *ReleaseConfig `yaml:"release,omitempty" json:"release,omitempty"`

	// raw holds the source document when the Config came from Parse or
	// Load. The validator's schema layer runs against it; it stays empty
	// for configs constructed programmatically (tests).
	raw []byte
}

// AWSConfig holds the AWS coordinates artifacts are generated for.
type AWSConfig struct {
	Region        string `yaml:"region" json:"region"`
	ECRRepository string `yaml:"ecr_repository" json:"ecr_repository"`
}

// GitHubConfig holds the GitHub coordinates of the project repository.
type GitHubConfig struct {
	Org        string `yaml:"org" json:"org"`
	Repo       string `yaml:"repo" json:"repo"`
	MainBranch string `yaml:"main_branch" json:"main_branch"`
}

// EnvironmentConfig describes one deployment environment.
type EnvironmentConfig struct {
	Enabled           bool              `yaml:"enabled" json:"enabled"`
	Trigger           TriggerConfig     `yaml:"trigger" json:"trigger"`
	GitHubEnvironment string            `yaml:"github_environment,omitempty" json:"github_environment,omitempty"`
	Deployment        DeploymentConfig  `yaml:"deployment" json:"deployment"`
	Migrations        *MigrationsConfig `yaml:"migrations,omitempty" json:"migrations,omitempty"`
	BuildArgs         []string          `yaml:"build_args,omitempty" json:"build_args,omitempty"`

	// Validations is only meaningful for the production environment.
	Validations *ValidationsConfig `yaml:"validations,omitempty" json:"validations,omitempty"`
}

// TriggerConfig describes what starts the workflow for an environment.
type TriggerConfig struct {
	Type       string `yaml:"type" json:"type"` // "push" or "tag"
	Branch     string `yaml:"branch,omitempty" json:"branch,omitempty"`
	TagPattern string `yaml:"tag_pattern,omitempty" json:"tag_pattern,omitempty"`
}

// Trigger type constants.
const (
	TriggerPush = "push"
	TriggerTag  = "tag"
)

// DeploymentConfig holds the ECS deployment target for an environment.
type DeploymentConfig struct {
	Enabled           bool   `yaml:"enabled" json:"enabled"`
	ECSCluster        string `yaml:"ecs_cluster,omitempty" json:"ecs_cluster,omitempty"`
	ECSService        string `yaml:"ecs_service,omitempty" json:"ecs_service,omitempty"`
	ECSTaskDefinition string `yaml:"ecs_task_definition,omitempty" json:"ecs_task_definition,omitempty"`
	ContainerName     string `yaml:"container_name,omitempty" json:"container_name,omitempty"`
}

// MigrationsConfig describes the database migration init container. Only
// meaningful for nodejs-server projects.
type MigrationsConfig struct {
	Enabled       bool   `yaml:"enabled" json:"enabled"`
	ContainerName string `yaml:"container_name,omitempty" json:"container_name,omitempty"`
	VersionsFile  string `yaml:"versions_file,omitempty" json:"versions_file,omitempty"`
}

// ValidationsConfig toggles the pre-deploy verification steps in the
// production workflow.
type ValidationsConfig struct {
	VerifyVersion     bool `yaml:"verify_version" json:"verify_version"`
	VerifyBranch      bool `yaml:"verify_branch" json:"verify_branch"`
	VerifyImageExists bool `yaml:"verify_image_exists" json:"verify_image_exists"`
}

// DockerConfig holds Docker generation settings. Exactly one of the
// type-specific sub-objects is populated, matching Config.Type.
type DockerConfig struct {
	GenerateDockerfile  bool   `yaml:"generate_dockerfile" json:"generate_dockerfile"`
	GenerateBuildScript bool   `yaml:"generate_build_script" json:"generate_build_script"`
	Platform            string `yaml:"platform,omitempty" json:"platform,omitempty"`

	NodejsServer  *NodeServerDocker `yaml:"nodejs_server,omitempty" json:"nodejs_server,omitempty"`
	NextjsWebapp  *NextjsDocker     `yaml:"nextjs_webapp,omitempty" json:"nextjs_webapp,omitempty"`
	KnexMigration *KnexDocker       `yaml:"knex_migration,omitempty" json:"knex_migration,omitempty"`
}

// dockerConfigDoc mirrors DockerConfig with pointer generation flags so
// omitted keys can be told apart from explicit false.
type dockerConfigDoc struct {
	GenerateDockerfile  *bool             `yaml:"generate_dockerfile"`
	GenerateBuildScript *bool             `yaml:"generate_build_script"`
	Platform            string            `yaml:"platform"`
	NodejsServer        *NodeServerDocker `yaml:"nodejs_server"`
	NextjsWebapp        *NextjsDocker     `yaml:"nextjs_webapp"`
	KnexMigration       *KnexDocker       `yaml:"knex_migration"`
}

// UnmarshalYAML applies the default-true policy for omitted generation
// flags: a project that declares a docker section gets a Dockerfile and
// build script unless it opts out.
func (d *DockerConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var doc dockerConfigDoc
	if err := unmarshal(&doc); err != nil {
		return err
	}
	d.GenerateDockerfile = boolOr(doc.GenerateDockerfile, true)
	d.GenerateBuildScript = boolOr(doc.GenerateBuildScript, true)
	d.Platform = doc.Platform
	d.NodejsServer = doc.NodejsServer
	d.NextjsWebapp = doc.NextjsWebapp
	d.KnexMigration = doc.KnexMigration
	return nil
}

// NodeServerDocker holds Dockerfile settings for nodejs-server projects.
type NodeServerDocker struct {
	BaseImage       string `yaml:"base_image" json:"base_image"`
	WorkDir         string `yaml:"work_dir" json:"work_dir"`
	Port            int    `yaml:"port" json:"port"`
	HealthCheckPath string `yaml:"health_check_path,omitempty" json:"health_check_path,omitempty"`
	HasBlockchain   bool   `yaml:"has_blockchain,omitempty" json:"has_blockchain,omitempty"`
}

// NextjsDocker holds Dockerfile settings for nextjs-webapp projects.
type NextjsDocker struct {
	BaseImage string `yaml:"base_image" json:"base_image"`
	WorkDir   string `yaml:"work_dir" json:"work_dir"`
	Port      int    `yaml:"port" json:"port"`
}

// KnexDocker holds Dockerfile settings for knex-migration projects.
type KnexDocker struct {
	BaseImage string `yaml:"base_image" json:"base_image"`
	WorkDir   string `yaml:"work_dir" json:"work_dir"`
}

// ReleaseConfig holds release-script policy toggles. Every toggle defaults
// to true when the section is present but the key is omitted. Absent for
// knex-migration projects.
type ReleaseConfig struct {
	GenerateScript       bool `yaml:"generate_script" json:"generate_script"`
	RequireCleanTree     bool `yaml:"require_clean_tree" json:"require_clean_tree"`
	RequireMainBranch    bool `yaml:"require_main_branch" json:"require_main_branch"`
	VerifyPackageVersion bool `yaml:"verify_package_version" json:"verify_package_version"`
	PreventDowngrades    bool `yaml:"prevent_downgrades" json:"prevent_downgrades"`
	CreateGitHubRelease  bool `yaml:"create_github_release" json:"create_github_release"`
}

// releaseConfigDoc mirrors ReleaseConfig with pointer fields so omitted
// keys can be told apart from explicit false.
type releaseConfigDoc struct {
	GenerateScript       *bool `yaml:"generate_script"`
	RequireCleanTree     *bool `yaml:"require_clean_tree"`
	RequireMainBranch    *bool `yaml:"require_main_branch"`
	VerifyPackageVersion *bool `yaml:"verify_package_version"`
	PreventDowngrades    *bool `yaml:"prevent_downgrades"`
	CreateGitHubRelease  *bool `yaml:"create_github_release"`
}

// UnmarshalYAML applies the default-true policy for omitted release keys.
func (r *ReleaseConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var doc releaseConfigDoc
	if err := unmarshal(&doc); err != nil {
		return err
	}
	r.GenerateScript = boolOr(doc.GenerateScript, true)
	r.RequireCleanTree = boolOr(doc.RequireCleanTree, true)
	r.RequireMainBranch = boolOr(doc.RequireMainBranch, true)
	r.VerifyPackageVersion = boolOr(doc.VerifyPackageVersion, true)
	r.PreventDowngrades = boolOr(doc.PreventDowngrades, true)
	r.CreateGitHubRelease = boolOr(doc.CreateGitHubRelease, true)
	return nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// DockerSection returns the type-specific docker sub-object matching the
// project type, or nil if it is not populated.
func (c *Config) DockerSection() any {
	switch c.Type {
	case TypeNodejsServer:
		if c.Docker.NodejsServer != nil {
			return c.Docker.NodejsServer
		}
	case TypeNextjsWebapp:
		if c.Docker.NextjsWebapp != nil {
			return c.Docker.NextjsWebapp
		}
	case TypeKnexMigration:
		if c.Docker.KnexMigration != nil {
			return c.Docker.KnexMigration
		}
	}
	return nil
}
