package plan

import (
	"fmt"

	"github.com/shipgen-labs/shipgen/internal/project"
	"github.com/shipgen-labs/shipgen/internal/render"
)

// Kind identifies one artifact category.
type Kind string

// Artifact kinds, in the fixed emission order: workflows first, then
// docker, then scripts, then snippets.
const (
	KindWorkflowDevelopment Kind = "workflow-development"
	KindWorkflowProduction  Kind = "workflow-production"
	KindDockerfile          Kind = "dockerfile"
	KindBuildScript         Kind = "build-script"
	KindReleaseScript       Kind = "release-script"
	KindSecretsSnippet      Kind = "secrets-snippet"
)

// kindOrder fixes the order specs appear in a plan so repeated runs produce
// byte-identical side effects.
var kindOrder = []Kind{
	KindWorkflowDevelopment,
	KindWorkflowProduction,
	KindDockerfile,
	KindBuildScript,
	KindReleaseScript,
	KindSecretsSnippet,
}

// Spec describes one artifact to generate. Specs are ephemeral: rebuilt on
// every invocation, never persisted.
type Spec struct {
	Kind         Kind
	TemplatePath string // path into the embedded template FS
	OutputPath   string // path relative to the project output root
	Vars         render.Vars
	Executable   bool
}

// typeKinds declares which artifact kinds each project type supports.
// Workflows, the release script, and the per-environment secrets snippet do
// not apply to knex-migration projects, which have no environment split.
var typeKinds = map[string][]Kind{
	project.TypeNodejsServer: {
		KindWorkflowDevelopment, KindWorkflowProduction,
		KindDockerfile, KindBuildScript, KindReleaseScript, KindSecretsSnippet,
	},
	project.TypeNextjsWebapp: {
		KindWorkflowDevelopment, KindWorkflowProduction,
		KindDockerfile, KindBuildScript, KindReleaseScript, KindSecretsSnippet,
	},
	project.TypeKnexMigration: {
		KindDockerfile, KindBuildScript,
	},
}

// SupportedKinds returns the artifact kinds a project type can produce, in
// emission order.
func SupportedKinds(projectType string) []Kind {
	return typeKinds[projectType]
}

// UnsupportedArtifactError reports a (type, kind) pair with no registered
// template. This signals an incomplete feature implementation, not a user
// mistake, so it fails the whole run.
type UnsupportedArtifactError struct {
	Type string
	Kind Kind
}

func (e *UnsupportedArtifactError) Error() string {
	return fmt.Sprintf("no template registered for artifact %q of project type %q", e.Kind, e.Type)
}

// outputPaths maps each kind to its path under the project output root.
var outputPaths = map[Kind]string{
	KindWorkflowDevelopment: ".github/workflows/deploy-development.yml",
	KindWorkflowProduction:  ".github/workflows/deploy-production.yml",
	KindDockerfile:          "Dockerfile",
	KindBuildScript:         "build-image.sh",
	KindReleaseScript:       "scripts/release-prod.sh",
	KindSecretsSnippet:      "gh-cli-snippets.sh",
}

// executableKinds marks the kinds written with the executable bit set.
var executableKinds = map[Kind]bool{
	KindBuildScript:    true,
	KindReleaseScript:  true,
	KindSecretsSnippet: true,
}
