package plan

import (
	"embed"
	"fmt"

	"github.com/shipgen-labs/shipgen/internal/project"
)

//go:embed templates
var templateFS embed.FS

// templateNames maps (project type, artifact kind) to a template resource.
// Type-independent artifacts share a template under common/.
var templateNames = map[string]map[Kind]string{
	project.TypeNodejsServer: {
		KindWorkflowDevelopment: "nodejs-server/workflow-development.yml.tmpl",
		KindWorkflowProduction:  "nodejs-server/workflow-production.yml.tmpl",
		KindDockerfile:          "nodejs-server/Dockerfile.tmpl",
		KindBuildScript:         "common/build-image.sh.tmpl",
		KindReleaseScript:       "common/release-prod.sh.tmpl",
		KindSecretsSnippet:      "common/gh-cli-snippets.sh.tmpl",
	},
	project.TypeNextjsWebapp: {
		KindWorkflowDevelopment: "nextjs-webapp/workflow-development.yml.tmpl",
		KindWorkflowProduction:  "nextjs-webapp/workflow-production.yml.tmpl",
		KindDockerfile:          "nextjs-webapp/Dockerfile.tmpl",
		KindBuildScript:         "common/build-image.sh.tmpl",
		KindReleaseScript:       "common/release-prod.sh.tmpl",
		KindSecretsSnippet:      "common/gh-cli-snippets.sh.tmpl",
	},
	project.TypeKnexMigration: {
		KindDockerfile:  "knex-migration/Dockerfile.tmpl",
		KindBuildScript: "common/build-image.sh.tmpl",
	},
}

// templateName resolves the template resource for a (type, kind) pair. A
// kind the type supports but has no template for is an
// *UnsupportedArtifactError.
func templateName(projectType string, kind Kind) (string, error) {
	name, ok := templateNames[projectType][kind]
	if !ok {
		return "", &UnsupportedArtifactError{Type: projectType, Kind: kind}
	}
	return "templates/" + name, nil
}

// ReadTemplate returns the embedded template content for a spec.
func ReadTemplate(path string) (string, error) {
	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}
	return string(data), nil
}
