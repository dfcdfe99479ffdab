package project

import (
	"fmt"
	"strings"
)

// ConfigMissingError reports that no shipgen.yaml exists for the project the
// caller implied. It is fatal and instructs the caller to bootstrap first.
type ConfigMissingError struct {
	Dir string
}

func (e *ConfigMissingError) Error() string {
	return fmt.Sprintf("no %s found in %s (run 'shipgen init' to bootstrap a project)",
		ConfigFileName, e.Dir)
}

// FieldError describes one invalid or missing configuration field.
type FieldError struct {
	Path    string // e.g. "docker.nodejs_server.port"
	Message string
}

func (e FieldError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// ValidationError aggregates every violation found in one validation pass,
// so callers can report all problems at once. It is fatal and blocks
// generation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return "invalid configuration: " + e.Fields[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid configuration (%d problems):", len(e.Fields))
	for _, f := range e.Fields {
		b.WriteString("\n  - ")
		b.WriteString(f.String())
	}
	return b.String()
}
