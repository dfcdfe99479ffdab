// Package project handles loading and validation of per-project shipgen.yaml
// configuration. It defines the configuration model for the three supported
// archetypes (nodejs-server, nextjs-webapp, knex-migration) and provides
// JSON Schema validation plus per-type semantic checks.
package project
