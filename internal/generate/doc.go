// Package generate runs the full pipeline for one project: validate the
// configuration, plan the artifacts, render every template, and commit the
// output. It powers the "shipgen generate" command.
package generate
