// Package plan decides which artifacts a project configuration produces and
// builds the variable map each one is rendered with. Planning is pure: the
// same configuration always yields the same specs in the same order.
package plan
