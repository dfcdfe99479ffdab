// Package platform isolates OS-specific behavior such as Unix permission
// bits so the rest of the codebase stays portable.
package platform
