// Package writer persists rendered artifacts. Content is buffered into a
// Batch and written in one commit so a failed render never leaves a
// half-updated output directory behind.
package writer
