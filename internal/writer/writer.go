package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shipgen-labs/shipgen/internal/platform"
)

// WriteError reports a filesystem failure for one output path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// File is one buffered output file.
type File struct {
	Path       string // relative to the output root
	Content    string
	Executable bool
}

// Batch accumulates rendered files in emission order.
type Batch struct {
	files []File
}

// Add appends a file to the batch.
func (b *Batch) Add(path, content string, executable bool) {
	b.files = append(b.files, File{Path: path, Content: content, Executable: executable})
}

// Files returns the buffered files in the order they were added.
func (b *Batch) Files() []File {
	return b.files
}

// Commit writes every buffered file under root, creating intermediate
// directories as needed. Existing files are overwritten unconditionally:
// this is a regenerate-in-place generator, and callers own any backup
// policy. Scripts get the executable bit.
func (b *Batch) Commit(root string) error {
	for _, f := range b.files {
		target := filepath.Join(root, filepath.FromSlash(f.Path))

		if dir := filepath.Dir(target); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return &WriteError{Path: target, Err: err}
			}
		}

		if err := os.WriteFile(target, []byte(f.Content), 0644); err != nil {
			return &WriteError{Path: target, Err: err}
		}

		if f.Executable {
			if err := platform.Chmod(target, 0755); err != nil {
				return &WriteError{Path: target, Err: err}
			}
		}
	}
	return nil
}
