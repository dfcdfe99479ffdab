package platform

import (
	"os"
	"runtime"
)

// Chmod applies mode to path, skipping Windows, which has no Unix
// permission bits. The writer uses it to mark generated shell scripts
// executable.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
