//go:build unix

package materialize

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// checkWritable fails fast when the process cannot create entries in dir.
func checkWritable(dir string) error {
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("base directory %s is not writable: %w", dir, err)
	}
	return nil
}
