//go:build !unix

package materialize

import (
	"fmt"
	"os"
)

func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".treegen-probe-*")
	if err != nil {
		return fmt.Errorf("base directory %s is not writable: %w", dir, err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}
