package materialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/agentic-research/treegen/internal/tree"
)

// ErrBaseMissing is returned by ToDir when the base directory does not exist
// and CreateIntermediateDirectories is off.
var ErrBaseMissing = errors.New("base directory does not exist")

// ToDir materializes root under basePath on the local disk. An empty
// structure is a no-op that touches nothing, not even basePath.
func ToDir(ctx context.Context, root *tree.Node, basePath string, opts Options) (*Report, error) {
	if root.IsEmpty() {
		return newReport(), nil
	}
	if err := prepareBase(basePath, opts.Settings.CreateIntermediateDirectories); err != nil {
		return nil, err
	}
	return New(osfs.New(basePath), opts).Run(ctx, root)
}

func prepareBase(basePath string, create bool) error {
	info, err := os.Stat(basePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if !create {
			return fmt.Errorf("%w: %s", ErrBaseMissing, basePath)
		}
		if err := os.MkdirAll(basePath, dirPerm); err != nil {
			return fmt.Errorf("create base directory: %w", err)
		}
	case err != nil:
		return fmt.Errorf("stat base directory: %w", err)
	case !info.IsDir():
		return fmt.Errorf("base %s is not a directory", basePath)
	}
	return checkWritable(basePath)
}
