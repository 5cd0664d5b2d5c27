package materialize

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/agentic-research/treegen/internal/tree"
)

// Totals are the entry counts of a structure.
type Totals struct {
	Files int
	Dirs  int
}

// Entries returns Files + Dirs.
func (t Totals) Entries() int { return t.Files + t.Dirs }

// Plan counts the entries Run will visit.
func Plan(root *tree.Node) Totals {
	return Totals{Files: tree.CountFiles(root), Dirs: tree.CountDirs(root)}
}

// Report describes a finished (or cancelled) run. Entries are identified by
// their visit ordinal; the bitmaps hold the ordinals per outcome.
type Report struct {
	// Paths holds the base-relative path of every visited entry, by ordinal.
	Paths []string

	Dirs    *roaring.Bitmap // directories created
	Files   *roaring.Bitmap // files written
	Skipped *roaring.Bitmap // existing files left untouched

	// Cancelled is set when the run stopped before visiting every entry.
	Cancelled bool

	// Warnings holds non-fatal content problems, such as
	// *content.ValidationError.
	Warnings []error
}

func newReport() *Report {
	return &Report{
		Dirs:    roaring.New(),
		Files:   roaring.New(),
		Skipped: roaring.New(),
	}
}

func (r *Report) visit(path string) uint32 {
	r.Paths = append(r.Paths, path)
	return uint32(len(r.Paths) - 1)
}

// Touched returns the ordinals of every entry that was created or skipped.
func (r *Report) Touched() *roaring.Bitmap {
	return roaring.Or(roaring.Or(r.Dirs, r.Files), r.Skipped)
}

// Select returns the paths whose ordinals are in set, in visit order.
func (r *Report) Select(set *roaring.Bitmap) []string {
	out := make([]string, 0, set.GetCardinality())
	it := set.Iterator()
	for it.HasNext() {
		out = append(out, r.Paths[it.Next()])
	}
	return out
}

// Counts summarizes the report for run history.
func (r *Report) Counts() (files, dirs, skipped int) {
	return int(r.Files.GetCardinality()), int(r.Dirs.GetCardinality()), int(r.Skipped.GetCardinality())
}
