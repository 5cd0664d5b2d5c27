package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"
)

// builtin/named holds templates keyed by file name, builtin/ext holds the
// per-extension fallbacks. The file name is the catalog key.
//
//go:embed all:builtin
var builtinFS embed.FS

var loadBuiltin = sync.OnceValue(func() map[string]string {
	entries := make(map[string]string)
	for _, dir := range []string{"builtin/named", "builtin/ext"} {
		files, err := fs.ReadDir(builtinFS, dir)
		if err != nil {
			panic(fmt.Sprintf("templates: read %s: %v", dir, err))
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			data, err := builtinFS.ReadFile(path.Join(dir, f.Name()))
			if err != nil {
				panic(fmt.Sprintf("templates: read %s: %v", f.Name(), err))
			}
			entries[f.Name()] = string(data)
		}
	}
	return entries
})

// Builtin returns a fresh catalog holding the embedded Next.js templates and
// extension defaults. Callers may modify it freely.
func Builtin() *Catalog {
	return NewCatalog(loadBuiltin())
}
