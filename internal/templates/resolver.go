// Package templates supplies default file content for entries that carry no
// inline block.
//
// Content comes from catalogs keyed either by a full file name ("page.tsx",
// ".env.local") or by an extension (".ts"). Resolution is an explicit ordered
// Chain of strategies; the first one with an opinion wins.
package templates

import (
	"path"
	"strings"
)

// Resolver returns template text for a target path. ok is false when the
// resolver has no opinion about the path.
type Resolver interface {
	Resolve(target string) (body string, ok bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(target string) (string, bool)

func (f ResolverFunc) Resolve(target string) (string, bool) { return f(target) }

// Source is a keyed template catalog. Keys are file names or extensions.
type Source interface {
	Lookup(key string) (string, bool)
}

// Chain consults resolvers in order and returns the first hit.
type Chain []Resolver

func (c Chain) Resolve(target string) (string, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if body, ok := r.Resolve(target); ok {
			return body, true
		}
	}
	return "", false
}

// baseName returns the last element of a slash or OS separated path.
func baseName(target string) string {
	target = strings.ReplaceAll(target, "\\", "/")
	return path.Base(target)
}

// extension returns the extension of a base name, including the dot.
// Dotfiles without a second dot (".gitignore") have no extension.
func extension(base string) string {
	ext := path.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}

// Named resolves a target by its exact base name.
func Named(src Source) Resolver {
	return ResolverFunc(func(target string) (string, bool) {
		if src == nil {
			return "", false
		}
		return src.Lookup(baseName(target))
	})
}

// ByExtension resolves a target by its extension.
func ByExtension(src Source) Resolver {
	return ResolverFunc(func(target string) (string, bool) {
		if src == nil {
			return "", false
		}
		ext := extension(baseName(target))
		if ext == "" {
			return "", false
		}
		return src.Lookup(ext)
	})
}

// derivedFrom lists, per JavaScript extension, the TypeScript siblings a
// named template may be derived from.
var derivedFrom = map[string][]string{
	".js":  {".tsx", ".ts"},
	".jsx": {".tsx"},
}

// DerivedJS resolves "page.js" from a named "page.tsx" (or "page.ts")
// template in src, with type annotations stripped.
func DerivedJS(src Source) Resolver {
	return ResolverFunc(func(target string) (string, bool) {
		if src == nil {
			return "", false
		}
		base := baseName(target)
		ext := extension(base)
		stem := strings.TrimSuffix(base, ext)
		for _, from := range derivedFrom[ext] {
			if body, ok := src.Lookup(stem + from); ok {
				return StripTypes(body), true
			}
		}
		return "", false
	})
}

// Default builds the standard resolution order: file names across every
// catalog first, then extensions. user may be nil.
func Default(user Source) Chain {
	builtin := Builtin()
	chain := Chain{}
	if user != nil {
		chain = append(chain, Named(user))
	}
	chain = append(chain, Named(builtin))
	if user != nil {
		chain = append(chain, DerivedJS(user))
	}
	chain = append(chain, DerivedJS(builtin))
	if user != nil {
		chain = append(chain, ByExtension(user))
	}
	return append(chain, ByExtension(builtin))
}
