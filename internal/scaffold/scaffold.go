// Package scaffold ships ready-made Next.js project diagrams.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"sort"
)

//go:embed diagrams/*.txt
var diagrams embed.FS

// ErrUnknown is returned by Lookup for names that are not registered.
var ErrUnknown = errors.New("unknown scaffold")

// Scaffold is a named project diagram.
type Scaffold struct {
	Name    string
	Label   string
	Detail  string
	Diagram string
}

var registry = map[string]Scaffold{
	"basic": {
		Label:  "Basic Next.js App",
		Detail: "Simple app with home page and basic components",
	},
	"fullstack": {
		Label:  "Full-stack Next.js App",
		Detail: "Includes API routes, authentication, database setup",
	},
	"dashboard": {
		Label:  "Next.js Dashboard",
		Detail: "Admin dashboard with charts and data tables",
	},
	"blog": {
		Label:  "Next.js Blog",
		Detail: "Blog template with MDX support",
	},
}

// Names returns the registered scaffold names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the scaffold called name with its diagram loaded.
func Lookup(name string) (Scaffold, error) {
	s, ok := registry[name]
	if !ok {
		return Scaffold{}, fmt.Errorf("%w %q (available: %v)", ErrUnknown, name, Names())
	}
	data, err := diagrams.ReadFile("diagrams/" + name + ".txt")
	if err != nil {
		return Scaffold{}, fmt.Errorf("read scaffold %s: %w", name, err)
	}
	s.Name = name
	s.Diagram = string(data)
	return s, nil
}

// All returns every scaffold in name order.
func All() []Scaffold {
	out := make([]Scaffold, 0, len(registry))
	for _, name := range Names() {
		s, err := Lookup(name)
		if err != nil {
			panic(err)
		}
		out = append(out, s)
	}
	return out
}
