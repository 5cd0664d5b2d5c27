package templates

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrInvalidKey is returned for catalog keys that cannot name a file or an
// extension.
var ErrInvalidKey = errors.New("invalid template key")

// Catalog is a mutable in-memory Source. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewCatalog returns a catalog holding a copy of entries.
func NewCatalog(entries map[string]string) *Catalog {
	c := &Catalog{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		c.entries[k] = v
	}
	return c
}

// ValidateKey checks that key is a bare file name (".env.local",
// "page.tsx") or an extension (".ts").
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case strings.ContainsAny(key, "/\\"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	case key == "." || key == "..":
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func (c *Catalog) Lookup(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	body, ok := c.entries[key]
	return body, ok
}

// Register adds or overrides a single template.
func (c *Catalog) Register(key, body string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = body
	c.mu.Unlock()
	return nil
}

// Remove deletes a template. It reports whether the key existed.
func (c *Catalog) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Merge registers every entry or, if any key is invalid, none of them.
func (c *Catalog) Merge(entries map[string]string) error {
	for k := range entries {
		if err := ValidateKey(k); err != nil {
			return err
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range entries {
		c.entries[k] = v
	}
	return nil
}

// Keys returns the registered keys in sorted order.
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
