package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnknownCategory is returned when a category identifier is not
	// registered in the catalog.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrEmptySelection is returned when a run is requested with no
	// categories selected.
	ErrEmptySelection = errors.New("no categories selected")

	// ErrIndexOutOfRange is returned by RemoveCustomPaths for a position
	// outside the custom path list.
	ErrIndexOutOfRange = errors.New("custom path index out of range")
)

// AddResult reports the outcome of AddCustomPath.
type AddResult int

const (
	AddAdded AddResult = iota
	AddAlreadyPresent
	AddInvalid
)

func (r AddResult) String() string {
	switch r {
	case AddAdded:
		return "added"
	case AddAlreadyPresent:
		return "already present"
	default:
		return "invalid"
	}
}

// RemoveResult reports the outcome of RemoveCustomPaths.
type RemoveResult int

const (
	RemoveRemoved RemoveResult = iota
	RemoveNothingSelected
)

// ClearResult reports the outcome of ClearCustomPaths.
type ClearResult int

const (
	ClearCleared ClearResult = iota
	ClearAlreadyEmpty
)

// Resolution is what a category resolves to: either a list of roots to
// walk or the Recycle Bin sentinel.
type Resolution struct {
	Paths []string
	Trash bool
}

// Catalog maps category names to filesystem roots. It is safe for
// concurrent use; only the custom path list is mutable.
type Catalog struct {
	mu         sync.RWMutex
	categories []Category
	index      map[string]int
	custom     []string
}

// NewCatalog builds a catalog from the given categories. Later duplicates
// of a name are ignored.
func NewCatalog(categories ...Category) *Catalog {
	c := &Catalog{index: make(map[string]int, len(categories))}
	for _, cat := range categories {
		if _, dup := c.index[cat.Name]; dup {
			continue
		}
		cat.Paths = append([]string(nil), cat.Paths...)
		c.index[cat.Name] = len(c.categories)
		c.categories = append(c.categories, cat)
	}
	return c
}

// Categories returns a copy of the registered categories in display order.
func (c *Catalog) Categories() []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		cat.Paths = append([]string(nil), cat.Paths...)
		if cat.Custom {
			cat.Paths = append([]string(nil), c.custom...)
		}
		out[i] = cat
	}
	return out
}

// Category returns the category registered under name.
func (c *Catalog) Category(name string) (Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[name]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Lookup maps a category name or its alias (case-insensitive) to the
// registered name.
func (c *Catalog) Lookup(nameOrAlias string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.index[nameOrAlias]; ok {
		return nameOrAlias, true
	}
	for _, cat := range c.categories {
		if cat.Alias != "" && strings.EqualFold(cat.Alias, nameOrAlias) {
			return cat.Name, true
		}
	}
	return "", false
}

// Resolve returns the roots for a category, or the trash sentinel. The
// returned slice is a snapshot and safe to keep across catalog mutations.
func (c *Catalog) Resolve(name string) (Resolution, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[name]
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}

	cat := c.categories[i]
	switch {
	case cat.Trash:
		return Resolution{Trash: true}, nil
	case cat.Custom:
		return Resolution{Paths: append([]string(nil), c.custom...)}, nil
	default:
		return Resolution{Paths: append([]string(nil), cat.Paths...)}, nil
	}
}

// ─── Custom Paths ────────────────────────────────────────────────────────────

// normalizePath strips trailing separators so "C:/a" and "C:/a/" compare
// equal. A path made only of separators is kept as-is, and a drive root
// keeps one separator since a bare "D:" names the drive's working
// directory.
func normalizePath(path string) string {
	trimmed := strings.TrimRight(path, "/"+string(os.PathSeparator))
	switch {
	case trimmed == "":
		return path
	case isDriveLetter(trimmed) && len(path) > len(trimmed):
		return path[:len(trimmed)+1]
	}
	return trimmed
}

// isDriveLetter reports whether s is a volume like "D:".
func isDriveLetter(s string) bool {
	if len(s) != 2 || s[1] != ':' {
		return false
	}
	c := s[0] | 0x20
	return c >= 'a' && c <= 'z'
}

// AddCustomPath appends a directory to the custom path list unless an
// equal path (after normalization) is already present.
func (c *Catalog) AddCustomPath(path string) AddResult {
	if strings.TrimSpace(path) == "" {
		return AddInvalid
	}
	path = normalizePath(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.custom {
		if p == path {
			return AddAlreadyPresent
		}
	}
	c.custom = append(c.custom, path)
	return AddAdded
}

// RemoveCustomPaths removes the entries at the given positions. Positions
// are validated first and removed from the highest down, so removing
// several entries at once never shifts an index that is still pending.
func (c *Catalog) RemoveCustomPaths(indices []int) (RemoveResult, error) {
	if len(indices) == 0 {
		return RemoveNothingSelected, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[int]bool, len(indices))
	var order []int
	for _, i := range indices {
		if i < 0 || i >= len(c.custom) {
			return RemoveNothingSelected, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(c.custom))
		}
		if !seen[i] {
			seen[i] = true
			order = append(order, i)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(order)))
	for _, i := range order {
		c.custom = append(c.custom[:i], c.custom[i+1:]...)
	}
	return RemoveRemoved, nil
}

// ClearCustomPaths empties the custom path list.
func (c *Catalog) ClearCustomPaths() ClearResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.custom) == 0 {
		return ClearAlreadyEmpty
	}
	c.custom = c.custom[:0]
	return ClearCleared
}

// CustomPaths returns a copy of the custom path list.
func (c *Catalog) CustomPaths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string{}, c.custom...)
}

// ─── Selection ───────────────────────────────────────────────────────────────

// Selection is the ordered set of category names chosen for one run.
type Selection []string

// NewSelection validates operator input at the boundary: it must be
// non-empty and every entry must name (or alias) a registered category.
// Duplicates are dropped; first-seen order is kept.
func (c *Catalog) NewSelection(names ...string) (Selection, error) {
	if len(names) == 0 {
		return nil, ErrEmptySelection
	}

	seen := make(map[string]bool, len(names))
	sel := make(Selection, 0, len(names))
	for _, n := range names {
		name, ok := c.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, n)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		sel = append(sel, name)
	}
	return sel, nil
}

// All returns a selection of every registered category.
func (c *Catalog) All() Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sel := make(Selection, 0, len(c.categories))
	for _, cat := range c.categories {
		sel = append(sel, cat.Name)
	}
	return sel
}

// Defaults returns the categories that are selected by default.
func (c *Catalog) Defaults() Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var sel Selection
	for _, cat := range c.categories {
		if cat.Default {
			sel = append(sel, cat.Name)
		}
	}
	return sel
}

// HighRisk returns the high-risk categories in sel, in selection order.
func (c *Catalog) HighRisk(sel Selection) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var risky []string
	for _, name := range sel {
		i, ok := c.index[name]
		if ok && c.categories[i].HighRisk() {
			risky = append(risky, name)
		}
	}
	return risky
}
