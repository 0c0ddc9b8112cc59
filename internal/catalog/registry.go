package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultRegistry []byte

// Mode tells the extractor how a category's entries are distributed.
type Mode string

const (
	// ModeSource categories are rebuilt from generator source text.
	ModeSource Mode = "source"

	// ModeSnapshot categories are read from pre-baked JSON snapshot indices.
	ModeSnapshot Mode = "snapshot"
)

// DefaultIndexVar is the running integer compared in branch guards.
const DefaultIndexVar = "ii"

var (
	// ErrInvalidRegistry indicates a registry document that cannot be used.
	ErrInvalidRegistry = errors.New("invalid category registry")

	// ErrUnknownCategory indicates a category name missing from the registry.
	ErrUnknownCategory = errors.New("unknown category")
)

// Companion describes a per-id snapshot file that supplies the description.
type Companion struct {
	// Field is read as Object.<Field>.DefaultText from <folder>/<id>.json.
	Field string `yaml:"field"`
}

// Category is a fixed, named partition of game content.
type Category struct {
	Name           string     `yaml:"name"`
	Description    string     `yaml:"description"`
	Mode           Mode       `yaml:"mode"`
	Files          []string   `yaml:"files"`     // relative to the data generator dir, globs allowed
	Folder         string     `yaml:"folder"`    // snapshot folder under the dump asset dir
	IndexVar       string     `yaml:"index_var"` // source only
	Companion      *Companion `yaml:"companion"`
	SearchPatterns []string   `yaml:"search_patterns"`
}

// Registry is the ordered, read-only set of categories.
type Registry struct {
	categories []Category
	byName     map[string]int
}

type registryFile struct {
	Categories []Category `yaml:"categories"`
}

// Default returns the registry embedded in the binary.
func Default() (*Registry, error) {
	return Parse(defaultRegistry)
}

// Load reads a registry document from disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a registry document.
func Parse(data []byte) (*Registry, error) {
	var doc registryFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegistry, err)
	}

	r := &Registry{byName: make(map[string]int, len(doc.Categories))}
	var problems []string
	for _, c := range doc.Categories {
		c.Name = strings.TrimSpace(c.Name)
		if c.Mode == ModeSource && c.IndexVar == "" {
			c.IndexVar = DefaultIndexVar
		}
		if msg := validateCategory(c); msg != "" {
			problems = append(problems, msg)
			continue
		}
		if _, dup := r.byName[c.Name]; dup {
			problems = append(problems, fmt.Sprintf("duplicate category %q", c.Name))
			continue
		}
		r.byName[c.Name] = len(r.categories)
		r.categories = append(r.categories, c)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w:\n  - %s", ErrInvalidRegistry, strings.Join(problems, "\n  - "))
	}
	if len(r.categories) == 0 {
		return nil, fmt.Errorf("%w: no categories defined", ErrInvalidRegistry)
	}
	return r, nil
}

func validateCategory(c Category) string {
	if c.Name == "" {
		return "category with empty name"
	}
	switch c.Mode {
	case ModeSource:
		if len(c.Files) == 0 {
			return fmt.Sprintf("source category %q has no files", c.Name)
		}
	case ModeSnapshot:
		if c.Folder == "" {
			return fmt.Sprintf("snapshot category %q has no folder", c.Name)
		}
		if c.Companion != nil && c.Companion.Field == "" {
			return fmt.Sprintf("snapshot category %q has a companion without a field", c.Name)
		}
	default:
		return fmt.Sprintf("category %q has unknown mode %q (valid: source, snapshot)", c.Name, c.Mode)
	}
	return ""
}

// Get looks up a category by name.
func (r *Registry) Get(name string) (Category, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Category{}, false
	}
	return r.categories[i], true
}

// Lookup is Get with an ErrUnknownCategory error naming the valid choices.
func (r *Registry) Lookup(name string) (Category, error) {
	c, ok := r.Get(name)
	if !ok {
		return Category{}, fmt.Errorf("%w '%s' (valid: %s)", ErrUnknownCategory, name, strings.Join(r.Names(), ", "))
	}
	return c, nil
}

// Names returns category names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.categories))
	for i, c := range r.categories {
		names[i] = c.Name
	}
	return names
}

// All returns a copy of every category in registry order.
func (r *Registry) All() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}
