package docs

import (
	_ "embed"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/craftui/craftui/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// RedirectSlug resolves to the first published component.
const RedirectSlug = "components"

type catalogFile struct {
	Components []ComponentDoc `yaml:"components"`
}

// Catalog is the ordered set of component docs.
type Catalog struct {
	docs []ComponentDoc
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.NewCatalogError("decode catalog", errors.Join(errors.ErrCatalogCorrupted, err))
	}

	seen := make(map[string]bool, len(f.Components))
	for i := range f.Components {
		d := &f.Components[i]
		d.Slug = strings.ToLower(strings.TrimSpace(d.Slug))
		if d.Slug == "" || d.Name == "" {
			return nil, errors.NewCatalogError("entry needs a slug and a name", errors.ErrCatalogCorrupted).WithSlug(d.Slug)
		}
		if d.Slug == RedirectSlug {
			return nil, errors.NewCatalogError("slug is reserved", errors.ErrCatalogCorrupted).WithSlug(d.Slug)
		}
		if seen[d.Slug] {
			return nil, errors.NewCatalogError("duplicate slug", errors.ErrCatalogCorrupted).WithSlug(d.Slug)
		}
		seen[d.Slug] = true
	}

	slices.SortStableFunc(f.Components, func(a, b ComponentDoc) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return strings.Compare(a.Name, b.Name)
	})
	return &Catalog{docs: f.Components}, nil
}

// LoadFile reads a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewCatalogError("read catalog", err)
	}
	return Parse(data)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(embedded)
	})
	return defaultCatalog, defaultErr
}

// All returns every doc, sorted by order then name.
func (c *Catalog) All() []ComponentDoc {
	return slices.Clone(c.docs)
}

// Published returns the docs with status Available.
func (c *Catalog) Published() []ComponentDoc {
	var out []ComponentDoc
	for _, d := range c.docs {
		if d.Published() {
			out = append(out, d)
		}
	}
	return out
}

// Get finds a doc of any status by slug.
func (c *Catalog) Get(slug string) (ComponentDoc, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, d := range c.docs {
		if d.Slug == slug {
			return d, true
		}
	}
	return ComponentDoc{}, false
}

// Resolve routes a requested slug to a published page. The slug is
// matched case-insensitively and "components" redirects to the first
// published doc.
func (c *Catalog) Resolve(slug string) (ComponentDoc, error) {
	normalized := strings.ToLower(strings.TrimSpace(slug))
	if d, ok := c.Get(normalized); ok && d.Published() {
		return d, nil
	}
	if normalized == RedirectSlug {
		if pub := c.Published(); len(pub) > 0 {
			return pub[0], nil
		}
		return ComponentDoc{}, errors.NewCatalogError("nothing to redirect to", errors.ErrCatalogEmpty).WithSlug(normalized)
	}
	return ComponentDoc{}, errors.NewNotFoundError("component", normalized).WithCause(errors.ErrDocNotFound)
}

// TOCBySlug maps each doc to its table of contents.
func (c *Catalog) TOCBySlug() map[string][]TOCItem {
	out := make(map[string][]TOCItem, len(c.docs))
	for i := range c.docs {
		out[c.docs[i].Slug] = c.docs[i].TOC()
	}
	return out
}
