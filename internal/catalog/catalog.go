// Package catalog loads the fixed book catalog served by the shop.
// The default catalog is embedded in the binary; an alternate YAML file
// with the same layout can be supplied at startup.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/bookshop/internal/model"
)

//go:embed books.yaml
var defaultCatalog []byte

type document struct {
	Books []model.Book `yaml:"books"`
}

// Default returns the embedded catalog.
func Default() ([]model.Book, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog document from path.
func LoadFile(path string) ([]model.Book, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

// Load returns the catalog at path, or the embedded one when path is empty.
func Load(path string) ([]model.Book, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes a YAML catalog document. ISBNs must be present and unique.
func Parse(b []byte) ([]model.Book, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Books) == 0 {
		return nil, errors.New("catalog is empty")
	}
	seen := make(map[string]struct{}, len(doc.Books))
	for i, bk := range doc.Books {
		if bk.ISBN == "" {
			return nil, fmt.Errorf("catalog entry %d: missing isbn", i)
		}
		if _, dup := seen[bk.ISBN]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate isbn %s", i, bk.ISBN)
		}
		seen[bk.ISBN] = struct{}{}
	}
	return doc.Books, nil
}
