// Package seed loads the keyword vocabulary from a YAML file.
package seed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	keyworddomain "dogwalk-app-go/internal/domain/keyword"
)

type File struct {
	Keywords []Entry `yaml:"keywords"`
}

type Entry struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

func LoadFile(path string) ([]keyworddomain.Keyword, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes the document and checks every entry. Unknown YAML fields are rejected.
func Load(r io.Reader) ([]keyworddomain.Keyword, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	keywords := make([]keyworddomain.Keyword, 0, len(file.Keywords))
	for i, entry := range file.Keywords {
		category := keyworddomain.Category(entry.Category)
		if entry.Name == "" {
			return nil, fmt.Errorf("keywords[%d]: name is required", i)
		}
		if !category.Valid() {
			return nil, fmt.Errorf("keywords[%d] %q: unknown category %q", i, entry.Name, entry.Category)
		}
		keywords = append(keywords, keyworddomain.Keyword{Name: entry.Name, Category: category})
	}
	return keywords, nil
}
