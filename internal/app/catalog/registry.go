package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/uniadvisor/internal/pkg/apperrors"
)

// Universities are the supported catalog codes. The model refers to them by index.
var Universities = []string{"MIT", "NYU", "UMASS_BOSTON", "UPENN", "YALE"}

// Registry maps university codes to loaded catalogs
type Registry struct {
	catalogs    map[string]*Catalog
	defaultCode string
}

// NewRegistry builds a registry from already loaded catalogs
func NewRegistry(defaultCode string, catalogs ...*Catalog) *Registry {
	r := &Registry{
		catalogs:    make(map[string]*Catalog, len(catalogs)),
		defaultCode: defaultCode,
	}
	for _, c := range catalogs {
		r.catalogs[c.University()] = c
	}
	return r
}

// LoadRegistry loads <dir>/<CODE>.json for every known university.
// Missing files are skipped; malformed files fail the load.
func LoadRegistry(dir, defaultCode string, lgr zerolog.Logger) (*Registry, error) {
	code, ok := Resolve(defaultCode)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownUniversity, defaultCode)
	}

	r := NewRegistry(code)
	for _, university := range Universities {
		path := filepath.Join(dir, university+".json")
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			lgr.Debug().Str("university", university).Str("path", path).Msg("No catalog file, skipping")
			continue
		}

		c, err := LoadFile(path, university)
		if err != nil {
			return nil, err
		}
		r.catalogs[university] = c
		lgr.Info().Str("university", university).Int("courses", c.Len()).Msg("Catalog loaded")
	}
	return r, nil
}

// Resolve maps a code or display name ("umass boston", "UMass-Boston") to a known code
func Resolve(codeOrName string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(codeOrName))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	for _, code := range Universities {
		if code == normalized {
			return code, true
		}
	}
	return "", false
}

// ByIndex maps the model's numeric university_id to a code
func (r *Registry) ByIndex(index int) (string, error) {
	if index < 0 || index >= len(Universities) {
		return "", fmt.Errorf("%w: index %d", apperrors.ErrUnknownUniversity, index)
	}
	return Universities[index], nil
}

// Get returns the catalog for a code or display name
func (r *Registry) Get(codeOrName string) (*Catalog, error) {
	code, ok := Resolve(codeOrName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownUniversity, codeOrName)
	}
	c, ok := r.catalogs[code]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrCatalogNotLoaded, fmt.Sprintf("No catalog loaded for %s", code))
	}
	return c, nil
}

// Default returns the catalog of the default university
func (r *Registry) Default() (*Catalog, error) {
	return r.Get(r.defaultCode)
}

// DefaultCode returns the default university code
func (r *Registry) DefaultCode() string {
	return r.defaultCode
}

// ForUniversity returns the catalog for a profile's university, falling back to the default
func (r *Registry) ForUniversity(university string) (*Catalog, error) {
	if university != "" {
		if c, err := r.Get(university); err == nil {
			return c, nil
		}
	}
	return r.Default()
}

// Loaded lists the codes with a catalog, in Universities order
func (r *Registry) Loaded() []string {
	codes := []string{}
	for _, code := range Universities {
		if _, ok := r.catalogs[code]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}
