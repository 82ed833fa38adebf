package table

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var embedded embed.FS

const defaultsName = "defaults"

// ErrUnknownTable is returned when no definition file exists for a name
var ErrUnknownTable = errors.New("unknown table")

// Loader reads table YAML and merges defaults -> table
// Files in Dir shadow the embedded set, name by name
type Loader struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*Definition
}

// NewLoader creates a loader; dir may be empty to use embedded tables only
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[string]*Definition),
	}
}

// Load returns the validated definition for name
// The result is shared; callers must not mutate it
func (l *Loader) Load(name string) (*Definition, error) {
	l.mu.RLock()
	if def, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return def, nil
	}
	l.mu.RUnlock()

	base, err := l.read(defaultsName)
	if err != nil && !errors.Is(err, ErrUnknownTable) {
		return nil, fmt.Errorf("read defaults: %w", err)
	}
	own, err := l.read(name)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", name, err)
	}

	// Decoding both documents into one struct merges: the table overrides
	// scalars and nested fields it sets, and replaces whole lists
	var def Definition
	if base != nil {
		if err := decodeStrict(base, &def); err != nil {
			return nil, fmt.Errorf("decode defaults: %w", err)
		}
	}
	if err := decodeStrict(own, &def); err != nil {
		return nil, fmt.Errorf("decode table %s: %w", name, err)
	}
	if def.Name == "" {
		def.Name = name
	}

	applyDefaults(&def)
	if err := Validate(&def); err != nil {
		return nil, fmt.Errorf("table %s: %w", name, err)
	}

	l.mu.Lock()
	l.cache[name] = &def
	l.mu.Unlock()
	return &def, nil
}

// Names lists loadable tables, sorted
func (l *Loader) Names() []string {
	seen := make(map[string]struct{})
	collect := func(fsys fs.FS, dir string) {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			n := e.Name()
			if e.IsDir() || !strings.HasSuffix(n, ".yaml") {
				continue
			}
			if n = strings.TrimSuffix(n, ".yaml"); n != defaultsName {
				seen[n] = struct{}{}
			}
		}
	}
	collect(embedded, "tables")
	if l.dir != "" {
		collect(os.DirFS(l.dir), ".")
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Invalidate clears the cache so edited files are re-read
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.cache = make(map[string]*Definition)
	l.mu.Unlock()
}

func (l *Loader) read(name string) ([]byte, error) {
	if strings.ContainsAny(name, `/\`) || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	if l.dir != "" {
		b, err := os.ReadFile(filepath.Join(l.dir, name+".yaml"))
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	b, err := embedded.ReadFile("tables/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return b, nil
}

func decodeStrict(b []byte, out *Definition) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	return dec.Decode(out)
}
