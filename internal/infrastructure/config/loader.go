package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	tuningFile = "tuning.yaml"
	levelsDir  = "levels"
)

// ErrLevelNotFound is returned when no YAML or TMX file exists for a level.
var ErrLevelNotFound = errors.New("config: level not found")

// Loader loads tuning and levels through an fs.FS. Files missing from the
// loader's filesystem fall back to the embedded defaults.
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// NewEmbeddedLoader creates a loader that only sees the embedded defaults.
func NewEmbeddedLoader() *Loader {
	return NewFSLoader(DefaultFS(), "")
}

// BasePath returns the directory the loader reads from, if any.
func (l *Loader) BasePath() string {
	return l.basePath
}

// TuningPath returns the on-disk path of the tuning file.
func (l *Loader) TuningPath() string {
	return path.Join(l.basePath, tuningFile)
}

// LoadTuning loads tuning.yaml layered over the embedded defaults.
// Search order: loader filesystem -> embedded default.
func (l *Loader) LoadTuning() (*Tuning, error) {
	base, err := DefaultTuning()
	if err != nil {
		return nil, fmt.Errorf("failed to load default tuning: %w", err)
	}

	data, err := fs.ReadFile(l.fsys, tuningFile)
	if errors.Is(err, fs.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", tuningFile, err)
	}

	cfg, err := parseTuning(data, base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", tuningFile, err)
	}
	return cfg, nil
}

// tuningEntries captures the named entries of a tuning file so each can be
// decoded over its current value instead of from zero.
type tuningEntries struct {
	Collision struct {
		Profiles map[string]yaml.Node `yaml:"profiles"`
	} `yaml:"collision"`
	Characters map[string]yaml.Node `yaml:"characters"`
	Enemies    map[string]yaml.Node `yaml:"enemies"`
}

// parseTuning decodes data over base and validates the result. Entries of
// the named maps (profiles, characters, enemies) are merged field by field,
// so an override only needs the keys it changes.
func parseTuning(data []byte, base *Tuning) (*Tuning, error) {
	profiles := maps.Clone(base.Collision.Profiles)
	characters := maps.Clone(base.Characters)
	enemies := maps.Clone(base.Enemies)

	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, err
	}
	var entries tuningEntries
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	var err error
	if base.Collision.Profiles, err = mergeEntries(profiles, entries.Collision.Profiles); err != nil {
		return nil, fmt.Errorf("profile %w", err)
	}
	if base.Characters, err = mergeEntries(characters, entries.Characters); err != nil {
		return nil, fmt.Errorf("character %w", err)
	}
	if base.Enemies, err = mergeEntries(enemies, entries.Enemies); err != nil {
		return nil, fmt.Errorf("enemy %w", err)
	}

	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// mergeEntries decodes each node over the matching entry of defaults.
func mergeEntries[T any](defaults map[string]T, nodes map[string]yaml.Node) (map[string]T, error) {
	if defaults == nil {
		defaults = make(map[string]T, len(nodes))
	}
	for name, node := range nodes {
		entry := defaults[name]
		if err := node.Decode(&entry); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		defaults[name] = entry
	}
	return defaults, nil
}

// LoadLevel loads levels/<name>.yaml or levels/<name>.tmx and validates it.
// Search order: loader filesystem (yaml, then tmx) -> embedded levels.
func (l *Loader) LoadLevel(name string) (*LevelConfig, error) {
	for _, fsys := range []fs.FS{l.fsys, DefaultFS()} {
		cfg, err := loadLevelFrom(fsys, name)
		if errors.Is(err, ErrLevelNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, name)
}

func loadLevelFrom(fsys fs.FS, name string) (*LevelConfig, error) {
	yamlPath := path.Join(levelsDir, name+".yaml")
	data, err := fs.ReadFile(fsys, yamlPath)
	switch {
	case err == nil:
		cfg, err := ParseLevel(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
		}
		if cfg.ID == "" {
			cfg.ID = name
		}
		return cfg, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}

	tmxPath := path.Join(levelsDir, name+".tmx")
	if _, err := fs.Stat(fsys, tmxPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to stat level %s: %w", name, err)
	}
	cfg, err := LoadTMX(fsys, tmxPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", name, err)
	}
	cfg.ID = name
	return cfg, nil
}

// ParseLevel decodes and validates a YAML level.
func ParseLevel(data []byte) (*LevelConfig, error) {
	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LevelNames lists the levels available to this loader, embedded ones
// included, sorted and without duplicates.
func (l *Loader) LevelNames() ([]string, error) {
	seen := make(map[string]bool)
	for _, fsys := range []fs.FS{l.fsys, DefaultFS()} {
		entries, err := fs.ReadDir(fsys, levelsDir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list levels: %w", err)
		}
		for _, e := range entries {
			name := e.Name()
			ext := path.Ext(name)
			if e.IsDir() || (ext != ".yaml" && ext != ".tmx") {
				continue
			}
			seen[strings.TrimSuffix(name, ext)] = true
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
