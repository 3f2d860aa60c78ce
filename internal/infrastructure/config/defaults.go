package config

import (
	"embed"
	"io/fs"
)

//go:embed defaults
var defaultsFS embed.FS

// DefaultFS returns the embedded tuning and levels, rooted so that
// "tuning.yaml" and "levels/<name>.yaml" resolve directly.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		// The directory is part of the binary; Sub only fails on a bad pattern.
		panic(err)
	}
	return sub
}

// DefaultTuning returns the embedded tuning.
func DefaultTuning() (*Tuning, error) {
	data, err := fs.ReadFile(DefaultFS(), tuningFile)
	if err != nil {
		return nil, err
	}
	return parseTuning(data, &Tuning{})
}
