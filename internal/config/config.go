// Package config loads ambient Options for an embedding host: the
// indenter's step size and whether/where to memoize compiled grammars. It is
// entirely optional - every other package in this module takes its
// parameters directly, the way the teacher's own libraries (tunascript,
// ictiobus) do; this package exists only for hosts that prefer to source
// those parameters from a TOML file instead of hardcoding them, the way the
// teacher's TQW format loads game world data.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Options is the ambient configuration a host may load once at startup.
type Options struct {
	// Step is the indenter's column increment (spec §4.6's "step").
	Step int `toml:"step"`

	// Cache controls the optional compiled-grammar cache (package gcache).
	Cache CacheOptions `toml:"cache"`
}

// CacheOptions controls the compiled-grammar cache.
type CacheOptions struct {
	// Enabled turns on content-addressed caching of compiled grammars.
	Enabled bool `toml:"enabled"`

	// Dir is where a host that chooses to persist cache entries to disk
	// would keep them. gcache itself never opens a file - it only
	// serializes to and deserializes from a caller-supplied io.Writer/
	// io.Reader - so this field is informational for the host, not
	// consumed internally.
	Dir string `toml:"dir"`
}

// Default returns the Options in effect when a host loads none of its own:
// a step of 2 (spec §8 Scenario D's fixture) and caching off.
func Default() Options {
	return Options{Step: 2}
}

// Load parses TOML-encoded configuration bytes into an Options, starting
// from Default() so a partial file only overrides the fields it mentions.
func Load(data []byte) (Options, error) {
	opts := Default()
	if err := toml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse config: %w", err)
	}
	return opts, nil
}
