// Package preconfig loads compiler options from a TOML configuration file,
// in the same style tqw's save-file header parsing uses BurntSushi/toml
// (internal/tqw/tqw.go's toml.Unmarshal of the file's metadata block) —
// here applied to a small, flat options document instead of a save file.
package preconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// File is the on-disk shape of a pregexctl config file:
//
//	minimize = true
//	reset = false
//	allow_infinite = false
//	namespace = "default"
//	verbose = false
//	state_ceiling = 65536
type File struct {
	Minimize      bool   `toml:"minimize"`
	Reset         bool   `toml:"reset"`
	AllowInfinite bool   `toml:"allow_infinite"`
	Namespace     string `toml:"namespace"`
	Verbose       bool   `toml:"verbose"`
	StateCeiling  int    `toml:"state_ceiling"`
}

// Load reads and parses the TOML config file at path. Keys the file does not
// set keep their Default values.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}

	f := Default()
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config: %w", err)
	}

	return f, nil
}

// Default returns the configuration filled with pregexctl's defaults, so a
// missing config file behaves identically to an explicit one that sets
// nothing.
func Default() File {
	return File{
		Minimize:      true,
		Reset:         false,
		AllowInfinite: false,
		Namespace:     "default",
		Verbose:       false,
		StateCeiling:  1 << 16,
	}
}
