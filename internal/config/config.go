// Package config loads recast.toml, the optional per-project settings file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// FileName is the settings file looked up from the working directory
// upwards.
const FileName = "recast.toml"

// Config is the decoded settings file. Missing keys keep their defaults.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Output  OutputConfig  `toml:"output"`
	Minify  MinifyConfig  `toml:"minify"`
	Render  RenderConfig  `toml:"render"`

	// Path is the file the settings came from; empty for defaults.
	Path string `toml:"-"`
}

type ProjectConfig struct {
	Name         string   `toml:"name"`
	Sources      []string `toml:"sources"`
	RootType     string   `toml:"root_type"`
	GlobalUsings []string `toml:"global_usings"`
	MaxAliasHops int      `toml:"max_alias_hops"`
	Prelude      bool     `toml:"prelude"`
	// Strict turns resolution diagnostics into a failed run.
	Strict bool `toml:"strict"`
}

type OutputConfig struct {
	Backend      string `toml:"backend"`
	Path         string `toml:"path"`
	SplitDir     string `toml:"split_dir"`
	Indent       int    `toml:"indent"`
	UseTabs      bool   `toml:"use_tabs"`
	BraceStyle   string `toml:"brace_style"`
	DropComments bool   `toml:"drop_comments"`
	Cache        bool   `toml:"cache"`
}

type MinifyConfig struct {
	RenameLocals bool `toml:"rename_locals"`
}

type RenderConfig struct {
	// Jobs bounds parallel builds and renders; 0 means one per CPU.
	Jobs int `toml:"jobs"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Project: ProjectConfig{
			Sources:      []string{"."},
			RootType:     "System.Object",
			MaxAliasHops: 2,
			Prelude:      true,
		},
		Output: OutputConfig{
			Backend:    "restyle",
			Indent:     4,
			BraceStyle: "allman",
		},
	}
}

// Find walks up from startDir to locate recast.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, errors.Wrap(err, "resolve start directory")
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, errors.Wrapf(err, "stat %q", candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s: parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.Newf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Discover loads the nearest recast.toml above startDir, or the defaults
// when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Output.Indent < 0 || c.Output.Indent > 16:
		return errors.Newf("[output].indent must be between 0 and 16, got %d", c.Output.Indent)
	case c.Render.Jobs < 0:
		return errors.Newf("[render].jobs must not be negative, got %d", c.Render.Jobs)
	case c.Project.MaxAliasHops < 0:
		return errors.Newf("[project].max_alias_hops must not be negative, got %d", c.Project.MaxAliasHops)
	case strings.TrimSpace(c.Output.Backend) == "":
		return errors.New("[output].backend must not be empty")
	}
	switch strings.ToLower(c.Output.BraceStyle) {
	case "", "allman", "kr", "k&r":
	default:
		return errors.Newf("[output].brace_style must be allman or kr, got %q", c.Output.BraceStyle)
	}
	return nil
}

// IndentString is the text of one indentation level.
func (c Config) IndentString() string {
	if c.Output.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", c.Output.Indent)
}

// Root is the directory relative paths in the file are resolved against.
func (c Config) Root() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// SourcePaths returns [project].sources resolved against Root.
func (c Config) SourcePaths() []string {
	out := make([]string, 0, len(c.Project.Sources))
	for _, s := range c.Project.Sources {
		if filepath.IsAbs(s) {
			out = append(out, s)
			continue
		}
		out = append(out, filepath.Join(c.Root(), filepath.FromSlash(s)))
	}
	return out
}
