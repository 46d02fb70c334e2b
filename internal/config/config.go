// Package config loads vlcrc's settings and key bindings.
//
// The file is YAML, or TOML when its name ends in .toml. Every field is
// optional: a missing file yields the defaults, and bindings in the file
// are laid over the built-in VLC key table.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vlcrc/internal/errors"
	"vlcrc/internal/keys"
	"vlcrc/internal/rc"
	"vlcrc/internal/toggle"
	"vlcrc/pkg/types"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultDialTimeout bounds connection setup unless configured otherwise.
const DefaultDialTimeout = rc.DefaultDialTimeout

// Config represents the application configuration structure.
type Config struct {
	Server string `yaml:"server,omitempty" toml:"server,omitempty"` // HOST:PORT of the RC interface
	Debug  bool   `yaml:"debug" toml:"debug"`                       // Start with debug display on

	Connection struct {
		DialTimeout time.Duration `yaml:"dial_timeout" toml:"dial_timeout"` // 0 disables the bound
		IOTimeout   time.Duration `yaml:"io_timeout" toml:"io_timeout"`     // 0 means wait for the server to close
	} `yaml:"connection" toml:"connection"`

	Log struct {
		File string `yaml:"file,omitempty" toml:"file,omitempty"` // Log destination; logs are discarded without one
		JSON bool   `yaml:"json" toml:"json"`
	} `yaml:"log" toml:"log"`

	Watch bool `yaml:"watch" toml:"watch"` // Reload bindings when the file changes

	// QueryPatterns decide which bindings show their response in the
	// pager when a binding does not say.
	QueryPatterns []string `yaml:"query_patterns" toml:"query_patterns"`

	Toggles  []ToggleConfig `yaml:"toggles,omitempty" toml:"toggles,omitempty"`
	Bindings []Binding      `yaml:"bindings,omitempty" toml:"bindings,omitempty"`
}

// ToggleConfig declares a two-state command.
type ToggleConfig struct {
	Name      string `yaml:"name" toml:"name"`
	Initial   bool   `yaml:"initial" toml:"initial"`
	WhenFalse string `yaml:"when_false" toml:"when_false"`
	WhenTrue  string `yaml:"when_true" toml:"when_true"`
}

// Binding adds a key or replaces a built-in one. Exactly one of Command,
// Commands and Toggle is set.
type Binding struct {
	Key      string   `yaml:"key" toml:"key"`
	Glyph    string   `yaml:"glyph,omitempty" toml:"glyph,omitempty"`
	Label    string   `yaml:"label,omitempty" toml:"label,omitempty"`
	Column   int      `yaml:"column" toml:"column"`
	Command  string   `yaml:"command,omitempty" toml:"command,omitempty"`
	Commands []string `yaml:"commands,omitempty" toml:"commands,omitempty"`
	Toggle   string   `yaml:"toggle,omitempty" toml:"toggle,omitempty"`
	Query    *bool    `yaml:"query,omitempty" toml:"query,omitempty"`
}

// DefaultPath returns ~/.config/vlcrc/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vlcrc", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, errors.Wrap(err, "error reading config file")
	}
	return parse(path, data)
}

// LoadRequiredConfigFile is LoadConfigFile for a path the user named:
// a missing file is an error.
func LoadRequiredConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("config file not found", path, errors.ConfigNotFound, err)
		}
		return nil, errors.Wrap(err, "error reading config file")
	}
	return parse(path, data)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func parse(path string, data []byte) (*Config, error) {
	cfg := defaultConfig()

	// Unmarshal over a copy of the defaults so unset fields keep them.
	var err error
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	if len(cfg.QueryPatterns) == 0 {
		cfg.QueryPatterns = append([]string(nil), keys.DefaultQueryPatterns...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Connection.DialTimeout = DefaultDialTimeout
	cfg.QueryPatterns = append([]string(nil), keys.DefaultQueryPatterns...)
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file, as TOML when
// the name ends in .toml and YAML otherwise. It creates parent
// directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return errors.Wrap(err, "failed to marshal config")
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return errors.Wrap(err, "failed to marshal config")
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// Validate checks if the configuration is valid.
// The server address is checked by the caller, since a flag may
// replace it.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	if c.Connection.DialTimeout < 0 {
		return errors.NewConfigError("dial timeout must be >= 0", c.Connection.DialTimeout.String(), errors.InvalidConfig, nil)
	}
	if c.Connection.IOTimeout < 0 {
		return errors.NewConfigError("io timeout must be >= 0", c.Connection.IOTimeout.String(), errors.InvalidConfig, nil)
	}

	if _, err := keys.NewQueryMatcher(c.QueryPatterns...); err != nil {
		return err
	}

	specs := c.ToggleSpecs()
	if _, err := toggle.New(specs...); err != nil {
		return err
	}
	declared := make(map[string]bool, len(specs))
	for _, s := range specs {
		declared[s.Name] = true
	}

	for i, b := range c.Bindings {
		if err := b.validate(i, declared); err != nil {
			return err
		}
	}
	return nil
}

func (b Binding) validate(i int, declared map[string]bool) error {
	param := b.Key
	if param == "" {
		return errors.NewConfigError("binding key is required", "", errors.InvalidBinding, errors.Newf("binding %d", i))
	}

	set := 0
	if b.Command != "" {
		set++
	}
	if len(b.Commands) > 0 {
		set++
	}
	if b.Toggle != "" {
		set++
	}
	if set != 1 {
		return errors.NewConfigError("binding needs exactly one of command, commands or toggle", param, errors.InvalidBinding, nil)
	}
	for _, cmd := range b.Commands {
		if cmd == "" {
			return errors.NewConfigError("binding has an empty command", param, errors.InvalidBinding, nil)
		}
	}

	if b.Column < 0 || b.Column >= keys.Columns {
		return errors.NewConfigError("binding column out of range", param, errors.InvalidBinding, nil)
	}
	if b.Toggle != "" && !declared[b.Toggle] {
		return errors.NewConfigError("binding refers to an unknown toggle", b.Toggle, errors.UnknownToggle, nil)
	}
	return nil
}

// ToggleSpecs returns the built-in toggles with the configured ones laid
// over them by name.
func (c *Config) ToggleSpecs() []toggle.Spec {
	specs := keys.DefaultToggles()
	index := make(map[string]int, len(specs))
	for i, s := range specs {
		index[s.Name] = i
	}
	for _, t := range c.Toggles {
		spec := toggle.Spec{Name: t.Name, Initial: t.Initial, WhenFalse: t.WhenFalse, WhenTrue: t.WhenTrue}
		if i, ok := index[t.Name]; ok {
			specs[i] = spec
			continue
		}
		specs = append(specs, spec)
	}
	return specs
}

// Entries converts the configured bindings into key table entries.
func (c *Config) Entries() ([]keys.Entry, error) {
	matcher, err := keys.NewQueryMatcher(c.QueryPatterns...)
	if err != nil {
		return nil, err
	}

	entries := make([]keys.Entry, 0, len(c.Bindings))
	for _, b := range c.Bindings {
		e := keys.Entry{
			Key:    types.Key(b.Key),
			Glyph:  b.Glyph,
			Label:  b.Label,
			Column: b.Column,
		}
		switch {
		case b.Toggle != "":
			e.Command = keys.ToggleCommand(b.Toggle)
		case len(b.Commands) > 0:
			e.Command = keys.Sequence(b.Commands...)
		default:
			e.Command = keys.Literal(b.Command)
		}
		if b.Query != nil {
			e.Query = *b.Query
		} else if !e.Command.IsResolver() {
			e.Query = matcher.Matches(e.Command.String())
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Registry builds the key table: the built-in VLC bindings with the
// configured ones laid over them by key.
func (c *Config) Registry() (*keys.Registry, error) {
	overrides, err := c.Entries()
	if err != nil {
		return nil, err
	}
	return keys.New(keys.Merge(keys.Default(), overrides))
}
