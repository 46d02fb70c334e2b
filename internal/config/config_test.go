package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"vlcrc/internal/config"
	"vlcrc/internal/errors"
	"vlcrc/internal/keys"
	"vlcrc/internal/toggle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary config file
func createTestConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const (
	validYAML = `
server: "localhost:4212"
debug: true
connection:
  dial_timeout: 2s
  io_timeout: 10s
log:
  file: /tmp/vlcrc.log
  json: true
watch: true
toggles:
  - name: fullscreen
    when_false: "fullscreen off"
    when_true: "fullscreen on"
bindings:
  - key: "f"
    label: Fullscreen
    column: 2
    toggle: fullscreen
  - key: "v"
    label: Volume
    column: 1
    command: get_volume
  - key: "z"
    label: Stop
    command: stop
  - key: "x"
    commands: [get_time, status]
    query: false
`
	validTOML = `
server = "[::1]:4212"
watch = false

[connection]
dial_timeout = "1s"

[[bindings]]
key = "z"
label = "Stop"
command = "stop"
`
	invalidSyntaxYAML = `
bindings:
  - key: "z
    command: stop
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid yaml", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestConfig(t, "config.yaml", validYAML))
		require.NoError(t, err)

		assert.Equal(t, "localhost:4212", cfg.Server)
		assert.True(t, cfg.Debug)
		assert.Equal(t, 2*time.Second, cfg.Connection.DialTimeout)
		assert.Equal(t, 10*time.Second, cfg.Connection.IOTimeout)
		assert.Equal(t, "/tmp/vlcrc.log", cfg.Log.File)
		assert.True(t, cfg.Log.JSON)
		assert.True(t, cfg.Watch)
		assert.Equal(t, keys.DefaultQueryPatterns, cfg.QueryPatterns)
		require.Len(t, cfg.Bindings, 4)
		assert.Equal(t, "fullscreen", cfg.Bindings[0].Toggle)
	})

	t.Run("load valid toml", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestConfig(t, "config.toml", validTOML))
		require.NoError(t, err)

		assert.Equal(t, "[::1]:4212", cfg.Server)
		assert.Equal(t, time.Second, cfg.Connection.DialTimeout)
		assert.Zero(t, cfg.Connection.IOTimeout)
		require.Len(t, cfg.Bindings, 1)
		assert.Equal(t, "stop", cfg.Bindings[0].Command)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.New(), cfg)
		assert.Equal(t, config.DefaultDialTimeout, cfg.Connection.DialTimeout)
		assert.Empty(t, cfg.Server)
	})

	t.Run("required file must exist", func(t *testing.T) {
		_, err := config.LoadRequiredConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		var cfgErr *errors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, errors.ConfigNotFound, cfgErr.Kind())

		cfg, err := config.LoadRequiredConfigFile(createTestConfig(t, "c.yaml", validYAML))
		require.NoError(t, err)
		assert.Equal(t, "localhost:4212", cfg.Server)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestConfig(t, "config.yaml", invalidSyntaxYAML))
		assert.True(t, errors.IsInvalidConfig(err))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(error) bool
	}{
		{
			name:    "negative dial timeout",
			content: "connection:\n  dial_timeout: -1s\n",
			check:   errors.IsInvalidConfig,
		},
		{
			name:    "negative io timeout",
			content: "connection:\n  io_timeout: -5s\n",
			check:   errors.IsInvalidConfig,
		},
		{
			name:    "bad query pattern",
			content: "query_patterns: [\"get_[\"]\n",
			check:   errors.IsInvalidConfig,
		},
		{
			name:    "binding without key",
			content: "bindings:\n  - command: stop\n",
			check:   errors.IsConfigError,
		},
		{
			name:    "binding with two commands",
			content: "bindings:\n  - key: z\n    command: stop\n    toggle: interface\n",
			check:   errors.IsConfigError,
		},
		{
			name:    "binding with no command",
			content: "bindings:\n  - key: z\n",
			check:   errors.IsConfigError,
		},
		{
			name:    "binding column out of range",
			content: "bindings:\n  - key: z\n    command: stop\n    column: 4\n",
			check:   errors.IsConfigError,
		},
		{
			name:    "unknown toggle",
			content: "bindings:\n  - key: z\n    toggle: subtitles\n",
			check:   errors.IsUnknownToggle,
		},
		{
			name:    "toggle declared twice",
			content: "toggles:\n  - name: a\n  - name: a\n",
			check:   errors.IsInvalidConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfigFile(createTestConfig(t, "config.yaml", tt.content))
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestRegistry(t *testing.T) {
	cfg, err := config.LoadConfigFile(createTestConfig(t, "config.yaml", validYAML))
	require.NoError(t, err)

	reg, err := cfg.Registry()
	require.NoError(t, err)
	assert.Equal(t, len(keys.Default())+3, reg.Len(), "f replaces a built-in key")

	toggles, err := toggle.New(cfg.ToggleSpecs()...)
	require.NoError(t, err)

	f, ok := reg.Lookup("f")
	require.True(t, ok)
	cmd, err := f.Resolve(toggles)
	require.NoError(t, err)
	assert.Equal(t, "fullscreen on", cmd)

	v, ok := reg.Lookup("v")
	require.True(t, ok)
	assert.True(t, v.Query, "get_volume matches get_*")

	z, ok := reg.Lookup("z")
	require.True(t, ok)
	assert.False(t, z.Query)

	x, ok := reg.Lookup("x")
	require.True(t, ok)
	assert.False(t, x.Query, "explicit query wins over the patterns")
	cmd, err = x.Resolve(toggles)
	require.NoError(t, err)
	assert.Equal(t, "get_time\nstatus", cmd)

	space, ok := reg.Lookup(" ")
	require.True(t, ok)
	assert.Equal(t, "pause", space.Command.String())
}

func TestRegistryRejectsDuplicateBindings(t *testing.T) {
	cfg := config.New()
	cfg.Bindings = []config.Binding{
		{Key: "z", Command: "stop"},
		{Key: "z", Command: "play"},
	}
	require.NoError(t, cfg.Validate())

	_, err := cfg.Registry()
	assert.True(t, errors.IsDuplicateKey(err))
}

func TestToggleSpecsOverrideByName(t *testing.T) {
	cfg := config.New()
	cfg.Toggles = []config.ToggleConfig{
		{Name: keys.InterfaceToggle, Initial: true, WhenFalse: "hide", WhenTrue: "show"},
		{Name: "extra", WhenFalse: "off", WhenTrue: "on"},
	}

	specs := cfg.ToggleSpecs()
	require.Len(t, specs, 2)
	assert.Equal(t, toggle.Spec{Name: keys.InterfaceToggle, Initial: true, WhenFalse: "hide", WhenTrue: "show"}, specs[0])
	assert.Equal(t, "extra", specs[1].Name)
}

func TestSaveConfig(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := config.New()
			cfg.Server = "localhost:4212"
			cfg.Connection.IOTimeout = 3 * time.Second
			query := true
			cfg.Bindings = []config.Binding{{Key: "v", Label: "Volume", Column: 1, Command: "volume", Query: &query}}

			require.NoError(t, config.SaveConfig(cfg, path))
			loaded, err := config.LoadConfigFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}
