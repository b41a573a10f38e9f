package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CINNAMON_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Counter.Initial)
	require.Equal(t, 5, cfg.Counter.Step)
	require.Equal(t, map[string]int{"left": 5, "right": 10}, cfg.Instances.Initial)
	require.Equal(t, []string{"left", "right", "left"}, cfg.Instances.Views)
	require.True(t, cfg.Store.SkipUnchanged)
	require.True(t, cfg.UI.AltScreen)
	require.False(t, cfg.Telemetry.Enabled)
	require.Equal(t, filepath.Join(home, ".local", "state", "cinnamon", "telemetry.jsonl"), cfg.Telemetry.Output)
	require.Zero(t, cfg.Log.Verbosity)
}

func TestLoadFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte(`
[counter]
initial = 3
step = 2

[instances]
views = ["a", "b"]

[instances.initial]
a = 1
b = 2

[store]
skip_unchanged = false

[log]
verbosity = 2
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	t.Setenv("CINNAMON_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Counter.Initial)
	require.Equal(t, 2, cfg.Counter.Step)
	require.Equal(t, map[string]int{"a": 1, "b": 2}, cfg.Instances.Initial)
	require.Equal(t, []string{"a", "b"}, cfg.Instances.Views)
	require.False(t, cfg.Store.SkipUnchanged)
	require.Equal(t, 2, cfg.Log.Verbosity)
}

func TestLoadHomeConfig(t *testing.T) {
	home := isolate(t)

	dir := filepath.Join(home, ".config", "cinnamon")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[counter]\ninitial = 9\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9, cfg.Counter.Initial)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("CINNAMON_COUNTER_STEP", "7")
	t.Setenv("CINNAMON_TELEMETRY_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Counter.Step)
	require.True(t, cfg.Telemetry.Enabled)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	t.Setenv("CINNAMON_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := Load()
	require.ErrorContains(t, err, "read config")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ok := Config{
		Counter:   CounterConfig{Step: 1},
		Instances: InstancesConfig{Initial: map[string]int{"left": 0}, Views: []string{"left", "left"}},
	}
	require.NoError(t, ok.Validate())

	zeroStep := ok
	zeroStep.Counter.Step = 0
	require.ErrorContains(t, zeroStep.Validate(), "counter.step")

	badView := ok
	badView.Instances.Views = []string{"left", "middle"}
	require.ErrorContains(t, badView.Validate(), `"middle"`)
}
