package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 8081
  read_timeout: 5s
model:
  type: decision_tree
  path: /srv/models/tree.json
  cache_size: 0
log:
  level: debug
  encoding: console
`)
	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, config.Http.Port)
	assert.Equal(t, 5*time.Second, config.Http.ReadTimeout)
	assert.Equal(t, 30*time.Second, config.Http.WriteTimeout)
	assert.Equal(t, "decision_tree", config.Model.Type)
	assert.Equal(t, "/srv/models/tree.json", config.Model.Path)
	assert.Equal(t, "healthy_avg.json", config.Model.BaselinePath)
	assert.Equal(t, 0, config.Model.CacheSize)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, []string{"*"}, config.Http.AllowedOrigins)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvModelPath, "/env/model.json")
	t.Setenv(EnvBaselinePath, "/env/healthy.json")
	t.Setenv(EnvLogLevel, "warn")

	config, err := Load(writeConfig(t, "http:\n  port: 8081\n"))
	require.NoError(t, err)
	assert.Equal(t, 9090, config.Http.Port)
	assert.Equal(t, "/env/model.json", config.Model.Path)
	assert.Equal(t, "/env/healthy.json", config.Model.BaselinePath)
	assert.Equal(t, "warn", config.Log.Level)
}

func TestLoadBadEnvironmentPort(t *testing.T) {
	t.Setenv(EnvPort, "http")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "http: [port"))
	assert.Error(t, err)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	config := Default()
	config.Http.Port = 0
	config.Model.Type = "random_forest"
	config.Model.Path = ""
	config.Log.Level = "loud"

	err := config.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadEmptyFile(t *testing.T) {
	config, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}
