package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := New()
	assert.Equal(t, "info", v.GetString(LogLevel))
	assert.True(t, v.GetBool(LogPretty))
	assert.False(t, v.GetBool(HTTPInsecure))
	assert.Equal(t, 30*time.Second, v.GetDuration(HTTPTimeout))
	assert.Empty(t, v.GetString(GeneratePackage))
	assert.Equal(t, "yaml", v.GetString(ModelFormat))
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("WSDLMODEL_LOG_LEVEL", "debug")
	t.Setenv("WSDLMODEL_HTTP_TIMEOUT", "5s")
	v := New()
	assert.Equal(t, "debug", v.GetString(LogLevel))
	assert.Equal(t, 5*time.Second, v.GetDuration(HTTPTimeout))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "wsdlmodel.yaml")
	data := "generate:\n  package: stock\nmodel:\n  format: json\n"
	require.NoError(t, os.WriteFile(file, []byte(data), 0o644))
	v := New()
	require.NoError(t, Load(v, file))
	assert.Equal(t, "stock", v.GetString(GeneratePackage))
	assert.Equal(t, "json", v.GetString(ModelFormat))
	assert.Equal(t, "info", v.GetString(LogLevel))
}

func TestLoadHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	v := New()
	require.NoError(t, Load(v, ""))
	assert.Empty(t, v.ConfigFileUsed())

	data := "log:\n  level: warn\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".wsdlmodel.yaml"), []byte(data), 0o644))
	v = New()
	require.NoError(t, Load(v, ""))
	assert.Equal(t, "warn", v.GetString(LogLevel))
}

func TestLoadMissingFile(t *testing.T) {
	v := New()
	err := Load(v, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
