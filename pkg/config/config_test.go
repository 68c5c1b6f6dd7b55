package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFileParsesAllTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
[output]
format = "json"
merge_endpoint = true

[provider]
providers = ["wayback", "cc"]
subs = true

[filter]
extensions = ["js", "php"]
min_length = 10

[network]
timeout = 60
retries = 5

[testing]
check_status = true
extract_links = false
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := FromFile(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Output.Format)
	assert.Equal(t, "json", *cfg.Output.Format)
	require.NotNil(t, cfg.Output.MergeEndpoint)
	assert.True(t, *cfg.Output.MergeEndpoint)

	assert.Equal(t, []string{"wayback", "cc"}, cfg.Provider.Providers)
	require.NotNil(t, cfg.Provider.Subs)
	assert.True(t, *cfg.Provider.Subs)

	assert.Equal(t, []string{"js", "php"}, cfg.Filter.Extensions)
	require.NotNil(t, cfg.Filter.MinLength)
	assert.Equal(t, 10, *cfg.Filter.MinLength)

	require.NotNil(t, cfg.Network.Timeout)
	assert.Equal(t, 60, *cfg.Network.Timeout)

	require.NotNil(t, cfg.Testing.CheckStatus)
	assert.True(t, *cfg.Testing.CheckStatus)
}

func TestLoadWithEmptyPathReturnsEmptyConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, cfg.Output.Format)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
