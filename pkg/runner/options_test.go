package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hahwul/urx-sub000/pkg/config"
)

func baseTestOptions() *Options {
	return &Options{
		Providers:    defaultProviders,
		Format:       defaultOutputFormat,
		CCIndex:      defaultCCIndex,
		NetworkScope: defaultNetworkScope,
		Timeout:      defaultTimeoutSecs,
		Retries:      defaultRetries,
		Parallel:     defaultParallel,
	}
}

func TestApplyConfigOnlyFillsUnsetFields(t *testing.T) {
	opts := baseTestOptions()
	opts.Output = "existing.txt"

	format := "json"
	outputPath := "from-config.txt"
	timeout := 60
	cfg := &config.Config{
		Output: config.OutputConfig{Format: &format, Output: &outputPath},
		Network: config.NetworkConfig{Timeout: &timeout},
	}

	opts.applyConfig(cfg)

	assert.Equal(t, "existing.txt", opts.Output, "CLI-set value must win over config file")
	assert.Equal(t, "json", opts.Format, "unset value should be filled from config")
	assert.Equal(t, 60, opts.Timeout, "unset value should be filled from config")
}

func TestApplyConfigLeavesProvidersAloneWhenExplicit(t *testing.T) {
	opts := baseTestOptions()
	opts.Providers = []string{"vt"}

	cfg := &config.Config{Provider: config.ProviderConfig{Providers: []string{"wayback", "cc"}}}
	opts.applyConfig(cfg)

	assert.Equal(t, []string{"vt"}, []string(opts.Providers))
}

func TestApplyConfigFillsProvidersWhenAtDefault(t *testing.T) {
	opts := baseTestOptions()

	cfg := &config.Config{Provider: config.ProviderConfig{Providers: []string{"wayback", "cc"}}}
	opts.applyConfig(cfg)

	assert.Equal(t, []string{"wayback", "cc"}, []string(opts.Providers))
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	opts := baseTestOptions()
	opts.Format = "yaml"
	opts.CacheType = "sqlite"
	assert.Error(t, opts.validate())
}

func TestValidateRejectsUnknownCacheType(t *testing.T) {
	opts := baseTestOptions()
	opts.CacheType = "memcached"
	assert.Error(t, opts.validate())
}

func TestValidateAcceptsDefaults(t *testing.T) {
	opts := baseTestOptions()
	opts.CacheType = "sqlite"
	assert.NoError(t, opts.validate())
}
