package chaos

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigMalformedIsDisabled(t *testing.T) {
	assert.Equal(t, Disabled(), ParseConfig([]byte("not json")))
	assert.Equal(t, Disabled(), ParseConfig(nil))
}

func TestParseConfigInvalidProbabilityIsDisabled(t *testing.T) {
	cfg := ParseConfig([]byte(`{"enabled":true,"latency":{"enabled":true,"probability":1.5}}`))
	assert.False(t, cfg.Enabled)

	cfg = ParseConfig([]byte(`{"enabled":true,"exceptions":{"enabled":true,"probability":-0.1}}`))
	assert.False(t, cfg.Enabled)
}

func TestParseConfigInvalidLatencyBoundsIsDisabled(t *testing.T) {
	cfg := ParseConfig([]byte(`{"enabled":true,"latency":{"enabled":true,"probability":1,"min_ms":500,"max_ms":100}}`))
	assert.False(t, cfg.Enabled)
}

func TestParseConfigFiltersUnknownFaultKinds(t *testing.T) {
	cfg := ParseConfig([]byte(`{"enabled":true,"exceptions":{"enabled":true,"probability":1,"types":["timeout","bogus"]}}`))

	require.True(t, cfg.Enabled)
	assert.Equal(t, []FaultKind{FaultTimeout}, cfg.Exceptions.Types)
}

func TestParseConfigDefaultsEmptyKindsToThrottling(t *testing.T) {
	cfg := ParseConfig([]byte(`{"enabled":true,"exceptions":{"enabled":true,"probability":1}}`))

	assert.Equal(t, []FaultKind{FaultThrottling}, cfg.Exceptions.Types)
}

func TestFileSourceMissingFileIsDisabled(t *testing.T) {
	src := FileSource{Path: filepath.Join(t.TempDir(), "absent.json")}
	assert.Equal(t, Disabled(), src.Fetch(context.Background()))
}

func TestFileSourceHotReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chaos.json")
	src := FileSource{Path: path}

	require.NoError(t, os.WriteFile(path, []byte(`{"enabled":false}`), 0o644))
	assert.False(t, src.Fetch(context.Background()).Enabled)

	// The file is re-read per fetch, so an edit is live on the next call.
	require.NoError(t, os.WriteFile(path, []byte(`{"enabled":true,"exceptions":{"enabled":true,"probability":1,"types":["timeout"]}}`), 0o644))
	cfg := src.Fetch(context.Background())
	assert.True(t, cfg.Enabled)
	assert.Equal(t, []FaultKind{FaultTimeout}, cfg.Exceptions.Types)

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))
	assert.Equal(t, Disabled(), src.Fetch(context.Background()))
}
