package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	cases := map[string]Environment{
		"production": Production,
		"beta":       Beta,
		"UAT":        UAT,
		" staging ":  Staging,
		"":           Development,
		"nightly":    Development,
	}
	for in, want := range cases {
		assert.Equal(t, want, ResolveEnvironment(in), "channel %q", in)
	}
}

func TestForReturnsChannelSettings(t *testing.T) {
	assert.Equal(t, "https://api.orderup.com/api", For(Production).APIBaseURL)
	assert.Equal(t, "OrderUp UAT", For(UAT).AppName)
	assert.Equal(t, "http://localhost:3000/api", For(Environment("bogus")).APIBaseURL)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ORDERUP_ENV", "")
	t.Setenv("ORDERUP_API_URL", "")
	t.Setenv("ORDERUP_LOG_LEVEL", "")
	home := t.TempDir()

	cfg, err := Load(Path(home), home)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/api", cfg.BaseURL())
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultTimeout, cfg.RequestTimeout())
	assert.Equal(t, filepath.Join(home, "orderup.log"), cfg.LogFile())
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()
	path := Path(home)
	require.NoError(t, os.WriteFile(path, []byte("environment: staging\ntimeout: 5s\npage_size: 50\n"), 0o644))

	t.Setenv("ORDERUP_ENV", "")
	t.Setenv("ORDERUP_API_URL", "")
	t.Setenv("ORDERUP_LOG_LEVEL", "")
	cfg, err := Load(path, home)
	require.NoError(t, err)
	assert.Equal(t, Staging, cfg.Env().Environment)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 50, cfg.PageSize)

	t.Setenv("ORDERUP_ENV", "production")
	t.Setenv("ORDERUP_API_URL", "http://127.0.0.1:9999/api/")
	cfg, err = Load(path, home)
	require.NoError(t, err)
	assert.Equal(t, Production, cfg.Env().Environment)
	assert.Equal(t, "http://127.0.0.1:9999/api", cfg.BaseURL())
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ORDERUP_ENV=beta\n"), 0o644))
	// godotenv never overrides variables already present, so start unset.
	os.Unsetenv("ORDERUP_ENV")
	t.Cleanup(func() { os.Unsetenv("ORDERUP_ENV") })

	home := t.TempDir()
	cfg, err := Load(Path(home), home)
	require.NoError(t, err)
	assert.Equal(t, Beta, cfg.Env().Environment)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ORDERUP_ENV", "")
	t.Setenv("ORDERUP_API_URL", "")
	t.Setenv("ORDERUP_LOG_LEVEL", "")
	home := filepath.Join(t.TempDir(), "nested")
	cfg := DefaultConfig(home)
	cfg.Environment = "uat"
	cfg.Theme = "neon"
	require.NoError(t, cfg.Save(Path(home)))

	got, err := Load(Path(home), home)
	require.NoError(t, err)
	assert.Equal(t, "uat", got.Environment)
	assert.Equal(t, "neon", got.Theme)
}

func TestRequestTimeoutRejectsBadValues(t *testing.T) {
	assert.Equal(t, DefaultTimeout, (&Config{Timeout: "soon"}).RequestTimeout())
	assert.Equal(t, DefaultTimeout, (&Config{Timeout: "-1s"}).RequestTimeout())
}
