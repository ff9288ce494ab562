package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "data.json", cfg.DataFile)
	assert.Equal(t, 15*time.Second, cfg.Quotes.Timeout)

	loc, err := cfg.Location()
	require.NoError(t, err)
	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 8*3600, offset)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pfu.yaml")
	content := `
data_file: /srv/portfolio/data.json
timeout: 3s
utc_offset: "-05:00"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/portfolio/data.json", cfg.DataFile)
	assert.Equal(t, 3*time.Second, cfg.Quotes.Timeout)
	assert.Equal(t, "-05:00", cfg.UTCOffset)
	// untouched keys keep their default
	assert.Equal(t, "5d", cfg.Quotes.Range)
	assert.Equal(t, "HKD", cfg.Currency)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [1, 2]\n"), 0o644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PFU_CURRENCY=USD\nPFU_DATA_FILE=from-dotenv.json\n"), 0o644))

	// the real environment wins over .env
	t.Setenv(EnvDataFile, "from-env.json")
	t.Setenv(EnvTimeout, "750ms")
	// t.Setenv restores the previous value, it also registers PFU_CURRENCY for cleanup.
	t.Setenv(EnvCurrency, "")
	require.NoError(t, os.Unsetenv(EnvCurrency))

	require.NoError(t, LoadEnv(envFile, filepath.Join(dir, "missing.env")))

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "from-env.json", cfg.DataFile)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 750*time.Millisecond, cfg.Quotes.Timeout)
	assert.Equal(t, "Mozilla/5.0", cfg.Quotes.UserAgent)
}

func TestApplyEnv_InvalidTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")
	assert.Error(t, Default().ApplyEnv())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"no data file", func(c *Config) { c.DataFile = "" }},
		{"relative endpoint", func(c *Config) { c.Quotes.Endpoint = "/chart" }},
		{"no interval", func(c *Config) { c.Quotes.Interval = "" }},
		{"no range", func(c *Config) { c.Quotes.Range = "" }},
		{"zero timeout", func(c *Config) { c.Quotes.Timeout = 0 }},
		{"bad offset", func(c *Config) { c.UTCOffset = "UTC+8" }},
		{"bad currency", func(c *Config) { c.Currency = "dollars" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() = nil, want an error")
			}
		})
	}
}

func TestParseOffset(t *testing.T) {
	testCases := []struct {
		input string
		want  int
	}{
		{"+08:00", 8 * 3600},
		{"-05:30", -(5*3600 + 30*60)},
		{"Z", 0},
		{"+00:00", 0},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			loc, err := ParseOffset(tc.input)
			require.NoError(t, err)
			_, got := time.Date(2025, 6, 1, 12, 0, 0, 0, loc).Zone()
			if got != tc.want {
				t.Errorf("ParseOffset(%q) offset = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}
