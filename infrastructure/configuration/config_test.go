package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_EnvFillsMissingFields(t *testing.T) {
	t.Setenv("DB_NAME", "dashboard")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_PORT", "")

	cfg := Config{}
	initDatabase(&cfg)

	assert.Equal(t, "dashboard", cfg.Database.Psql.Name)
	assert.Equal(t, "db.internal", cfg.Database.Psql.Host)
	assert.Equal(t, "svc", cfg.Database.Psql.User)
	assert.Equal(t, "secret", cfg.Database.Psql.Password)
	assert.Equal(t, "5432", cfg.Database.Psql.Port)
}

func TestInitDatabase_ConfigFileWins(t *testing.T) {
	t.Setenv("DB_HOST", "from-env")

	cfg := Config{}
	cfg.Database.Psql.Host = "from-file"
	initDatabase(&cfg)

	assert.Equal(t, "from-file", cfg.Database.Psql.Host)
}

func TestInitApp_PortResolutionOrder(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("PORT", "9090")

	cfg := Config{}
	initApp(&cfg)
	assert.Equal(t, 8081, cfg.App.Port)

	t.Setenv("APP_PORT", "")
	cfg = Config{}
	initApp(&cfg)
	assert.Equal(t, 9090, cfg.App.Port)

	t.Setenv("PORT", "")
	cfg = Config{}
	initApp(&cfg)
	assert.Equal(t, 10001, cfg.App.Port)
}

func TestInitParsers_EnvOverridesAndDefaults(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("APIFY_TOKEN", "apify-token")
	t.Setenv("RAPIDAPI_KEY", "rapid-key")
	t.Setenv("SCRAPENINJA_API_KEY", "")
	t.Setenv("FACEBOOK_RAPIDAPI_KEY", "")
	t.Setenv("MONDAY_API_TOKEN", "monday-token")

	cfg := Config{}
	initParsers(&cfg)

	assert.Equal(t, "yt-key", cfg.Parsers.YouTube.APIKey)
	assert.Equal(t, "apify-token", cfg.Parsers.Apify.Token)
	assert.Equal(t, "rapid-key", cfg.Parsers.ScrapeNinja.RapidAPIKey)
	// The Facebook scraper shares the RapidAPI subscription by default.
	assert.Equal(t, "rapid-key", cfg.Parsers.Facebook.RapidAPIKey)
	assert.Equal(t, "monday-token", cfg.Monday.APIToken)

	assert.Equal(t, 0.02, cfg.Parsers.EngagementRate)
	assert.Equal(t, 60, cfg.Refresh.IntervalMinutes)
	assert.Equal(t, 3, cfg.Refresh.Concurrency)
}

func TestLoadEnvFromFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "config.env")
	require.NoError(t, os.WriteFile(f, []byte(
		"# credentials\n"+
			"ENV_LOADER_PLAIN=alpha\n"+
			"export ENV_LOADER_EXPORTED=beta\n"+
			"ENV_LOADER_QUOTED=\"gamma\"\n"+
			"ENV_LOADER_TAKEN=from-file\n"+
			"not a pair\n"), 0o644))

	t.Setenv("ENV_LOADER_TAKEN", "from-env")
	for _, k := range []string{"ENV_LOADER_PLAIN", "ENV_LOADER_EXPORTED", "ENV_LOADER_QUOTED"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	LoadEnvFromFile(f, filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "alpha", os.Getenv("ENV_LOADER_PLAIN"))
	assert.Equal(t, "beta", os.Getenv("ENV_LOADER_EXPORTED"))
	assert.Equal(t, "gamma", os.Getenv("ENV_LOADER_QUOTED"))
	// Process environment always wins over file values.
	assert.Equal(t, "from-env", os.Getenv("ENV_LOADER_TAKEN"))
}

func TestGetConfig_EnvSuffix(t *testing.T) {
	t.Setenv("ENV", "")
	assert.Equal(t, "config", getConfig())

	t.Setenv("ENV", "production")
	assert.Equal(t, "config-production", getConfig())
}
