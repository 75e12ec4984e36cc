package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c, err := Load(NewViper(), "")
	require.NoError(t, err)
	require.Equal(t, ":5175", c.Addr)
	require.Equal(t, 6, c.MaxGuesses)
	require.Equal(t, 5, c.WordLength)
	require.Equal(t, 3*time.Second, c.ErrorTTL)
	require.Equal(t, "embedded", c.Words().Source())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WORDLE_MAX_GUESSES", "8")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "legacy-secret-value")
	t.Setenv("WORDLE_ERROR_TTL", "750ms")

	c, err := Load(NewViper(), "")
	require.NoError(t, err)
	require.Equal(t, 8, c.MaxGuesses)
	require.Equal(t, ":9000", c.Addr)
	require.Equal(t, "legacy-secret-value", c.JWTSecret)
	require.Equal(t, 750*time.Millisecond, c.ErrorTTL)
}

func TestPrefixedEnvWinsOverLegacy(t *testing.T) {
	t.Setenv("WORDLE_LOG_LEVEL", "debug")
	t.Setenv("LOG_LEVEL", "warn")
	c, err := Load(NewViper(), "")
	require.NoError(t, err)
	require.Equal(t, "debug", c.LogLevel)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: 127.0.0.1:8080\nword_length: 6\nhistory_limit: 0\n"), 0o644))

	c, err := Load(NewViper(), path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8080", c.Addr)
	require.Equal(t, 6, c.WordLength)
	require.Zero(t, c.HistoryLimit)

	_, err = Load(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidation(t *testing.T) {
	cases := map[string]func(*Config){
		"zero guesses":      func(c *Config) { c.MaxGuesses = 0 },
		"negative length":   func(c *Config) { c.WordLength = -1 },
		"bad level":         func(c *Config) { c.LogLevel = "loud" },
		"short secret":      func(c *Config) { c.JWTSecret = "x" },
		"bad origin":        func(c *Config) { c.ClientOrigin = "not a url" },
		"answers w/o words": func(c *Config) { c.AnswersFile = "answers.txt" },
		"negative ttl":      func(c *Config) { c.ErrorTTL = -time.Second },
	}
	base, err := Load(NewViper(), "")
	require.NoError(t, err)

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			require.Error(t, Validate(c))
		})
	}
}

func TestLoadDotenvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("WORDLE_DAILY_SALT=from-file\nWORDLE_WORD_LENGTH=7\n"), 0o644))
	t.Setenv("WORDLE_WORD_LENGTH", "4")
	t.Cleanup(func() { os.Unsetenv("WORDLE_DAILY_SALT") })

	LoadDotenv(path)
	c, err := Load(NewViper(), "")
	require.NoError(t, err)
	require.Equal(t, "from-file", c.DailySalt)
	require.Equal(t, 4, c.WordLength)
}
