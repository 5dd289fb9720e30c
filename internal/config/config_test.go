package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soaringjerry/Sondage/internal/services"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("SONDAGE_CONFIG", "")
	t.Setenv("SONDAGE_STORE", "")
	t.Setenv("SONDAGE_ADDR", "")
	t.Setenv("SONDAGE_TOKEN_TTL", "")
	t.Setenv("SONDAGE_TIMEZONE", "UTC")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, services.DefaultAdmins, cfg.Admins)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, "UTC", cfg.Location.String())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SONDAGE_CONFIG", "")
	t.Setenv("SONDAGE_ADDR", ":9999")
	t.Setenv("SONDAGE_STORE", "redis")
	t.Setenv("SONDAGE_REDIS_DB", "3")
	t.Setenv("SONDAGE_TOKEN_TTL", "30m")
	t.Setenv("SONDAGE_DEBUG", "true")
	t.Setenv("SONDAGE_TIMEZONE", "UTC")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Store.Redis.DB)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.Debug)
}

func TestFromEnvRejectsBadTimezone(t *testing.T) {
	t.Setenv("SONDAGE_CONFIG", "")
	t.Setenv("SONDAGE_TIMEZONE", "Nowhere/Atlantis")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestYAMLAdminsAndSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sondage.yaml")
	body := `
admins:
  - name: Cheffe
    phone: "0700000000"
seed:
  - title: Profil
    description: Qui êtes-vous ?
    questions:
      - text: Profession
        options: ["Médecin", "", "Pharmacien"]
        has_other: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("SONDAGE_CONFIG", path)
	t.Setenv("SONDAGE_TIMEZONE", "UTC")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Len(t, cfg.Admins, 1)
	assert.True(t, cfg.Admins.Contains("cheffe", "0700000000"))
	require.Len(t, cfg.Seed, 1)
	assert.Equal(t, 1, cfg.Seed[0].ID)
	require.Len(t, cfg.Seed[0].Questions, 1)
	q := cfg.Seed[0].Questions[0]
	assert.Equal(t, 1, q.ID)
	assert.Equal(t, []string{"Médecin", "Pharmacien"}, q.Options)
	assert.True(t, q.HasOther)
}

func TestYAMLSeedRejectsEmptyOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	body := "seed:\n  - title: A\n    questions:\n      - text: Q\n        options: [\"\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("SONDAGE_CONFIG", path)
	t.Setenv("SONDAGE_TIMEZONE", "UTC")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestYAMLAdminRequiresPhone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("admins:\n  - name: X\n"), 0o600))
	t.Setenv("SONDAGE_CONFIG", path)
	t.Setenv("SONDAGE_TIMEZONE", "UTC")

	_, err := FromEnv()
	assert.Error(t, err)
}
