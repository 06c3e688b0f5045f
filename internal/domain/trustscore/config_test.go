package trustscore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigPartialOverride(t *testing.T) {
	raw := []byte(`
promoteur:
  kycVerified: 25
  financialProof:
    high: 20
project:
  photoMinImmeuble: 12
`)
	cfg, err := ParseConfig(raw)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Promoteur.KYCVerified)
	assert.Equal(t, 20, cfg.Promoteur.FinancialProof.High)
	assert.Equal(t, 10, cfg.Promoteur.FinancialProof.Medium)
	assert.Equal(t, 12, cfg.Project.PhotoMinImmeuble)
	assert.Equal(t, DefaultConfig().Project.SuspendedPenalty, cfg.Project.SuspendedPenalty)
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "promoteur:\n  kycPlatinum: 4\n",
		"negative weight": "project:\n  documentCap: -3\n",
		"not yaml":        "promoteur: [1, 2",
		"kyc order":       "promoteur:\n  kycSubmitted: 30\n",
		"proof order":     "promoteur:\n  financialProof:\n    basic: 12\n",
		"response hours":  "promoteur:\n  responseSlowHours: 2\n",
	}
	for name, raw := range cases {
		cfg, err := ParseConfig([]byte(raw))
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
		assert.Equal(t, DefaultConfig(), cfg, name)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("promoteur:\n  perBadge: 3\n"), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Promoteur.PerBadge)

	cfg, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}
