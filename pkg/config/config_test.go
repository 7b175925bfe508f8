package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/types"
)

func TestDefaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.GitHubToken)
	assert.Empty(t, cfg.NetworkOverrides())
	assert.Equal(t, 30, cfg.Cleanup.MaxArchiveAgeDays)
}

func TestFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suiup.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
github_token = "file-token"

[default_networks]
sui = "devnet"

[cleanup]
max_archive_age_days = 7
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.GitHubToken)
	assert.Equal(t, 7, cfg.Cleanup.MaxArchiveAgeDays)
	assert.Equal(t, map[types.ToolID]types.Network{
		types.ToolSui: types.NetworkDevnet,
	}, cfg.NetworkOverrides())
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suiup.toml")
	require.NoError(t, os.WriteFile(path, []byte(`github_token = "file-token"`), 0644))
	t.Setenv("SUIUP_GITHUB_TOKEN", "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.GitHubToken)
}

func TestGitHubTokenFallback(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ci-token")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "ci-token", cfg.GitHubToken)
}

func TestInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suiup.toml")
	require.NoError(t, os.WriteFile(path, []byte("{definitely not toml"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigParse, errors.GetCode(err))
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{
			name: "unknown tool in default_networks",
			toml: "[default_networks]\nforge = \"testnet\"\n",
		},
		{
			name: "bad network in default_networks",
			toml: "[default_networks]\nsui = \"localnet\"\n",
		},
		{
			name: "negative archive age",
			toml: "[cleanup]\nmax_archive_age_days = -1\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "suiup.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.toml), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Equal(t, errors.ErrConfigParse, errors.GetCode(err))
		})
	}
}
