package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MystenLabs/suiup/pkg/filesystem"
	"github.com/MystenLabs/suiup/pkg/types"
)

func TestEnvOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvDataDir, filepath.Join(tmp, "data"))
	t.Setenv(EnvConfigDir, filepath.Join(tmp, "config"))
	t.Setenv(EnvCacheDir, filepath.Join(tmp, "cache"))
	t.Setenv(EnvDefaultBinDir, filepath.Join(tmp, "bin"))

	p := New()
	assert.Equal(t, filepath.Join(tmp, "data"), p.DataDir())
	assert.Equal(t, filepath.Join(tmp, "config"), p.ConfigDir())
	assert.Equal(t, filepath.Join(tmp, "cache"), p.CacheDir())
	assert.Equal(t, filepath.Join(tmp, "bin"), p.BinDir())

	assert.Equal(t, filepath.Join(tmp, "data", "binaries"), p.StoreDir())
	assert.Equal(t, filepath.Join(tmp, "cache", "releases"), p.ArchiveCacheDir())
	assert.Equal(t, filepath.Join(tmp, "config", "installed_binaries.json"), p.InstalledFile())
	assert.Equal(t, filepath.Join(tmp, "config", "default_version.json"), p.DefaultFile())
}

func TestStorePathUsesKey(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvDataDir, tmp)

	p := New()
	key := types.InstallKey{Tool: types.ToolSui, Channel: "testnet", Version: "1.40.1"}
	assert.Equal(t, filepath.Join(tmp, "binaries", "sui-testnet-1.40.1"), p.StorePath(key))

	key.Debug = true
	assert.Equal(t, filepath.Join(tmp, "binaries", "sui-testnet-1.40.1-debug"), p.StorePath(key))
}

func TestEnsureLayout(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvDataDir, filepath.Join(tmp, "data"))
	t.Setenv(EnvConfigDir, filepath.Join(tmp, "config"))
	t.Setenv(EnvCacheDir, filepath.Join(tmp, "cache"))
	t.Setenv(EnvDefaultBinDir, filepath.Join(tmp, "bin"))

	p := New()
	require.NoError(t, p.EnsureLayout(filesystem.NewOS()))

	for _, dir := range []string{p.StoreDir(), p.ArchiveCacheDir(), p.BinDir(), p.ConfigDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
}

func TestBinDirOnPath(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvDefaultBinDir, tmp)

	p := New()
	t.Setenv("PATH", "/usr/bin")
	assert.False(t, p.BinDirOnPath())

	t.Setenv("PATH", "/usr/bin"+string(os.PathListSeparator)+tmp)
	assert.True(t, p.BinDirOnPath())
}
