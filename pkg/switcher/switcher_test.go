package switcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/ledger"
	"github.com/MystenLabs/suiup/pkg/paths"
	"github.com/MystenLabs/suiup/pkg/testutil"
	"github.com/MystenLabs/suiup/pkg/types"
)

func newTestSwitcher(t *testing.T) (*Switcher, *ledger.Ledger, *paths.Paths) {
	t.Helper()
	p, fs := testutil.TempPaths(t)
	led := ledger.New(fs, p)
	return New(fs, p, led), led, p
}

// installFixture records an install and drops its binary in the store.
func installFixture(t *testing.T, led *ledger.Ledger, p *paths.Paths, channel, version string, debug bool, contents string) types.InstallRecord {
	t.Helper()
	key := types.InstallKey{Tool: types.ToolSui, Channel: channel, Version: version, Debug: debug}
	dir := p.StorePath(key)
	require.NoError(t, os.MkdirAll(dir, 0755))

	name := "sui"
	if debug {
		name = "sui-debug"
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0755))

	rec := types.InstallRecord{
		Tool: types.ToolSui, Channel: channel, Version: version, Debug: debug, Path: path,
	}
	require.NoError(t, led.Put(rec))
	return rec
}

func TestSetPromotesBinary(t *testing.T) {
	s, led, p := newTestSwitcher(t)
	rec := installFixture(t, led, p, "testnet", "1.40.1", false, "v1.40.1-bytes")

	require.NoError(t, s.Set(rec.Key()))

	dest := p.DefaultBinaryPath("sui")
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "v1.40.1-bytes", string(data))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0111)

	ptr, ok, err := s.Get(types.ToolSui, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1.40.1", ptr.Version)
}

func TestSetReplacesPreviousDefault(t *testing.T) {
	s, led, p := newTestSwitcher(t)
	old := installFixture(t, led, p, "testnet", "1.39.0", false, "old")
	cur := installFixture(t, led, p, "testnet", "1.40.1", false, "new")

	require.NoError(t, s.Set(old.Key()))
	require.NoError(t, s.Set(cur.Key()))

	data, err := os.ReadFile(p.DefaultBinaryPath("sui"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	ptr, _, err := s.Which(types.ToolSui, false)
	require.NoError(t, err)
	assert.Equal(t, "1.40.1", ptr.Version)
}

func TestDebugDefaultIsSeparate(t *testing.T) {
	s, led, p := newTestSwitcher(t)
	release := installFixture(t, led, p, "testnet", "1.40.1", false, "release")
	debug := installFixture(t, led, p, "testnet", "1.40.1", true, "debug")

	require.NoError(t, s.Set(release.Key()))
	require.NoError(t, s.Set(debug.Key()))

	releaseData, err := os.ReadFile(p.DefaultBinaryPath("sui"))
	require.NoError(t, err)
	assert.Equal(t, "release", string(releaseData))

	debugData, err := os.ReadFile(p.DefaultBinaryPath("sui-debug"))
	require.NoError(t, err)
	assert.Equal(t, "debug", string(debugData))
}

func TestSetUnknownInstall(t *testing.T) {
	s, _, _ := newTestSwitcher(t)
	err := s.Set(types.InstallKey{Tool: types.ToolSui, Channel: "testnet", Version: "9.9.9"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrInstallNotFound, errors.GetCode(err))
}

func TestSetMissingStoreBinary(t *testing.T) {
	s, led, p := newTestSwitcher(t)
	rec := installFixture(t, led, p, "testnet", "1.40.1", false, "bytes")
	require.NoError(t, os.Remove(rec.Path))

	err := s.Set(rec.Key())
	require.Error(t, err)
	assert.Equal(t, errors.ErrInstallNotFound, errors.GetCode(err))
}

func TestWhichDangling(t *testing.T) {
	s, led, p := newTestSwitcher(t)
	rec := installFixture(t, led, p, "testnet", "1.40.1", false, "bytes")
	require.NoError(t, s.Set(rec.Key()))
	require.NoError(t, os.Remove(p.DefaultBinaryPath("sui")))

	_, _, err := s.Which(types.ToolSui, false)
	require.Error(t, err)
	assert.Equal(t, errors.ErrDanglingDefault, errors.GetCode(err))
}

func TestWhichNoDefault(t *testing.T) {
	s, _, _ := newTestSwitcher(t)
	_, _, err := s.Which(types.ToolSui, false)
	require.Error(t, err)
	assert.Equal(t, errors.ErrInstallNotFound, errors.GetCode(err))
}

func TestFindInstall(t *testing.T) {
	s, led, p := newTestSwitcher(t)
	installFixture(t, led, p, "testnet", "1.40.1", false, "a")
	installFixture(t, led, p, "devnet", "1.40.1", false, "b")
	installFixture(t, led, p, "testnet", "1.39.0", false, "c")

	tests := []struct {
		name     string
		spec     types.VersionSpecifier
		wantKey  types.InstallKey
		wantCode errors.ErrorCode
	}{
		{
			name:     "version on two networks is ambiguous",
			spec:     types.VersionSpecifier{Tool: types.ToolSui, Version: "1.40.1"},
			wantCode: errors.ErrAmbiguousDefault,
		},
		{
			name: "network plus version is exact",
			spec: func() types.VersionSpecifier {
				n := types.NetworkDevnet
				return types.VersionSpecifier{Tool: types.ToolSui, Network: &n, Version: "1.40.1"}
			}(),
			wantKey: types.InstallKey{Tool: types.ToolSui, Channel: "devnet", Version: "1.40.1"},
		},
		{
			name:    "unique version needs no network",
			spec:    types.VersionSpecifier{Tool: types.ToolSui, Version: "1.39.0"},
			wantKey: types.InstallKey{Tool: types.ToolSui, Channel: "testnet", Version: "1.39.0"},
		},
		{
			name:     "bare tool with several installs is ambiguous",
			spec:     types.VersionSpecifier{Tool: types.ToolSui},
			wantCode: errors.ErrAmbiguousDefault,
		},
		{
			name:     "nothing installed for tool",
			spec:     types.VersionSpecifier{Tool: types.ToolWalrus},
			wantCode: errors.ErrInstallNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := s.FindInstall(tt.spec)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestFindInstallNightly(t *testing.T) {
	s, led, p := newTestSwitcher(t)
	installFixture(t, led, p, "testnet", "1.40.1", false, "release")
	installFixture(t, led, p, "main", types.NightlyVersion, false, "nightly")

	branch := "main"
	key, err := s.FindInstall(types.VersionSpecifier{Tool: types.ToolSui, Nightly: &branch})
	require.NoError(t, err)
	assert.Equal(t, types.NightlyVersion, key.Version)
	assert.Equal(t, "main", key.Channel)
}
