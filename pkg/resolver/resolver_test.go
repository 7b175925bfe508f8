package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MystenLabs/suiup/pkg/catalog"
	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/types"
)

// fakeCatalog serves a fixed release set, applying the same network
// filter the real client does.
type fakeCatalog struct {
	releases []types.ReleaseDescriptor
	calls    int
}

func (f *fakeCatalog) ListReleases(_ context.Context, tool types.ToolID, network *types.Network) ([]types.ReleaseDescriptor, error) {
	f.calls++
	var out []types.ReleaseDescriptor
	for _, r := range f.releases {
		if r.Tool != tool {
			continue
		}
		if network != nil && (r.Network == nil || *r.Network != *network) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeCatalog) FetchArtifact(context.Context, types.ReleaseDescriptor, types.PlatformTag) (*catalog.Artifact, error) {
	panic("not used in resolver tests")
}

func rel(tool types.ToolID, network types.Network, version string, published time.Time) types.ReleaseDescriptor {
	n := network
	return types.ReleaseDescriptor{Tool: tool, Network: &n, Version: version, PublishedAt: published}
}

func resolve(t *testing.T, cat catalog.Client, spec types.VersionSpecifier) (Target, error) {
	t.Helper()
	return New(cat, nil).Resolve(context.Background(), spec)
}

func TestDefaultNetworkLatest(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := &fakeCatalog{releases: []types.ReleaseDescriptor{
		rel(types.ToolSui, types.NetworkTestnet, "1.39.0", t0),
		rel(types.ToolSui, types.NetworkTestnet, "1.40.1", t0.Add(time.Hour)),
		rel(types.ToolSui, types.NetworkDevnet, "1.41.0", t0.Add(2*time.Hour)),
	}}

	// No network, no version: sui defaults to testnet.
	target, err := resolve(t, cat, types.VersionSpecifier{Tool: types.ToolSui})
	require.NoError(t, err)
	require.NotNil(t, target.Release)
	assert.Equal(t, "1.40.1", target.Release.Version)
	assert.Equal(t, "testnet", target.Release.Channel())
}

func TestNetworkOverride(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := &fakeCatalog{releases: []types.ReleaseDescriptor{
		rel(types.ToolSui, types.NetworkTestnet, "1.40.1", t0),
		rel(types.ToolSui, types.NetworkMainnet, "1.38.2", t0),
	}}

	r := New(cat, map[types.ToolID]types.Network{types.ToolSui: types.NetworkMainnet})
	target, err := r.Resolve(context.Background(), types.VersionSpecifier{Tool: types.ToolSui})
	require.NoError(t, err)
	assert.Equal(t, "1.38.2", target.Release.Version)
}

func TestLatestVersionOrderBeatsPublishOrder(t *testing.T) {
	// 1.2.0 published before 1.0.0; version ordering must win.
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	cat := &fakeCatalog{releases: []types.ReleaseDescriptor{
		rel(types.ToolSui, types.NetworkTestnet, "1.0.0", t1),
		rel(types.ToolSui, types.NetworkTestnet, "1.2.0", t0),
	}}

	network := types.NetworkTestnet
	target, err := resolve(t, cat, types.VersionSpecifier{Tool: types.ToolSui, Network: &network})
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", target.Release.Version)
}

func TestLatestPublishTimeBreaksVersionTies(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	older := rel(types.ToolSui, types.NetworkTestnet, "1.2.0", t0)
	newer := rel(types.ToolSui, types.NetworkTestnet, "1.2.0", t0.Add(time.Hour))
	cat := &fakeCatalog{releases: []types.ReleaseDescriptor{older, newer}}

	network := types.NetworkTestnet
	target, err := resolve(t, cat, types.VersionSpecifier{Tool: types.ToolSui, Network: &network})
	require.NoError(t, err)
	assert.Equal(t, newer.PublishedAt, target.Release.PublishedAt)
}

func TestBareVersionAmbiguous(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := &fakeCatalog{releases: []types.ReleaseDescriptor{
		rel(types.ToolSui, types.NetworkDevnet, "2.0.0", t0),
		rel(types.ToolSui, types.NetworkTestnet, "2.0.0", t0),
	}}

	_, err := resolve(t, cat, types.VersionSpecifier{Tool: types.ToolSui, Version: "2.0.0"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrAmbiguousVersion, errors.GetCode(err))
}

func TestBareVersionUniqueMatch(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := &fakeCatalog{releases: []types.ReleaseDescriptor{
		rel(types.ToolSui, types.NetworkDevnet, "2.0.0", t0),
		rel(types.ToolSui, types.NetworkTestnet, "2.1.0", t0),
	}}

	target, err := resolve(t, cat, types.VersionSpecifier{Tool: types.ToolSui, Version: "2.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "devnet", target.Release.Channel())
}

func TestVersionNotFound(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := &fakeCatalog{releases: []types.ReleaseDescriptor{
		rel(types.ToolSui, types.NetworkTestnet, "1.40.1", t0),
	}}

	network := types.NetworkTestnet
	_, err := resolve(t, cat, types.VersionSpecifier{
		Tool: types.ToolSui, Network: &network, Version: "9.9.9",
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrVersionNotFound, errors.GetCode(err))
}

func TestNightlyBypassesCatalog(t *testing.T) {
	cat := &fakeCatalog{}
	branch := "feature-x"
	target, err := resolve(t, cat, types.VersionSpecifier{
		Tool: types.ToolSui, Nightly: &branch, Debug: true,
	})
	require.NoError(t, err)
	require.NotNil(t, target.Nightly)
	assert.Equal(t, "feature-x", target.Nightly.Branch)
	assert.True(t, target.Debug)
	assert.Zero(t, cat.calls, "nightly resolution must not touch the catalog")
}
