package catalog

import (
	"regexp"
	"strings"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/types"
)

var versionRe = regexp.MustCompile(`v?(\d+\.\d+\.\d+)`)

// parseRelease turns one GitHub release into a descriptor. Network
// tools tag releases as "<network>-v<version>" ("testnet-v1.40.1");
// standalone tools tag them "v<version>".
func parseRelease(tool types.ToolID, r githubRelease) (types.ReleaseDescriptor, error) {
	desc := types.ReleaseDescriptor{
		Tool:        tool,
		PublishedAt: r.PublishedAt,
		Assets:      make(map[types.PlatformTag]types.Asset, len(r.Assets)),
	}

	tag := r.TagName
	if prefix, rest, found := strings.Cut(tag, "-"); found && types.IsNetworkTag(prefix) {
		network, _ := types.ParseNetwork(prefix)
		desc.Network = &network
		tag = rest
	}

	version, err := ExtractVersion(tag)
	if err != nil {
		return types.ReleaseDescriptor{}, err
	}
	desc.Version = version

	if tool.Profile().UsesNetworks && desc.Network == nil {
		return types.ReleaseDescriptor{}, errors.Newf(errors.ErrInternal,
			"release tag %q carries no network for %s", r.TagName, tool)
	}

	for _, asset := range r.Assets {
		if tag, ok := platformTagOf(asset.Name); ok {
			desc.Assets[tag] = asset
		}
	}

	return desc, nil
}

// ExtractVersion pulls the major.minor.patch version out of a release
// tag or asset filename.
func ExtractVersion(s string) (string, error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return "", errors.Newf(errors.ErrVersionNotFound, "could not extract version from %q", s)
	}
	return m[1], nil
}

// knownPlatformTags enumerates the OS-arch combinations releases are
// published for.
var knownPlatformTags = []types.PlatformTag{
	"ubuntu-x86_64",
	"ubuntu-aarch64",
	"macos-x86_64",
	"macos-arm64",
	"windows-x86_64",
}

// platformTagOf matches an asset filename like
// "sui-testnet-v1.40.1-ubuntu-x86_64.tgz" to its platform tag.
func platformTagOf(assetName string) (types.PlatformTag, bool) {
	for _, tag := range knownPlatformTags {
		if strings.Contains(assetName, string(tag)) {
			return tag, true
		}
	}
	return "", false
}
