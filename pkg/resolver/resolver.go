// Package resolver applies version-selection policy: it turns a parsed
// VersionSpecifier into exactly one concrete release, or a nightly
// build target. It is pure over catalog results and performs no
// filesystem mutation.
package resolver

import (
	"context"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/MystenLabs/suiup/pkg/catalog"
	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/logging"
	"github.com/MystenLabs/suiup/pkg/types"
)

// NightlyTarget identifies a source build to perform instead of a
// release download.
type NightlyTarget struct {
	Tool   types.ToolID
	Branch string
}

// Target is the resolver's output: exactly one of Release or Nightly
// is set.
type Target struct {
	Release *types.ReleaseDescriptor
	Nightly *NightlyTarget
	Debug   bool
}

// Resolver picks one release for a specifier.
type Resolver struct {
	catalog catalog.Client

	// networkOverrides replaces a tool's profile default network, fed
	// from user configuration.
	networkOverrides map[types.ToolID]types.Network

	log zerolog.Logger
}

// New creates a resolver over the given catalog client.
func New(c catalog.Client, networkOverrides map[types.ToolID]types.Network) *Resolver {
	return &Resolver{
		catalog:          c,
		networkOverrides: networkOverrides,
		log:              logging.GetLogger("resolver"),
	}
}

// Resolve turns a specifier into a target. Nightly specifiers bypass
// the catalog entirely.
func (r *Resolver) Resolve(ctx context.Context, spec types.VersionSpecifier) (Target, error) {
	if spec.IsNightly() {
		return Target{
			Nightly: &NightlyTarget{Tool: spec.Tool, Branch: spec.NightlyBranch()},
			Debug:   spec.Debug,
		}, nil
	}

	network := r.effectiveNetwork(spec)

	releases, err := r.catalog.ListReleases(ctx, spec.Tool, network)
	if err != nil {
		return Target{}, err
	}

	var rel *types.ReleaseDescriptor
	if spec.Version == "" {
		rel, err = latest(spec.Tool, network, releases)
	} else {
		rel, err = exact(spec.Tool, network, spec.Version, releases)
	}
	if err != nil {
		return Target{}, err
	}

	r.log.Debug().
		Str("tool", spec.Tool.String()).
		Str("version", rel.Version).
		Str("channel", rel.Channel()).
		Msg("Resolved release")

	return Target{Release: rel, Debug: spec.Debug}, nil
}

// effectiveNetwork applies the per-tool default network policy. A nil
// result with a non-empty version means "search every network"; a nil
// result with no version can only happen for network-less tools.
func (r *Resolver) effectiveNetwork(spec types.VersionSpecifier) *types.Network {
	if spec.Network != nil {
		return spec.Network
	}
	profile := spec.Tool.Profile()
	if !profile.UsesNetworks {
		return nil
	}
	if spec.Version != "" {
		// bare version: search all networks, fail on ambiguity
		return nil
	}
	network := profile.DefaultNetwork
	if override, ok := r.networkOverrides[spec.Tool]; ok {
		network = override
	}
	return &network
}

// latest returns the newest release. Ordering is semantic-version
// descending with publish time as tie-break; version tags are not
// guaranteed chronological, so version order wins over publish order.
func latest(tool types.ToolID, network *types.Network, releases []types.ReleaseDescriptor) (*types.ReleaseDescriptor, error) {
	if len(releases) == 0 {
		return nil, noReleases(tool, network)
	}

	sorted := make([]types.ReleaseDescriptor, len(releases))
	copy(sorted, releases)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, erri := semver.NewVersion(sorted[i].Version)
		vj, errj := semver.NewVersion(sorted[j].Version)
		if erri != nil || errj != nil {
			return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
		}
		if c := vi.Compare(vj); c != 0 {
			return c > 0
		}
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})

	return &sorted[0], nil
}

// exact finds the release with the given version. With no network
// constraint every channel is searched; more than one match is an
// AmbiguousVersion failure prompting the user to qualify further, even
// when the matches were published at the same instant.
func exact(tool types.ToolID, network *types.Network, version string, releases []types.ReleaseDescriptor) (*types.ReleaseDescriptor, error) {
	var matches []types.ReleaseDescriptor
	for _, rel := range releases {
		if rel.Version == version {
			matches = append(matches, rel)
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.Newf(errors.ErrVersionNotFound,
			"no %s release with version %s%s", tool, version, networkSuffix(network)).
			WithDetail("version", version)
	case 1:
		return &matches[0], nil
	default:
		networks := make([]string, 0, len(matches))
		for _, m := range matches {
			networks = append(networks, m.Channel())
		}
		return nil, errors.Newf(errors.ErrAmbiguousVersion,
			"version %s of %s exists on multiple networks (%v); qualify with a network tag",
			version, tool, networks).
			WithDetail("networks", networks)
	}
}

func noReleases(tool types.ToolID, network *types.Network) error {
	return errors.Newf(errors.ErrVersionNotFound,
		"no releases found for %s%s", tool, networkSuffix(network))
}

func networkSuffix(network *types.Network) string {
	if network == nil {
		return ""
	}
	return " on " + network.String()
}
