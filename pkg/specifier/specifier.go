// Package specifier parses user-supplied version specifiers of the form
// tool[(@|=|==)spec] into a structured VersionSpecifier. The spec part
// is a bare version ("1.40.1", "v1.40.1"), a network tag alone
// ("testnet"), or network-version ("testnet-1.40.1"). Parsing does no
// I/O; channel and version inference happens in the resolver.
package specifier

import (
	"strings"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/types"
)

// separators in precedence order; "==" must be tried before "=".
var separators = []string{"@", "==", "="}

// Parse turns a raw specifier string plus the nightly/debug flags into
// a VersionSpecifier.
//
// nightly is nil when --nightly was not given; a pointer to "" selects
// the default branch. A nightly request conflicts with any explicit
// version or network in the specifier.
func Parse(raw string, nightly *string, debug bool) (types.VersionSpecifier, error) {
	name, spec, err := split(raw)
	if err != nil {
		return types.VersionSpecifier{}, err
	}

	tool, err := types.ParseToolID(name)
	if err != nil {
		return types.VersionSpecifier{}, err
	}

	if debug && !tool.Profile().SupportsDebug {
		return types.VersionSpecifier{}, errors.Newf(errors.ErrConflictingSpecifier,
			"%s does not ship a debug build; drop --debug", tool)
	}

	out := types.VersionSpecifier{Tool: tool, Nightly: nightly, Debug: debug}

	if spec == "" {
		return out, nil
	}

	if nightly != nil {
		return types.VersionSpecifier{}, errors.Newf(errors.ErrConflictingSpecifier,
			"--nightly cannot be combined with an explicit version or network (%q)", raw)
	}

	network, version, err := parseSpec(tool, spec)
	if err != nil {
		return types.VersionSpecifier{}, err
	}
	out.Network = network
	out.Version = version
	return out, nil
}

// split separates the tool name from the optional spec part. All three
// separators are equivalent.
func split(raw string) (name, spec string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", errors.New(errors.ErrMalformedSpecifier, "empty specifier")
	}

	for _, sep := range separators {
		if !strings.Contains(raw, sep) {
			continue
		}
		parts := strings.SplitN(raw, sep, 2)
		name, spec = parts[0], parts[1]
		if name == "" || spec == "" {
			return "", "", errors.Newf(errors.ErrMalformedSpecifier,
				"invalid specifier %q: use 'tool' or 'tool%sversion'", raw, sep)
		}
		// A second separator in the spec part means something like
		// sui@testnet@1.2.3.
		for _, other := range separators {
			if strings.Contains(spec, other) {
				return "", "", errors.Newf(errors.ErrMalformedSpecifier,
					"invalid specifier %q: multiple separators", raw)
			}
		}
		return name, spec, nil
	}
	return raw, "", nil
}

// parseSpec interprets the part after the separator according to the
// tool's policy profile.
func parseSpec(tool types.ToolID, spec string) (*types.Network, string, error) {
	profile := tool.Profile()

	if types.IsNetworkTag(spec) {
		if !profile.UsesNetworks {
			return nil, "", errors.Newf(errors.ErrMalformedSpecifier,
				"%s releases are not tagged by network; use a bare version", tool)
		}
		network, _ := types.ParseNetwork(spec)
		return &network, "", nil
	}

	// network-version, e.g. testnet-1.40.1
	if prefix, rest, found := strings.Cut(spec, "-"); found && types.IsNetworkTag(prefix) {
		if !profile.UsesNetworks {
			return nil, "", errors.Newf(errors.ErrMalformedSpecifier,
				"%s releases are not tagged by network; use a bare version", tool)
		}
		network, _ := types.ParseNetwork(prefix)
		version, err := normalizeVersion(rest)
		if err != nil {
			return nil, "", err
		}
		return &network, version, nil
	}

	// bare version; the resolver searches all networks for it
	version, err := normalizeVersion(spec)
	if err != nil {
		return nil, "", err
	}
	return nil, version, nil
}

// normalizeVersion strips the optional leading "v" and rejects strings
// that cannot be a version at all.
func normalizeVersion(s string) (string, error) {
	v := strings.TrimPrefix(s, "v")
	if v == "" || !isDigit(v[0]) {
		return "", errors.Newf(errors.ErrMalformedSpecifier, "invalid version %q", s)
	}
	return v, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
