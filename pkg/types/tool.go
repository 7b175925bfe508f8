package types

import (
	"strings"

	"github.com/MystenLabs/suiup/pkg/errors"
)

// ToolID identifies one of the managed CLI binaries. The set is closed;
// adding a tool means adding a constant and a profile entry here.
type ToolID string

const (
	ToolSui         ToolID = "sui"
	ToolMvr         ToolID = "mvr"
	ToolWalrus      ToolID = "walrus"
	ToolSiteBuilder ToolID = "site-builder"
)

// Network is a release channel qualifier for network-bearing tools.
type Network string

const (
	NetworkTestnet Network = "testnet"
	NetworkDevnet  Network = "devnet"
	NetworkMainnet Network = "mainnet"
)

// StandaloneChannel is the ledger channel used for tools that do not
// publish per-network releases (mvr).
const StandaloneChannel = "standalone"

// ToolProfile is the per-tool policy table: whether the tool uses
// network tags, which network is assumed when none is given, whether a
// debug-symbol build exists, and where its releases live.
type ToolProfile struct {
	UsesNetworks   bool
	DefaultNetwork Network
	SupportsDebug  bool
	// Repo is the owner/name GitHub repository publishing releases.
	Repo string
}

var toolProfiles = map[ToolID]ToolProfile{
	ToolSui: {
		UsesNetworks:   true,
		DefaultNetwork: NetworkTestnet,
		SupportsDebug:  true,
		Repo:           "MystenLabs/sui",
	},
	ToolMvr: {
		UsesNetworks: false,
		Repo:         "MystenLabs/mvr",
	},
	ToolWalrus: {
		UsesNetworks:   true,
		DefaultNetwork: NetworkTestnet,
		Repo:           "MystenLabs/walrus",
	},
	ToolSiteBuilder: {
		UsesNetworks:   true,
		DefaultNetwork: NetworkTestnet,
		Repo:           "MystenLabs/walrus-sites",
	},
}

// AvailableTools returns the managed tools in stable order.
func AvailableTools() []ToolID {
	return []ToolID{ToolSui, ToolMvr, ToolWalrus, ToolSiteBuilder}
}

// ParseToolID validates a user-supplied tool name.
func ParseToolID(s string) (ToolID, error) {
	id := ToolID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := toolProfiles[id]; !ok {
		return "", errors.Newf(errors.ErrUnknownTool, "unknown tool %q", s).
			WithDetail("tool", s)
	}
	return id, nil
}

// Profile returns the policy profile for the tool. The zero profile is
// returned for unknown IDs; callers construct ToolIDs via ParseToolID.
func (t ToolID) Profile() ToolProfile {
	return toolProfiles[t]
}

// BinaryName is the executable name the tool installs under.
func (t ToolID) BinaryName() string {
	return string(t)
}

// RepoURL returns the https URL of the tool's source repository, used
// for nightly source builds.
func (t ToolID) RepoURL() string {
	return "https://github.com/" + t.Profile().Repo
}

func (t ToolID) String() string { return string(t) }

// ParseNetwork validates a network tag.
func ParseNetwork(s string) (Network, error) {
	switch Network(strings.ToLower(s)) {
	case NetworkTestnet:
		return NetworkTestnet, nil
	case NetworkDevnet:
		return NetworkDevnet, nil
	case NetworkMainnet:
		return NetworkMainnet, nil
	}
	return "", errors.Newf(errors.ErrMalformedSpecifier, "invalid network %q", s)
}

// IsNetworkTag reports whether s names a known release channel.
func IsNetworkTag(s string) bool {
	_, err := ParseNetwork(s)
	return err == nil
}

func (n Network) String() string { return string(n) }
