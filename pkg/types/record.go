package types

import (
	"fmt"
	"time"
)

// NightlyVersion is the literal version recorded for source builds.
// Nightly installs are not versioned; a tool has at most one.
const NightlyVersion = "nightly"

// VariantKind distinguishes the build flavor of an install.
type VariantKind string

const (
	VariantRelease VariantKind = "release"
	VariantDebug   VariantKind = "debug"
	VariantNightly VariantKind = "nightly"
)

// Variant is the build flavor plus, for nightly builds, the branch the
// build came from.
type Variant struct {
	Kind   VariantKind
	Branch string
}

func (v Variant) String() string {
	if v.Kind == VariantNightly {
		return fmt.Sprintf("nightly(%s)", v.Branch)
	}
	return string(v.Kind)
}

// InstallRecord is the durable record of one completed install. The
// JSON field names match the on-disk ledger format, which predates this
// implementation and must remain readable by older releases.
//
// Channel holds the network tag, "standalone" for network-less tools,
// or the branch name for nightly builds. Version is "nightly" for
// nightly builds.
type InstallRecord struct {
	Tool        ToolID    `json:"binary_name"`
	Channel     string    `json:"network_release"`
	Version     string    `json:"version"`
	Debug       bool      `json:"debug"`
	Path        string    `json:"path,omitempty"`
	InstalledAt time.Time `json:"installed_at,omitempty"`
}

// InstallKey uniquely identifies an install record.
type InstallKey struct {
	Tool    ToolID
	Channel string
	Version string
	Debug   bool
}

// Key returns the record's unique identity.
func (r InstallRecord) Key() InstallKey {
	return InstallKey{Tool: r.Tool, Channel: r.Channel, Version: r.Version, Debug: r.Debug}
}

// Variant derives the build flavor from the record fields.
func (r InstallRecord) Variant() Variant {
	switch {
	case r.Version == NightlyVersion:
		return Variant{Kind: VariantNightly, Branch: r.Channel}
	case r.Debug:
		return Variant{Kind: VariantDebug}
	default:
		return Variant{Kind: VariantRelease}
	}
}

// IsNightly reports whether the record is a source build.
func (r InstallRecord) IsNightly() bool {
	return r.Version == NightlyVersion
}

// StoreDirName is the name of the per-install store directory under the
// store root, derived from the record key.
func (k InstallKey) StoreDirName() string {
	name := fmt.Sprintf("%s-%s-%s", k.Tool, k.Channel, k.Version)
	if k.Debug {
		name += "-debug"
	}
	return name
}

func (k InstallKey) String() string {
	s := fmt.Sprintf("%s-%s", k.Tool, k.Version)
	if k.Debug {
		s += " (debug build)"
	}
	return s
}

func (r InstallRecord) String() string {
	return r.Key().String()
}

// DefaultPointer records which installed artifact is exposed at the
// stable PATH-visible location for a tool. At most one pointer exists
// per tool and variant kind (release and debug defaults can coexist).
type DefaultPointer struct {
	Tool    ToolID
	Channel string
	Version string
	Debug   bool
}

// Key returns the install key the pointer references.
func (p DefaultPointer) Key() InstallKey {
	return InstallKey{Tool: p.Tool, Channel: p.Channel, Version: p.Version, Debug: p.Debug}
}

// BinaryName is the name the default is exposed under in the bin
// directory: the tool name, with a -debug suffix for debug defaults.
func (p DefaultPointer) BinaryName() string {
	if p.Debug {
		return p.Tool.BinaryName() + "-debug"
	}
	return p.Tool.BinaryName()
}
