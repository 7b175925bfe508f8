package types

// VersionSpecifier is the structured form of a user-supplied version
// request. It is produced by pkg/specifier and never persisted.
type VersionSpecifier struct {
	Tool ToolID

	// Network is nil when the user gave no channel qualifier. For
	// bare-version specs on network-bearing tools the resolver searches
	// every channel.
	Network *Network

	// Version is the requested version without the leading "v", or
	// empty when the latest release should be resolved.
	Version string

	// Nightly holds the branch to build from when the --nightly flag
	// was given; nil otherwise.
	Nightly *string

	// Debug selects the debug-symbol build variant.
	Debug bool
}

// IsNightly reports whether the specifier targets a source build.
func (s VersionSpecifier) IsNightly() bool {
	return s.Nightly != nil
}

// NightlyBranch returns the requested branch, defaulting to "main".
func (s VersionSpecifier) NightlyBranch() string {
	if s.Nightly == nil || *s.Nightly == "" {
		return "main"
	}
	return *s.Nightly
}
