package types

import "time"

// PlatformTag identifies an OS/architecture combination the way release
// assets are named, e.g. "ubuntu-x86_64" or "macos-arm64".
type PlatformTag string

// Asset is one downloadable artifact of a release.
type Asset struct {
	Name string `json:"name"`
	URL  string `json:"browser_download_url"`
	Size int64  `json:"size"`
}

// ReleaseDescriptor describes one published release of a tool as
// reported by the catalog. It is read-only and never written to the
// ledger; the catalog may cache it briefly on disk.
type ReleaseDescriptor struct {
	Tool        ToolID
	Network     *Network
	Version     string
	Assets      map[PlatformTag]Asset
	PublishedAt time.Time
}

// Channel returns the release channel string used in store paths and
// ledger records: the network tag, or "standalone" for tools without
// network releases.
func (r ReleaseDescriptor) Channel() string {
	if r.Network != nil {
		return string(*r.Network)
	}
	return StandaloneChannel
}

// AssetFor returns the artifact matching the platform, if any.
func (r ReleaseDescriptor) AssetFor(tag PlatformTag) (Asset, bool) {
	a, ok := r.Assets[tag]
	return a, ok
}
