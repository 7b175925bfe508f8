// Package platform maps the running OS and architecture onto the tags
// used in release asset names.
package platform

import (
	"runtime"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/types"
)

// Platform describes the host in release-asset vocabulary. Linux
// releases are published under the "ubuntu" tag.
type Platform struct {
	OS   string
	Arch string
}

// Detect inspects the runtime and returns the host platform, or
// UnsupportedPlatform when no releases exist for this host.
func Detect() (Platform, error) {
	return detect(runtime.GOOS, runtime.GOARCH)
}

func detect(goos, goarch string) (Platform, error) {
	var p Platform

	switch goos {
	case "linux":
		p.OS = "ubuntu"
	case "darwin":
		p.OS = "macos"
	case "windows":
		p.OS = "windows"
	default:
		return Platform{}, errors.Newf(errors.ErrUnsupportedPlatform,
			"unsupported OS %q; supported: linux, macos, windows", goos)
	}

	switch goarch {
	case "amd64":
		p.Arch = "x86_64"
	case "arm64":
		// macOS releases use the arm64 name, the rest use aarch64
		if p.OS == "macos" {
			p.Arch = "arm64"
		} else {
			p.Arch = "aarch64"
		}
	default:
		return Platform{}, errors.Newf(errors.ErrUnsupportedPlatform,
			"unsupported architecture %q; supported: amd64, arm64", goarch)
	}

	return p, nil
}

// Tag returns the combined platform tag as it appears in asset names.
func (p Platform) Tag() types.PlatformTag {
	return types.PlatformTag(p.OS + "-" + p.Arch)
}

func (p Platform) String() string { return string(p.Tag()) }
