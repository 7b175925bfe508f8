package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/types"
)

func TestDetectMapping(t *testing.T) {
	tests := []struct {
		name   string
		goos   string
		goarch string
		tag    types.PlatformTag
	}{
		{"linux_amd64", "linux", "amd64", "ubuntu-x86_64"},
		{"linux_arm64", "linux", "arm64", "ubuntu-aarch64"},
		{"darwin_arm64", "darwin", "arm64", "macos-arm64"},
		{"darwin_amd64", "darwin", "amd64", "macos-x86_64"},
		{"windows_amd64", "windows", "amd64", "windows-x86_64"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := detect(tt.goos, tt.goarch)
			require.NoError(t, err)
			assert.Equal(t, tt.tag, p.Tag())
		})
	}
}

func TestDetectUnsupported(t *testing.T) {
	_, err := detect("plan9", "amd64")
	require.Error(t, err)
	assert.Equal(t, errors.ErrUnsupportedPlatform, errors.GetCode(err))

	_, err = detect("linux", "riscv64")
	require.Error(t, err)
	assert.Equal(t, errors.ErrUnsupportedPlatform, errors.GetCode(err))
}
