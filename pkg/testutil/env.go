// Package testutil holds helpers shared by the package test suites.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/MystenLabs/suiup/pkg/filesystem"
	"github.com/MystenLabs/suiup/pkg/paths"
	"github.com/MystenLabs/suiup/pkg/types"
)

// TempPaths points every SUIUP_* directory override at a fresh temp
// tree and returns the resolved path set plus an OS filesystem, with
// the directory layout already created.
func TempPaths(t *testing.T) (*paths.Paths, types.FS) {
	t.Helper()

	root := t.TempDir()
	t.Setenv(paths.EnvDataDir, filepath.Join(root, "data"))
	t.Setenv(paths.EnvConfigDir, filepath.Join(root, "config"))
	t.Setenv(paths.EnvCacheDir, filepath.Join(root, "cache"))
	t.Setenv(paths.EnvDefaultBinDir, filepath.Join(root, "bin"))

	p := paths.New()
	fs := filesystem.NewOS()
	if err := p.EnsureLayout(fs); err != nil {
		t.Fatalf("EnsureLayout: %v", err)
	}
	return p, fs
}
