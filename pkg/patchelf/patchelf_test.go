package patchelf

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MystenLabs/suiup/pkg/errors"
)

func TestMissingConfigIsNoop(t *testing.T) {
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "absent.json"))

	p, err := New()
	require.NoError(t, err)
	assert.False(t, p.Active())
}

func TestLoadConfig(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("patching only applies on linux")
	}

	path := filepath.Join(t.TempDir(), "deps.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"interpreter": "/nix/ld-linux.so.2", "lib_path": "/nix/lib"}`), 0644))
	t.Setenv(EnvConfig, path)

	p, err := New()
	require.NoError(t, err)
	require.True(t, p.Active())
	assert.Equal(t, "/nix/ld-linux.so.2", p.deps.Interpreter)
	assert.Equal(t, "/nix/lib", p.deps.LibPath)
}

func TestInvalidConfig(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("patching only applies on linux")
	}

	path := filepath.Join(t.TempDir(), "deps.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
	t.Setenv(EnvConfig, path)

	_, err := New()
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigParse, errors.GetCode(err))
}
