// Package patchelf rewrites the ELF interpreter and library search path
// of downloaded binaries on hosts whose dynamic linker lives in a
// non-standard location (NixOS being the usual case). It is a no-op
// everywhere else.
package patchelf

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/logging"
)

// EnvConfig overrides the runtime-deps config file location.
const EnvConfig = "SUIUP_PATCHELF_CONFIG"

// defaultConfigPath is where host provisioning drops the config.
const defaultConfigPath = "/usr/share/suiup/nix-runtime-deps.json"

// RuntimeDeps describes where the host keeps its dynamic linker and
// shared libraries.
type RuntimeDeps struct {
	Interpreter string `json:"interpreter"`
	LibPath     string `json:"lib_path"`
}

// Patcher applies RuntimeDeps to freshly installed binaries.
type Patcher struct {
	deps *RuntimeDeps
	log  zerolog.Logger
}

// New loads the runtime-deps config. A missing config file means the
// host needs no patching and yields a no-op patcher; a present but
// unreadable config is an error.
func New() (*Patcher, error) {
	p := &Patcher{log: logging.GetLogger("patchelf")}
	if runtime.GOOS != "linux" {
		return p, nil
	}

	path := os.Getenv(EnvConfig)
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"cannot read patchelf config %s", path)
	}

	var deps RuntimeDeps
	if err := json.Unmarshal(data, &deps); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"patchelf config %s is not valid JSON", path)
	}
	p.deps = &deps
	return p, nil
}

// Active reports whether this host needs binaries patched.
func (p *Patcher) Active() bool {
	return p.deps != nil
}

// Patch rewrites binary in place. Safe to call on any host; does
// nothing unless a runtime-deps config was loaded.
func (p *Patcher) Patch(ctx context.Context, binary string) error {
	if !p.Active() {
		return nil
	}

	args := []string{}
	if p.deps.Interpreter != "" {
		args = append(args, "--set-interpreter", p.deps.Interpreter)
	}
	if p.deps.LibPath != "" {
		args = append(args, "--set-rpath", p.deps.LibPath)
	}
	if len(args) == 0 {
		return nil
	}
	args = append(args, binary)

	p.log.Debug().Str("binary", binary).Strs("args", args).Msg("Patching ELF runtime paths")

	cmd := exec.CommandContext(ctx, "patchelf", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, errors.ErrBuildFailed,
			"patchelf failed on %s: %s", binary, strings.TrimSpace(string(out)))
	}
	return nil
}
