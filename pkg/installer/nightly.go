package installer

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/logging"
	"github.com/MystenLabs/suiup/pkg/paths"
	"github.com/MystenLabs/suiup/pkg/resolver"
)

// CargoBuilder builds nightly binaries with "cargo install" against the
// tool's source repository. cargo must be on PATH.
type CargoBuilder struct {
	log zerolog.Logger
}

// NewCargoBuilder creates the cargo-backed nightly builder.
func NewCargoBuilder() *CargoBuilder {
	return &CargoBuilder{log: logging.GetLogger("cargo")}
}

// Build runs cargo install for the branch head and returns the path of
// the produced binary. destDir becomes the cargo install root, so the
// binary lands in destDir/bin.
func (b *CargoBuilder) Build(ctx context.Context, target resolver.NightlyTarget, debug bool, destDir string) (string, error) {
	args := []string{
		"install",
		"--git", target.Tool.RepoURL(),
		"--branch", target.Branch,
		"--bin", target.Tool.BinaryName(),
		"--root", destDir,
		"--locked",
	}
	if debug {
		args = append(args, "--debug")
	}

	b.log.Info().
		Str("tool", target.Tool.String()).
		Str("branch", target.Branch).
		Msg("Building from source, this can take a while")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "cargo", args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, errors.ErrBuildFailed,
			"cargo install of %s (branch %s) failed: %s",
			target.Tool, target.Branch, stderrTail(stderr.String())).
			WithDetail("branch", target.Branch)
	}

	return filepath.Join(destDir, "bin", paths.ExecutableName(target.Tool.BinaryName())), nil
}

// stderrTail keeps the last few lines of build output, where cargo
// prints the actual error.
func stderrTail(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	const keep = 10
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	return strings.Join(lines, "\n")
}
