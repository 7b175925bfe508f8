// Package switcher promotes installed binaries to the stable,
// PATH-visible bin directory. The swap is a copy into a temp file
// followed by a rename, so the default binary is never observable in a
// half-written state; the ledger pointer is updated only after the swap
// has happened.
package switcher

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/ledger"
	"github.com/MystenLabs/suiup/pkg/logging"
	"github.com/MystenLabs/suiup/pkg/paths"
	"github.com/MystenLabs/suiup/pkg/types"
)

// Switcher flips which installed artifact a tool's default name points
// at.
type Switcher struct {
	fs     types.FS
	paths  *paths.Paths
	ledger *ledger.Ledger
	log    zerolog.Logger
}

// New creates a switcher over the standard bin directory.
func New(fs types.FS, p *paths.Paths, l *ledger.Ledger) *Switcher {
	return &Switcher{
		fs:     fs,
		paths:  p,
		ledger: l,
		log:    logging.GetLogger("switcher"),
	}
}

// Set makes the install identified by key the default for its tool and
// debug flag. The install must be recorded in the ledger and its binary
// must still exist in the store.
func (s *Switcher) Set(key types.InstallKey) error {
	record, ok, err := s.ledger.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf(errors.ErrInstallNotFound,
			"%s is not installed; run \"suiup install\" first", key)
	}
	if _, err := s.fs.Stat(record.Path); err != nil {
		return errors.Wrapf(err, errors.ErrInstallNotFound,
			"binary for %s is missing from the store; reinstall it", key)
	}

	ptr := types.DefaultPointer{
		Tool:    key.Tool,
		Channel: key.Channel,
		Version: key.Version,
		Debug:   key.Debug,
	}
	dest := s.paths.DefaultBinaryPath(ptr.BinaryName())

	if err := s.swap(record.Path, dest); err != nil {
		return err
	}
	if err := s.ledger.SetDefault(ptr); err != nil {
		return err
	}

	s.log.Info().Str("key", key.String()).Str("dest", dest).Msg("Default switched")
	return nil
}

// Get returns the current default pointer for a tool and debug flag.
func (s *Switcher) Get(tool types.ToolID, debug bool) (types.DefaultPointer, bool, error) {
	return s.ledger.GetDefault(tool, debug)
}

// Which returns the PATH-visible location of a tool's default binary
// along with its pointer. A pointer whose bin-dir binary has gone
// missing is reported as a dangling default.
func (s *Switcher) Which(tool types.ToolID, debug bool) (types.DefaultPointer, string, error) {
	ptr, ok, err := s.ledger.GetDefault(tool, debug)
	if err != nil {
		return types.DefaultPointer{}, "", err
	}
	if !ok {
		return types.DefaultPointer{}, "", errors.Newf(errors.ErrInstallNotFound,
			"no default set for %s", tool)
	}

	dest := s.paths.DefaultBinaryPath(ptr.BinaryName())
	if _, err := s.fs.Stat(dest); err != nil {
		return ptr, dest, errors.Wrapf(err, errors.ErrDanglingDefault,
			"default for %s points at %s but the binary is gone; run \"suiup default set\" again",
			tool, dest)
	}
	return ptr, dest, nil
}

// swap copies src over dest through a sibling temp file and a rename.
func (s *Switcher) swap(src, dest string) error {
	if err := s.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot create %s", filepath.Dir(dest))
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", src)
	}
	defer func() { _ = in.Close() }()

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot create temp file next to %s", dest)
	}
	tmpPath := tmp.Name()

	_, cpErr := io.Copy(tmp, in)
	closeErr := tmp.Close()
	if cpErr != nil || closeErr != nil {
		_ = os.Remove(tmpPath)
		if cpErr == nil {
			cpErr = closeErr
		}
		return errors.Wrapf(cpErr, errors.ErrFileAccess, "cannot copy %s", src)
	}

	if err := s.fs.Chmod(tmpPath, 0755); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot mark %s executable", tmpPath)
	}
	if err := s.fs.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot replace %s", dest)
	}
	return nil
}
