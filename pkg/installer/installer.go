// Package installer orchestrates installs: it downloads or builds the
// resolved artifact, places it in the per-install store directory, and
// records it in the ledger. Failures before the ledger write leave no
// trace in the store.
package installer

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/MystenLabs/suiup/pkg/catalog"
	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/ledger"
	"github.com/MystenLabs/suiup/pkg/logging"
	"github.com/MystenLabs/suiup/pkg/paths"
	"github.com/MystenLabs/suiup/pkg/platform"
	"github.com/MystenLabs/suiup/pkg/resolver"
	"github.com/MystenLabs/suiup/pkg/types"
)

// ProgressFunc opens a progress sink for one download; the returned
// writer receives the downloaded bytes and is closed when the download
// ends. A nil ProgressFunc disables progress reporting.
type ProgressFunc func(label string, total int64) io.WriteCloser

// Patcher post-processes an extracted binary for the host.
type Patcher interface {
	Patch(ctx context.Context, binary string) error
}

// NightlyBuilder builds a tool from source at a branch head.
type NightlyBuilder interface {
	// Build compiles the tool into destDir and returns the path of the
	// produced binary.
	Build(ctx context.Context, target resolver.NightlyTarget, debug bool, destDir string) (string, error)
}

// Result describes a completed Install call.
type Result struct {
	Record types.InstallRecord

	// Fresh is false when the artifact was already installed and the
	// call changed nothing.
	Fresh bool
}

// Installer performs installs against the store and ledger.
type Installer struct {
	catalog  catalog.Client
	ledger   *ledger.Ledger
	paths    *paths.Paths
	fs       types.FS
	platform platform.Platform
	patcher  Patcher
	builder  NightlyBuilder
	progress ProgressFunc
	log      zerolog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithProgress sets the download progress sink.
func WithProgress(fn ProgressFunc) Option {
	return func(i *Installer) { i.progress = fn }
}

// WithBuilder sets the nightly source builder.
func WithBuilder(b NightlyBuilder) Option {
	return func(i *Installer) { i.builder = b }
}

// WithPatcher sets the post-extraction binary patcher.
func WithPatcher(p Patcher) Option {
	return func(i *Installer) { i.patcher = p }
}

// New creates an installer for the host platform.
func New(c catalog.Client, l *ledger.Ledger, p *paths.Paths, fs types.FS, plat platform.Platform, opts ...Option) *Installer {
	inst := &Installer{
		catalog:  c,
		ledger:   l,
		paths:    p,
		fs:       fs,
		platform: plat,
		log:      logging.GetLogger("installer"),
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// Install materializes a resolved target. Installing an artifact that is
// already present and recorded is a no-op; nightly targets are always
// rebuilt, superseding any previous nightly of the tool.
func (i *Installer) Install(ctx context.Context, target resolver.Target) (Result, error) {
	if target.Nightly != nil {
		return i.installNightly(ctx, *target.Nightly, target.Debug)
	}
	return i.installRelease(ctx, *target.Release, target.Debug)
}

func (i *Installer) installRelease(ctx context.Context, rel types.ReleaseDescriptor, debug bool) (Result, error) {
	key := types.InstallKey{
		Tool:    rel.Tool,
		Channel: rel.Channel(),
		Version: rel.Version,
		Debug:   debug,
	}

	if existing, ok, err := i.ledger.Get(key); err != nil {
		return Result{}, err
	} else if ok {
		if _, serr := i.fs.Stat(existing.Path); serr == nil {
			i.log.Debug().Str("key", key.String()).Msg("Already installed")
			return Result{Record: existing}, nil
		}
		// Ledger record without its binary: reinstall over it.
		i.log.Warn().Str("key", key.String()).Str("path", existing.Path).
			Msg("Recorded binary missing from store, reinstalling")
	}

	archivePath, err := i.download(ctx, rel)
	if err != nil {
		return Result{}, err
	}

	binary, err := i.placeInStore(ctx, key, archivePath, installedBinaryName(rel.Tool, debug))
	if err != nil {
		return Result{}, err
	}

	record := types.InstallRecord{
		Tool:        key.Tool,
		Channel:     key.Channel,
		Version:     key.Version,
		Debug:       key.Debug,
		Path:        binary,
		InstalledAt: time.Now().UTC(),
	}
	if err := i.ledger.Put(record); err != nil {
		_ = i.fs.RemoveAll(i.paths.StorePath(key))
		return Result{}, err
	}

	i.log.Info().Str("key", key.String()).Str("path", binary).Msg("Installed")
	return Result{Record: record, Fresh: true}, nil
}

func (i *Installer) installNightly(ctx context.Context, target resolver.NightlyTarget, debug bool) (Result, error) {
	if i.builder == nil {
		return Result{}, errors.New(errors.ErrBuildFailed, "no source builder available")
	}

	key := types.InstallKey{
		Tool:    target.Tool,
		Channel: target.Branch,
		Version: types.NightlyVersion,
		Debug:   debug,
	}
	// Build into a staging directory next to the final one so an
	// existing nightly survives a failed rebuild of the same branch.
	storeDir := i.paths.StorePath(key)
	stagingDir := storeDir + ".next"
	if err := i.freshDir(stagingDir); err != nil {
		return Result{}, err
	}

	built, err := i.builder.Build(ctx, target, debug, stagingDir)
	if err != nil {
		_ = i.fs.RemoveAll(stagingDir)
		return Result{}, err
	}
	relPath, err := filepath.Rel(stagingDir, built)
	if err != nil {
		_ = i.fs.RemoveAll(stagingDir)
		return Result{}, errors.Wrapf(err, errors.ErrInternal,
			"builder produced %s outside %s", built, stagingDir)
	}

	superseded := i.supersededNightly(key)

	// The new build is confirmed present; swap it into place.
	if err := i.fs.RemoveAll(storeDir); err != nil {
		_ = i.fs.RemoveAll(stagingDir)
		return Result{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot clear %s", storeDir)
	}
	if err := i.fs.Rename(stagingDir, storeDir); err != nil {
		_ = i.fs.RemoveAll(stagingDir)
		return Result{}, errors.Wrapf(err, errors.ErrFileAccess,
			"cannot move nightly build into %s", storeDir)
	}

	record := types.InstallRecord{
		Tool:        key.Tool,
		Channel:     key.Channel,
		Version:     key.Version,
		Debug:       key.Debug,
		Path:        filepath.Join(storeDir, relPath),
		InstalledAt: time.Now().UTC(),
	}

	// The ledger keeps at most one nightly per tool; drop the store
	// directory of the build this one supersedes.
	if err := i.ledger.Put(record); err != nil {
		_ = i.fs.RemoveAll(storeDir)
		return Result{}, err
	}
	if superseded != nil && superseded.Key() != key {
		_ = i.fs.RemoveAll(i.paths.StorePath(superseded.Key()))
	}

	i.log.Info().Str("key", key.String()).Str("branch", target.Branch).Msg("Built nightly")
	return Result{Record: record, Fresh: true}, nil
}

// supersededNightly finds the nightly record Put is about to replace,
// if it lives in a different store directory.
func (i *Installer) supersededNightly(key types.InstallKey) *types.InstallRecord {
	records, err := i.ledger.Installed()
	if err != nil {
		return nil
	}
	for _, rec := range records {
		if rec.IsNightly() && rec.Tool == key.Tool && rec.Debug == key.Debug {
			return &rec
		}
	}
	return nil
}

// placeInStore extracts the binary into a fresh store directory,
// verifies it, and patches it. The directory is removed on any failure.
func (i *Installer) placeInStore(ctx context.Context, key types.InstallKey, archivePath, binaryName string) (string, error) {
	storeDir := i.paths.StorePath(key)
	if err := i.freshDir(storeDir); err != nil {
		return "", err
	}

	binary, err := extract(archivePath, binaryName, storeDir)
	if err == nil {
		err = i.verify(binary)
	}
	if err == nil && i.patcher != nil {
		err = i.patcher.Patch(ctx, binary)
	}
	if err != nil {
		_ = i.fs.RemoveAll(storeDir)
		return "", err
	}
	return binary, nil
}

func (i *Installer) freshDir(dir string) error {
	if err := i.fs.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot clear %s", dir)
	}
	if err := i.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot create %s", dir)
	}
	return nil
}

func (i *Installer) verify(binary string) error {
	info, err := i.fs.Stat(binary)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCorruptArchive, "extracted binary %s is missing", binary)
	}
	if info.Size() == 0 {
		return errors.Newf(errors.ErrCorruptArchive, "extracted binary %s is empty", binary)
	}
	return nil
}

// installedBinaryName is the file name placed in the store: the tool
// name, or the debug-symbols variant shipped alongside it.
func installedBinaryName(tool types.ToolID, debug bool) string {
	if debug {
		return tool.BinaryName() + "-debug"
	}
	return tool.BinaryName()
}
