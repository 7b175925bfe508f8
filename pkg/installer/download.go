package installer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MystenLabs/suiup/pkg/archive"
	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/types"
)

// extract is swappable in tests.
var extract = archive.ExtractBinary

// download fetches the release archive into the cache, reusing a cached
// copy when its size and checksum sidecar still match. Returns the
// archive path.
func (i *Installer) download(ctx context.Context, rel types.ReleaseDescriptor) (string, error) {
	asset, ok := rel.AssetFor(i.platform.Tag())
	if !ok {
		return "", errors.Newf(errors.ErrUnsupportedPlatform,
			"release %s %s has no artifact for %s", rel.Tool, rel.Version, i.platform.Tag()).
			WithDetail("platform", string(i.platform.Tag()))
	}

	cacheDir := i.paths.ArchiveCacheDir()
	archivePath := filepath.Join(cacheDir, asset.Name)

	if i.cachedArchiveValid(archivePath, asset) {
		i.log.Debug().Str("archive", asset.Name).Msg("Using cached archive")
		return archivePath, nil
	}

	artifact, err := i.catalog.FetchArtifact(ctx, rel, i.platform.Tag())
	if err != nil {
		return "", err
	}
	defer func() { _ = artifact.Body.Close() }()

	if err := i.fs.MkdirAll(cacheDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot create %s", cacheDir)
	}

	tmp := archivePath + ".partial"
	out, err := os.Create(tmp)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot create %s", tmp)
	}

	hash := md5.New()
	var dest io.Writer = io.MultiWriter(out, hash)
	var progress io.WriteCloser
	if i.progress != nil {
		progress = i.progress(asset.Name, artifact.Size)
		dest = io.MultiWriter(dest, progress)
	}

	_, cpErr := io.Copy(dest, artifact.Body)
	closeErr := out.Close()
	if progress != nil {
		_ = progress.Close()
	}
	if cpErr != nil || closeErr != nil {
		_ = os.Remove(tmp)
		return "", errors.Wrapf(firstErr(cpErr, closeErr), errors.ErrNetworkUnavailable,
			"download of %s interrupted", asset.Name)
	}

	if err := i.fs.Rename(tmp, archivePath); err != nil {
		_ = os.Remove(tmp)
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot finalize %s", archivePath)
	}
	_ = i.fs.WriteFile(checksumPath(archivePath),
		[]byte(hex.EncodeToString(hash.Sum(nil))), 0644)

	return archivePath, nil
}

// cachedArchiveValid checks a cached archive against the release asset
// size and, when present, its checksum sidecar. Any mismatch means
// refetch.
func (i *Installer) cachedArchiveValid(archivePath string, asset types.Asset) bool {
	info, err := i.fs.Stat(archivePath)
	if err != nil {
		return false
	}
	if asset.Size > 0 && info.Size() != asset.Size {
		return false
	}

	want, err := i.fs.ReadFile(checksumPath(archivePath))
	if err != nil {
		// No sidecar: size match is the best check available.
		return true
	}
	got, err := fileMD5(archivePath)
	if err != nil {
		return false
	}
	return got == strings.TrimSpace(string(want))
}

func checksumPath(archivePath string) string {
	return archivePath + ".md5"
}

func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	hash := md5.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
