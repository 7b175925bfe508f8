// Package archive extracts release binaries from downloaded tarballs.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MystenLabs/suiup/pkg/errors"
)

// ExtractBinary pulls the named binary out of a gzip-compressed tar
// archive and writes it into destDir, returning the path written. The
// archive entry is matched on base name so the layout inside the
// tarball does not matter. The extracted file is made executable.
func ExtractBinary(archivePath, binaryName, destDir string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot open archive %s", archivePath)
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", corrupt(archivePath, err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", corrupt(archivePath, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if !entryMatches(hdr.Name, binaryName) {
			continue
		}
		return writeBinary(tr, hdr, binaryName, destDir)
	}

	return "", errors.Newf(errors.ErrCorruptArchive,
		"archive %s contains no %q binary", filepath.Base(archivePath), binaryName).
		WithDetail("binary", binaryName)
}

// entryMatches accepts the exact binary name and the Windows variant
// with an .exe suffix.
func entryMatches(entryName, binaryName string) bool {
	base := filepath.Base(filepath.FromSlash(entryName))
	return base == binaryName || base == binaryName+".exe"
}

func writeBinary(r io.Reader, hdr *tar.Header, binaryName, destDir string) (string, error) {
	base := filepath.Base(filepath.FromSlash(hdr.Name))
	dest := filepath.Join(destDir, base)
	if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", errors.Newf(errors.ErrCorruptArchive,
			"archive entry %q escapes the destination directory", hdr.Name)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot create %s", dest)
	}

	written, err := io.Copy(out, r)
	cerr := out.Close()
	if err != nil {
		_ = os.Remove(dest)
		return "", corrupt(hdr.Name, err)
	}
	if cerr != nil {
		_ = os.Remove(dest)
		return "", errors.Wrapf(cerr, errors.ErrFileAccess, "cannot finish writing %s", dest)
	}
	if hdr.Size > 0 && written != hdr.Size {
		_ = os.Remove(dest)
		return "", errors.Newf(errors.ErrCorruptArchive,
			"binary %s is truncated: wrote %d of %d bytes", binaryName, written, hdr.Size)
	}

	return dest, nil
}

func corrupt(name string, err error) error {
	return errors.Wrapf(err, errors.ErrCorruptArchive,
		"archive %s is corrupt", filepath.Base(name))
}
