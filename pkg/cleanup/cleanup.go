// Package cleanup reclaims disk space: pruning downloaded release
// archives from the cache and removing store directories no ledger
// record references. Live installs and anything a default pointer
// depends on are never touched.
package cleanup

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/ledger"
	"github.com/MystenLabs/suiup/pkg/logging"
	"github.com/MystenLabs/suiup/pkg/paths"
	"github.com/MystenLabs/suiup/pkg/types"
)

// Report summarizes what a cleanup pass removed, or would remove in a
// dry run.
type Report struct {
	Removed    []string
	FreedBytes int64
	DryRun     bool
}

func (r Report) String() string {
	verb := "freed"
	if r.DryRun {
		verb = "would free"
	}
	return fmt.Sprintf("%d item(s), %s %s", len(r.Removed), verb, humanize.Bytes(uint64(r.FreedBytes)))
}

// Cleaner removes cache and store entries.
type Cleaner struct {
	fs     types.FS
	paths  *paths.Paths
	ledger *ledger.Ledger
	log    zerolog.Logger
}

// New creates a cleaner.
func New(fs types.FS, p *paths.Paths, l *ledger.Ledger) *Cleaner {
	return &Cleaner{
		fs:     fs,
		paths:  p,
		ledger: l,
		log:    logging.GetLogger("cleanup"),
	}
}

// PruneArchives removes downloaded release archives older than maxAge,
// or every archive when all is set. Checksum sidecars go with their
// archive. With dryRun nothing is deleted and the report shows what a
// real pass would remove.
func (c *Cleaner) PruneArchives(maxAge time.Duration, all, dryRun bool) (Report, error) {
	report := Report{DryRun: dryRun}
	dir := c.paths.ArchiveCacheDir()

	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		if isNotExist(err) {
			return report, nil
		}
		return report, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", dir)
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !all && info.ModTime().After(cutoff) {
			continue
		}

		report.Removed = append(report.Removed, path)
		report.FreedBytes += info.Size()
		if dryRun {
			continue
		}
		if err := c.fs.Remove(path); err != nil {
			return report, errors.Wrapf(err, errors.ErrFileAccess, "cannot remove %s", path)
		}
	}

	c.log.Info().Int("removed", len(report.Removed)).
		Str("freed", humanize.Bytes(uint64(report.FreedBytes))).
		Bool("dry_run", dryRun).
		Msg("Pruned archive cache")
	return report, nil
}

// ReclaimStore removes store directories that neither an install record
// nor a default pointer references. A default pointer whose record has
// vanished is logged as dangling; its store directory, if one remains,
// is kept so the user can re-record rather than re-download.
func (c *Cleaner) ReclaimStore(dryRun bool) (Report, error) {
	report := Report{DryRun: dryRun}

	records, err := c.ledger.Installed()
	if err != nil {
		return report, err
	}
	defaults, err := c.ledger.Defaults()
	if err != nil {
		return report, err
	}

	live := make(map[string]bool, len(records)+len(defaults))
	for _, rec := range records {
		live[rec.Key().StoreDirName()] = true
	}
	for _, ptr := range defaults {
		live[ptr.Key().StoreDirName()] = true
	}

	c.warnDanglingDefaults(records, defaults)

	storeRoot := c.paths.StoreDir()
	entries, err := c.fs.ReadDir(storeRoot)
	if err != nil {
		if isNotExist(err) {
			return report, nil
		}
		return report, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", storeRoot)
	}

	for _, entry := range entries {
		if !entry.IsDir() || live[entry.Name()] {
			continue
		}
		path := filepath.Join(storeRoot, entry.Name())
		report.Removed = append(report.Removed, path)
		report.FreedBytes += c.dirSize(path)
		if dryRun {
			continue
		}
		if err := c.fs.RemoveAll(path); err != nil {
			return report, errors.Wrapf(err, errors.ErrFileAccess, "cannot remove %s", path)
		}
	}

	c.log.Info().Int("removed", len(report.Removed)).
		Str("freed", humanize.Bytes(uint64(report.FreedBytes))).
		Bool("dry_run", dryRun).
		Msg("Reclaimed store")
	return report, nil
}

func (c *Cleaner) warnDanglingDefaults(records []types.InstallRecord, defaults []types.DefaultPointer) {
	recorded := make(map[types.InstallKey]bool, len(records))
	for _, rec := range records {
		recorded[rec.Key()] = true
	}
	for _, ptr := range defaults {
		if !recorded[ptr.Key()] {
			c.log.Warn().
				Str("tool", ptr.Tool.String()).
				Str("version", ptr.Version).
				Msg("Default points at an install that is no longer recorded")
		}
	}
}

func (c *Cleaner) dirSize(dir string) int64 {
	var total int64
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return 0
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			total += c.dirSize(path)
			continue
		}
		if info, err := entry.Info(); err == nil {
			total += info.Size()
		}
	}
	return total
}
