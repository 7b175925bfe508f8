// Package ledger owns the durable record of installs and default
// pointers. All mutation goes through locked read-modify-write cycles
// so concurrent suiup processes cannot lose each other's updates; reads
// take no lock and see the last fully written state.
package ledger

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/logging"
	"github.com/MystenLabs/suiup/pkg/paths"
	"github.com/MystenLabs/suiup/pkg/types"
)

// Ledger persists install records and default pointers as JSON files in
// the config directory. The on-disk formats predate this implementation
// and must remain readable by older releases.
type Ledger struct {
	fs            types.FS
	installedPath string
	defaultPath   string
	lock          *fileLock
	log           zerolog.Logger
}

// New creates a ledger over the standard file locations.
func New(filesystem types.FS, p *paths.Paths) *Ledger {
	return &Ledger{
		fs:            filesystem,
		installedPath: p.InstalledFile(),
		defaultPath:   p.DefaultFile(),
		lock:          &fileLock{path: p.LockFile()},
		log:           logging.GetLogger("ledger"),
	}
}

// Installed returns every install record, ordered by tool then version.
func (l *Ledger) Installed() ([]types.InstallRecord, error) {
	return l.readInstalled()
}

// Get looks up the record for an install key.
func (l *Ledger) Get(key types.InstallKey) (types.InstallRecord, bool, error) {
	records, err := l.readInstalled()
	if err != nil {
		return types.InstallRecord{}, false, err
	}
	for _, rec := range records {
		if rec.Key() == key {
			return rec, true, nil
		}
	}
	return types.InstallRecord{}, false, nil
}

// Put upserts an install record. Re-recording an existing key replaces
// the old record. A nightly record supersedes any previous nightly for
// the same tool and debug flag, whatever branch it was built from; a
// tool has at most one nightly install.
func (l *Ledger) Put(rec types.InstallRecord) error {
	if rec.InstalledAt.IsZero() {
		rec.InstalledAt = time.Now().UTC()
	}

	return l.withLock(func() error {
		records, err := l.readInstalled()
		if err != nil {
			return err
		}

		kept := records[:0]
		for _, existing := range records {
			if existing.Key() == rec.Key() {
				continue
			}
			if rec.IsNightly() && existing.IsNightly() &&
				existing.Tool == rec.Tool && existing.Debug == rec.Debug {
				l.log.Debug().
					Str("tool", rec.Tool.String()).
					Str("old_branch", existing.Channel).
					Str("new_branch", rec.Channel).
					Msg("Nightly record superseded")
				continue
			}
			kept = append(kept, existing)
		}
		kept = append(kept, rec)

		return l.writeInstalled(kept)
	})
}

// Remove deletes the record for a key. Returns the removed record, or
// ok=false if no such record existed.
func (l *Ledger) Remove(key types.InstallKey) (types.InstallRecord, bool, error) {
	var removed types.InstallRecord
	var found bool

	err := l.withLock(func() error {
		records, err := l.readInstalled()
		if err != nil {
			return err
		}
		kept := records[:0]
		for _, rec := range records {
			if rec.Key() == key {
				removed, found = rec, true
				continue
			}
			kept = append(kept, rec)
		}
		if !found {
			return nil
		}
		return l.writeInstalled(kept)
	})
	return removed, found, err
}

// RemoveTool deletes every record for a tool along with its default
// pointers, returning the removed records.
func (l *Ledger) RemoveTool(tool types.ToolID) ([]types.InstallRecord, error) {
	var removed []types.InstallRecord

	err := l.withLock(func() error {
		records, err := l.readInstalled()
		if err != nil {
			return err
		}
		kept := records[:0]
		for _, rec := range records {
			if rec.Tool == tool {
				removed = append(removed, rec)
				continue
			}
			kept = append(kept, rec)
		}
		if err := l.writeInstalled(kept); err != nil {
			return err
		}

		defaults, err := l.readDefaults()
		if err != nil {
			return err
		}
		keptDefaults := defaults[:0]
		for _, ptr := range defaults {
			if ptr.Tool == tool {
				continue
			}
			keptDefaults = append(keptDefaults, ptr)
		}
		return l.writeDefaults(keptDefaults)
	})
	return removed, err
}

// Defaults returns every default pointer.
func (l *Ledger) Defaults() ([]types.DefaultPointer, error) {
	return l.readDefaults()
}

// GetDefault looks up the default pointer for a tool and debug flag.
func (l *Ledger) GetDefault(tool types.ToolID, debug bool) (types.DefaultPointer, bool, error) {
	defaults, err := l.readDefaults()
	if err != nil {
		return types.DefaultPointer{}, false, err
	}
	for _, ptr := range defaults {
		if ptr.Tool == tool && ptr.Debug == debug {
			return ptr, true, nil
		}
	}
	return types.DefaultPointer{}, false, nil
}

// SetDefault records ptr as the default for its tool and debug flag,
// replacing any previous pointer for that pair.
func (l *Ledger) SetDefault(ptr types.DefaultPointer) error {
	return l.withLock(func() error {
		defaults, err := l.readDefaults()
		if err != nil {
			return err
		}
		kept := defaults[:0]
		for _, existing := range defaults {
			if existing.Tool == ptr.Tool && existing.Debug == ptr.Debug {
				continue
			}
			kept = append(kept, existing)
		}
		kept = append(kept, ptr)
		return l.writeDefaults(kept)
	})
}

// RemoveDefault deletes the default pointer for a tool and debug flag,
// if one exists.
func (l *Ledger) RemoveDefault(tool types.ToolID, debug bool) error {
	return l.withLock(func() error {
		defaults, err := l.readDefaults()
		if err != nil {
			return err
		}
		kept := defaults[:0]
		changed := false
		for _, ptr := range defaults {
			if ptr.Tool == tool && ptr.Debug == debug {
				changed = true
				continue
			}
			kept = append(kept, ptr)
		}
		if !changed {
			return nil
		}
		return l.writeDefaults(kept)
	})
}

func (l *Ledger) withLock(fn func() error) error {
	release, err := l.lock.acquire()
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

func (l *Ledger) readInstalled() ([]types.InstallRecord, error) {
	data, err := l.fs.ReadFile(l.installedPath)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"cannot read %s", l.installedPath)
	}

	var records []types.InstallRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, errors.ErrLedgerCorrupt,
			"%s is not valid JSON; fix or remove it", l.installedPath).
			WithDetail("file", l.installedPath)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Tool != records[j].Tool {
			return records[i].Tool < records[j].Tool
		}
		return records[i].Version < records[j].Version
	})
	return records, nil
}

func (l *Ledger) writeInstalled(records []types.InstallRecord) error {
	if records == nil {
		records = []types.InstallRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode install records")
	}
	return l.writeFile(l.installedPath, data)
}

func (l *Ledger) readDefaults() ([]types.DefaultPointer, error) {
	data, err := l.fs.ReadFile(l.defaultPath)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"cannot read %s", l.defaultPath)
	}

	defaults, err := decodeDefaults(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLedgerCorrupt,
			"%s is not a valid default-version file; fix or remove it", l.defaultPath).
			WithDetail("file", l.defaultPath)
	}
	return defaults, nil
}

func (l *Ledger) writeDefaults(defaults []types.DefaultPointer) error {
	data, err := encodeDefaults(defaults)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode default pointers")
	}
	return l.writeFile(l.defaultPath, data)
}

// writeFile writes through a sibling temp file and renames it into
// place so a crash mid-write never leaves a truncated ledger.
func (l *Ledger) writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := l.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", tmp)
	}
	if err := l.fs.Rename(tmp, path); err != nil {
		_ = l.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot replace %s", path)
	}
	return nil
}

func isNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist)
}
