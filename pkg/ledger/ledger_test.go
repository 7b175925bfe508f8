package ledger

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/testutil"
	"github.com/MystenLabs/suiup/pkg/types"
)

func newTestLedger(t *testing.T) (*Ledger, func() *Ledger) {
	t.Helper()
	p, fs := testutil.TempPaths(t)
	reopen := func() *Ledger { return New(fs, p) }
	return reopen(), reopen
}

func record(tool types.ToolID, channel, version string, debug bool) types.InstallRecord {
	return types.InstallRecord{
		Tool:        tool,
		Channel:     channel,
		Version:     version,
		Debug:       debug,
		Path:        "/store/" + string(tool),
		InstalledAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPutSurvivesReopen(t *testing.T) {
	l, reopen := newTestLedger(t)

	rec := record(types.ToolSui, "testnet", "1.40.1", false)
	require.NoError(t, l.Put(rec))

	// A fresh instance over the same files sees the record.
	got, ok, err := reopen().Get(rec.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestPutIsIdempotent(t *testing.T) {
	l, _ := newTestLedger(t)

	rec := record(types.ToolSui, "testnet", "1.40.1", false)
	require.NoError(t, l.Put(rec))
	rec.Path = "/store/sui-reinstalled"
	require.NoError(t, l.Put(rec))

	records, err := l.Installed()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/store/sui-reinstalled", records[0].Path)
}

func TestReleaseAndDebugCoexist(t *testing.T) {
	l, _ := newTestLedger(t)

	require.NoError(t, l.Put(record(types.ToolSui, "testnet", "1.40.1", false)))
	require.NoError(t, l.Put(record(types.ToolSui, "testnet", "1.40.1", true)))

	records, err := l.Installed()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestNightlySupersession(t *testing.T) {
	l, _ := newTestLedger(t)

	require.NoError(t, l.Put(record(types.ToolSui, "main", types.NightlyVersion, false)))
	require.NoError(t, l.Put(record(types.ToolSui, "feature-x", types.NightlyVersion, false)))
	// A versioned install is untouched by nightly supersession.
	require.NoError(t, l.Put(record(types.ToolSui, "testnet", "1.40.1", false)))

	records, err := l.Installed()
	require.NoError(t, err)
	require.Len(t, records, 2)

	var nightly []types.InstallRecord
	for _, rec := range records {
		if rec.IsNightly() {
			nightly = append(nightly, rec)
		}
	}
	require.Len(t, nightly, 1)
	assert.Equal(t, "feature-x", nightly[0].Channel)
}

func TestRemove(t *testing.T) {
	l, _ := newTestLedger(t)

	rec := record(types.ToolSui, "testnet", "1.40.1", false)
	require.NoError(t, l.Put(rec))

	removed, found, err := l.Remove(rec.Key())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec, removed)

	_, found, err = l.Remove(rec.Key())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRemoveToolDropsDefaults(t *testing.T) {
	l, _ := newTestLedger(t)

	require.NoError(t, l.Put(record(types.ToolSui, "testnet", "1.40.1", false)))
	require.NoError(t, l.Put(record(types.ToolSui, "devnet", "1.41.0", false)))
	require.NoError(t, l.Put(record(types.ToolWalrus, "testnet", "1.5.0", false)))
	require.NoError(t, l.SetDefault(types.DefaultPointer{
		Tool: types.ToolSui, Channel: "testnet", Version: "1.40.1"}))

	removed, err := l.RemoveTool(types.ToolSui)
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	records, err := l.Installed()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, types.ToolWalrus, records[0].Tool)

	_, ok, err := l.GetDefault(types.ToolSui, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultsRoundTrip(t *testing.T) {
	l, reopen := newTestLedger(t)

	release := types.DefaultPointer{Tool: types.ToolSui, Channel: "testnet", Version: "1.40.1"}
	debug := types.DefaultPointer{Tool: types.ToolSui, Channel: "testnet", Version: "1.39.0", Debug: true}
	require.NoError(t, l.SetDefault(release))
	require.NoError(t, l.SetDefault(debug))

	// Replacing the release default leaves the debug default alone.
	release.Version = "1.41.0"
	release.Channel = "devnet"
	require.NoError(t, l.SetDefault(release))

	l2 := reopen()
	got, ok, err := l2.GetDefault(types.ToolSui, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, release, got)

	gotDebug, ok, err := l2.GetDefault(types.ToolSui, true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, debug, gotDebug)
}

func TestDefaultFileFormat(t *testing.T) {
	l, _ := newTestLedger(t)
	require.NoError(t, l.SetDefault(types.DefaultPointer{
		Tool: types.ToolSui, Channel: "testnet", Version: "1.40.1", Debug: true}))

	data, err := os.ReadFile(l.defaultPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sui-debug": ["testnet", "1.40.1", true]}`, string(data))
}

func TestCorruptLedgerFiles(t *testing.T) {
	l, _ := newTestLedger(t)
	require.NoError(t, os.WriteFile(l.installedPath, []byte("{not json"), 0644))
	require.NoError(t, os.WriteFile(l.defaultPath, []byte("[1,2,3]"), 0644))

	_, err := l.Installed()
	require.Error(t, err)
	assert.Equal(t, errors.ErrLedgerCorrupt, errors.GetCode(err))

	_, err = l.Defaults()
	require.Error(t, err)
	assert.Equal(t, errors.ErrLedgerCorrupt, errors.GetCode(err))
}

func TestMissingFilesAreEmpty(t *testing.T) {
	l, _ := newTestLedger(t)

	records, err := l.Installed()
	require.NoError(t, err)
	assert.Empty(t, records)

	defaults, err := l.Defaults()
	require.NoError(t, err)
	assert.Empty(t, defaults)
}

func TestLockHeldByLiveProcess(t *testing.T) {
	l, _ := newTestLedger(t)

	// A fresh lock file naming a live foreign process blocks writers
	// until the retries run out.
	require.NoError(t, os.WriteFile(l.lock.path, []byte("1\n"), 0644))
	l.lock.retries = 3
	l.lock.delay = time.Millisecond

	err := l.Put(record(types.ToolSui, "testnet", "1.40.1", false))
	require.Error(t, err)
	assert.Equal(t, errors.ErrLedgerLocked, errors.GetCode(err))
}

func TestStaleLockReclaimed(t *testing.T) {
	l, _ := newTestLedger(t)

	// A lock file naming a dead PID is reclaimed immediately.
	require.NoError(t, os.WriteFile(l.lock.path, []byte("999999999\n"), 0644))
	require.NoError(t, l.Put(record(types.ToolSui, "testnet", "1.40.1", false)))

	records, err := l.Installed()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
