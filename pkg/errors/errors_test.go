package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrVersionNotFound, "no such release")
	assert.Equal(t, "[VERSION_NOT_FOUND] no such release", err.Error())

	wrapped := Wrap(fmt.Errorf("boom"), ErrNetworkUnavailable, "request failed")
	assert.Equal(t, "[NETWORK_UNAVAILABLE] request failed: boom", wrapped.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "nothing"))
	assert.Nil(t, Wrapf(nil, ErrInternal, "nothing %d", 1))
}

func TestIsMatchesOnCode(t *testing.T) {
	err := Newf(ErrAmbiguousVersion, "version %s on %d networks", "2.0.0", 2)
	assert.True(t, stderrors.Is(err, New(ErrAmbiguousVersion, "")))
	assert.False(t, stderrors.Is(err, New(ErrVersionNotFound, "")))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrLedgerCorrupt, GetCode(New(ErrLedgerCorrupt, "bad")))
	assert.Equal(t, ErrLedgerCorrupt, GetCode(fmt.Errorf("outer: %w", New(ErrLedgerCorrupt, "bad"))))
	assert.Equal(t, ErrUnknown, GetCode(fmt.Errorf("plain")))
}

func TestExitCodeClasses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, ExitOK},
		{"parser", New(ErrMalformedSpecifier, ""), ExitResolve},
		{"resolver", New(ErrAmbiguousVersion, ""), ExitResolve + 1},
		{"install", New(ErrCorruptArchive, ""), ExitInstall},
		{"network", New(ErrNetworkUnavailable, ""), ExitInstall + 1},
		{"ledger", New(ErrLedgerCorrupt, ""), ExitLedger},
		{"locked", New(ErrLedgerLocked, ""), ExitLedger + 1},
		{"switcher", New(ErrInstallNotFound, ""), ExitSwitcher},
		{"plain", fmt.Errorf("other"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ExitCode(tt.err))
		})
	}
}
