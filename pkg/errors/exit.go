package errors

// Exit-code classes. Each failure class occupies its own range so
// scripts can branch on the kind of failure without parsing output.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitResolve  = 10 // specifier and resolution errors
	ExitInstall  = 20 // download, extraction and build errors
	ExitLedger   = 30 // ledger state errors
	ExitSwitcher = 40 // default-switching errors
)

// ExitCode maps an error onto its exit-code class.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetCode(err) {
	case ErrMalformedSpecifier, ErrUnknownTool, ErrConflictingSpecifier:
		return ExitResolve
	case ErrVersionNotFound, ErrAmbiguousVersion, ErrUnsupportedPlatform:
		return ExitResolve + 1
	case ErrCorruptArchive, ErrBuildFailed:
		return ExitInstall
	case ErrNetworkUnavailable:
		return ExitInstall + 1
	case ErrLedgerCorrupt:
		return ExitLedger
	case ErrLedgerLocked:
		return ExitLedger + 1
	case ErrInstallNotFound, ErrAmbiguousDefault, ErrDanglingDefault:
		return ExitSwitcher
	default:
		return ExitFailure
	}
}
