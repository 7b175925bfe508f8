// Package paths provides centralized path handling for suiup. It
// follows the XDG Base Directory specification via adrg/xdg and honors
// the SUIUP_* environment overrides.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/types"
)

// Environment variable names
const (
	// EnvDataDir overrides the data directory (installed binaries store)
	EnvDataDir = "SUIUP_DATA_DIR"

	// EnvConfigDir overrides the config directory (ledger files, suiup.toml)
	EnvConfigDir = "SUIUP_CONFIG_DIR"

	// EnvCacheDir overrides the cache directory (downloaded release archives)
	EnvCacheDir = "SUIUP_CACHE_DIR"

	// EnvDefaultBinDir overrides the PATH-visible bin directory
	EnvDefaultBinDir = "SUIUP_DEFAULT_BIN_DIR"
)

// Internal layout names. These are not user-configurable: older suiup
// installations must keep finding their state at the same places.
const (
	appDirName = "suiup"

	// storeDir holds one subdirectory per installed artifact
	storeDir = "binaries"

	// archivesDir holds downloaded release archives awaiting extraction
	archivesDir = "releases"

	// installedFile is the ledger of install records
	installedFile = "installed_binaries.json"

	// defaultFile is the ledger of default pointers
	defaultFile = "default_version.json"

	// lockFile guards ledger read-modify-write cycles across processes
	lockFile = ".suiup.lock"

	// configFile is the optional user configuration
	configFile = "suiup.toml"
)

// Paths resolves every directory and file location suiup uses.
type Paths struct {
	dataDir   string
	configDir string
	cacheDir  string
	binDir    string
}

// New resolves the path set from the environment, falling back to the
// platform-conventional per-user directories.
func New() *Paths {
	return &Paths{
		dataDir:   envOr(EnvDataDir, filepath.Join(xdg.DataHome, appDirName)),
		configDir: envOr(EnvConfigDir, filepath.Join(xdg.ConfigHome, appDirName)),
		cacheDir:  envOr(EnvCacheDir, filepath.Join(xdg.CacheHome, appDirName)),
		binDir:    envOr(EnvDefaultBinDir, filepath.Join(xdg.Home, ".local", "bin")),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DataDir is the root of suiup's per-user data.
func (p *Paths) DataDir() string { return p.dataDir }

// ConfigDir holds the ledger files and the optional suiup.toml.
func (p *Paths) ConfigDir() string { return p.configDir }

// CacheDir holds transient downloads.
func (p *Paths) CacheDir() string { return p.cacheDir }

// BinDir is the stable, PATH-visible directory default binaries are
// promoted into.
func (p *Paths) BinDir() string { return p.binDir }

// StoreDir is the root under which each install gets its own directory.
func (p *Paths) StoreDir() string { return filepath.Join(p.dataDir, storeDir) }

// StorePath returns the store directory for an install key.
func (p *Paths) StorePath(key types.InstallKey) string {
	return filepath.Join(p.StoreDir(), key.StoreDirName())
}

// ArchiveCacheDir holds downloaded release archives.
func (p *Paths) ArchiveCacheDir() string { return filepath.Join(p.cacheDir, archivesDir) }

// InstalledFile is the install-record ledger file.
func (p *Paths) InstalledFile() string { return filepath.Join(p.configDir, installedFile) }

// DefaultFile is the default-pointer ledger file.
func (p *Paths) DefaultFile() string { return filepath.Join(p.configDir, defaultFile) }

// LockFile guards both ledger files.
func (p *Paths) LockFile() string { return filepath.Join(p.configDir, lockFile) }

// ConfigFile is the optional user configuration file.
func (p *Paths) ConfigFile() string { return filepath.Join(p.configDir, configFile) }

// DefaultBinaryPath returns the stable path a tool's default binary is
// exposed at, with the platform executable suffix applied.
func (p *Paths) DefaultBinaryPath(name string) string {
	return filepath.Join(p.binDir, ExecutableName(name))
}

// EnsureLayout creates every directory suiup relies on.
func (p *Paths) EnsureLayout(fs types.FS) error {
	for _, dir := range []string{
		p.configDir,
		p.dataDir,
		p.cacheDir,
		p.StoreDir(),
		p.ArchiveCacheDir(),
		p.binDir,
	} {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot create directory %s", dir)
		}
	}
	return nil
}
