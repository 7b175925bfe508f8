package paths

import (
	"os"
	"runtime"
	"strings"
)

// ExecutableName appends the platform executable suffix.
func ExecutableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// BinDirOnPath reports whether the stable bin directory appears in the
// current PATH. The surrounding CLI only warns on this; suiup never
// edits PATH itself.
func (p *Paths) BinDirOnPath() bool {
	pathEnv := os.Getenv("PATH")
	if pathEnv == "" {
		return false
	}
	for _, entry := range strings.Split(pathEnv, string(os.PathListSeparator)) {
		if entry == p.binDir {
			return true
		}
	}
	return false
}
