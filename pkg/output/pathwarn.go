package output

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// PathWarning tells the user the bin directory is not on PATH and how
// to add it for their shell.
func (p *Printer) PathWarning(binDir string) {
	if p.format == FormatJSON {
		return
	}

	fmt.Fprintf(p.w, "\nwarning: %s is not on your PATH; installed binaries will not be found.\n", binDir)
	fmt.Fprintf(p.w, "Add it with:\n\n    %s\n\n", pathInstruction(binDir))
}

func pathInstruction(binDir string) string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("setx PATH \"%%PATH%%;%s\"", binDir)
	}

	shell := filepath.Base(os.Getenv("SHELL"))
	switch {
	case shell == "fish":
		return fmt.Sprintf("fish_add_path %s", binDir)
	case shell == "zsh":
		return fmt.Sprintf("echo 'export PATH=\"%s:$PATH\"' >> ~/.zshrc", binDir)
	case strings.Contains(shell, "bash") || shell == "" || shell == ".":
		return fmt.Sprintf("echo 'export PATH=\"%s:$PATH\"' >> ~/.bashrc", binDir)
	default:
		return fmt.Sprintf("export PATH=\"%s:$PATH\"", binDir)
	}
}
