package main

import (
	"os"

	"github.com/MystenLabs/suiup/pkg/catalog"
	"github.com/MystenLabs/suiup/pkg/cleanup"
	"github.com/MystenLabs/suiup/pkg/config"
	"github.com/MystenLabs/suiup/pkg/filesystem"
	"github.com/MystenLabs/suiup/pkg/installer"
	"github.com/MystenLabs/suiup/pkg/ledger"
	"github.com/MystenLabs/suiup/pkg/output"
	"github.com/MystenLabs/suiup/pkg/patchelf"
	"github.com/MystenLabs/suiup/pkg/paths"
	"github.com/MystenLabs/suiup/pkg/platform"
	"github.com/MystenLabs/suiup/pkg/resolver"
	"github.com/MystenLabs/suiup/pkg/switcher"
	"github.com/MystenLabs/suiup/pkg/types"
)

// app wires the packages together for one command invocation.
type app struct {
	cfg      *config.Config
	paths    *paths.Paths
	fs       types.FS
	ledger   *ledger.Ledger
	resolver *resolver.Resolver
	inst     *installer.Installer
	switcher *switcher.Switcher
	cleaner  *cleanup.Cleaner
	printer  *output.Printer
}

// newApp assembles the application. githubToken, when non-empty,
// overrides the configured token.
func newApp(githubToken string, format output.Format) (*app, error) {
	p := paths.New()
	fs := filesystem.NewOS()
	if err := p.EnsureLayout(fs); err != nil {
		return nil, err
	}

	cfg, err := config.Load(p.ConfigFile())
	if err != nil {
		return nil, err
	}
	if githubToken == "" {
		githubToken = cfg.GitHubToken
	}

	plat, err := platform.Detect()
	if err != nil {
		return nil, err
	}

	patcher, err := patchelf.New()
	if err != nil {
		return nil, err
	}

	printer := output.NewPrinter(os.Stdout, format)
	led := ledger.New(fs, p)
	cat := catalog.NewGitHub(p.CacheDir(), catalog.WithToken(githubToken))

	return &app{
		cfg:      cfg,
		paths:    p,
		fs:       fs,
		ledger:   led,
		resolver: resolver.New(cat, cfg.NetworkOverrides()),
		inst: installer.New(cat, led, p, fs, plat,
			installer.WithProgress(printer.Progress),
			installer.WithPatcher(patcher),
			installer.WithBuilder(installer.NewCargoBuilder()),
		),
		switcher: switcher.New(fs, p, led),
		cleaner:  cleanup.New(fs, p, led),
		printer:  printer,
	}, nil
}

// warnIfBinDirHidden nags when the bin directory is not on PATH.
func (a *app) warnIfBinDirHidden() {
	if !a.paths.BinDirOnPath() {
		a.printer.PathWarning(a.paths.BinDir())
	}
}
