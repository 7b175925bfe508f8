package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/MystenLabs/suiup/pkg/specifier"
	"github.com/MystenLabs/suiup/pkg/types"
)

func newInstallCmd(flags *globalFlags) *cobra.Command {
	var (
		nightly string
		debug   bool
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "install <tool>[@version]",
		Short: MsgInstallShort,
		Long:  MsgInstallLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var nightlyPtr *string
			if cmd.Flags().Changed("nightly") {
				nightlyPtr = &nightly
			}

			spec, err := specifier.Parse(args[0], nightlyPtr, debug)
			if err != nil {
				return err
			}

			a, err := appFor(flags)
			if err != nil {
				return err
			}
			return runInstall(a, cmd, spec, yes)
		},
	}

	cmd.Flags().StringVar(&nightly, "nightly", "", MsgFlagNightly)
	cmd.Flags().Lookup("nightly").NoOptDefVal = "main"
	cmd.Flags().BoolVar(&debug, "debug", false, MsgFlagDebug)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)

	return cmd
}

func runInstall(a *app, cmd *cobra.Command, spec types.VersionSpecifier, assumeYes bool) error {
	ctx := cmd.Context()

	target, err := a.resolver.Resolve(ctx, spec)
	if err != nil {
		return err
	}

	res, err := a.inst.Install(ctx, target)
	if err != nil {
		return err
	}
	if res.Fresh {
		a.printer.Printf(MsgInstalled, res.Record.Key())
	} else {
		a.printer.Printf(MsgAlreadyInstalled, res.Record.Key())
	}

	if err := maybePromote(a, res.Record, assumeYes); err != nil {
		return err
	}

	a.warnIfBinDirHidden()
	return nil
}

// maybePromote makes the new install the default: automatically when
// the tool has no default yet, after confirmation when it would replace
// one.
func maybePromote(a *app, rec types.InstallRecord, assumeYes bool) error {
	current, exists, err := a.ledger.GetDefault(rec.Tool, rec.Debug)
	if err != nil {
		return err
	}
	if exists && current.Key() == rec.Key() {
		// Refresh the promoted copy in case the store contents changed.
		return a.switcher.Set(rec.Key())
	}

	if exists && !assumeYes {
		if !confirm(fmt.Sprintf("Set %s as the default (currently %s-%s)?",
			rec.Key(), current.Channel, current.Version)) {
			return nil
		}
	}

	if err := a.switcher.Set(rec.Key()); err != nil {
		return err
	}
	a.printer.Printf(MsgDefaultSet, rec.Tool, rec.Key())
	return nil
}

// confirm asks a yes/no question on the terminal. Non-interactive runs
// answer no.
func confirm(question string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false
	}
	fmt.Printf("%s [y/N] ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
