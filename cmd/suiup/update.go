package main

import (
	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/MystenLabs/suiup/pkg/types"
)

func newUpdateCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <tool>",
		Short: MsgUpdateShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := types.ParseToolID(args[0])
			if err != nil {
				return err
			}

			a, err := appFor(flags)
			if err != nil {
				return err
			}
			return runUpdate(a, cmd, tool)
		},
	}
	return cmd
}

// runUpdate installs the latest release on the channel the tool's
// default currently tracks (falling back to the tool's default network)
// and promotes it.
func runUpdate(a *app, cmd *cobra.Command, tool types.ToolID) error {
	ctx := cmd.Context()

	current, hasDefault, err := a.ledger.GetDefault(tool, false)
	if err != nil {
		return err
	}

	spec := types.VersionSpecifier{Tool: tool}
	if hasDefault && current.Channel != types.StandaloneChannel && current.Version != types.NightlyVersion {
		if network, err := types.ParseNetwork(current.Channel); err == nil {
			spec.Network = &network
		}
	}

	target, err := a.resolver.Resolve(ctx, spec)
	if err != nil {
		return err
	}

	if hasDefault && current.Version != types.NightlyVersion &&
		!newerVersion(current.Version, target.Release.Version) {
		a.printer.Printf(MsgUpToDate, tool, current.Version)
		return nil
	}

	res, err := a.inst.Install(ctx, target)
	if err != nil {
		return err
	}
	if res.Fresh {
		a.printer.Printf(MsgInstalled, res.Record.Key())
	}

	// Updates always promote; the point of the command is moving the
	// default forward.
	if err := a.switcher.Set(res.Record.Key()); err != nil {
		return err
	}
	a.printer.Printf(MsgDefaultSet, tool, res.Record.Key())

	a.warnIfBinDirHidden()
	return nil
}

// newerVersion reports whether candidate is a strictly newer release
// than current. Versions that do not parse fall back to inequality so
// an odd tag never blocks an update.
func newerVersion(current, candidate string) bool {
	cur, errCur := semver.NewVersion(current)
	cand, errCand := semver.NewVersion(candidate)
	if errCur != nil || errCand != nil {
		return current != candidate
	}
	return cand.GreaterThan(cur)
}
