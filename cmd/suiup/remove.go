package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/MystenLabs/suiup/pkg/types"
)

func newRemoveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <tool>",
		Short: MsgRemoveShort,
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
			return runRemove(a, tool)
		},
	}
}

// runRemove drops every installed version of the tool: ledger records,
// default pointers, store directories, and the promoted binaries.
func runRemove(a *app, tool types.ToolID) error {
	removed, err := a.ledger.RemoveTool(tool)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		a.printer.Printf(MsgNothingToRemove, tool)
		return nil
	}

	for _, rec := range removed {
		if err := a.fs.RemoveAll(a.paths.StorePath(rec.Key())); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	for _, name := range []string{tool.BinaryName(), tool.BinaryName() + "-debug"} {
		if err := a.fs.Remove(a.paths.DefaultBinaryPath(name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	a.printer.Printf(MsgRemoved, len(removed), tool)
	return nil
}
