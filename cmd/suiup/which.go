package main

import (
	"github.com/spf13/cobra"

	"github.com/MystenLabs/suiup/pkg/types"
)

func newWhichCmd(flags *globalFlags) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "which <tool>",
		Short: MsgWhichShort,
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

			ptr, path, err := a.switcher.Which(tool, debug)
			if err != nil {
				return err
			}

			if a.printer.JSON(struct {
				Path    string `json:"path"`
				Channel string `json:"channel"`
				Version string `json:"version"`
			}{path, ptr.Channel, ptr.Version}) {
				return nil
			}
			a.printer.Printf("%s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, MsgFlagDebug)
	return cmd
}
