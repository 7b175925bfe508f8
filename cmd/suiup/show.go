package main

import (
	"github.com/spf13/cobra"

	"github.com/MystenLabs/suiup/pkg/types"
)

func newShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: MsgShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFor(flags)
			if err != nil {
				return err
			}
			return runShow(a)
		},
	}
}

func runShow(a *app) error {
	records, err := a.ledger.Installed()
	if err != nil {
		return err
	}
	defaults, err := a.ledger.Defaults()
	if err != nil {
		return err
	}

	if a.printer.JSON(struct {
		Installed []types.InstallRecord  `json:"installed"`
		Defaults  []types.DefaultPointer `json:"defaults"`
	}{records, defaults}) {
		return nil
	}

	if len(records) == 0 {
		a.printer.Printf(MsgNothingInstalled)
		return nil
	}

	a.printer.Header("Installed versions")
	a.printer.Installed(records, defaults)
	return nil
}
