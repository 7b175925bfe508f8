package main

import (
	"github.com/spf13/cobra"

	"github.com/MystenLabs/suiup/pkg/specifier"
	"github.com/MystenLabs/suiup/pkg/types"
)

func newDefaultCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "default",
		Short: MsgDefaultShort,
	}
	cmd.AddCommand(newDefaultGetCmd(flags))
	cmd.AddCommand(newDefaultSetCmd(flags))
	return cmd
}

func newDefaultGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get [tool]",
		Short: "Show the current default version(s)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFor(flags)
			if err != nil {
				return err
			}

			defaults, err := a.ledger.Defaults()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				tool, err := types.ParseToolID(args[0])
				if err != nil {
					return err
				}
				filtered := defaults[:0]
				for _, ptr := range defaults {
					if ptr.Tool == tool {
						filtered = append(filtered, ptr)
					}
				}
				defaults = filtered
			}

			if a.printer.JSON(defaults) {
				return nil
			}
			if len(defaults) == 0 {
				a.printer.Printf(MsgNoDefaults)
				return nil
			}
			a.printer.Defaults(defaults)
			return nil
		},
	}
}

func newDefaultSetCmd(flags *globalFlags) *cobra.Command {
	var (
		nightly string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:     "set <tool>[@version]",
		Aliases: []string{"switch"},
		Short:   "Switch the default to an already installed version",
		Args:    cobra.ExactArgs(1),
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

			key, err := a.switcher.FindInstall(spec)
			if err != nil {
				return err
			}
			if err := a.switcher.Set(key); err != nil {
				return err
			}
			a.printer.Printf(MsgDefaultSet, spec.Tool, key)
			a.warnIfBinDirHidden()
			return nil
		},
	}

	cmd.Flags().StringVar(&nightly, "nightly", "", MsgFlagNightly)
	cmd.Flags().Lookup("nightly").NoOptDefVal = "main"
	cmd.Flags().BoolVar(&debug, "debug", false, MsgFlagDebug)

	return cmd
}
