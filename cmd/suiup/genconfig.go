package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/MystenLabs/suiup/pkg/config"
	"github.com/MystenLabs/suiup/pkg/errors"
)

func newGenConfigCmd(flags *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFor(flags)
			if err != nil {
				return err
			}

			path := a.paths.ConfigFile()
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.ErrFileAccess,
					"%s already exists; use --force to overwrite", path)
			}
			if err := config.Save(a.cfg, path); err != nil {
				return err
			}
			a.printer.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
