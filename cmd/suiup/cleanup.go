package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newCleanupCmd(flags *globalFlags) *cobra.Command {
	var (
		all    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: MsgCleanupShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFor(flags)
			if err != nil {
				return err
			}

			maxAge := time.Duration(a.cfg.Cleanup.MaxArchiveAgeDays) * 24 * time.Hour
			archives, err := a.cleaner.PruneArchives(maxAge, all, dryRun)
			if err != nil {
				return err
			}
			store, err := a.cleaner.ReclaimStore(dryRun)
			if err != nil {
				return err
			}

			a.printer.Printf("Archive cache: %s\n", archives)
			a.printer.Printf("Store: %s\n", store)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, MsgFlagCleanAll)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	return cmd
}
