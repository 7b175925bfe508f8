package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MystenLabs/suiup/pkg/types"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFor(flags)
			if err != nil {
				return err
			}
			return runList(cmd.Context(), a, remote)
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, MsgFlagListRemote)
	return cmd
}

type toolInfo struct {
	Tool           string `json:"tool"`
	Repo           string `json:"repo"`
	UsesNetworks   bool   `json:"uses_networks"`
	DefaultNetwork string `json:"default_network,omitempty"`
	SupportsDebug  bool   `json:"supports_debug"`
	Latest         string `json:"latest,omitempty"`
}

func runList(ctx context.Context, a *app, remote bool) error {
	infos := make([]toolInfo, 0, len(types.AvailableTools()))
	for _, tool := range types.AvailableTools() {
		profile := tool.Profile()
		info := toolInfo{
			Tool:          tool.String(),
			Repo:          profile.Repo,
			UsesNetworks:  profile.UsesNetworks,
			SupportsDebug: profile.SupportsDebug,
		}
		if profile.UsesNetworks {
			info.DefaultNetwork = string(profile.DefaultNetwork)
		}
		if remote {
			// Best effort; a tool whose catalog is unreachable just
			// shows no latest version.
			if target, err := a.resolver.Resolve(ctx, types.VersionSpecifier{Tool: tool}); err == nil {
				info.Latest = target.Release.Version
			}
		}
		infos = append(infos, info)
	}

	if a.printer.JSON(infos) {
		return nil
	}

	a.printer.Header("Available tools")
	for _, info := range infos {
		detail := "standalone"
		if info.UsesNetworks {
			detail = "default network: " + info.DefaultNetwork
		}
		if info.Latest != "" {
			detail += ", latest: " + info.Latest
		}
		a.printer.Printf("  %-13s %s (%s)\n", info.Tool, info.Repo, detail)
	}
	return nil
}
