package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the task API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.client.Ping(cmd.Context())
			if err != nil {
				return explain(err, a.cfg.APIURL)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", a.cfg.APIURL, msg)
			return nil
		},
	}
}
