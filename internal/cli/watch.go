package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Notify about tasks due within the hour until interrupted",
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			ctx := cmd.Context()
			if err := a.session.StartMonitor(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Watching deadlines for %s. Press Ctrl+C to stop.\n", username)

			<-ctx.Done()
			a.session.Logout()
			return nil
		}),
	}
}
