package cmd

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"setu/internal/bootstrap"
	"setu/internal/bootstrap/logging"
	"setu/internal/errs"
	"setu/internal/server"
	"setu/internal/usecase/listing"
)

var broadcastCmd = &cobra.Command{
	Use:   "broadcast",
	Short: "Broadcast a draft catalog to the buyer network",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *listing.Service, _ *server.Hub) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		catalogID, _ := cmd.Flags().GetUint64("catalog")
		wait, _ := cmd.Flags().GetBool("wait")

		result, err := svc.Broadcast(ctx, catalogID)
		if err != nil {
			return errs.Wrap(err, "broadcast catalog")
		}
		if wait {
			// Block until every simulated bid has landed in the network log.
			svc.WaitForSimulations()
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return errs.Wrap(err, "write broadcast output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(broadcastCmd)
	broadcastCmd.Flags().Uint64("catalog", 0, "Catalog id to broadcast")
	broadcastCmd.Flags().Bool("wait", true, "Wait for simulated bids before exiting")
	_ = broadcastCmd.MarkFlagRequired("catalog")
}
