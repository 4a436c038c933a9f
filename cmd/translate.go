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

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a transcript into a draft catalog",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *listing.Service, _ *server.Hub) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		farmerID, _ := cmd.Flags().GetUint64("farmer")
		transcript, _ := cmd.Flags().GetString("transcript")
		language, _ := cmd.Flags().GetString("language")

		catalog, err := svc.Translate(ctx, listing.TranslateInput{
			FarmerID:   farmerID,
			Transcript: transcript,
			Language:   language,
		})
		if err != nil {
			return errs.Wrap(err, "translate transcript")
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(catalog); err != nil {
			return errs.Wrap(err, "write translate output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().Uint64("farmer", 0, "Farmer id owning the catalog")
	translateCmd.Flags().String("transcript", "", "Voice transcript to translate")
	translateCmd.Flags().String("language", "hi-IN", "Transcript language tag")
	_ = translateCmd.MarkFlagRequired("farmer")
	_ = translateCmd.MarkFlagRequired("transcript")
}
