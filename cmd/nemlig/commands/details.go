package commands

import (
	"fmt"
	"log/slog"

	"nemlig-cli/lib/present"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(detailsCmd)
}

var detailsCmd = &cobra.Command{
	Use:   "details <product_id>",
	Short: "Shows detailed information for a product.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := login(cmd.Context())
		if err != nil {
			return err
		}

		slog.Info("fetching product details", "product_id", args[0])

		product, err := client.ProductDetails(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(present.FormatProductDetails(product, client.BaseUrl.String()))
		return nil
	},
}
