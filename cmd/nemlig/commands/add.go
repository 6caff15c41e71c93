package commands

import (
	"fmt"
	"log/slog"

	"nemlig-cli/lib/present"

	"github.com/spf13/cobra"
)

var addQuantity *int

func init() {
	addQuantity = addCmd.Flags().IntP("quantity", "q", 1, "Number of units to add.")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <product_id>",
	Short: "Adds a product to the basket.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := login(cmd.Context())
		if err != nil {
			return err
		}

		productId := args[0]
		slog.Info("adding to basket", "product_id", productId, "quantity", *addQuantity)

		basket, err := client.AddToBasket(cmd.Context(), productId, *addQuantity)
		if err != nil {
			return err
		}

		added := false
		for _, l := range basket.Lines {
			if l.Id == productId {
				fmt.Println("Added to basket:")
				fmt.Println(present.FormatBasketLine(l))
				added = true
				break
			}
		}
		if !added {
			fmt.Printf("Product %s added to basket.\n", productId)
		}

		fmt.Printf("\nBasket total: %.2f kr (%d items)\n", basket.Total(), len(basket.Lines))
		return nil
	},
}
