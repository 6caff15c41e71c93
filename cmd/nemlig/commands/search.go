package commands

import (
	"fmt"
	"log/slog"

	"nemlig-cli/lib/present"

	"github.com/spf13/cobra"
)

var searchLimit *int

func init() {
	searchLimit = searchCmd.Flags().IntP("limit", "l", 10, "Maximum number of results.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches the product catalog.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := login(cmd.Context())
		if err != nil {
			return err
		}

		query := args[0]
		slog.Info("searching", "query", query)

		products, err := client.Search(cmd.Context(), query, *searchLimit)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return fmt.Errorf("no products found for %q", query)
		}

		fmt.Printf("Found %d products:\n\n", len(products))
		for _, p := range products {
			fmt.Println(present.FormatProduct(p))
		}
		return nil
	},
}
