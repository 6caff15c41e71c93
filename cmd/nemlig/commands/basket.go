package commands

import (
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(basketCmd)
}

var basketCmd = &cobra.Command{
	Use:   "basket",
	Short: "Shows the current basket.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := login(cmd.Context())
		if err != nil {
			return err
		}

		slog.Info("fetching basket")

		basket, err := client.Basket(cmd.Context())
		if err != nil {
			return err
		}
		if len(basket.Lines) == 0 {
			fmt.Println("Your basket is empty.")
			return nil
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Name", "Brand", "Qty", "Unit", "Total"})
		for _, l := range basket.Lines {
			t.AppendRow(table.Row{
				l.Id, l.Name, l.Brand, l.Quantity,
				fmt.Sprintf("%.2f kr", l.ItemPrice),
				fmt.Sprintf("%.2f kr", l.Price),
			})
		}
		t.AppendFooter(table.Row{
			"", "", "", "", "Total",
			fmt.Sprintf("%.2f kr", basket.Total()),
		})
		t.Render()
		return nil
	},
}
