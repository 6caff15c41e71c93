package commands

import (
	"fmt"
	"log/slog"
	"strconv"

	"nemlig-cli/lib/present"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit *int

func init() {
	historyLimit = historyCmd.Flags().IntP("limit", "l", 10, "Maximum number of orders to list.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [order_id]",
	Short: "Shows order history, or the details of one order.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := login(cmd.Context())
		if err != nil {
			return err
		}

		if len(args) == 1 {
			orderId, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q: %w", args[0], err)
			}

			slog.Info("fetching order", "order_id", orderId)

			order, err := client.OrderById(cmd.Context(), orderId)
			if err != nil {
				return err
			}
			lines, err := client.OrderDetails(cmd.Context(), orderId)
			if err != nil {
				return err
			}

			fmt.Println(present.FormatOrderDetails(order, lines))
			return nil
		}

		slog.Info("fetching order history")

		history, err := client.OrderHistory(cmd.Context(), 0, *historyLimit)
		if err != nil {
			return err
		}
		if len(history.Orders) == 0 {
			fmt.Println("No orders found.")
			return nil
		}

		fmt.Printf("Order History (%d orders, %d pages total):\n", len(history.Orders), history.NumberOfPages)

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Number", "Date", "Total", "Status", "Delivery"})
		for _, o := range history.Orders {
			t.AppendRow(table.Row{
				o.Id, o.OrderNumber,
				present.OrderDate(o),
				fmt.Sprintf("%.2f kr", o.Total),
				present.StatusText(o.Status),
				present.DeliveryWindow(o),
			})
		}
		t.Render()

		fmt.Println("\nUse 'history ORDER_ID' to see order details.")
		return nil
	},
}
