package present

import (
	"fmt"
	"strings"

	"nemlig-cli/lib/nemlig"
	"nemlig-cli/lib/textutil"
)

const (
	wrapWidth  = 80
	wrapIndent = "  "
)

var orderStatusNames = map[int64]string{
	1: "Pending",
	2: "Processing",
	4: "Delivered",
}

// StatusText maps an order status code to its display name, falling
// back to the raw code for anything unrecognized.
func StatusText(code int64) string {
	if name, ok := orderStatusNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Status %d", code)
}

func isoDate(timestamp string) string {
	if i := strings.Index(timestamp, "T"); i >= 0 {
		return timestamp[:i]
	}
	return timestamp
}

func isoTime(timestamp string) string {
	i := strings.Index(timestamp, "T")
	if i < 0 || len(timestamp) < i+6 {
		return ""
	}
	return timestamp[i+1 : i+6]
}

// OrderDate renders the date part of an order's ISO timestamp.
func OrderDate(o nemlig.Order) string {
	if o.OrderDate == "" {
		return "Unknown"
	}
	return isoDate(o.OrderDate)
}

// DeliveryWindow renders the delivery window as "date start-end".
func DeliveryWindow(o nemlig.Order) string {
	if o.DeliveryStart == "" || o.DeliveryEnd == "" {
		return "N/A"
	}
	return fmt.Sprintf(
		"%s %s-%s",
		isoDate(o.DeliveryStart),
		isoTime(o.DeliveryStart),
		isoTime(o.DeliveryEnd),
	)
}

func stockText(available bool) string {
	if available {
		return "In stock"
	}
	return "OUT OF STOCK"
}

// FormatProduct renders a single search result line.
func FormatProduct(p nemlig.Product) string {
	line := fmt.Sprintf(
		"  [%s] %s (%s) - %.2f kr - %s [%s]",
		p.Id, p.Name, p.Brand, p.Price, p.Description,
		stockText(p.Availability.InStock),
	)
	if p.PrimaryImage != "" {
		line += fmt.Sprintf("\n    Image: %s", p.PrimaryImage)
	}
	return line
}

// FormatBasketLine renders a single basket line.
func FormatBasketLine(l nemlig.BasketLine) string {
	return fmt.Sprintf(
		"  [%s] %s (%s) x%d @ %.2f kr = %.2f kr",
		l.Id, l.Name, l.Brand, l.Quantity, l.ItemPrice, l.Price,
	)
}

// FormatOrderLine renders a single order line item.
func FormatOrderLine(l nemlig.OrderLine) string {
	campaign := ""
	if l.HasCampaign {
		campaign = " [OFFER]"
	}
	return fmt.Sprintf(
		"  [%s] %s - %s x%.0f @ %.2f kr = %.2f kr%s",
		l.ProductNumber, l.ProductName, l.Description,
		l.Quantity, l.AverageItemPrice, l.Amount, campaign,
	)
}

// FormatOrderDetails renders an order summary together with its line
// items. The delivery fee is not a payload field, it is the difference
// between the order total and the item subtotal.
func FormatOrderDetails(order nemlig.Order, lines []nemlig.OrderLine) string {
	deliveryFee := order.Total - order.SubTotal

	title := fmt.Sprintf("Order %s", order.OrderNumber)
	out := []string{
		title,
		strings.Repeat("=", len(title)),
		"",
		fmt.Sprintf("Order ID:     %d", order.Id),
		fmt.Sprintf("Subtotal:     %.2f kr", order.SubTotal),
		fmt.Sprintf("Delivery:     %.2f kr", deliveryFee),
		fmt.Sprintf("Total:        %.2f kr", order.Total),
		"",
		fmt.Sprintf("Items (%d):", len(lines)),
	}

	var linesTotal float64
	for _, l := range lines {
		out = append(out, FormatOrderLine(l))
		linesTotal += l.Amount
	}

	out = append(out, "", fmt.Sprintf("  Lines total: %.2f kr", linesTotal))
	return strings.Join(out, "\n")
}

// FormatProductDetails renders the full detail view of a product.
func FormatProductDetails(p nemlig.Product, baseUrl string) string {
	out := []string{
		p.Name,
		strings.Repeat("=", len(p.Name)),
		"",
		fmt.Sprintf("ID:          %s", p.Id),
		fmt.Sprintf("Brand:       %s", p.Brand),
		fmt.Sprintf("Category:    %s > %s", p.Category, p.SubCategory),
		fmt.Sprintf("Description: %s", p.Description),
		"",
		fmt.Sprintf("Price:       %.2f kr (%.2f %s)", p.Price, p.UnitPrice, p.UnitPriceLabel),
	}

	if p.Campaign != nil {
		out = append(out, fmt.Sprintf(
			"Campaign:    %d for %.2f kr (%s)",
			p.Campaign.MinQuantity, p.Campaign.TotalPrice, p.Campaign.Type,
		))
	}

	delivery := "Not available"
	if p.Availability.DeliveryAvailable {
		delivery = "Available"
	}
	out = append(out,
		"",
		fmt.Sprintf("Stock:       %s", stockText(p.Availability.InStock)),
		fmt.Sprintf("Delivery:    %s", delivery),
	)

	if len(p.Attributes) > 0 {
		out = append(out, "", "Attributes:")
		for _, attr := range p.Attributes {
			out = append(out, fmt.Sprintf("  %s: %s", attr.Name, attr.Value))
		}
	}

	if len(p.Labels) > 0 {
		out = append(out, "", fmt.Sprintf("Labels:      %s", strings.Join(p.Labels, ", ")))
	}

	if text := textutil.StripTags(p.Text); text != "" {
		out = append(out, "", "About:")
		out = append(out, textutil.Wrap(text, wrapWidth, wrapIndent)...)
	}

	if p.Url != "" {
		out = append(out, "", fmt.Sprintf("URL:         %s/%s", baseUrl, p.Url))
	}

	return strings.Join(out, "\n")
}
