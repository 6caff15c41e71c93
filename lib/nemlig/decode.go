package nemlig

import "github.com/tidwall/gjson"

// The remote service makes no shape guarantees, so every record is
// decoded field by field with a default for anything missing. All
// defaulting lives here, the presenter trusts the structs it gets.

type Availability struct {
	InStock           bool
	DeliveryAvailable bool
}

type Campaign struct {
	Type        string
	MinQuantity int64
	TotalPrice  float64
}

type Attribute struct {
	Name  string
	Value string
}

type Product struct {
	Id             string
	Name           string
	Brand          string
	Description    string
	Price          float64
	UnitPrice      float64
	UnitPriceLabel string
	Category       string
	SubCategory    string
	PrimaryImage   string
	Url            string
	Text           string
	Labels         []string
	Attributes     []Attribute
	Availability   Availability
	Campaign       *Campaign
}

type BasketLine struct {
	Id        string
	Name      string
	Brand     string
	Quantity  int64
	ItemPrice float64
	Price     float64
}

type Basket struct {
	Lines []BasketLine
}

// Total sums line totals, the payload itself has no trustworthy total.
func (b Basket) Total() float64 {
	var total float64
	for _, l := range b.Lines {
		total += l.Price
	}
	return total
}

type Order struct {
	Id            int64
	OrderNumber   string
	Total         float64
	SubTotal      float64
	Status        int64
	OrderDate     string
	DeliveryStart string
	DeliveryEnd   string
}

type OrderHistory struct {
	Orders        []Order
	NumberOfPages int64
}

type OrderLine struct {
	ProductNumber    string
	ProductName      string
	Description      string
	Quantity         float64
	Amount           float64
	AverageItemPrice float64
	HasCampaign      bool
}

func stringOr(v gjson.Result, path, fallback string) string {
	if s := v.Get(path).String(); s != "" {
		return s
	}
	return fallback
}

func decodeProduct(v gjson.Result) Product {
	p := Product{
		Id:             v.Get("Id").String(),
		Name:           stringOr(v, "Name", "Unknown"),
		Brand:          v.Get("Brand").String(),
		Description:    v.Get("Description").String(),
		Price:          v.Get("Price").Float(),
		UnitPrice:      v.Get("UnitPriceCalc").Float(),
		UnitPriceLabel: v.Get("UnitPriceLabel").String(),
		Category:       v.Get("Category").String(),
		SubCategory:    v.Get("SubCategory").String(),
		PrimaryImage:   v.Get("PrimaryImage").String(),
		Url:            v.Get("Url").String(),
		Text:           v.Get("Text").String(),
		Availability: Availability{
			InStock:           v.Get("Availability.IsAvailableInStock").Bool(),
			DeliveryAvailable: v.Get("Availability.IsDeliveryAvailable").Bool(),
		},
	}

	for _, label := range v.Get("Labels").Array() {
		p.Labels = append(p.Labels, label.String())
	}
	for _, attr := range v.Get("Attributes").Array() {
		p.Attributes = append(p.Attributes, Attribute{
			Name:  attr.Get("Name").String(),
			Value: attr.Get("Value").String(),
		})
	}

	if campaign := v.Get("Campaign"); campaign.IsObject() {
		p.Campaign = &Campaign{
			Type:        campaign.Get("Type").String(),
			MinQuantity: campaign.Get("MinQuantity").Int(),
			TotalPrice:  campaign.Get("TotalPrice").Float(),
		}
	}

	return p
}

func decodeBasket(v gjson.Result) Basket {
	var basket Basket
	for _, line := range v.Get("Lines").Array() {
		basket.Lines = append(basket.Lines, BasketLine{
			Id:        line.Get("Id").String(),
			Name:      stringOr(line, "Name", "Unknown"),
			Brand:     line.Get("Brand").String(),
			Quantity:  line.Get("Quantity").Int(),
			ItemPrice: line.Get("ItemPrice").Float(),
			Price:     line.Get("Price").Float(),
		})
	}
	return basket
}

func decodeOrder(v gjson.Result) Order {
	return Order{
		Id:            v.Get("Id").Int(),
		OrderNumber:   stringOr(v, "OrderNumber", "Unknown"),
		Total:         v.Get("Total").Float(),
		SubTotal:      v.Get("SubTotal").Float(),
		Status:        v.Get("Status").Int(),
		OrderDate:     v.Get("OrderDate").String(),
		DeliveryStart: v.Get("DeliveryTime.Start").String(),
		DeliveryEnd:   v.Get("DeliveryTime.End").String(),
	}
}

func decodeOrderLine(v gjson.Result) OrderLine {
	return OrderLine{
		ProductNumber:    v.Get("ProductNumber").String(),
		ProductName:      stringOr(v, "ProductName", "Unknown"),
		Description:      v.Get("Description").String(),
		Quantity:         v.Get("Quantity").Float(),
		Amount:           v.Get("Amount").Float(),
		AverageItemPrice: v.Get("AverageItemPrice").Float(),
		HasCampaign:      v.Get("HasCampaign").Bool(),
	}
}
