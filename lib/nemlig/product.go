package nemlig

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	detailsSearchLimit  = 5
	detailsTemplateName = "productdetailspot"
)

// ProductDetails fetches the full detail record for a product. There is
// no direct-by-id endpoint: the product url slug has to be recovered
// from an exact id match in search results first, then the product page
// is rendered as JSON and the detail block pulled out of its content
// list.
func (c *Client) ProductDetails(ctx context.Context, productId string) (Product, error) {
	ctx, span := tracer.Start(ctx, "client:ProductDetails")
	defer span.End()
	span.SetAttributes(attribute.String("product_id", productId))

	products, err := c.Search(ctx, productId, detailsSearchLimit)
	if err != nil {
		return Product{}, err
	}

	var productUrl string
	for _, p := range products {
		if p.Id == productId {
			productUrl = p.Url
			break
		}
	}
	if productUrl == "" {
		span.SetStatus(codes.Error, "no exact id match in search results")
		return Product{}, fmt.Errorf(
			"%w: %s: search returned %d products but none matched the id",
			ErrProductNotFound, productId, len(products),
		)
	}

	settings, err := c.pageSettings(ctx)
	if err != nil {
		return Product{}, err
	}

	res, err := c.authed().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"GetAsJson": "1",
			"t":         settings.TimeslotUtc,
			"d":         "1",
		}).
		Get("/" + productUrl)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch product page")
		return Product{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "product page rejected")
		return Product{}, statusError(res)
	}

	for _, item := range gjson.GetBytes(res.Body(), "content").Array() {
		if item.Get("TemplateName").String() == detailsTemplateName {
			return decodeProduct(item), nil
		}
	}

	span.SetStatus(codes.Error, "detail block missing from rendered page")
	return Product{}, fmt.Errorf(
		"%w: %s: no %q block in rendered page",
		ErrProductNotFound, productId, detailsTemplateName,
	)
}
