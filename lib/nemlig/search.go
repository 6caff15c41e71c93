package nemlig

import (
	"context"
	"strconv"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Search queries the product catalog. The search gateway lives on its
// own host and wants the timeslot and catalog timestamp from the page
// settings echoed back on every call.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Product, error) {
	ctx, span := tracer.Start(ctx, "client:Search")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	settings, err := c.pageSettings(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch page settings")
		return nil, err
	}

	req := c.Http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.bearerToken).
		SetHeader("Referer", c.BaseUrl.String()+"/").
		SetQueryParams(map[string]string{
			"query":          query,
			"take":           strconv.Itoa(limit),
			"skip":           "0",
			"recipeCount":    "0",
			"timestamp":      settings.Timestamp,
			"timeslotUtc":    settings.TimeslotUtc,
			"deliveryZoneId": strconv.FormatInt(settings.DeliveryZoneId, 10),
		})
	if settings.UserId != "" {
		req.SetQueryParam("includeFavorites", settings.UserId)
	}

	res, err := req.Get(c.SearchUrl + "/search")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch search results")
		return nil, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "search request rejected")
		return nil, statusError(res)
	}

	var products []Product
	for _, v := range gjson.GetBytes(res.Body(), "Products.Products").Array() {
		products = append(products, decodeProduct(v))
	}
	return products, nil
}
