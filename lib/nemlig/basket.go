package nemlig

import (
	"context"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Basket fetches the current basket. Nothing is cached, every
// basket-related command sees a fresh copy.
func (c *Client) Basket(ctx context.Context) (Basket, error) {
	ctx, span := tracer.Start(ctx, "client:Basket")
	defer span.End()

	res, err := c.authed().
		SetContext(ctx).
		Get("/webapi/basket/GetBasket")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch basket")
		return Basket{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "basket request rejected")
		return Basket{}, statusError(res)
	}

	return decodeBasket(gjson.ParseBytes(res.Body())), nil
}

// AddToBasket adds quantity units of a product and returns the updated
// basket.
func (c *Client) AddToBasket(ctx context.Context, productId string, quantity int) (Basket, error) {
	ctx, span := tracer.Start(ctx, "client:AddToBasket")
	defer span.End()
	span.SetAttributes(
		attribute.String("product_id", productId),
		attribute.Int("quantity", quantity),
	)

	res, err := c.authed().
		SetContext(ctx).
		SetHeader("Referer", c.BaseUrl.String()+"/").
		SetBody(map[string]any{
			"ProductId":                 productId,
			"quantity":                  quantity,
			"AffectPartialQuantity":     false,
			"disableQuantityValidation": false,
		}).
		Post("/webapi/basket/AddToBasket")
	if err != nil {
		span.SetStatus(codes.Error, "failed to add to basket")
		return Basket{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "add to basket rejected")
		return Basket{}, statusError(res)
	}

	return decodeBasket(gjson.ParseBytes(res.Body())), nil
}
