package nemlig

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// OrderLookupWindow bounds how many recent orders OrderById scans.
const OrderLookupWindow = 100

// OrderHistory fetches a page of past orders.
func (c *Client) OrderHistory(ctx context.Context, skip, take int) (OrderHistory, error) {
	ctx, span := tracer.Start(ctx, "client:OrderHistory")
	defer span.End()

	res, err := c.authed().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"skip": strconv.Itoa(skip),
			"take": strconv.Itoa(take),
		}).
		Get("/webapi/order/GetBasicOrderHistory")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch order history")
		return OrderHistory{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "order history rejected")
		return OrderHistory{}, statusError(res)
	}

	body := gjson.ParseBytes(res.Body())
	history := OrderHistory{
		NumberOfPages: body.Get("NumberOfPages").Int(),
	}
	for _, v := range body.Get("Orders").Array() {
		history.Orders = append(history.Orders, decodeOrder(v))
	}
	return history, nil
}

// OrderById finds an order's summary by scanning the most recent
// OrderLookupWindow orders. There is no direct summary endpoint.
func (c *Client) OrderById(ctx context.Context, orderId int64) (Order, error) {
	ctx, span := tracer.Start(ctx, "client:OrderById")
	defer span.End()
	span.SetAttributes(attribute.Int64("order_id", orderId))

	history, err := c.OrderHistory(ctx, 0, OrderLookupWindow)
	if err != nil {
		return Order{}, err
	}
	for _, order := range history.Orders {
		if order.Id == orderId {
			return order, nil
		}
	}

	span.SetStatus(codes.Error, "order not in recent history")
	return Order{}, fmt.Errorf(
		"%w: order %d not in last %d orders",
		ErrOrderNotFound, orderId, OrderLookupWindow,
	)
}

// OrderDetails fetches the line items of a specific order.
func (c *Client) OrderDetails(ctx context.Context, orderId int64) ([]OrderLine, error) {
	ctx, span := tracer.Start(ctx, "client:OrderDetails")
	defer span.End()
	span.SetAttributes(attribute.Int64("order_id", orderId))

	res, err := c.authed().
		SetContext(ctx).
		Get(fmt.Sprintf("/webapi/v2/order/GetOrderHistory/%d", orderId))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch order details")
		return nil, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "order details rejected")
		return nil, statusError(res)
	}

	var lines []OrderLine
	for _, v := range gjson.GetBytes(res.Body(), "Lines").Array() {
		lines = append(lines, decodeOrderLine(v))
	}
	return lines, nil
}
