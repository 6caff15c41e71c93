package nemlig

import (
	"context"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/codes"
)

// used when the frontpage settings carry no timeslot, search still
// needs a syntactically valid value
const fallbackTimeslot = "2025120216-180-1020"

type pageSettings struct {
	Timestamp      string
	TimeslotUtc    string
	DeliveryZoneId int64
	UserId         string
}

func (c *Client) appSettings(ctx context.Context) (gjson.Result, error) {
	res, err := c.authed().
		SetContext(ctx).
		Get("/webapi/v2/AppSettings/Website")
	if err != nil {
		return gjson.Result{}, err
	}
	if res.IsError() {
		return gjson.Result{}, statusError(res)
	}
	return gjson.ParseBytes(res.Body()), nil
}

// pageSettings fetches the delivery timeslot and catalog timestamp that
// must accompany every search call. These are mutable server-side
// session parameters, so they are re-fetched per search rather than
// cached.
func (c *Client) pageSettings(ctx context.Context) (pageSettings, error) {
	ctx, span := tracer.Start(ctx, "client:pageSettings")
	defer span.End()

	app, err := c.appSettings(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch app settings")
		return pageSettings{}, err
	}

	res, err := c.authed().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"GetAsJson": "1",
			"d":         "1",
		}).
		Get("/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch frontpage settings")
		return pageSettings{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "frontpage settings rejected")
		return pageSettings{}, statusError(res)
	}

	settings := gjson.GetBytes(res.Body(), "Settings")

	out := pageSettings{
		Timestamp:      app.Get("CombinedProductsAndSitecoreTimestamp").String(),
		TimeslotUtc:    fallbackTimeslot,
		DeliveryZoneId: 1,
		UserId:         settings.Get("UserId").String(),
	}
	if slot := settings.Get("TimeslotUtc").String(); slot != "" {
		out.TimeslotUtc = slot
	}
	if zone := settings.Get("DeliveryZoneId"); zone.Exists() {
		out.DeliveryZoneId = zone.Int()
	}

	return out, nil
}
