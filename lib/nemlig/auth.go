package nemlig

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/codes"
)

// Login performs the session handshake: anti-forgery token, bearer
// token, credential submission, then a re-fetch of both tokens. The
// pre-login tokens are not accepted on authenticated endpoints.
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	xsrf, err := c.fetchAntiForgeryToken(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch anti-forgery token")
		return &AuthError{Step: "antiforgery", Err: err}
	}
	bearer, err := c.fetchBearerToken(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch bearer token")
		return &AuthError{Step: "token", Err: err}
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("X-XSRF-TOKEN", xsrf).
		SetHeader("Authorization", "Bearer "+bearer).
		SetHeader("Referer", c.BaseUrl.String()+"/login?returnUrl=%2F").
		SetBody(map[string]any{
			"Username":                 username,
			"Password":                 password,
			"CheckForExistingProducts": true,
			"DoMerge":                  true,
			"AppInstalled":             false,
			"SaveExistingBasket":       false,
		}).
		Post("/webapi/login")
	if err != nil {
		span.SetStatus(codes.Error, "failed to make login request")
		return &AuthError{Step: "login", Err: err}
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "login request rejected")
		return &AuthError{Step: "login", Err: statusError(res)}
	}

	// the remote signals success by including a redirect url, anything
	// else is a rejection dressed up as a 200
	if !gjson.GetBytes(res.Body(), "RedirectUrl").Exists() {
		span.SetStatus(codes.Error, "login response missing RedirectUrl")
		return &AuthError{
			Step: "login",
			Err:  fmt.Errorf("login failed: %s", res.String()),
		}
	}

	c.bearerToken, err = c.fetchBearerToken(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to refresh bearer token")
		return &AuthError{Step: "token refresh", Err: err}
	}
	c.xsrfToken, err = c.fetchAntiForgeryToken(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to refresh anti-forgery token")
		return &AuthError{Step: "antiforgery refresh", Err: err}
	}

	return nil
}

func (c *Client) fetchAntiForgeryToken(ctx context.Context) (string, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get("/webapi/AntiForgery")
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", statusError(res)
	}
	token := gjson.GetBytes(res.Body(), "Value").String()
	if token == "" {
		return "", errors.New("response missing Value field")
	}
	return token, nil
}

func (c *Client) fetchBearerToken(ctx context.Context) (string, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get("/webapi/Token")
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", statusError(res)
	}
	token := gjson.GetBytes(res.Body(), "access_token").String()
	if token == "" {
		return "", errors.New("response missing access_token field")
	}
	return token, nil
}
