package nemlig

import (
	"net/http/cookiejar"
	"net/url"
	"time"

	"nemlig-cli/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("nemlig/client")

const (
	DefaultBaseUrl   = "https://www.nemlig.com"
	DefaultSearchUrl = "https://webapi.prod.knl.nemlig.it/searchgateway/api"

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36"
)

// Client holds the session for a single CLI invocation: the cookie jar
// plus the anti-forgery and bearer tokens obtained by Login.
type Client struct {
	BaseUrl   *url.URL
	SearchUrl string
	Http      *resty.Client

	xsrfToken   string
	bearerToken string
}

type ClientOptions struct {
	BaseUrl   string
	SearchUrl string
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.SearchUrl == "" {
		opts.SearchUrl = DefaultSearchUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	searchUrl, err := url.Parse(opts.SearchUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	client.SetHeader("Accept", "application/json, text/plain, */*")
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Device-Size", "desktop")
	client.SetHeader("Platform", "web")
	client.SetHeader("Version", "11.201.0")

	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(
		baseUrl.Hostname(),
		searchUrl.Hostname(),
	))
	client.SetTimeout(time.Second * 30)

	// the remote service expects a fresh correlation id on every call,
	// it only feeds their tracing
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Correlation-Id", uuid.NewString())
		return nil
	})

	telemetry.InstrumentResty(client, "nemlig/http")

	return &Client{
		BaseUrl:   baseUrl,
		SearchUrl: opts.SearchUrl,
		Http:      client,
	}, nil
}

// authed returns a request carrying the post-login bearer and
// anti-forgery tokens.
func (c *Client) authed() *resty.Request {
	return c.Http.R().
		SetHeader("Authorization", "Bearer "+c.bearerToken).
		SetHeader("X-XSRF-TOKEN", c.xsrfToken)
}
