package nemlig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nemlig-cli/lib/telemetry"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// fakeSite emulates the remote endpoints the client talks to. Handlers
// only record what they saw, assertions stay in the tests.
type fakeSite struct {
	server *httptest.Server

	xsrfCount  int
	tokenCount int

	loginBody   string
	searchBody  string
	basketBody  string
	historyBody string
	detailsBody string
	pages       map[string]string

	failPath   string
	failStatus int
	failBody   string

	loginHeaders     http.Header
	basketHeaders    http.Header
	lastSearchQuery  map[string][]string
	lastHistoryQuery map[string][]string
	lastAddBody      []byte
	correlationIds   []string
}

func newFakeSite(t *testing.T) *fakeSite {
	f := &fakeSite{
		loginBody:   `{"RedirectUrl": "/"}`,
		searchBody:  `{"Products": {"Products": []}}`,
		basketBody:  `{"Lines": []}`,
		historyBody: `{"Orders": [], "NumberOfPages": 1}`,
		detailsBody: `{"Lines": []}`,
		pages:       map[string]string{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/webapi/AntiForgery", func(w http.ResponseWriter, r *http.Request) {
		f.xsrfCount++
		fmt.Fprintf(w, `{"Value": "xsrf-%d"}`, f.xsrfCount)
	})
	mux.HandleFunc("/webapi/Token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCount++
		fmt.Fprintf(w, `{"access_token": "bearer-%d"}`, f.tokenCount)
	})
	mux.HandleFunc("/webapi/login", func(w http.ResponseWriter, r *http.Request) {
		f.loginHeaders = r.Header.Clone()
		io.WriteString(w, f.loginBody)
	})
	mux.HandleFunc("/webapi/v2/AppSettings/Website", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"CombinedProductsAndSitecoreTimestamp": "ts-1"}`)
	})
	mux.HandleFunc("/webapi/basket/GetBasket", func(w http.ResponseWriter, r *http.Request) {
		f.basketHeaders = r.Header.Clone()
		io.WriteString(w, f.basketBody)
	})
	mux.HandleFunc("/webapi/basket/AddToBasket", func(w http.ResponseWriter, r *http.Request) {
		f.lastAddBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, f.basketBody)
	})
	mux.HandleFunc("/webapi/order/GetBasicOrderHistory", func(w http.ResponseWriter, r *http.Request) {
		f.lastHistoryQuery = r.URL.Query()
		io.WriteString(w, f.historyBody)
	})
	mux.HandleFunc("/webapi/v2/order/GetOrderHistory/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, f.detailsBody)
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		f.lastSearchQuery = r.URL.Query()
		io.WriteString(w, f.searchBody)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			io.WriteString(w, `{"Settings": {"TimeslotUtc": "slot-1", "DeliveryZoneId": 2, "UserId": "user-1"}}`)
			return
		}
		if page, ok := f.pages[r.URL.Path]; ok {
			io.WriteString(w, page)
			return
		}
		http.NotFound(w, r)
	})

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.correlationIds = append(f.correlationIds, r.Header.Get("X-Correlation-Id"))
		if f.failPath != "" && r.URL.Path == f.failPath {
			w.WriteHeader(f.failStatus)
			io.WriteString(w, f.failBody)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeSite) newClient(t *testing.T) *Client {
	client, err := NewClient(ClientOptions{
		BaseUrl:   f.server.URL,
		SearchUrl: f.server.URL,
	})
	require.NoError(t, err)
	return client
}

func (f *fakeSite) login(t *testing.T) *Client {
	client := f.newClient(t)
	err := client.Login(context.Background(), "user@example.com", "hunter2")
	require.NoError(t, err)
	return client
}

func TestLoginRefreshesTokens(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:nemlig")
	defer cleanup()

	f := newFakeSite(t)
	client := f.login(t)

	// the login call itself must carry the pre-login tokens
	require.Equal(t, "xsrf-1", f.loginHeaders.Get("X-XSRF-TOKEN"))
	require.Equal(t, "Bearer bearer-1", f.loginHeaders.Get("Authorization"))

	require.True(t, strings.HasSuffix(f.loginHeaders.Get("Referer"), "/login?returnUrl=%2F"))

	// authenticated calls must use the re-fetched tokens
	_, err := client.Basket(context.Background())
	require.NoError(t, err)
	require.Equal(t, "xsrf-2", f.basketHeaders.Get("X-XSRF-TOKEN"))
	require.Equal(t, "Bearer bearer-2", f.basketHeaders.Get("Authorization"))

	// every request carries a fresh correlation id
	seen := map[string]bool{}
	for _, id := range f.correlationIds {
		require.NotEmpty(t, id)
		require.False(t, seen[id], "correlation id reused")
		seen[id] = true
	}
	require.GreaterOrEqual(t, len(f.correlationIds), 6)
}

func TestLoginRejected(t *testing.T) {
	f := newFakeSite(t)
	f.loginBody = `{"Error": "bad credentials"}`

	client := f.newClient(t)
	err := client.Login(context.Background(), "user@example.com", "wrong")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "login", authErr.Step)

	// a rejected login is not an http error, the response was a 200
	var statusErr *StatusError
	require.False(t, errors.As(err, &statusErr))
}

func TestLoginHandshakeHttpError(t *testing.T) {
	f := newFakeSite(t)
	f.failPath = "/webapi/AntiForgery"
	f.failStatus = http.StatusInternalServerError
	f.failBody = "boom"

	client := f.newClient(t)
	err := client.Login(context.Background(), "user@example.com", "hunter2")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "antiforgery", authErr.Step)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.Status)
	require.Equal(t, "boom", statusErr.Body)
}

func TestSearch(t *testing.T) {
	f := newFakeSite(t)
	f.searchBody = `{
		"Products": {
			"Products": [
				{
					"Id": "701025",
					"Name": "Cocio Classic",
					"Brand": "Cocio",
					"Price": 18.5,
					"Url": "produkt/cocio-classic-701025",
					"Availability": {"IsAvailableInStock": true}
				},
				{"Id": "701026"}
			]
		}
	}`

	client := f.login(t)
	products, err := client.Search(context.Background(), "cocio", 3)
	require.NoError(t, err)
	require.Len(t, products, 2)

	require.Equal(t, "701025", products[0].Id)
	require.Equal(t, "Cocio Classic", products[0].Name)
	require.Equal(t, 18.5, products[0].Price)
	require.True(t, products[0].Availability.InStock)

	// second product is nearly empty, decode falls back to defaults
	require.Equal(t, "Unknown", products[1].Name)
	require.Equal(t, 0.0, products[1].Price)
	require.False(t, products[1].Availability.InStock)

	// the page settings must be echoed into the search query
	require.Equal(t, []string{"cocio"}, f.lastSearchQuery["query"])
	require.Equal(t, []string{"3"}, f.lastSearchQuery["take"])
	require.Equal(t, []string{"0"}, f.lastSearchQuery["skip"])
	require.Equal(t, []string{"ts-1"}, f.lastSearchQuery["timestamp"])
	require.Equal(t, []string{"slot-1"}, f.lastSearchQuery["timeslotUtc"])
	require.Equal(t, []string{"2"}, f.lastSearchQuery["deliveryZoneId"])
	require.Equal(t, []string{"user-1"}, f.lastSearchQuery["includeFavorites"])
}

func TestSearchHttpError(t *testing.T) {
	f := newFakeSite(t)
	f.failPath = "/search"
	f.failStatus = http.StatusServiceUnavailable
	f.failBody = "gateway down"

	client := f.login(t)
	_, err := client.Search(context.Background(), "cocio", 10)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.Status)
	require.Equal(t, "gateway down", statusErr.Body)
}

func TestAddToBasket(t *testing.T) {
	f := newFakeSite(t)
	f.basketBody = `{
		"Lines": [
			{"Id": "701025", "Name": "Cocio Classic", "Brand": "Cocio", "Quantity": 2, "ItemPrice": 18.5, "Price": 37.0}
		]
	}`

	client := f.login(t)
	basket, err := client.AddToBasket(context.Background(), "701025", 2)
	require.NoError(t, err)

	require.Len(t, basket.Lines, 1)
	require.Equal(t, int64(2), basket.Lines[0].Quantity)
	require.Equal(t, 37.0, basket.Total())

	posted := gjson.ParseBytes(f.lastAddBody)
	require.Equal(t, "701025", posted.Get("ProductId").String())
	require.Equal(t, int64(2), posted.Get("quantity").Int())
	require.False(t, posted.Get("AffectPartialQuantity").Bool())
	require.False(t, posted.Get("disableQuantityValidation").Bool())
}

func TestOrderByIdScansRecentWindow(t *testing.T) {
	f := newFakeSite(t)

	// 100 most recent orders, ids 1..100; the order we want sits at
	// position 101 and must be reported as not found
	var orders []string
	for i := 1; i <= 100; i++ {
		orders = append(orders, fmt.Sprintf(`{"Id": %d, "OrderNumber": "N%d"}`, i, i))
	}
	f.historyBody = fmt.Sprintf(`{"Orders": [%s], "NumberOfPages": 11}`, strings.Join(orders, ","))

	client := f.login(t)

	order, err := client.OrderById(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "N42", order.OrderNumber)
	require.Equal(t, []string{"100"}, f.lastHistoryQuery["take"])
	require.Equal(t, []string{"0"}, f.lastHistoryQuery["skip"])

	_, err = client.OrderById(context.Background(), 101)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderDetails(t *testing.T) {
	f := newFakeSite(t)
	f.detailsBody = `{
		"Lines": [
			{"ProductNumber": "701025", "ProductName": "Cocio Classic", "Quantity": 2, "Amount": 37.0, "AverageItemPrice": 18.5, "HasCampaign": true},
			{}
		]
	}`

	client := f.login(t)
	lines, err := client.OrderDetails(context.Background(), 12345678)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	require.Equal(t, "Cocio Classic", lines[0].ProductName)
	require.True(t, lines[0].HasCampaign)
	require.Equal(t, "Unknown", lines[1].ProductName)
}

func TestProductDetails(t *testing.T) {
	f := newFakeSite(t)
	f.searchBody = `{
		"Products": {
			"Products": [
				{"Id": "701099", "Url": "produkt/other-701099"},
				{"Id": "701025", "Url": "produkt/cocio-classic-701025"}
			]
		}
	}`
	f.pages["/produkt/cocio-classic-701025"] = `{
		"content": [
			{"TemplateName": "herobanner"},
			{
				"TemplateName": "productdetailspot",
				"Id": "701025",
				"Name": "Cocio Classic",
				"Brand": "Cocio",
				"Price": 18.5,
				"Campaign": {"Type": "MultiBuy", "MinQuantity": 3, "TotalPrice": 45.0}
			}
		]
	}`

	client := f.login(t)
	product, err := client.ProductDetails(context.Background(), "701025")
	require.NoError(t, err)

	require.Equal(t, "Cocio Classic", product.Name)
	require.Equal(t, 18.5, product.Price)
	require.NotNil(t, product.Campaign)
	require.Equal(t, int64(3), product.Campaign.MinQuantity)
}

func TestProductDetailsNoExactMatch(t *testing.T) {
	f := newFakeSite(t)
	f.searchBody = `{"Products": {"Products": [{"Id": "111111", "Url": "produkt/other"}]}}`

	client := f.login(t)
	_, err := client.ProductDetails(context.Background(), "999999")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductDetailsMissingDetailBlock(t *testing.T) {
	f := newFakeSite(t)
	f.searchBody = `{"Products": {"Products": [{"Id": "701025", "Url": "produkt/cocio-classic-701025"}]}}`
	f.pages["/produkt/cocio-classic-701025"] = `{"content": [{"TemplateName": "herobanner"}]}`

	client := f.login(t)
	_, err := client.ProductDetails(context.Background(), "701025")
	require.ErrorIs(t, err, ErrProductNotFound)
}
