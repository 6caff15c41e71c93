package nemlig

import (
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrProductNotFound is returned when a product id has no exact
	// match in search results or its detail block is missing from the
	// rendered page.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound is returned when an order id is absent from the
	// recent order history window.
	ErrOrderNotFound = errors.New("order not found")
)

// StatusError is any non-2xx response, kept verbatim for diagnostics.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.Status, e.Body)
}

func statusError(res *resty.Response) error {
	return &StatusError{Status: res.StatusCode(), Body: res.String()}
}

// AuthError marks a failed step of the login handshake, including the
// remote service rejecting the credentials themselves.
type AuthError struct {
	Step string
	Err  error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s: %v", e.Step, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
