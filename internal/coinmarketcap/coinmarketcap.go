package coinmarketcap

import (
	"context"

	"github.com/shopspring/decimal"
)

// ServiceErrorMessage is what users see for any upstream failure other than
// a rejected request.
const ServiceErrorMessage = "CoinMarketCap API error, please try again later."

type PriceLookup interface {
	// LookupPrice returns the quotes for amount units of symbol. A non-nil
	// error is always a *UserError or a *ServiceError.
	LookupPrice(ctx context.Context, requestID string, amount decimal.Decimal, symbol string) ([]Quote, error)
}

// Quote is one match for a symbol. PriceUSD is the value of the requested
// amount, not of a single unit.
type Quote struct {
	Name     string
	Symbol   string
	PriceUSD decimal.NullDecimal
}

// UserError carries a message from the API explaining why the request was
// rejected, e.g. an unknown symbol.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// ServiceError wraps any other failure: transport errors, unexpected status
// codes, malformed bodies.
type ServiceError struct {
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	return ServiceErrorMessage + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
