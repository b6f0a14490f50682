package coinmarketcap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var _ PriceLookup = &Client{}

const (
	DefaultBaseURL = "https://pro-api.coinmarketcap.com"
	userAgent      = "coin-price-bot/1.0"
	requestTimeout = 10 * time.Second
)

// PriceConversionResponse is the body of a successful
// /v2/tools/price-conversion call.
type PriceConversionResponse struct {
	Data []ConversionData `json:"data"`
}

// ConversionData is one matched asset.
type ConversionData struct {
	ID     int64                    `json:"id"`
	Name   string                   `json:"name"`
	Symbol string                   `json:"symbol"`
	Quote  map[string]ConvertedQuote `json:"quote"`
}

// ConvertedQuote is the converted value in one target currency.
type ConvertedQuote struct {
	Price       decimal.NullDecimal `json:"price"`
	LastUpdated string              `json:"last_updated"`
}

// StatusResponse is the envelope CoinMarketCap uses to report errors.
type StatusResponse struct {
	Status Status `json:"status"`
}

type Status struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type Client struct {
	apiKey string
	client *resty.Client
}

// NewClient builds a client for baseURL. The API key is sent with every
// request.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey: apiKey,
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(requestTimeout).
			SetHeader("User-Agent", userAgent).
			SetHeader("Accept", "application/json"),
	}
}

// LookupPrice converts amount units of symbol into USD. Exactly one request
// is made; there are no retries.
func (c *Client) LookupPrice(ctx context.Context, requestID string, amount decimal.Decimal, symbol string) ([]Quote, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-CMC_PRO_API_KEY", c.apiKey).
		SetHeader("X-Request-ID", requestID).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"amount": amount.String(),
		}).
		Get("/v2/tools/price-conversion")
	if err != nil {
		return nil, &ServiceError{Err: fmt.Errorf("failed to make request: %w", err)}
	}

	log.WithFields(log.Fields{
		"request_id": requestID,
		"symbol":     symbol,
		"status":     resp.StatusCode(),
		"duration":   resp.Time(),
	}).Debug("coinmarketcap price-conversion")

	switch {
	case resp.IsSuccess():
		var conversion PriceConversionResponse
		if err := json.Unmarshal(resp.Body(), &conversion); err != nil {
			return nil, &ServiceError{StatusCode: resp.StatusCode(), Err: fmt.Errorf("failed to unmarshal response: %w", err)}
		}

		quotes := make([]Quote, 0, len(conversion.Data))
		for _, d := range conversion.Data {
			quotes = append(quotes, Quote{
				Name:     d.Name,
				Symbol:   d.Symbol,
				PriceUSD: d.Quote["USD"].Price,
			})
		}
		return quotes, nil

	case resp.StatusCode() == http.StatusBadRequest:
		var status StatusResponse
		if err := json.Unmarshal(resp.Body(), &status); err != nil {
			return nil, &ServiceError{StatusCode: resp.StatusCode(), Err: fmt.Errorf("failed to unmarshal error status: %w", err)}
		}

		msg := cleanErrorMessage(status.Status.ErrorMessage)
		if msg == "" {
			return nil, &ServiceError{StatusCode: resp.StatusCode(), Err: errors.New("bad request without error message")}
		}
		return nil, &UserError{Message: msg}

	default:
		return nil, &ServiceError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), string(resp.Body())),
		}
	}
}

// cleanErrorMessage drops quote and backslash characters so the message
// reads as plain text.
func cleanErrorMessage(msg string) string {
	msg = strings.NewReplacer(`"`, "", `\`, "").Replace(msg)
	return strings.TrimSpace(msg)
}
