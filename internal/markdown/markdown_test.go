package markdown

import (
	"errors"
	"testing"

	"github.com/naseer2426/coin-price-bot/internal/coinmarketcap"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"65000.5", `65000\.5`},
		{"Command not found!", `Command not found\!`},
		{"a_b*c[d]e(f)g~h`i>j#k+l-m=n|o{p}q.r!s\\t", "a\\_b\\*c\\[d\\]e\\(f\\)g\\~h\\`i\\>j\\#k\\+l\\-m\\=n\\|o\\{p\\}q\\.r\\!s\\\\t"},
		{"比特币（BTC）", "比特币（BTC）"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.in), tt.in)
	}
}

func TestRenderQuotesWithAmount(t *testing.T) {
	quotes := []coinmarketcap.Quote{{Name: "Bitcoin", Symbol: "BTC", PriceUSD: price("65000.5")}}
	amount := decimal.NewFromInt(10)

	got := RenderQuotes(quotes, &amount)

	assert.Equal(t, "`10` 个\n`Bitcoin`（`BTC`）的价格为: 65000\\.5 USD\n", got)
}

func TestRenderQuotesWithoutAmount(t *testing.T) {
	quotes := []coinmarketcap.Quote{
		{Name: "Bitcoin", Symbol: "BTC", PriceUSD: price("65000.5")},
		{Name: "Bitcoin Cash", Symbol: "BCH", PriceUSD: price("412")},
		{Name: "Dead-Coin", Symbol: "DEAD"},
	}

	got := RenderQuotes(quotes, nil)

	want := "`Bitcoin`（`BTC`）的价格为: 65000\\.5 USD\n" +
		"`Bitcoin Cash`（`BCH`）的价格为: 412 USD\n" +
		"`Dead\\-Coin`（`DEAD`）的价格为: N/A USD\n"
	assert.Equal(t, want, got)
}

func TestRenderQuotesEmpty(t *testing.T) {
	amount := decimal.RequireFromString("2.5")

	assert.Equal(t, NoResult+"\n", RenderQuotes(nil, nil))
	assert.Equal(t, "`2\\.5` 个\n"+NoResult+"\n", RenderQuotes([]coinmarketcap.Quote{}, &amount))
}

func TestRenderLookup(t *testing.T) {
	quotes := []coinmarketcap.Quote{{Name: "Ether", Symbol: "ETH", PriceUSD: price("3000.25")}}

	t.Run("success", func(t *testing.T) {
		assert.Equal(t, RenderQuotes(quotes, nil), RenderLookup(quotes, nil, nil))
	})

	t.Run("user error is escaped", func(t *testing.T) {
		err := &coinmarketcap.UserError{Message: "Invalid value for symbol."}
		assert.Equal(t, `Invalid value for symbol\.`, RenderLookup(nil, err, nil))
	})

	t.Run("service error shows fixed message", func(t *testing.T) {
		err := &coinmarketcap.ServiceError{StatusCode: 500, Err: errors.New("upstream body")}
		assert.Equal(t, Escape(coinmarketcap.ServiceErrorMessage), RenderLookup(nil, err, nil))
	})

	t.Run("unknown error treated as service error", func(t *testing.T) {
		assert.Equal(t, Escape(coinmarketcap.ServiceErrorMessage), RenderLookup(nil, errors.New("x"), nil))
	})
}

func TestRenderIsPure(t *testing.T) {
	quotes := []coinmarketcap.Quote{{Name: "Bitcoin", Symbol: "BTC", PriceUSD: price("1.01")}}
	amount := decimal.NewFromInt(3)

	first := RenderLookup(quotes, nil, &amount)
	second := RenderLookup(quotes, nil, &amount)
	assert.Equal(t, first, second)
}
