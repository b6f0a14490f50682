// Package markdown renders bot replies in Telegram's MarkdownV2 dialect.
package markdown

import (
	"errors"
	"strings"

	"github.com/naseer2426/coin-price-bot/internal/coinmarketcap"
	"github.com/shopspring/decimal"
)

// ParseMode is the Telegram parse_mode every reply is sent with.
const ParseMode = "MarkdownV2"

const reserved = "_*[]()~`>#+-=|{}.!\\"

// NoResult is shown when the upstream returns an empty data array.
const NoResult = "没有找到相关结果。"

// Escape backslash-escapes every MarkdownV2 reserved character in s.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(reserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RenderQuotes formats one line per quote. When amount is non-nil the block
// is prefixed with the amount, as used by /calc.
func RenderQuotes(quotes []coinmarketcap.Quote, amount *decimal.Decimal) string {
	var b strings.Builder
	if amount != nil {
		b.WriteString("`" + Escape(amount.String()) + "` 个\n")
	}
	if len(quotes) == 0 {
		b.WriteString(Escape(NoResult) + "\n")
		return b.String()
	}
	for _, q := range quotes {
		b.WriteString("`" + Escape(q.Name) + "`（`" + Escape(q.Symbol) + "`）的价格为: ")
		b.WriteString(Escape(formatPrice(q.PriceUSD)) + " USD\n")
	}
	return b.String()
}

func formatPrice(p decimal.NullDecimal) string {
	if !p.Valid {
		return "N/A"
	}
	return p.Decimal.String()
}

// RenderLookup turns the outcome of a price lookup into reply text.
func RenderLookup(quotes []coinmarketcap.Quote, err error, amount *decimal.Decimal) string {
	if err == nil {
		return RenderQuotes(quotes, amount)
	}

	var userErr *coinmarketcap.UserError
	if errors.As(err, &userErr) {
		return Escape(userErr.Message)
	}
	return Escape(coinmarketcap.ServiceErrorMessage)
}
