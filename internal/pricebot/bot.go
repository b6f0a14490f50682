package pricebot

import (
	"context"
	"errors"

	"github.com/naseer2426/coin-price-bot/internal/coinmarketcap"
	"github.com/naseer2426/coin-price-bot/internal/command"
	"github.com/naseer2426/coin-price-bot/internal/markdown"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Bot struct {
	Name   string
	Prices coinmarketcap.PriceLookup
}

// NewBot builds a bot answering to name, the username Telegram reports for
// it, and looking prices up through prices.
func NewBot(name string, prices coinmarketcap.PriceLookup) *Bot {
	return &Bot{
		Name:   name,
		Prices: prices,
	}
}

// HandleMessage returns the reply for message. The boolean is false when
// nothing should be sent, which is the case for messages without text.
func (b *Bot) HandleMessage(ctx context.Context, requestID string, message *Message) (Reply, bool) {
	if message == nil || message.Text == "" {
		return Reply{}, false
	}

	logger := log.WithFields(log.Fields{
		"request_id": requestID,
		"chat_id":    message.ChatID,
	})

	cmd, err := command.Parse(message.Text, b.Name)
	if err != nil {
		logger.Debugf("not a command: %q", message.Text)
		return Reply{Text: markdown.Escape(CommandNotFound)}, true
	}

	switch cmd.Kind {
	case command.Help:
		return Reply{Text: helpText()}, true
	case command.Start:
		return Reply{Text: startText}, true
	case command.Info:
		return Reply{Text: infoText}, true
	case command.Price:
		quotes, err := b.lookup(ctx, logger, requestID, decimal.NewFromInt(1), cmd.Args)
		return Reply{Text: markdown.RenderLookup(quotes, err, nil)}, true
	case command.Calc:
		args, err := command.ParseCalcArgs(cmd.Args)
		if err != nil {
			return Reply{Text: calcUsageText}, true
		}
		quotes, err := b.lookup(ctx, logger, requestID, args.Amount, args.Symbol)
		return Reply{Text: markdown.RenderLookup(quotes, err, &args.Amount)}, true
	}

	return Reply{Text: markdown.Escape(CommandNotFound)}, true
}

func (b *Bot) lookup(ctx context.Context, logger *log.Entry, requestID string, amount decimal.Decimal, symbol string) ([]coinmarketcap.Quote, error) {
	logger = logger.WithFields(log.Fields{"symbol": symbol, "amount": amount.String()})

	quotes, err := b.Prices.LookupPrice(ctx, requestID, amount, symbol)

	var userErr *coinmarketcap.UserError
	switch {
	case err == nil:
		logger.Infof("found %d quotes", len(quotes))
	case errors.As(err, &userErr):
		logger.Infof("price lookup rejected: %s", userErr.Message)
	default:
		logger.Errorf("price lookup failed: %v", err)
	}
	return quotes, err
}
