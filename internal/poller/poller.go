// Package poller receives Telegram updates through long polling.
package poller

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/naseer2426/coin-price-bot/internal/api"
	"github.com/naseer2426/coin-price-bot/internal/markdown"
	"github.com/naseer2426/coin-price-bot/internal/pricebot"
	"github.com/naseer2426/coin-price-bot/internal/telegram"
	log "github.com/sirupsen/logrus"
)

// UpdateSource is the part of the Bot API the poller reads from.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]telegram.Update, error)
}

var _ UpdateSource = &telegram.TelegramAPI{}

type Config struct {
	PollTimeout time.Duration // long-poll timeout sent to Telegram
	RetryDelay  time.Duration // pause after a failed getUpdates
}

func DefaultConfig() Config {
	return Config{
		PollTimeout: 30 * time.Second,
		RetryDelay:  3 * time.Second,
	}
}

type Poller struct {
	cfg     Config
	source  UpdateSource
	sender  api.Sender
	bot     *pricebot.Bot
	handled sync.WaitGroup
}

func New(cfg Config, source UpdateSource, sender api.Sender, bot *pricebot.Bot) *Poller {
	return &Poller{
		cfg:    cfg,
		source: source,
		sender: sender,
		bot:    bot,
	}
}

// Run polls until ctx is cancelled, handling each update in its own
// goroutine. Handlers already started are allowed to finish before Run
// returns.
func (p *Poller) Run(ctx context.Context) error {
	defer p.handled.Wait()

	log.Infof("polling for updates (timeout %s)", p.cfg.PollTimeout)
	var offset int64
	for {
		updates, err := p.source.GetUpdates(ctx, offset, p.cfg.PollTimeout)
		if ctx.Err() != nil {
			log.Info("poller stopped")
			return nil
		}
		if err != nil {
			log.Errorf("getUpdates failed: %v", err)
			if !sleep(ctx, p.cfg.RetryDelay) {
				return nil
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			p.handled.Add(1)
			go func(u telegram.Update) {
				defer p.handled.Done()
				p.handle(u)
			}(u)
		}
	}
}

func (p *Poller) handle(u telegram.Update) {
	requestID := uuid.NewString()
	logger := log.WithFields(log.Fields{"request_id": requestID, "update_id": u.UpdateID})
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic while handling update: %v\n%s", r, debug.Stack())
		}
	}()

	// in-flight updates are not cancelled on shutdown
	ctx := context.Background()

	message := api.ToMessage(&u)
	reply, ok := p.bot.HandleMessage(ctx, requestID, message)
	if !ok {
		return
	}

	if err := p.sender.SendMessage(ctx, requestID, message.ChatID, reply.Text, markdown.ParseMode); err != nil {
		logger.Errorf("failed to send reply: %v", err)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
