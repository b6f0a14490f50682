package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/naseer2426/coin-price-bot/internal/api"
	"github.com/naseer2426/coin-price-bot/internal/coinmarketcap"
	"github.com/naseer2426/coin-price-bot/internal/config"
	"github.com/naseer2426/coin-price-bot/internal/poller"
	"github.com/naseer2426/coin-price-bot/internal/pricebot"
	"github.com/naseer2426/coin-price-bot/internal/telegram"
	log "github.com/sirupsen/logrus"
)

func main() {
	conf, err := config.New()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	conf.ConfigureLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf); err != nil {
		log.Errorf("bot stopped with error: %v", err)
		stop()
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

func run(ctx context.Context, conf config.Config) error {
	telegramAPI := telegram.NewTelegramAPI(conf.TelegramBaseURL, conf.BotToken)

	me, err := telegramAPI.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch bot identity: %w", err)
	}
	log.Infof("starting price bot @%s in %s mode", me.Username, conf.Mode)

	bot := pricebot.NewBot(me.Username, coinmarketcap.NewClient(conf.CMCBaseURL, conf.CMCAPIKey))

	if conf.Mode == config.ModeWebhook {
		return runWebhook(ctx, conf, telegramAPI, bot)
	}
	return runPolling(ctx, telegramAPI, bot)
}

func runPolling(ctx context.Context, telegramAPI *telegram.TelegramAPI, bot *pricebot.Bot) error {
	// getUpdates is refused while a webhook is registered
	if err := telegramAPI.DeleteWebhook(ctx); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	return poller.New(poller.DefaultConfig(), telegramAPI, telegramAPI, bot).Run(ctx)
}

func runWebhook(ctx context.Context, conf config.Config, telegramAPI *telegram.TelegramAPI, bot *pricebot.Bot) error {
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(&api.TelegramWebhook{
		PriceBot:    bot,
		TelegramAPI: telegramAPI,
		Secret:      conf.WebhookSecret,
	})

	if err := telegramAPI.SetWebhook(ctx, conf.WebhookURL, conf.WebhookSecret); err != nil {
		return fmt.Errorf("failed to register webhook: %w", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", conf.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
