package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/naseer2426/coin-price-bot/internal/markdown"
	"github.com/naseer2426/coin-price-bot/internal/pricebot"
	"github.com/naseer2426/coin-price-bot/internal/telegram"
	log "github.com/sirupsen/logrus"
)

const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// Sender delivers a reply to a chat.
type Sender interface {
	SendMessage(ctx context.Context, requestID string, chatID int64, text, parseMode string) error
}

var _ Sender = &telegram.TelegramAPI{}

type TelegramWebhook struct {
	PriceBot    *pricebot.Bot
	TelegramAPI Sender
	// Secret must match the secret token header when set.
	Secret string
}

func (t *TelegramWebhook) TelegramWebhook(c *gin.Context) {
	requestID := requestid.Get(c)
	logger := log.WithField("request_id", requestID)

	if t.Secret != "" && subtle.ConstantTimeCompare([]byte(c.GetHeader(secretHeader)), []byte(t.Secret)) != 1 {
		logger.Warn("telegram webhook: secret token mismatch")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret token"})
		return
	}

	message, err := t.preProcessMsg(c)
	if err != nil {
		logger.Errorf("create pricebot message failed %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	reply, ok := t.PriceBot.HandleMessage(c.Request.Context(), requestID, message)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	// a non-2xx answer makes Telegram redeliver the update and repeat the lookup
	if err := t.TelegramAPI.SendMessage(c.Request.Context(), requestID, message.ChatID, reply.Text, markdown.ParseMode); err != nil {
		logger.Errorf("telegram webhook: failed to send reply: %v", err)
		c.JSON(http.StatusOK, gin.H{"status": "send_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (t *TelegramWebhook) parseBody(c *gin.Context) (*telegram.Update, error) {
	var update telegram.Update
	bodyBytes, err := c.GetRawData()
	if err != nil {
		return nil, errors.New("failed to read body")
	}
	if err := json.Unmarshal(bodyBytes, &update); err != nil {
		return nil, fmt.Errorf("invalid payload - %s", string(bodyBytes))
	}

	return &update, nil
}

// preProcessMsg returns a nil message for updates that carry no message.
func (t *TelegramWebhook) preProcessMsg(c *gin.Context) (*pricebot.Message, error) {
	update, err := t.parseBody(c)
	if err != nil {
		return nil, err
	}
	return ToMessage(update), nil
}

// ToMessage converts a Telegram update into the bot's message type.
func ToMessage(update *telegram.Update) *pricebot.Message {
	if update == nil || update.Message == nil {
		return nil
	}
	msg := &pricebot.Message{
		Text:   update.Message.Text,
		ChatID: update.Message.Chat.ID,
	}
	if update.Message.From != nil {
		msg.From = pricebot.User{
			ID:       update.Message.From.ID,
			Username: update.Message.From.Username,
		}
	}
	return msg
}
