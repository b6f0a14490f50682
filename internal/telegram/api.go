package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "https://api.telegram.org"

	// must stay above the long-poll timeout passed to GetUpdates
	clientTimeout = 60 * time.Second
)

type TelegramAPI struct {
	token  string
	client *resty.Client
}

func NewTelegramAPI(baseURL, token string) *TelegramAPI {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &TelegramAPI{
		token: token,
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(clientTimeout),
	}
}

// SendMessage sends a message to a Telegram chat. parseMode may be empty for
// plain text.
func (t *TelegramAPI) SendMessage(ctx context.Context, requestID string, chatID int64, text, parseMode string) error {
	reply := SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	}

	var out Response[Message]
	return t.call(ctx, requestID, "sendMessage", reply, &out)
}

// GetMe returns the bot's own user, whose username addresses commands.
func (t *TelegramAPI) GetMe(ctx context.Context) (*User, error) {
	var out Response[User]
	if err := t.call(ctx, "", "getMe", nil, &out); err != nil {
		return nil, err
	}
	return &out.Result, nil
}

// GetUpdates long-polls for new updates starting at offset.
func (t *TelegramAPI) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	req := GetUpdatesRequest{
		Offset:         offset,
		Timeout:        int(timeout.Seconds()),
		AllowedUpdates: []string{"message"},
	}

	var out Response[[]Update]
	if err := t.call(ctx, "", "getUpdates", req, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// SetWebhook points Telegram at url. secret, when set, is echoed back in the
// X-Telegram-Bot-Api-Secret-Token header of every delivery.
func (t *TelegramAPI) SetWebhook(ctx context.Context, url, secret string) error {
	req := SetWebhookRequest{
		URL:            url,
		SecretToken:    secret,
		AllowedUpdates: []string{"message"},
	}

	var out Response[bool]
	return t.call(ctx, "", "setWebhook", req, &out)
}

// DeleteWebhook removes any webhook so getUpdates can be used.
func (t *TelegramAPI) DeleteWebhook(ctx context.Context) error {
	var out Response[bool]
	return t.call(ctx, "", "deleteWebhook", nil, &out)
}

type envelope interface {
	ok() bool
	describe() string
}

func (r *Response[T]) ok() bool { return r.OK }

func (r *Response[T]) describe() string {
	return fmt.Sprintf("%d %s", r.ErrorCode, r.Description)
}

func (t *TelegramAPI) call(ctx context.Context, requestID, method string, body any, out envelope) error {
	if t.token == "" {
		return fmt.Errorf("BOT_TOKEN is not set")
	}

	req := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetResult(out).
		SetError(out)
	if requestID != "" {
		req.SetHeader("X-Request-ID", requestID)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Post(fmt.Sprintf("/bot%s/%s", t.token, method))
	if err != nil {
		// the request URL embeds the token
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("http call to telegram %s failed: %w", method, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("telegram %s returned non-2xx status %d: %s", method, resp.StatusCode(), out.describe())
	}

	if !out.ok() {
		return fmt.Errorf("telegram %s failed: %s", method, out.describe())
	}

	return nil
}
