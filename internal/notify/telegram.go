package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Sink is a one-way notification port. Delivery is best-effort: callers log
// failures and move on, they never retry through this interface.
type Sink interface {
	Send(ctx context.Context, text string) error
}

const defaultTelegramAPIURL = "https://api.telegram.org/bot%s/sendMessage"

// TelegramConfig holds bot credentials and the destination chat.
type TelegramConfig struct {
	BotToken string
	ChatID   string
	Timeout  time.Duration

	// APIURL overrides the Bot API endpoint template (one %s, the token).
	// Used by tests; empty means the public endpoint.
	APIURL string
}

type telegramMessage struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

// Telegram delivers messages through the Bot API sendMessage endpoint.
// Missing credentials disable it: sends become logged no-ops so the watcher
// can run without a configured channel.
type Telegram struct {
	cfg        TelegramConfig
	httpClient *http.Client
	logger     *zap.Logger
	enabled    bool
	endpoint   string
}

// NewTelegram builds the Telegram sink.
func NewTelegram(cfg TelegramConfig, logger *zap.Logger) *Telegram {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	template := cfg.APIURL
	if template == "" {
		template = defaultTelegramAPIURL
	}

	enabled := cfg.BotToken != "" && cfg.ChatID != ""
	if enabled {
		logger.Info("telegram sink enabled")
	} else {
		logger.Warn("telegram sink disabled: missing bot token or chat id")
	}

	return &Telegram{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		enabled:    enabled,
		endpoint:   fmt.Sprintf(template, cfg.BotToken),
	}
}

// Enabled reports whether sends will actually reach Telegram.
func (t *Telegram) Enabled() bool {
	return t.enabled
}

// Send posts an HTML-formatted message to the configured chat.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if !t.enabled {
		t.logger.Debug("telegram send skipped: sink disabled")
		return nil
	}

	payload, err := json.Marshal(telegramMessage{
		ChatID:                t.cfg.ChatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	var apiResp telegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram api error %d: %s", apiResp.ErrorCode, apiResp.Description)
	}

	return nil
}
