package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vtex-storefront/internal/config"
)

const telegramBaseURL = "https://api.telegram.org"

type telegramRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

var levelIcons = map[string]string{
	"INFO":    "ℹ️",
	"ERROR":   "❌",
	"WARNING": "⚠️",
	"SUCCESS": "✅",
}

type TelegramNotifier struct {
	creds      config.TelegramBotConfig
	baseURL    string
	httpClient *http.Client
}

// NewTelegramNotifier returns nil when the credentials are incomplete.
func NewTelegramNotifier(cfg config.TelegramBotConfig) *TelegramNotifier {
	if strings.TrimSpace(cfg.ChatId) == "" || strings.TrimSpace(cfg.Token) == "" {
		return nil
	}
	return &TelegramNotifier{
		creds:      cfg,
		baseURL:    telegramBaseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (t *TelegramNotifier) Notify(level, value string) error {
	if t == nil {
		return nil
	}
	return t.sendRequest(formatTelegram(level, value))
}

func formatTelegram(level, value string) string {
	icon, ok := levelIcons[level]
	if !ok {
		icon = levelIcons["INFO"]
	}
	return fmt.Sprintf("%s %s: %s", icon, level, formatMessage(value))
}

func (t *TelegramNotifier) sendRequest(value string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.creds.Token)

	bodyBytes, err := json.Marshal(telegramRequest{
		ChatId: t.creds.ChatId,
		Text:   value,
	})
	if err != nil {
		return err
	}

	resp, err := t.httpClient.Post(url, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram send failed: %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	return nil
}
