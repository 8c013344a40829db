package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/newthinker/pulse/internal/core"
	"github.com/newthinker/pulse/internal/notifier"
)

// Telegram implements the Notifier interface for Telegram Bot API
type Telegram struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

const defaultBaseURL = "https://api.telegram.org"

// New creates a new Telegram notifier
func New(botToken, chatID string) *Telegram {
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  defaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (t *Telegram) Name() string {
	return "telegram"
}

func (t *Telegram) Init(cfg notifier.Config) error {
	if token, ok := cfg.Params["bot_token"].(string); ok {
		t.botToken = token
	}
	if chatID, ok := cfg.Params["chat_id"].(string); ok {
		t.chatID = chatID
	}

	if t.botToken == "" {
		return fmt.Errorf("telegram: bot_token is required")
	}
	if t.chatID == "" {
		return fmt.Errorf("telegram: chat_id is required")
	}

	if t.baseURL == "" {
		t.baseURL = defaultBaseURL
	}
	if t.client == nil {
		t.client = &http.Client{Timeout: 30 * time.Second}
	}

	return nil
}

func (t *Telegram) Send(signal core.Signal) error {
	message := t.formatSignal(signal)
	return t.sendMessage(message)
}

func (t *Telegram) formatSignal(signal core.Signal) string {
	var sb strings.Builder

	directionEmoji := "📈"
	if signal.Direction == core.DirectionPut {
		directionEmoji = "📉"
	}

	sb.WriteString(fmt.Sprintf("🚨 %s *%s* - %s\n", directionEmoji, signal.Asset, signal.Direction))
	sb.WriteString(fmt.Sprintf("📊 Confidence: %d%%\n", signal.Confidence))
	sb.WriteString(fmt.Sprintf("💰 Price: %s\n", signal.Price))
	sb.WriteString(fmt.Sprintf("⏳ Expiry: %s\n", signal.Expiry))

	if signal.Technical.Pattern != "" {
		sb.WriteString(fmt.Sprintf("🕯 Pattern: %s\n", signal.Technical.Pattern))
	}
	if signal.IsOTC {
		sb.WriteString("🌙 OTC session\n")
	}

	sb.WriteString(fmt.Sprintf("⏰ Time: %s", signal.Timestamp.Format("2006-01-02 15:04:05")))

	return sb.String()
}

func (t *Telegram) sendMessage(text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)

	payload := map[string]any{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: failed to marshal payload: %w", err)
	}

	resp, err := t.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		return fmt.Errorf("telegram: API error (status %d): %v", resp.StatusCode, result)
	}

	return nil
}
