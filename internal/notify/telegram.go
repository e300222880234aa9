// Package notify implements the outbound notification transport.
// Telegram is the only backend: a one-way send keyed by chat id.
package notify

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/format"
)

// Typed delivery failures. Callers that surface errors to the user
// (settings/test flows) match on these; the engine logs them uniformly.
var (
	ErrChatNotFound = errors.New("telegram: chat not found")
	ErrBotBlocked   = errors.New("telegram: bot was blocked by the user")
	ErrInvalidToken = errors.New("telegram: invalid bot token")
)

// Telegram sends messages through the Telegram Bot API.
type Telegram struct {
	api *tgbotapi.BotAPI
}

// New authenticates against the Bot API with the given token.
func New(token string) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", classify(err))
	}
	return &Telegram{api: api}, nil
}

// BotUsername returns the authenticated bot account name.
func (t *Telegram) BotUsername() string {
	return t.api.Self.UserName
}

// Send delivers text to a chat. With markdown set, **bold** and `code`
// spans are converted to Telegram entities. There is no per-send timeout;
// a slow delivery blocks the caller for the remainder of its cycle.
func (t *Telegram) Send(chatID int64, text string, markdown bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markdown {
		parsed := format.ParseMarkdown(text)
		msg.Text = parsed.Text
		msg.Entities = parsed.Entities
	}

	if _, err := t.api.Send(msg); err != nil {
		return classify(err)
	}
	return nil
}

// classify maps Bot API failures onto the typed sentinel errors.
func classify(err error) error {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	msg := strings.ToLower(apiErr.Message)
	switch {
	case apiErr.Code == 401:
		return fmt.Errorf("%w: %s", ErrInvalidToken, apiErr.Message)
	case apiErr.Code == 403 && strings.Contains(msg, "blocked"):
		return fmt.Errorf("%w", ErrBotBlocked)
	case apiErr.Code == 400 && strings.Contains(msg, "chat not found"):
		return fmt.Errorf("%w", ErrChatNotFound)
	}
	return err
}
