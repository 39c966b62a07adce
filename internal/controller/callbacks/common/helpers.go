package common

import (
	"context"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// AnswerCallback acknowledges the button press with an optional toast
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert shows the answer as a popup
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback returns nil for inaccessible messages
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIDFromCallback extracts the id of "prefix:<uuid>"
func ParseIDFromCallback(data, prefix string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return uuid.Nil, ErrInvalidFormat
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidFormat
	}
	return id, nil
}

// ParseIDAndIndex extracts "prefix:<uuid>:<index>"
func ParseIDAndIndex(data, prefix string) (uuid.UUID, string, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return uuid.Nil, "", ErrInvalidFormat
	}
	rawID, index, ok := strings.Cut(raw, ":")
	if !ok {
		return uuid.Nil, "", ErrInvalidFormat
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, "", ErrInvalidFormat
	}
	return id, index, nil
}

// ParseIDPair extracts "prefix:<compact id>:<compact id>"
func ParseIDPair(data, prefix string) (uuid.UUID, uuid.UUID, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return uuid.Nil, uuid.Nil, ErrInvalidFormat
	}
	rawFirst, rawSecond, ok := strings.Cut(raw, ":")
	if !ok {
		return uuid.Nil, uuid.Nil, ErrInvalidFormat
	}
	first, ok := keyboard.ParseCompactID(rawFirst)
	if !ok {
		return uuid.Nil, uuid.Nil, ErrInvalidFormat
	}
	second, ok := keyboard.ParseCompactID(rawSecond)
	if !ok {
		return uuid.Nil, uuid.Nil, ErrInvalidFormat
	}
	return first, second, nil
}

// IsMessageNotModifiedError reports Telegram refusing an edit that changes nothing
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
