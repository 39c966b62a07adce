package keyboard

import "github.com/go-telegram/bot/models"

// Builder assembles inline keyboards row by row
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

// NewBuilder starts an empty keyboard
func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row appends a row. Empty rows are skipped.
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Chunked lays the buttons out in rows of at most perRow
func (b *Builder) Chunked(perRow int, buttons ...models.InlineKeyboardButton) *Builder {
	if perRow < 1 {
		perRow = 1
	}
	for start := 0; start < len(buttons); start += perRow {
		end := min(start+perRow, len(buttons))
		b.Row(buttons[start:end]...)
	}
	return b
}

// Button is a callback button
func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// URLButton opens a link instead of sending a callback
func URLButton(text, url string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text: text,
		URL:  url,
	}
}

// IsEmpty checks if no row was added
func (b *Builder) IsEmpty() bool {
	return len(b.rows) == 0
}

// Build returns the markup to attach to a message
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}

// Empty removes the keyboard of an edited message
func Empty() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{},
	}
}
