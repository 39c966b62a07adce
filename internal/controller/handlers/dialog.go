package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// dialogStep is one question of a step-by-step form
type dialogStep[F any] struct {
	state    state.UserState
	prompt   string
	optional bool
	// current shows the value already in the form, if any
	current func(form *F) string
	apply   func(form *F, answer string) error
}

// dialog is an ordered list of questions filling a form of type F.
// The form lives in the user's state data under key.
type dialog[F any] struct {
	title string
	key   string
	steps []dialogStep[F]
}

func (d dialog[F]) stepIndex(s state.UserState) int {
	for i, step := range d.steps {
		if step.state == s {
			return i
		}
	}
	return -1
}

func (d dialog[F]) prompt(i int, form *F) string {
	step := d.steps[i]
	text := fmt.Sprintf("Step %d of %d: %s", i+1, len(d.steps), step.prompt)

	if cur := step.current(form); cur != "" {
		text += fmt.Sprintf("\n\nNow: %s\nSend - to keep it.", cur)
	} else if step.optional {
		text += "\n\nSend - to skip."
	}
	return text
}

// applyAnswer stores one answer in the form. A skip keeps the current value
// and is only allowed for optional questions or ones already answered.
func applyAnswer[F any](step dialogStep[F], form *F, answer string) error {
	answer = strings.TrimSpace(answer)
	if isSkip(answer) {
		if step.optional || step.current(form) != "" {
			return nil
		}
		return errors.New("This one is required.")
	}
	return step.apply(form, answer)
}

// startDialog stores the form and asks the first question
func startDialog[F any](ctx context.Context, h *Handlers, b *bot.Bot, chatID, telegramID int64, d dialog[F], form *F) {
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetData(telegramID, d.key, form)
	h.stateManager.SetState(telegramID, d.steps[0].state)

	h.logger.Info("Dialog started",
		zap.Int64("telegram_id", telegramID),
		zap.String("dialog", d.key))

	h.sendMessage(ctx, b, chatID, d.title+"\n\n"+d.prompt(0, form)+"\n\nTo stop, send /cancel")
}

// advanceDialog applies the answer to the current question and asks the next one.
// It returns the filled form once the last question is answered.
func advanceDialog[F any](ctx context.Context, h *Handlers, b *bot.Bot, update *models.Update, d dialog[F], current state.UserState) (*F, bool) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	raw, _ := h.stateManager.GetData(telegramID, d.key)
	form, ok := raw.(*F)
	i := d.stepIndex(current)
	if !ok || i < 0 {
		h.logger.Warn("Dialog data lost",
			zap.Int64("telegram_id", telegramID),
			zap.String("state", string(current)))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ The dialog expired. Please start again.")
		return nil, false
	}

	if err := applyAnswer(d.steps[i], form, update.Message.Text); err != nil {
		h.sendError(ctx, b, chatID, "❌ "+err.Error()+"\n\n"+d.prompt(i, form))
		return nil, false
	}

	if i+1 < len(d.steps) {
		h.stateManager.SetState(telegramID, d.steps[i+1].state)
		h.sendMessage(ctx, b, chatID, d.prompt(i+1, form))
		return nil, false
	}

	h.stateManager.ClearState(telegramID)
	return form, true
}
