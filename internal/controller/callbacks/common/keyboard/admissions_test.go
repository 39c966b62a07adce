package keyboard

import (
	"strings"
	"testing"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxCallbackData = 64

func allButtons(kb *models.InlineKeyboardMarkup) []models.InlineKeyboardButton {
	var out []models.InlineKeyboardButton
	for _, row := range kb.InlineKeyboard {
		out = append(out, row...)
	}
	return out
}

func TestStatusKeyboard(t *testing.T) {
	app := &model.Application{
		ID:            uuid.New(),
		Status:        model.ApplicationStatusPending,
		PaymentStatus: model.PaymentStatusPending,
	}

	buttons := allButtons(StatusKeyboard(app))
	require.Len(t, buttons, len(model.ApplicationStatuses)-1+len(model.PaymentStatuses)-1)

	for _, btn := range buttons {
		assert.LessOrEqual(t, len(btn.CallbackData), maxCallbackData, btn.CallbackData)

		switch {
		case strings.HasPrefix(btn.CallbackData, PrefixStatus):
			parts := strings.Split(strings.TrimPrefix(btn.CallbackData, PrefixStatus), ":")
			require.Len(t, parts, 2)
			assert.Equal(t, app.ID.String(), parts[0])
			status, ok := StatusAt(parts[1])
			require.True(t, ok)
			assert.NotEqual(t, app.Status, status, "current status is not offered")
		case strings.HasPrefix(btn.CallbackData, PrefixPayment):
			parts := strings.Split(strings.TrimPrefix(btn.CallbackData, PrefixPayment), ":")
			require.Len(t, parts, 2)
			status, ok := PaymentStatusAt(parts[1])
			require.True(t, ok)
			assert.NotEqual(t, app.PaymentStatus, status)
		default:
			t.Fatalf("unexpected callback data %q", btn.CallbackData)
		}
	}
}

func TestBookSlotKeyboard_FullSlotIsInert(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	open := &model.ExamSlot{ID: uuid.New(), Date: day, StartTime: "10:00", TotalSeats: 30, BookedSeats: 2, IsActive: true}
	full := &model.ExamSlot{ID: uuid.New(), Date: day, StartTime: "14:00", TotalSeats: 30, BookedSeats: 30, IsActive: true}

	appID := uuid.New()
	buttons := allButtons(BookSlotKeyboard(appID, []*model.ExamSlot{open, full}))
	require.Len(t, buttons, 2)

	assert.Equal(t, BookSlotData(appID, open.ID), buttons[0].CallbackData)
	assert.Contains(t, buttons[0].Text, "28 seats available")
	assert.Equal(t, Noop, buttons[1].CallbackData)
	assert.Contains(t, buttons[1].Text, "Full")
}

func TestBookSlotData_CarriesBothIDs(t *testing.T) {
	appID, slotID := uuid.New(), uuid.New()

	data := BookSlotData(appID, slotID)
	assert.Len(t, data, 47)
	assert.LessOrEqual(t, len(data), maxCallbackData)

	parts := strings.Split(strings.TrimPrefix(data, PrefixBookSlot), ":")
	require.Len(t, parts, 2)

	gotApp, ok := ParseCompactID(parts[0])
	require.True(t, ok)
	assert.Equal(t, appID, gotApp)

	gotSlot, ok := ParseCompactID(parts[1])
	require.True(t, ok)
	assert.Equal(t, slotID, gotSlot)
}

func TestParseCompactID_Rejects(t *testing.T) {
	for _, raw := range []string{"", "short", "!!!!!!!!!!!!!!!!!!!!!!", CompactID(uuid.New()) + "AA"} {
		_, ok := ParseCompactID(raw)
		assert.False(t, ok, raw)
	}
}

func TestCollegeKeyboard_Website(t *testing.T) {
	assert.Nil(t, CollegeKeyboard(&model.College{}))
	assert.Nil(t, CollegeKeyboard(&model.College{Website: "javascript://alert(1)"}))

	buttons := allButtons(CollegeKeyboard(&model.College{Website: "www.psgtech.edu"}))
	require.Len(t, buttons, 1)
	assert.Equal(t, "https://www.psgtech.edu", buttons[0].URL)
	assert.Empty(t, buttons[0].CallbackData)

	assert.Equal(t, "http://loyolacollege.edu", WebsiteURL(" http://loyolacollege.edu "))
}

func TestManageSlotKeyboard_Toggle(t *testing.T) {
	slot := &model.ExamSlot{ID: uuid.New(), IsActive: true}
	assert.Equal(t, PrefixSlotOff+slot.ID.String(), allButtons(ManageSlotKeyboard(slot))[0].CallbackData)

	slot.IsActive = false
	assert.Equal(t, PrefixSlotOn+slot.ID.String(), allButtons(ManageSlotKeyboard(slot))[0].CallbackData)
}

func TestStatusAt_OutOfRange(t *testing.T) {
	for _, raw := range []string{"", "x", "-1", "99"} {
		_, ok := StatusAt(raw)
		assert.False(t, ok, raw)
		_, ok = PaymentStatusAt(raw)
		assert.False(t, ok, raw)
	}
}

func TestChunked(t *testing.T) {
	kb := NewBuilder().Chunked(2, Button("a", "a"), Button("b", "b"), Button("c", "c")).Build()
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[1], 1)
}
