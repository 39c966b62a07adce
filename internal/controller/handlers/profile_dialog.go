package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/formatting"
	"github.com/AngelinAnto/OneAdmit/internal/controller/state"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var profileDialog = dialog[model.StudentProfileForm]{
	title: "👤 Student profile",
	key:   state.KeyProfileForm,
	steps: []dialogStep[model.StudentProfileForm]{
		{
			state:   state.StateProfileFullName,
			prompt:  "What is your full name?",
			current: func(f *model.StudentProfileForm) string { return f.FullName },
			apply: func(f *model.StudentProfileForm, answer string) error {
				f.FullName = answer
				return nil
			},
		},
		{
			state:   state.StateProfilePhone,
			prompt:  "Your phone number?",
			current: func(f *model.StudentProfileForm) string { return f.Phone },
			apply: func(f *model.StudentProfileForm, answer string) error {
				digits := strings.Map(func(r rune) rune {
					if r >= '0' && r <= '9' {
						return r
					}
					return -1
				}, answer)
				if len(digits) < 6 || len(answer) > 20 {
					return errors.New("That does not look like a phone number.")
				}
				f.Phone = answer
				return nil
			},
		},
		{
			state:  state.StateProfileBirthDate,
			prompt: "Date of birth? For example 2007-05-21 or 21.05.2007",
			current: func(f *model.StudentProfileForm) string {
				if f.DateOfBirth == nil {
					return ""
				}
				return formatting.FormatDate(*f.DateOfBirth)
			},
			apply: func(f *model.StudentProfileForm, answer string) error {
				dob, err := parseDate(answer)
				if err != nil {
					return errors.New("Send the date as YYYY-MM-DD or DD.MM.YYYY.")
				}
				f.DateOfBirth = &dob
				return nil
			},
		},
		{
			state:    state.StateProfileGender,
			prompt:   "Gender? male, female or other",
			optional: true,
			current:  func(f *model.StudentProfileForm) string { return f.Gender },
			apply: func(f *model.StudentProfileForm, answer string) error {
				gender := strings.ToLower(answer)
				switch gender {
				case "male", "female", "other":
					f.Gender = gender
					return nil
				}
				return errors.New("Answer male, female or other.")
			},
		},
		{
			state:    state.StateProfileCity,
			prompt:   "Which city do you live in?",
			optional: true,
			current:  func(f *model.StudentProfileForm) string { return f.City },
			apply: func(f *model.StudentProfileForm, answer string) error {
				f.City = answer
				return nil
			},
		},
		{
			state:   state.StateProfileBoard,
			prompt:  "Your 12th standard board? For example State Board or CBSE",
			current: func(f *model.StudentProfileForm) string { return f.Board },
			apply: func(f *model.StudentProfileForm, answer string) error {
				f.Board = answer
				return nil
			},
		},
		{
			state:  state.StateProfilePercentage,
			prompt: "Your 12th percentage?",
			current: func(f *model.StudentProfileForm) string {
				if f.TwelfthPercentage == nil {
					return ""
				}
				return strconv.FormatFloat(*f.TwelfthPercentage, 'f', -1, 64) + "%"
			},
			apply: func(f *model.StudentProfileForm, answer string) error {
				pct, err := strconv.ParseFloat(strings.TrimSuffix(answer, "%"), 64)
				if err != nil || pct < 0 || pct > 100 {
					return errors.New("Send a number from 0 to 100.")
				}
				f.TwelfthPercentage = &pct
				return nil
			},
		},
		{
			state:    state.StateProfileCourses,
			prompt:   "Courses you are interested in, comma separated?",
			optional: true,
			current:  func(f *model.StudentProfileForm) string { return strings.Join(f.PreferredCourses, ", ") },
			apply: func(f *model.StudentProfileForm, answer string) error {
				f.PreferredCourses = splitList(answer)
				return nil
			},
		},
	},
}

// HandleProfile shows the student's profile, or starts filling it in.
// "/profile edit" goes through the questions again.
func (h *Handlers) HandleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	student, ok := h.requireStudent(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	if student.Email == "" {
		h.sendMessage(ctx, b, chatID, "📧 Set your email first: /email you@example.com")
		return
	}

	profile, err := h.profileService.GetProfile(ctx, student)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "get profile")
		return
	}

	edit := strings.EqualFold(commandArgs(update.Message.Text), "edit")
	if profile != nil && !edit {
		h.sendHTML(ctx, b, chatID, formatting.ProfileCard(profile)+"\nTo change it: /profile edit", nil)
		return
	}

	form := &model.StudentProfileForm{FullName: student.FullName}
	if profile != nil {
		f := model.FormFromProfile(profile)
		form = &f
	}
	startDialog(ctx, h, b, chatID, update.Message.From.ID, profileDialog, form)
}

func (h *Handlers) handleProfileStep(ctx context.Context, b *bot.Bot, update *models.Update, current state.UserState) {
	form, done := advanceDialog(ctx, h, b, update, profileDialog, current)
	if !done {
		return
	}

	student, ok := h.requireStudent(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	h.guarded(ctx, b, update, state.OpSaveProfile, func() {
		profile, err := h.profileService.SaveProfile(ctx, student, *form)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "save profile")
			return
		}

		h.logger.Info("Profile saved via dialog", zap.Int64("telegram_id", student.TelegramID))
		h.sendHTML(ctx, b, chatID, "✅ Profile saved!\n\n"+formatting.ProfileCard(profile), nil)
	})
}
