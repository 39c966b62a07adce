package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/formatting"
	"github.com/AngelinAnto/OneAdmit/internal/controller/state"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

var collegeDialog = dialog[model.CollegeForm]{
	title: "🏛 New college profile",
	key:   state.KeyCollegeForm,
	steps: []dialogStep[model.CollegeForm]{
		{
			state:   state.StateCollegeCode,
			prompt:  "Short code students will use to find you, e.g. LOY. It cannot be changed later.",
			current: func(f *model.CollegeForm) string { return f.Code },
			apply: func(f *model.CollegeForm, answer string) error {
				if strings.ContainsAny(answer, " \t") || len(answer) > 32 {
					return errors.New("The code must be one word, at most 32 characters.")
				}
				f.Code = strings.ToUpper(answer)
				return nil
			},
		},
		{
			state:   state.StateCollegeName,
			prompt:  "Full name of the college?",
			current: func(f *model.CollegeForm) string { return f.Name },
			apply: func(f *model.CollegeForm, answer string) error {
				f.Name = answer
				return nil
			},
		},
		{
			state:   state.StateCollegeCity,
			prompt:  "City?",
			current: func(f *model.CollegeForm) string { return f.City },
			apply: func(f *model.CollegeForm, answer string) error {
				f.City = answer
				return nil
			},
		},
		{
			state:   state.StateCollegeCourses,
			prompt:  "Courses offered, comma separated? For example B.Com, BBA, MBA",
			current: func(f *model.CollegeForm) string { return strings.Join(f.Courses, ", ") },
			apply: func(f *model.CollegeForm, answer string) error {
				courses := splitList(answer)
				if len(courses) == 0 {
					return errors.New("Name at least one course.")
				}
				f.Courses = courses
				return nil
			},
		},
		{
			state:  state.StateCollegeFee,
			prompt: "Application fee in rupees? Send 0 if there is none.",
			current: func(f *model.CollegeForm) string {
				return formatting.FormatRupees(f.ApplicationFee)
			},
			apply: func(f *model.CollegeForm, answer string) error {
				fee, err := parseAmount(answer)
				if err != nil || fee < 0 {
					return errors.New("Send the fee as a number, e.g. 500.")
				}
				f.ApplicationFee = fee
				return nil
			},
		},
		{
			state:   state.StateCollegeHostel,
			prompt:  "Do you offer a hostel? yes or no",
			current: func(f *model.CollegeForm) string { return yesNo(f.HasHostel) },
			apply: func(f *model.CollegeForm, answer string) error {
				v, err := parseYesNo(answer)
				if err != nil {
					return errors.New("Answer yes or no.")
				}
				f.HasHostel = v
				return nil
			},
		},
		{
			state:   state.StateCollegeScholarship,
			prompt:  "Do you offer scholarships? yes or no",
			current: func(f *model.CollegeForm) string { return yesNo(f.HasScholarship) },
			apply: func(f *model.CollegeForm, answer string) error {
				v, err := parseYesNo(answer)
				if err != nil {
					return errors.New("Answer yes or no.")
				}
				f.HasScholarship = v
				return nil
			},
		},
	},
}

// HandleNewCollege starts creating the admin's college profile
func (h *Handlers) HandleNewCollege(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	if admin.CollegeID != nil {
		h.replyError(ctx, b, update.Message.Chat.ID, model.ErrCollegeBound, "new college")
		return
	}

	startDialog(ctx, h, b, update.Message.Chat.ID, update.Message.From.ID, collegeDialog, &model.CollegeForm{})
}

func (h *Handlers) handleCollegeStep(ctx context.Context, b *bot.Bot, update *models.Update, current state.UserState) {
	form, done := advanceDialog(ctx, h, b, update, collegeDialog, current)
	if !done {
		return
	}

	admin, ok := h.requireCollegeAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	h.guarded(ctx, b, update, state.OpSaveCollege, func() {
		college, err := h.collegeService.CreateProfile(ctx, admin, *form)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "create college")
			return
		}

		h.sendHTML(ctx, b, chatID, "✅ College profile created!\n\n"+formatting.CollegeCard(college)+
			"\nAdd more details with /editcollege &lt;field&gt; &lt;value&gt;\nFields: "+strings.Join(collegeFields, ", "), nil)
	})
}
