package controller

import (
	"context"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks"
	"github.com/AngelinAnto/OneAdmit/internal/controller/handlers"
	"github.com/AngelinAnto/OneAdmit/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(botInstance *bot.Bot, services handlers.Services, logger *zap.Logger) *BotController {
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(services, stateManager, logger)

	// callbacks see the same dialog state through the adapter
	callbackHandler := callbacks.NewHandler(
		services.Users,
		services.Colleges,
		services.Applications,
		services.ExamSlots,
		services.Announcements,
		state.NewAdapter(stateManager),
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers wires every command, the dialog text handler and the button handler
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	commands := map[string]bot.HandlerFunc{
		"start":  c.handlers.HandleStart,
		"help":   c.handlers.HandleHelp,
		"role":   c.handlers.HandleRole,
		"switch": c.handlers.HandleSwitch,
		"cancel": c.handlers.HandleCancel,
		"email":  c.handlers.HandleEmail,

		// Students
		"colleges":      c.handlers.HandleColleges,
		"college":       c.handlers.HandleCollege,
		"profile":       c.handlers.HandleProfile,
		"apply":         c.handlers.HandleApply,
		"applications":  c.handlers.HandleApplications,
		"slots":         c.handlers.HandleSlots,
		"book":          c.handlers.HandleBook,
		"cancelslot":    c.handlers.HandleCancelSlot,
		"announcements": c.handlers.HandleAnnouncements,

		// Colleges
		"newcollege":  c.handlers.HandleNewCollege,
		"editcollege": c.handlers.HandleEditCollege,
		"dashboard":   c.handlers.HandleDashboard,
		"inbox":       c.handlers.HandleInbox,
		"setstatus":   c.handlers.HandleSetStatus,
		"setpayment":  c.handlers.HandleSetPayment,
		"setresult":   c.handlers.HandleSetResult,
		"history":     c.handlers.HandleHistory,
		"addslot":     c.handlers.HandleAddSlot,
		"myslots":     c.handlers.HandleMySlots,
		"deleteslot":  c.handlers.HandleDeleteSlot,
		"announce":    c.handlers.HandleAnnounce,
		"unannounce":  c.handlers.HandleUnannounce,
		"export":      c.handlers.HandleExport,
	}
	for command, handler := range commands {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, command, bot.MatchTypeCommandStartOnly, handler)
	}

	// Photos with a /photo or /logo caption
	c.bot.RegisterHandlerMatchFunc(handlers.IsPhotoUpload, c.handlers.HandlePhoto)

	// Plain text feeds the dialogs, it must stay after the commands
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands fills the bot's command menu
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Start"},
		{Command: "help", Description: "❓ Commands"},
		{Command: "colleges", Description: "🔍 Discover colleges"},
		{Command: "profile", Description: "👤 My profile (student)"},
		{Command: "applications", Description: "📋 My applications (student)"},
		{Command: "announcements", Description: "📢 News from my colleges (student)"},
		{Command: "dashboard", Description: "📊 Dashboard (college)"},
		{Command: "inbox", Description: "📥 Applications to review (college)"},
		{Command: "myslots", Description: "📝 Exam slots (college)"},
		{Command: "export", Description: "📄 Export applications (college)"},
		{Command: "switch", Description: "🔄 Change account type"},
		{Command: "cancel", Description: "❌ Stop the current dialog"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start blocks until ctx is cancelled
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
