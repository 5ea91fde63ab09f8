package controller

import (
	"context"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/condo_bot/internal/controller/handlers"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
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

func NewBotController(
	botInstance *bot.Bot,
	services callbacktypes.Services,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний, общий для команд и кнопок
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(services, stateManager, logger)
	callbackHandler := callbacks.NewHandler(services, stateManager, logger)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	exact := map[string]bot.HandlerFunc{
		"/start":       c.handlers.HandleStart,
		"/help":        c.handlers.HandleHelp,
		"/cancel":      c.handlers.HandleCancel,
		"/apartment":   c.handlers.HandleApartment,
		"/reserve":     c.handlers.HandleReserve,
		"/calendar":    c.handlers.HandleCalendar,
		"/dashboard":   c.handlers.HandleDashboard,
		"/notices":     c.handlers.HandleNotices,
		"/documents":   c.handlers.HandleDocuments,
		"/pending":     c.handlers.HandlePending,
		"/stats":       c.handlers.HandleStats,
		"/residents":   c.handlers.HandleResidents,
		"/settings":    c.handlers.HandleSettings,
		"/newnotice":   c.handlers.HandleNewNotice,
		"/newdocument": c.handlers.HandleNewDocument,
	}
	for command, handler := range exact {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, command, bot.MatchTypeExact, handler)
	}

	// Команды с необязательным аргументом диапазона
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/myreservations", bot.MatchTypePrefix, c.handlers.HandleMyReservations)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reservations", bot.MatchTypePrefix, c.handlers.HandleReservations)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypePrefix, c.handlers.HandleExport)

	// Шаги диалогов: текст без команды и загруженные файлы
	c.bot.RegisterHandlerMatchFunc(handlers.IsDialogText, c.handlers.HandleTextMessage)
	c.bot.RegisterHandlerMatchFunc(handlers.IsDocumentMessage, c.handlers.HandleDocumentMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "reserve", Description: "📅 Забронировать салон"},
		{Command: "myreservations", Description: "📋 Мои бронирования"},
		{Command: "calendar", Description: "🗓 Календарь картинкой"},
		{Command: "notices", Description: "📢 Объявления"},
		{Command: "documents", Description: "📄 Документы"},
		{Command: "dashboard", Description: "🏠 Сводка"},
		{Command: "apartment", Description: "🚪 Номер квартиры"},
		{Command: "pending", Description: "⏳ Заявки на рассмотрении (админ)"},
		{Command: "reservations", Description: "📚 Все бронирования (админ)"},
		{Command: "export", Description: "📊 Выгрузка в Excel (админ)"},
		{Command: "cancel", Description: "✖️ Прервать диалог"},
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

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
