package resident

import (
	"bytes"
	"fmt"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Calendar Handlers
// ========================

// HandleMonth показывает календарь месяца (листание cal:YYYY-MM)
func HandleMonth(hc *common.HandlerContext) {
	month, err := common.ParseMonthData(hc.Data(), common.MonthPrefix)
	if err != nil {
		common.HandleError(hc, err, "parse_month")
		return
	}

	view, err := hc.Handler.Reservations.MonthView(hc.Ctx, month)
	if err != nil {
		common.HandleError(hc, err, "month_view")
		return
	}

	text, kb := common.BuildMonthScreen(view)
	if err := hc.ReplaceMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_month")
		return
	}
	hc.Answer("")
}

// HandleMonthImage отправляет календарь месяца картинкой вместо кнопок
func HandleMonthImage(hc *common.HandlerContext) {
	month, err := common.ParseMonthData(hc.Data(), common.MonthImagePrefix)
	if err != nil {
		common.HandleError(hc, err, "parse_month")
		return
	}

	view, err := hc.Handler.Reservations.MonthView(hc.Ctx, month)
	if err != nil {
		common.HandleError(hc, err, "month_view")
		return
	}

	png, err := common.GenerateMonthImage(view)
	if err != nil {
		common.HandleError(hc, err, "month_image")
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.MonthPagination(
			common.MonthImageData(view.Month.AddMonths(-1)),
			formatting.FormatMonth(view.Month),
			common.MonthImageData(view.Month.AddMonths(1)),
		)...).
		Row(keyboard.Button("📅 Выбрать день", common.MonthData(view.Month))).
		AddBackToMainButton().
		Build()

	_, err = hc.Bot.SendPhoto(hc.Ctx, &bot.SendPhotoParams{
		ChatID: hc.ChatID,
		Photo: &models.InputFileUpload{
			Filename: fmt.Sprintf("calendar-%04d-%02d.png", view.Month.Year, int(view.Month.Month)),
			Data:     bytes.NewReader(png),
		},
		Caption:     fmt.Sprintf("📅 <b>%s</b>", formatting.FormatMonth(view.Month)),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil {
		common.HandleError(hc, err, "send_month_image")
		return
	}

	if err := hc.DeleteMessage(); err != nil {
		hc.Handler.Logger.Debug("Failed to delete previous calendar message", zap.Error(err))
	}
	hc.Answer("")
}

// HandleDay показывает слоты выбранного дня
func HandleDay(hc *common.HandlerContext) {
	date, err := common.ParseDayData(hc.Data())
	if err != nil {
		common.HandleError(hc, err, "parse_day")
		return
	}

	view, err := hc.Handler.Reservations.DayView(hc.Ctx, date)
	if err != nil {
		common.HandleError(hc, err, "day_view")
		return
	}

	text, kb := common.BuildDayScreen(view, hc.Handler.Reservations.TimeSlots(), hc.IsAdmin())
	if err := hc.ReplaceMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_day")
		return
	}
	hc.Answer("")
}
