package admin

import (
	"fmt"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/service"
	"go.uber.org/zap"
)

// ========================
// Settings
// ========================

// HandleSettings экран настроек
func HandleSettings(hc *common.HandlerContext) {
	settings, err := hc.Handler.Settings.Get(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "get_settings")
		return
	}

	text, kb := common.BuildSettingsScreen(settings)
	if err := hc.ReplaceMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_settings")
		return
	}
	hc.Answer("")
}

// HandleToggleSetting переключает булеву настройку (set_toggle:<field>)
func HandleToggleSetting(hc *common.HandlerContext) {
	arg, err := common.CallbackArg(hc.Data(), common.SettingsTogglePrefix)
	if err != nil {
		common.HandleError(hc, err, "parse_setting")
		return
	}
	field := service.SettingsField(arg)

	settings, err := hc.Handler.Settings.Toggle(hc.Ctx, hc.User, field)
	if err != nil {
		common.HandleError(hc, err, "toggle_setting")
		return
	}

	hc.Handler.Logger.Info("Setting toggled from bot",
		zap.Int64("actor_id", hc.User.ID),
		zap.String("field", arg))

	text, kb := common.BuildSettingsScreen(settings)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_settings")
		return
	}
	hc.Answer("✅ Сохранено")
}

// HandleEditSetting запрашивает новое значение поля (set_edit:<field>)
func HandleEditSetting(hc *common.HandlerContext) {
	arg, err := common.CallbackArg(hc.Data(), common.SettingsEditPrefix)
	if err != nil {
		common.HandleError(hc, err, "parse_setting")
		return
	}
	field := service.SettingsField(arg)

	var (
		next   state.UserState
		prompt string
	)
	switch {
	case field.IsNumeric():
		next = state.StateSettingsNumber
		prompt = "Введите целое число (0 = без ограничения):"
	case field.IsText():
		next = state.StateSettingsText
		prompt = "Введите новое значение:"
	default:
		common.HandleError(hc, common.ErrInvalidFormat, "parse_setting")
		return
	}

	hc.ClearState()
	hc.SetData(state.KeyField, arg)
	hc.SetState(next)

	text := fmt.Sprintf("✏️ <b>%s</b>\n\n%s", common.SettingsFieldName(field), prompt)
	if err := hc.EditMessage(text, keyboard.DialogCancel()); err != nil {
		common.HandleError(hc, err, "ask_setting")
		return
	}
	hc.Answer("")
}
