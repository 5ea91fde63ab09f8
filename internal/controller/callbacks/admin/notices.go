package admin

import (
	"strconv"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/service"
)

// ========================
// Notice Management
// ========================

// HandleToggleNotice скрывает или снова показывает объявление
func HandleToggleNotice(hc *common.HandlerContext) {
	id, err := common.ParseUUIDFromCallback(hc.Data())
	if err != nil {
		common.HandleError(hc, err, "parse_notice")
		return
	}

	if _, err := hc.Handler.Notices.Toggle(hc.Ctx, hc.User, id); err != nil {
		common.HandleError(hc, err, "toggle_notice")
		return
	}
	showNotices(hc)
}

// HandleDeleteNotice удаляет объявление
func HandleDeleteNotice(hc *common.HandlerContext) {
	id, err := common.ParseUUIDFromCallback(hc.Data())
	if err != nil {
		common.HandleError(hc, err, "parse_notice")
		return
	}

	if err := hc.Handler.Notices.Delete(hc.Ctx, hc.User, id); err != nil {
		common.HandleError(hc, err, "delete_notice")
		return
	}
	showNotices(hc)
}

// HandleNoticePriority сохраняет важность и спрашивает срок (notice_prio:<priority>)
func HandleNoticePriority(hc *common.HandlerContext) {
	if hc.State() != state.StateNoticePriority {
		hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	arg, err := common.CallbackArg(hc.Data(), common.NoticePriorityPrefix)
	if err != nil || !model.NoticePriority(arg).IsValid() {
		common.HandleError(hc, common.ErrInvalidFormat, "parse_priority")
		return
	}

	hc.SetData(state.KeyPriority, arg)
	hc.SetState(state.StateNoticeExpiry)

	if err := hc.EditMessage("⏱ Сколько дней показывать объявление?", common.NoticeExpiryKeyboard()); err != nil {
		common.HandleError(hc, err, "ask_expiry")
		return
	}
	hc.Answer("")
}

// HandleNoticeExpiry публикует объявление (notice_exp:<days>, 0 = бессрочно)
func HandleNoticeExpiry(hc *common.HandlerContext) {
	if hc.State() != state.StateNoticeExpiry {
		hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	arg, err := common.CallbackArg(hc.Data(), common.NoticeExpiryPrefix)
	if err != nil {
		common.HandleError(hc, err, "parse_expiry")
		return
	}
	days, err := strconv.Atoi(arg)
	if err != nil || days < 0 {
		common.HandleError(hc, common.ErrInvalidFormat, "parse_expiry")
		return
	}

	title, okTitle := hc.GetString(state.KeyTitle)
	content, okContent := hc.GetString(state.KeyContent)
	priority, _ := hc.GetString(state.KeyPriority)
	if !okTitle || !okContent {
		hc.ClearState()
		common.HandleError(hc, common.ErrDialogExpired, "publish_notice")
		return
	}

	draft := service.NoticeDraft{
		Title:    title,
		Content:  content,
		Priority: model.NoticePriority(priority),
	}
	if days > 0 {
		expires := time.Now().AddDate(0, 0, days)
		draft.ExpiresAt = &expires
	}

	if _, err := hc.Handler.Notices.Publish(hc.Ctx, hc.User, draft); err != nil {
		common.HandleError(hc, err, "publish_notice")
		return
	}
	hc.ClearState()

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📢 Все объявления", common.MenuNotices)).
		AddBackToMainButton().
		Build()
	if err := hc.EditMessage("✅ Объявление опубликовано", kb); err != nil {
		common.HandleError(hc, err, "show_published")
		return
	}
	common.LogAndAnswer(hc, "Notice published from bot", "✅ Опубликовано")
}

func showNotices(hc *common.HandlerContext) {
	notices, err := hc.Handler.Notices.ListAll(hc.Ctx, hc.User)
	if err != nil {
		common.HandleError(hc, err, "list_notices")
		return
	}

	text, kb := common.BuildNoticesScreen(notices, true, time.Now())
	if err := hc.ReplaceMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_notices")
		return
	}
	hc.Answer("")
}
