package resident

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Notices & Documents
// ========================

// HandleNotices показывает объявления; администратору вместе со скрытыми
func HandleNotices(hc *common.HandlerContext) {
	var (
		notices []*model.Notice
		err     error
	)
	if hc.IsAdmin() {
		notices, err = hc.Handler.Notices.ListAll(hc.Ctx, hc.User)
	} else {
		notices, err = hc.Handler.Notices.ListActive(hc.Ctx)
	}
	if err != nil {
		common.HandleError(hc, err, "list_notices")
		return
	}

	text, kb := common.BuildNoticesScreen(notices, hc.IsAdmin(), time.Now())
	if err := hc.ReplaceMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_notices")
		return
	}
	hc.Answer("")
}

// HandleDocuments список документов категории (doc_cat:<category>, пусто = все)
func HandleDocuments(hc *common.HandlerContext) {
	category, err := common.CallbackArg(hc.Data(), common.DocCategoryPrefix)
	if err != nil {
		common.HandleError(hc, err, "parse_category")
		return
	}

	docs, err := hc.Handler.Documents.List(hc.Ctx, category)
	if err != nil {
		common.HandleError(hc, err, "list_documents")
		return
	}

	text, kb := common.BuildDocumentsScreen(docs, category, hc.IsAdmin())
	if err := hc.ReplaceMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_documents")
		return
	}
	hc.Answer("")
}

// HandleOpenDocument пересылает сохранённый файл по его Telegram file id
func HandleOpenDocument(hc *common.HandlerContext) {
	id, err := common.ParseUUIDFromCallback(hc.Data())
	if err != nil {
		common.HandleError(hc, err, "parse_document")
		return
	}

	doc, err := hc.Handler.Documents.Get(hc.Ctx, id)
	if err != nil {
		common.HandleError(hc, err, "get_document")
		return
	}

	_, err = hc.Bot.SendDocument(hc.Ctx, &bot.SendDocumentParams{
		ChatID:    hc.ChatID,
		Document:  &models.InputFileString{Data: doc.FileID},
		Caption:   fmt.Sprintf("📄 <b>%s</b>", formatting.Escape(doc.Title)),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		common.HandleError(hc, err, "send_document")
		return
	}

	hc.Log().Info("Document sent", zap.String("document_id", doc.ID.String()))
	hc.Answer("")
}

// HandleDashboard сводная панель
func HandleDashboard(hc *common.HandlerContext) {
	d, err := hc.Handler.Dashboard.Build(hc.Ctx, hc.User)
	if err != nil {
		common.HandleError(hc, err, "dashboard")
		return
	}

	settings, err := hc.Handler.Settings.Get(hc.Ctx)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to load settings for dashboard", zap.Error(err))
	}

	text := common.BuildDashboardScreen(d, settings.CondominiumName)
	kb := common.MainMenuKeyboard(hc.User, hc.Handler.Reservations.Today())
	if err := hc.ReplaceMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_dashboard")
		return
	}
	hc.Answer("")
}
