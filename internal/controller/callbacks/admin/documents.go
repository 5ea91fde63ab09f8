package admin

import (
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/model"
)

// HandleDeleteDocument удаляет документ и обновляет список
func HandleDeleteDocument(hc *common.HandlerContext) {
	id, err := common.ParseUUIDFromCallback(hc.Data())
	if err != nil {
		common.HandleError(hc, err, "parse_document")
		return
	}

	if err := hc.Handler.Documents.Delete(hc.Ctx, hc.User, id); err != nil {
		common.HandleError(hc, err, "delete_document")
		return
	}

	docs, err := hc.Handler.Documents.List(hc.Ctx, "")
	if err != nil {
		common.HandleError(hc, err, "list_documents")
		return
	}

	text, kb := common.BuildDocumentsScreen(docs, "", true)
	if err := hc.ReplaceMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_documents")
		return
	}
	common.LogAndAnswer(hc, "Document deleted from bot", "🗑 Документ удалён")
}

// HandleDocumentCategory сохраняет категорию и ждёт файл (doc_newcat:<category>)
func HandleDocumentCategory(hc *common.HandlerContext) {
	if hc.State() != state.StateDocumentCategory {
		hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	category, err := common.CallbackArg(hc.Data(), common.DocNewCategoryPrefix)
	if err != nil || !isKnownCategory(category) {
		common.HandleError(hc, common.ErrInvalidFormat, "parse_category")
		return
	}

	hc.SetData(state.KeyCategory, category)
	hc.SetState(state.StateDocumentFile)

	text := "📎 Отправьте файл документа.\n\n" +
		"Подпись к файлу станет описанием документа."
	if err := hc.EditMessage(text, keyboard.DialogCancel()); err != nil {
		common.HandleError(hc, err, "ask_file")
		return
	}
	hc.Answer("")
}

func isKnownCategory(category string) bool {
	for _, c := range model.DocumentCategories {
		if c == category {
			return true
		}
	}
	return false
}
