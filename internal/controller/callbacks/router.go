package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/resident"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route направляет callback query к соответствующему обработчику
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	// ===== Common =====
	case data == keyboard.NoopData:
		common.AnswerCallback(ctx, b, callback.ID, "")
	case data == keyboard.BackToMainData:
		common.WithUser(ctx, b, callback, h, common.HandleBackToMain)
	case data == keyboard.DialogCancelData:
		common.WithUser(ctx, b, callback, h, resident.HandleDialogCancel)

	// ===== Calendar & Reservation Form =====
	case strings.HasPrefix(data, common.MonthImagePrefix):
		common.WithUser(ctx, b, callback, h, resident.HandleMonthImage)
	case strings.HasPrefix(data, common.MonthPrefix):
		common.WithUser(ctx, b, callback, h, resident.HandleMonth)
	case strings.HasPrefix(data, common.DayPrefix):
		common.WithUser(ctx, b, callback, h, resident.HandleDay)
	case strings.HasPrefix(data, common.SlotPrefix):
		common.WithUser(ctx, b, callback, h, resident.HandleSlot)
	case data == common.ReserveSkipNotes:
		common.WithUser(ctx, b, callback, h, resident.HandleSkipNotes)
	case data == common.ReserveConfirm:
		common.WithUser(ctx, b, callback, h, resident.HandleConfirm)
	case data == common.ReserveAbort:
		common.WithUser(ctx, b, callback, h, resident.HandleAbort)
	case strings.HasPrefix(data, common.ReservationPrefix):
		common.WithUser(ctx, b, callback, h, resident.HandleViewReservation)
	case strings.HasPrefix(data, common.MyRangePrefix):
		common.WithUser(ctx, b, callback, h, resident.HandleMyReservations)

	// ===== Board =====
	case data == common.MenuNotices:
		common.WithUser(ctx, b, callback, h, resident.HandleNotices)
	case strings.HasPrefix(data, common.DocCategoryPrefix):
		common.WithUser(ctx, b, callback, h, resident.HandleDocuments)
	case strings.HasPrefix(data, common.DocOpenPrefix):
		common.WithUser(ctx, b, callback, h, resident.HandleOpenDocument)
	case data == common.MenuDashboard:
		common.WithUser(ctx, b, callback, h, resident.HandleDashboard)

	// ===== Admin: Decisions =====
	case strings.HasPrefix(data, common.ApprovePrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleApprove)
	case strings.HasPrefix(data, common.RejectPrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleReject)
	case strings.HasPrefix(data, common.CancelPrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleCancel)
	case data == common.SkipReason:
		common.WithAdmin(ctx, b, callback, h, admin.HandleSkipReason)

	// ===== Admin: Lists =====
	case strings.HasPrefix(data, common.AllRangePrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleAllReservations)
	case data == common.PendingRefresh:
		common.WithAdmin(ctx, b, callback, h, admin.HandlePending)
	case data == common.MenuStats:
		common.WithAdmin(ctx, b, callback, h, admin.HandleStats)

	// ===== Admin: Residents =====
	case strings.HasPrefix(data, common.ResidentsPagePrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleResidents)
	case strings.HasPrefix(data, common.RolePrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleToggleRole)

	// ===== Admin: Notices =====
	case strings.HasPrefix(data, common.NoticeTogglePrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleToggleNotice)
	case strings.HasPrefix(data, common.NoticeDeletePrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleDeleteNotice)
	case strings.HasPrefix(data, common.NoticePriorityPrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleNoticePriority)
	case strings.HasPrefix(data, common.NoticeExpiryPrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleNoticeExpiry)

	// ===== Admin: Documents =====
	case strings.HasPrefix(data, common.DocDeletePrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleDeleteDocument)
	case strings.HasPrefix(data, common.DocNewCategoryPrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleDocumentCategory)

	// ===== Admin: Settings =====
	case data == common.MenuSettings:
		common.WithAdmin(ctx, b, callback, h, admin.HandleSettings)
	case strings.HasPrefix(data, common.SettingsTogglePrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleToggleSetting)
	case strings.HasPrefix(data, common.SettingsEditPrefix):
		common.WithAdmin(ctx, b, callback, h, admin.HandleEditSetting)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
		return
	}

	h.Logger.Debug("Callback routed", zap.String("data", data))
}
