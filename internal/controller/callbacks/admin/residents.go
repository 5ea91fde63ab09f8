package admin

import (
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"go.uber.org/zap"
)

// HandleResidents страница списка жителей (residents_page:<n>)
func HandleResidents(hc *common.HandlerContext) {
	page, err := common.ParseIDFromCallback(hc.Data())
	if err != nil {
		common.HandleError(hc, err, "parse_page")
		return
	}
	showResidents(hc, int(page))
}

// HandleToggleRole переключает роль житель/администратор (role:<user_id>)
func HandleToggleRole(hc *common.HandlerContext) {
	userID, err := common.ParseIDFromCallback(hc.Data())
	if err != nil {
		common.HandleError(hc, err, "parse_user")
		return
	}

	target, err := hc.Handler.Users.GetByID(hc.Ctx, userID)
	if err != nil {
		common.HandleError(hc, err, "get_user")
		return
	}
	if target == nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrUserNotFound))
		return
	}

	role := model.UserRoleAdmin
	if target.IsAdmin() {
		role = model.UserRoleResident
	}

	updated, err := hc.Handler.Users.ChangeRole(hc.Ctx, hc.User, userID, role)
	if err != nil {
		common.HandleError(hc, err, "change_role")
		return
	}

	hc.Handler.Logger.Info("Role changed from bot",
		zap.Int64("actor_id", hc.User.ID),
		zap.Int64("user_id", updated.ID),
		zap.String("role", string(updated.Role)))

	showResidents(hc, 0)
}

func showResidents(hc *common.HandlerContext, page int) {
	users, err := hc.Handler.Users.Residents(hc.Ctx, hc.User)
	if err != nil {
		common.HandleError(hc, err, "list_residents")
		return
	}

	text, kb := common.BuildResidentsScreen(users, page, hc.User.ID)
	if err := hc.ReplaceMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_residents")
		return
	}
	hc.Answer("")
}
