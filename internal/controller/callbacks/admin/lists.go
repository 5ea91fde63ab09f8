package admin

import (
	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/service"
)

// HandleAllReservations все бронирования (all_range:<range>:<page>)
func HandleAllReservations(hc *common.HandlerContext) {
	rng, page, err := common.ParseRangePage(hc.Data(), common.AllRangePrefix)
	if err != nil {
		common.HandleError(hc, err, "parse_range")
		return
	}

	list, err := hc.Handler.Reservations.ListAll(hc.Ctx, hc.User, service.ListOptions{
		Range: rng,
		Sort:  availability.SortByDate,
		Order: availability.Asc,
	})
	if err != nil {
		common.HandleError(hc, err, "list_reservations")
		return
	}

	text, kb := common.ReservationListScreen{
		Title:        "Все бронирования",
		Reservations: list,
		Range:        rng,
		Page:         page,
		RangePrefix:  common.AllRangePrefix,
		ShowResident: true,
	}.Build()
	if err := hc.ReplaceMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_reservations")
		return
	}
	hc.Answer("")
}

// HandlePending обновляет список заявок на одобрение
func HandlePending(hc *common.HandlerContext) {
	pending, err := hc.Handler.Reservations.Pending(hc.Ctx, hc.User)
	if err != nil {
		common.HandleError(hc, err, "list_pending")
		return
	}

	text, kb := common.BuildPendingScreen(pending)
	if err := hc.ReplaceMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_pending")
		return
	}
	hc.Answer("")
}

// HandleStats сводная статистика
func HandleStats(hc *common.HandlerContext) {
	summary, err := hc.Handler.Reservations.Stats(hc.Ctx, hc.User)
	if err != nil {
		common.HandleError(hc, err, "stats")
		return
	}

	kb := keyboard.NewBuilder().AddBackToMainButton().Build()
	if err := hc.ReplaceMessage(common.BuildStatsScreen(summary), kb); err != nil {
		common.HandleError(hc, err, "show_stats")
		return
	}
	hc.Answer("")
}
