package resident

import (
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
)

// HandleViewReservation карточка бронирования. Житель видит только свои.
func HandleViewReservation(hc *common.HandlerContext) {
	id, err := common.ParseUUIDFromCallback(hc.Data())
	if err != nil {
		common.HandleError(hc, err, "parse_reservation")
		return
	}

	res, err := hc.Handler.Reservations.Get(hc.Ctx, hc.User, id)
	if err != nil {
		common.HandleError(hc, err, "get_reservation")
		return
	}

	if err := hc.ReplaceMessage(common.ReservationCard(res), common.ReservationKeyboard(res, hc.IsAdmin())); err != nil {
		common.HandleError(hc, err, "show_reservation")
		return
	}
	hc.Answer("")
}

// HandleMyReservations список бронирований жителя (my_range:<range>:<page>)
func HandleMyReservations(hc *common.HandlerContext) {
	rng, page, err := common.ParseRangePage(hc.Data(), common.MyRangePrefix)
	if err != nil {
		common.HandleError(hc, err, "parse_range")
		return
	}

	list, err := hc.Handler.Reservations.ListForUser(hc.Ctx, hc.User, rng)
	if err != nil {
		common.HandleError(hc, err, "list_my_reservations")
		return
	}

	text, kb := common.ReservationListScreen{
		Title:        "Мои бронирования",
		Reservations: list,
		Range:        rng,
		Page:         page,
		RangePrefix:  common.MyRangePrefix,
	}.Build()
	if err := hc.ReplaceMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_my_reservations")
		return
	}
	hc.Answer("")
}
