package common

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNotAdmin      = errors.New("user is not an admin")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrDialogExpired = errors.New("dialog data not found")
)

// validationFieldNames русские названия полей формы
var validationFieldNames = map[string]string{
	"TimeSlot":        "слот",
	"ResidentName":    "имя",
	"Apartment":       "квартира",
	"Event":           "событие",
	"Contact":         "контакт",
	"Notes":           "примечания",
	"Title":           "заголовок",
	"Content":         "текст",
	"FileID":          "файл",
	"CondominiumName": "название",
	"AdminEmail":      "email",
	"MaxDaysAdvance":  "дней вперёд",
}

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrNotAdmin), errors.Is(err, service.ErrForbidden):
		return "❌ Эта функция доступна только администратору"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrDialogExpired):
		return "❌ Данные диалога устарели. Начните заново"
	case errors.Is(err, availability.ErrSlotTaken):
		return "❌ Этот слот уже занят. Выберите другой"
	case errors.Is(err, availability.ErrUnknownSlot):
		return "❌ Такого слота нет в расписании"
	case errors.Is(err, availability.ErrInvalidTransition):
		return "❌ Статус бронирования уже изменён"
	case errors.Is(err, availability.ErrInvalidDate):
		return "❌ Неверная дата"
	case errors.Is(err, availability.ErrUnknownRange):
		return "❌ Неизвестный период. Доступно: all, upcoming, past, week"
	case errors.Is(err, model.ErrUnknownStatus):
		return "❌ Неизвестный статус бронирования"
	case errors.Is(err, service.ErrStaleReservation):
		return "❌ Бронирование только что изменил другой администратор. Обновите список"
	case errors.Is(err, availability.ErrReservationNotFound), errors.Is(err, service.ErrNotFound):
		return "❌ Не найдено"
	case errors.Is(err, service.ErrPastDate):
		return "❌ Нельзя бронировать прошедшие даты"
	case errors.Is(err, service.ErrTooFarAhead):
		return "❌ Слишком ранняя заявка: дата дальше разрешённого окна бронирования"
	case errors.Is(err, service.ErrWeekendNotAllowed):
		return "❌ Бронирование на выходные отключено"
	case errors.Is(err, service.ErrReservationLimit):
		return "❌ Достигнут лимит активных бронирований"
	case errors.Is(err, service.ErrUnknownResident):
		return "❌ Профиль не найден. Отправьте /start"
	case errors.Is(err, service.ErrApartmentRequired):
		return "❌ Сначала укажите номер квартиры: /apartment"
	case errors.Is(err, service.ErrSelfDemote):
		return "❌ Нельзя снять роль администратора с самого себя"
	case errors.As(err, &verr):
		return "❌ Проверьте поля: " + strings.Join(translateFields(verr.FieldNames()), ", ")
	case errors.Is(err, service.ErrValidation):
		return "❌ Проверьте введённые данные"
	default:
		return "❌ Произошла ошибка"
	}
}

func translateFields(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if ru, ok := validationFieldNames[f]; ok {
			out = append(out, ru)
		} else {
			out = append(out, f)
		}
	}
	return out
}
