package formatting

// Pluralize выбирает форму слова для числа: one (1, 21), few (2-4, 22-24), many (остальные)
func Pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeReservations возвращает правильное склонение слова "бронирование"
func PluralizeReservations(count int) string {
	return Pluralize(count, "бронирование", "бронирования", "бронирований")
}

// PluralizeRequests склонение слова "заявка"
func PluralizeRequests(count int) string {
	return Pluralize(count, "заявка", "заявки", "заявок")
}

// PluralizeResidents склонение слова "житель"
func PluralizeResidents(count int) string {
	return Pluralize(count, "житель", "жителя", "жителей")
}

// PluralizeDays склонение слова "день"
func PluralizeDays(count int) string {
	return Pluralize(count, "день", "дня", "дней")
}

// PluralizeHours склонение слова "час"
func PluralizeHours(count int) string {
	return Pluralize(count, "час", "часа", "часов")
}
