package handlers

// Ограничения на ввод в диалогах
const (
	// Номер квартиры
	ApartmentMaxLength = 20

	// Описание мероприятия
	EventMinLength = 3
	EventMaxLength = 200

	// Контакт для связи
	ContactMinLength = 5
	ContactMaxLength = 100

	// Примечания к заявке
	NotesMaxLength = 1000

	// Причина отклонения или отмены
	ReasonMaxLength = 500

	// Объявления
	NoticeTitleMinLength   = 3
	NoticeTitleMaxLength   = 200
	NoticeContentMaxLength = 4000

	// Документы
	DocumentTitleMinLength = 3
	DocumentTitleMaxLength = 200
)
