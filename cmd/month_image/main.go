package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/service"
	"github.com/google/uuid"
)

// Рисует календарь текущего месяца на тестовых данных
func main() {
	output := flag.String("o", "month.png", "файл для сохранения")
	monday := flag.Bool("monday", false, "неделя начинается с понедельника")
	flag.Parse()

	firstWeekday := time.Sunday
	if *monday {
		firstWeekday = time.Monday
	}

	today := model.Today(time.Now(), time.Local)
	first := today.FirstOfMonth()

	// Тестовые бронирования
	reservations := []model.Reservation{
		sample(first.AddDays(2), "08:00 - 10:00", model.ReservationStatusConfirmed),
		sample(first.AddDays(2), "10:00 - 12:00", model.ReservationStatusPending),
		sample(first.AddDays(5), "18:00 - 20:00", model.ReservationStatusPending),
		sample(first.AddDays(9), "Dia Inteiro (08:00 - 00:00)", model.ReservationStatusConfirmed),
		sample(first.AddDays(12), "14:00 - 16:00", model.ReservationStatusCancelled),
		sample(first.AddDays(20), "20:00 - 22:00", model.ReservationStatusPending),
		sample(first.AddDays(20), "22:00 - 00:00", model.ReservationStatusPending),
	}

	grid := availability.AnnotateGrid(availability.BuildMonthGrid(today, today, firstWeekday), reservations)
	view := &service.MonthView{
		Month:    first,
		Today:    today,
		Grid:     grid,
		Weeks:    availability.Weeks(grid),
		Weekdays: availability.WeekdayOrder(firstWeekday),
	}

	imageData, err := common.GenerateMonthImage(view)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*output, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", *output)
	fmt.Printf("📅 Месяц: %s\n", first)
	fmt.Printf("📊 Бронирований: %d\n", len(reservations))
}

func sample(date model.Date, slot string, status model.ReservationStatus) model.Reservation {
	now := time.Now()
	return model.Reservation{
		ID:        uuid.New(),
		Date:      date,
		TimeSlot:  slot,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
