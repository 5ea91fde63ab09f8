package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Reservas"

var exportHeaders = []string{
	"Data", "Horário", "Morador", "Apartamento", "Evento", "Contato", "Status", "Motivo", "Observações", "Solicitado em",
}

// ReservationLister источник бронирований для выгрузки
type ReservationLister interface {
	ListAll(ctx context.Context, actor *model.User, opts ListOptions) ([]model.Reservation, error)
}

type ExportService struct {
	reservations ReservationLister
	logger       *zap.Logger
}

func NewExportService(reservations ReservationLister, logger *zap.Logger) *ExportService {
	return &ExportService{reservations: reservations, logger: logger}
}

// ReservationsXLSX выгружает бронирования в xlsx
func (s *ExportService) ReservationsXLSX(ctx context.Context, actor *model.User, opts ListOptions) ([]byte, error) {
	reservations, err := s.reservations.ListAll(ctx, actor, opts)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	// Новая книга создаётся с листом Sheet1
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	index, err := f.GetSheetIndex(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("get sheet index: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, r := range reservations {
		values := []interface{}{
			r.Date.String(),
			r.TimeSlot,
			r.ResidentName,
			r.ApartmentNumber,
			r.Event,
			r.Contact,
			string(r.Status),
			deref(r.CancellationReason),
			deref(r.Notes),
			r.RequestedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("Reservations exported", zap.Int64("actor_id", actor.ID), zap.Int("rows", len(reservations)))
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
