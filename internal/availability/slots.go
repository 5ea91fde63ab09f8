package availability

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/model"
)

var (
	ErrInvalidDate = model.ErrInvalidDate
	ErrUnknownSlot = errors.New("unknown time slot")
	ErrSlotTaken   = errors.New("time slot already taken")
	ErrUnknownMode = errors.New("unknown slot policy")
)

// PolicyMode правило конфликта слотов
type PolicyMode string

const (
	// PolicyExact конфликт только при совпадении строки слота
	PolicyExact PolicyMode = "exact"
	// PolicyFullDayExclusive слот "весь день" конфликтует с любым другим слотом той же даты
	PolicyFullDayExclusive PolicyMode = "full_day_exclusive"
)

// ParsePolicyMode разбирает режим из конфига
func ParsePolicyMode(s string) (PolicyMode, error) {
	switch PolicyMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyExact:
		return PolicyExact, nil
	case PolicyFullDayExclusive:
		return PolicyFullDayExclusive, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// SlotPolicy правило конфликтов и метка слота "весь день"
type SlotPolicy struct {
	Mode         PolicyMode
	FullDayLabel string
}

// ExactPolicy политика по умолчанию
func ExactPolicy() SlotPolicy {
	return SlotPolicy{Mode: PolicyExact}
}

func (p SlotPolicy) fullDayExclusive() bool {
	return p.Mode == PolicyFullDayExclusive && p.FullDayLabel != ""
}

// AvailableSlots слоты каталога, ещё свободные на дату, в порядке каталога.
// Пустой каталог даёт пустой (не nil) результат.
func AvailableSlots(date model.Date, reservations []model.Reservation, labels []string, policy SlotPolicy) []string {
	used := usedLabels(date, reservations)

	blockAll := false
	blockFullDay := false
	if policy.fullDayExclusive() {
		if _, ok := used[policy.FullDayLabel]; ok {
			blockAll = true
		}
		blockFullDay = len(used) > 0
	}

	available := make([]string, 0, len(labels))
	if blockAll {
		return available
	}
	for _, label := range labels {
		if _, taken := used[label]; taken {
			continue
		}
		if blockFullDay && label == policy.FullDayLabel {
			continue
		}
		available = append(available, label)
	}
	return available
}

// UsedSlots метки слотов, занятых активными бронированиями на дату
func UsedSlots(date model.Date, reservations []model.Reservation) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, r := range activeOn(date, reservations) {
		if _, ok := seen[r.TimeSlot]; ok {
			continue
		}
		seen[r.TimeSlot] = struct{}{}
		out = append(out, r.TimeSlot)
	}
	return out
}

// CheckSlot проверяет, можно ли забронировать label на дату
func CheckSlot(date model.Date, label string, reservations []model.Reservation, labels []string, policy SlotPolicy) error {
	if !containsLabel(labels, label) {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, label)
	}
	if !containsLabel(AvailableSlots(date, reservations, labels, policy), label) {
		return fmt.Errorf("%w: %s %s", ErrSlotTaken, date, label)
	}
	return nil
}

func usedLabels(date model.Date, reservations []model.Reservation) map[string]struct{} {
	used := make(map[string]struct{})
	for _, r := range activeOn(date, reservations) {
		used[r.TimeSlot] = struct{}{}
	}
	return used
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
