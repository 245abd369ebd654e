package ratecard

import (
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

type rateKey struct {
	memberType domain.MemberType
	bucket     domain.DurationBucket
}

// Table неизменяемый снимок тарифной сетки (memberType, bucket) -> почасовая ставка
type Table struct {
	rates map[rateKey]float64
}

// NewTable создает таблицу из записей источника. Дубликаты перезаписываются последним значением.
func NewTable(entries []domain.RateCardEntry) *Table {
	rates := make(map[rateKey]float64, len(entries))
	for _, e := range entries {
		rates[rateKey{memberType: e.MemberType, bucket: e.Bucket}] = e.HourlyRate
	}
	return &Table{rates: rates}
}

// Len возвращает количество тарифов
func (t *Table) Len() int {
	return len(t.rates)
}

// Rate возвращает почасовую ставку для роли и длительности бронирования
func (t *Table) Rate(memberType domain.MemberType, hours float64) (float64, error) {
	bucket := domain.BucketFor(hours)
	rate, ok := t.rates[rateKey{memberType: memberType, bucket: bucket}]
	if !ok {
		return 0, fmt.Errorf("%w: member_type=%s, bucket=%s", ErrRateNotFound, memberType, bucket)
	}
	return rate, nil
}

// BaseAmount считает базовую стоимость: сумма по ролям count * hours * rate(role, bucket).
// Для группы с одной ролью это duration * rate * pax.
func (t *Table) BaseAmount(party domain.Party, hours float64) (float64, error) {
	total := 0.0
	for _, memberType := range domain.MemberTypes {
		count := party.Count(memberType)
		if count == 0 {
			continue
		}
		rate, err := t.Rate(memberType, hours)
		if err != nil {
			return 0, err
		}
		total += float64(count) * hours * rate
	}
	return total, nil
}
