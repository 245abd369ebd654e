package discount

import (
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// Context параметры бронирования, от которых зависит скидка
type Context struct {
	Now        time.Time
	Hours      float64 // длительность бронирования на одного человека
	PartySize  int
	HourlyRate float64 // ставка человека, к которому применяется пакет
}

// Result результат расчёта скидки. Суммы не округлены.
type Result struct {
	Kind           domain.EntitlementKind // пусто, если скидки нет
	DiscountAmount float64
	FinalAmount    float64
	AppliedHours   float64 // часы, списанные с пакета
}

// Recomputed результат пересчёта для изменившейся базы
type Recomputed struct {
	Result
	Cleared bool   // выбор снят, потому что больше не подходит
	Notice  string // сообщение пользователю при снятии
}
