package pricing

import (
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// QuoteInput все входные данные, от которых зависит цена бронирования
type QuoteInput struct {
	Now           time.Time
	MemberType    domain.MemberType // роль владельца пакета
	Window        domain.TimeWindow
	Party         domain.Party
	Entitlement   domain.Entitlement
	PaymentMethod domain.PaymentMethod // пусто, пока способ оплаты не выбран
}

// QuoteResult котировка и итог применения entitlement
type QuoteResult struct {
	Quote        domain.Quote // округлённая для отображения/оплаты
	HourlyRate   float64      // ставка владельца бронирования
	AppliedHours float64      // часы, списанные с пакета

	// Entitlement применённый entitlement; nil, если его не было или он снят
	Entitlement    domain.Entitlement
	EntitlementRef *domain.EntitlementRef

	Cleared bool
	Notice  string
}
