package quote_price

import "github.com/m04kA/SMC-SeatBooking/internal/domain"

// Request входные данные для расчёта цены
type Request struct {
	UserID        int64
	MemberType    domain.MemberType
	Window        domain.TimeWindow
	Party         domain.Party
	Entitlement   *domain.Selection
	PaymentMethod domain.PaymentMethod
}

// Response котировка для отображения пользователю
type Response struct {
	Quote        domain.Quote
	Hours        float64
	HourlyRate   float64
	AppliedHours float64
	Entitlement  *domain.EntitlementRef

	// Cleared выбранный entitlement снят, Notice объясняет причину
	Cleared bool
	Notice  string
}
