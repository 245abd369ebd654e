package apply_promo_code

import "github.com/m04kA/SMC-SeatBooking/internal/domain"

// Request модель запроса на применение промокода
type Request struct {
	UserID     int64
	Code       string
	MemberType domain.MemberType
	Window     domain.TimeWindow
	Party      domain.Party
}

// Response результат проверки и расчёта скидки
type Response struct {
	PromoID        int64
	Code           string
	DiscountType   domain.DiscountType
	BaseAmount     float64
	DiscountAmount float64
	FinalAmount    float64 // до налога и комиссии
	Quote          domain.Quote
}
