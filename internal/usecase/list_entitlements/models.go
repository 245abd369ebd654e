package list_entitlements

import "github.com/m04kA/SMC-SeatBooking/internal/domain"

// Request модель запроса entitlement'ов пользователя
type Request struct {
	UserID int64
}

// Response entitlement'ы, которые можно выбрать прямо сейчас
type Response struct {
	Packages   []domain.PackagePass
	PromoCodes []domain.PromoCode
	Credits    []domain.StoreCredit
}
