package fee

import (
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/pkg/money"
)

// Calculator считает комиссию за способ оплаты по текущим настройкам
type Calculator struct {
	settings domain.FeeSettings
}

// NewCalculator создает калькулятор комиссий
func NewCalculator(settings domain.FeeSettings) *Calculator {
	return &Calculator{settings: settings}
}

// Compute возвращает комиссию для суммы после скидки (и налога).
// PayNow: фиксированная комиссия только при 0 < amount < 10.
// Карта: процент от суммы при amount > 0.
func (c *Calculator) Compute(amount float64, method domain.PaymentMethod) (float64, error) {
	switch method {
	case domain.PaymentMethodPayNow:
		// порог сравнивается по центам, чтобы 9.999999 не считалось меньше 10.00
		rounded := money.Round2(amount)
		if rounded > 0 && rounded < domain.PayNowFeeThreshold {
			return c.settings.PayNowFixedFee, nil
		}
		return 0, nil
	case domain.PaymentMethodCreditCard:
		if amount > 0 {
			return money.Percent(amount, c.settings.CardPercentage), nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// Total возвращает сумму к оплате с комиссией
func (c *Calculator) Total(amount float64, method domain.PaymentMethod) (float64, error) {
	f, err := c.Compute(amount, method)
	if err != nil {
		return 0, err
	}
	return amount + f, nil
}
