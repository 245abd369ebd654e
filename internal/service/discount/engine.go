package discount

import (
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/pkg/money"
)

// Engine считает скидку по выбранному entitlement.
// Расчёт чистый: результат зависит только от аргументов.
type Engine struct{}

// NewEngine создает движок скидок
func NewEngine() *Engine {
	return &Engine{}
}

// Compute считает скидку и итоговую сумму.
// Гарантирует 0 <= discount <= base и final = max(0, base - discount).
func (e *Engine) Compute(base float64, ent domain.Entitlement, c Context) (Result, error) {
	if base < 0 {
		return Result{}, ErrInvalidBase
	}
	if ent == nil {
		return Result{DiscountAmount: 0, FinalAmount: base}, nil
	}

	if err := e.Eligible(base, ent, c); err != nil {
		return Result{}, err
	}

	var (
		discount float64
		hours    float64
	)

	switch v := ent.(type) {
	case domain.PackagePass:
		hours = math.Min(c.Hours, v.HoursAllowed)
		discount = hours * c.HourlyRate
	case domain.PromoCode:
		amount, err := promoDiscount(base, v)
		if err != nil {
			return Result{}, err
		}
		discount = amount
	case domain.StoreCredit:
		amount, err := creditAmount(base, v)
		if err != nil {
			return Result{}, err
		}
		discount = amount
	default:
		return Result{}, fmt.Errorf("%w: %T", domain.ErrUnknownEntitlement, ent)
	}

	discount = math.Min(money.NonNegative(discount), base)

	return Result{
		Kind:           ent.Kind(),
		DiscountAmount: discount,
		FinalAmount:    money.NonNegative(base - discount),
		AppliedHours:   hours,
	}, nil
}

// Eligible проверяет, что entitlement можно применить к бронированию.
// Используется отдельно при отправке бронирования на оплату.
func (e *Engine) Eligible(base float64, ent domain.Entitlement, c Context) error {
	switch v := ent.(type) {
	case nil:
		return nil
	case domain.PackagePass:
		if !v.IsSelectable(c.Now) {
			return ErrPassNotSelectable
		}
		return nil
	case domain.PromoCode:
		return promoEligible(base, v, c)
	case domain.StoreCredit:
		if !v.IsSelectable(c.Now) {
			return ErrCreditNotSelectable
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", domain.ErrUnknownEntitlement, ent)
	}
}

// Recompute пересчитывает скидку на новой базе.
// Если entitlement больше не подходит, выбор снимается и возвращается сообщение,
// а ошибка не возвращается: это не фатально для бронирования.
func (e *Engine) Recompute(base float64, ent domain.Entitlement, c Context) (Recomputed, error) {
	res, err := e.Compute(base, ent, c)
	if err == nil {
		return Recomputed{Result: res}, nil
	}
	if !errors.Is(err, domain.ErrEligibility) && !errors.Is(err, ErrCreditOutOfRange) {
		return Recomputed{}, err
	}

	return Recomputed{
		Result:  Result{FinalAmount: base},
		Cleared: true,
		Notice:  clearedNotice(ent, err),
	}, nil
}

// promoEligible проверяет все условия промокода
func promoEligible(base float64, p domain.PromoCode, c Context) error {
	if base < p.MinimumAmount {
		return fmt.Errorf("%w: %w: %.2f < %.2f", ErrPromoNotEligible, ErrBelowMinimumAmount, base, p.MinimumAmount)
	}
	if !p.IsActiveAt(c.Now) {
		return fmt.Errorf("%w: %w", ErrPromoNotEligible, ErrPromoInactive)
	}
	if p.UserUsageCount >= p.MaxUsagePerUser {
		return fmt.Errorf("%w: %w", ErrPromoNotEligible, ErrUserLimitReached)
	}
	if p.MaxTotalUsage != nil && p.TotalUsageCount >= *p.MaxTotalUsage {
		return fmt.Errorf("%w: %w", ErrPromoNotEligible, ErrTotalLimitReached)
	}
	if p.MinimumHours != nil && c.Hours < *p.MinimumHours {
		return fmt.Errorf("%w: %w: %.2fh < %.2fh", ErrPromoNotEligible, ErrBelowMinimumHours, c.Hours, *p.MinimumHours)
	}
	return nil
}

// promoDiscount считает скидку промокода без учёта потолка base
func promoDiscount(base float64, p domain.PromoCode) (float64, error) {
	switch p.DiscountType {
	case domain.DiscountPercentage:
		discount := money.Percent(base, p.DiscountValue)
		if p.MaximumDiscount != nil && discount > *p.MaximumDiscount {
			discount = *p.MaximumDiscount
		}
		return discount, nil
	case domain.DiscountFixed:
		return math.Min(p.DiscountValue, base), nil
	default:
		return 0, fmt.Errorf("%w: %q of promo %s", ErrUnknownDiscountType, p.DiscountType, p.Code)
	}
}

// creditAmount разрешает запрошенную сумму кредита в допустимых границах
func creditAmount(base float64, c domain.StoreCredit) (float64, error) {
	upper := math.Min(c.AmountRemaining, base)
	if c.UseMax {
		return upper, nil
	}
	if c.Requested < 0 || money.Round2(c.Requested) > money.Round2(upper) {
		return 0, fmt.Errorf("%w: %.2f not in [0, %.2f]", ErrCreditOutOfRange, c.Requested, upper)
	}
	return c.Requested, nil
}

func clearedNotice(ent domain.Entitlement, err error) string {
	switch v := ent.(type) {
	case domain.PromoCode:
		return fmt.Sprintf("Promo code %s no longer applies and was removed: %s", v.Code, reason(err))
	case domain.PackagePass:
		return fmt.Sprintf("Package %s can no longer be used and was removed", v.Name)
	case domain.StoreCredit:
		return "Store credit no longer covers this booking and was removed"
	default:
		return "Discount was removed"
	}
}

func reason(err error) string {
	for _, r := range []error{
		ErrBelowMinimumAmount,
		ErrPromoInactive,
		ErrUserLimitReached,
		ErrTotalLimitReached,
		ErrBelowMinimumHours,
	} {
		if errors.Is(err, r) {
			return r.Error()
		}
	}
	return err.Error()
}
